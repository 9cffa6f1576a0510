package dto

import "skill-sync-resume/internal/domain/matching"

type MatchResultResponse struct {
	MatchPercentage float64  `json:"match_percentage"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
}

func NewMatchResultResponse(r matching.Result) MatchResultResponse {
	return MatchResultResponse{
		MatchPercentage: r.MatchPercentage,
		MatchedSkills:   r.MatchedSkills.Strings(),
		MissingSkills:   r.MissingSkills.Strings(),
	}
}
