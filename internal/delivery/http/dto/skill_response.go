package dto

type ExtractSkillsRequest struct {
	Text string `json:"text"`
}

type ExtractSkillsResponse struct {
	Skills []string `json:"skills"`
}

type MatchSkillsRequest struct {
	Candidate []string `json:"candidate"`
	Required  []string `json:"required"`
}

type VocabularyResponse struct {
	Skills []string `json:"skills"`
}
