package dto

import (
	"time"

	"skill-sync-resume/internal/domain/resume"

	"github.com/google/uuid"
)

type ResumeUploadResponse struct {
	ID     uuid.UUID `json:"id"`
	Skills []string  `json:"skills"`
}

type ResumeResponse struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Filename        string    `json:"filename"`
	RawText         string    `json:"raw_text"`
	Skills          []string  `json:"skills"`
	ATSScore        *float64  `json:"ats_score"`
	ATSFeedback     *string   `json:"ats_feedback"`
	RecruiterRating *int      `json:"recruiter_rating"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ATSAssessmentResponse struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

type RateResumeRequest struct {
	Rating *int `json:"rating"`
}

func NewResumeResponse(p resume.Profile) ResumeResponse {
	return ResumeResponse{
		ID:              p.ID,
		OwnerID:         p.OwnerID,
		Filename:        p.Filename,
		RawText:         p.RawText,
		Skills:          p.Skills.Strings(),
		ATSScore:        p.ATSScore,
		ATSFeedback:     p.ATSFeedback,
		RecruiterRating: p.RecruiterRating,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
