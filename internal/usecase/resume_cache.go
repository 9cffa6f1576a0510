package usecase

import (
	"context"
	"time"

	"skill-sync-resume/internal/domain/resume"
	"skill-sync-resume/internal/domain/skill"

	"github.com/google/uuid"
)

type ProfileCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func ResumeByIDCacheKey(id uuid.UUID) string {
	return "resume:id:" + id.String()
}

func ResumeByOwnerCacheKey(ownerID uuid.UUID) string {
	return "resume:owner:" + ownerID.String()
}

type cachedProfile struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Filename        string    `json:"filename"`
	RawText         string    `json:"raw_text"`
	Skills          []string  `json:"skills"`
	ATSScore        *float64  `json:"ats_score,omitempty"`
	ATSFeedback     *string   `json:"ats_feedback,omitempty"`
	RecruiterRating *int      `json:"recruiter_rating,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toCachedProfile(p resume.Profile) cachedProfile {
	return cachedProfile{
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

func (c cachedProfile) profile() resume.Profile {
	return resume.Profile{
		ID:              c.ID,
		OwnerID:         c.OwnerID,
		Filename:        c.Filename,
		RawText:         c.RawText,
		Skills:          skill.SetFromStrings(c.Skills),
		ATSScore:        c.ATSScore,
		ATSFeedback:     c.ATSFeedback,
		RecruiterRating: c.RecruiterRating,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
