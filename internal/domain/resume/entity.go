package resume

import (
	"errors"
	"time"

	"skill-sync-resume/internal/domain/skill"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrNotFound           = errors.New("resume not found")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrUnreadableDocument = errors.New("unreadable document")
)

type Profile struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Filename string
	RawText  string
	Skills   skill.Set

	// ATSScore and ATSFeedback are written together by an assessment.
	ATSScore    *float64
	ATSFeedback *string

	RecruiterRating *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Profile) HasAssessment() bool {
	return p.ATSScore != nil && p.ATSFeedback != nil
}

func (p Profile) HasRating() bool {
	return p.RecruiterRating != nil
}

// Upload is the field group replaced by each upload for an owner.
type Upload struct {
	Filename string
	RawText  string
	Skills   skill.Set
}

type Assessment struct {
	Score    float64
	Feedback string
}

func ValidateRating(v int) error {
	if v < MinRating || v > MaxRating {
		return ErrInvalidRating
	}
	return nil
}
