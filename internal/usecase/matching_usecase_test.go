package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-sync-resume/internal/domain/resume"
	"skill-sync-resume/internal/domain/skill"

	"github.com/google/uuid"
)

type mockJobRepo struct {
	exists bool
	err    error
}

func (m mockJobRepo) ExistsByID(context.Context, uuid.UUID) (bool, error) { return m.exists, m.err }

type mockJobSkillRepo struct {
	names []string
	err   error
}

func (m mockJobSkillRepo) FindSkillNamesByJobID(context.Context, uuid.UUID) ([]string, error) {
	return m.names, m.err
}

func TestMatchingUsecase_CalculateMatch(t *testing.T) {
	ctx := context.Background()
	resumes := newTestResumeUsecase(newMemResumeRepo(), nil)
	owner := uuid.New()
	if _, err := resumes.Upload(ctx, owner, textUpload("cv.txt", "Java, Spring Boot and SQL")); err != nil {
		t.Fatalf("upload: %v", err)
	}

	uc := NewMatchingUsecase(resumes, mockJobRepo{exists: true}, mockJobSkillRepo{names: []string{"Java", "Spring Boot", "Microservices", "SQL"}})
	res, err := uc.CalculateMatch(ctx, owner, uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.MatchPercentage != 75 {
		t.Fatalf("expected 75, got %v", res.MatchPercentage)
	}
	if res.MissingSkills.Len() != 1 || !res.MissingSkills.Has("Microservices") {
		t.Fatalf("unexpected missing: %v", res.MissingSkills.Strings())
	}
}

func TestMatchingUsecase_Errors(t *testing.T) {
	ctx := context.Background()
	resumes := newTestResumeUsecase(newMemResumeRepo(), nil)

	uc := NewMatchingUsecase(resumes, mockJobRepo{exists: false}, mockJobSkillRepo{})
	if _, err := uc.CalculateMatch(ctx, uuid.New(), uuid.New()); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := uc.CalculateMatch(ctx, uuid.Nil, uuid.New()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	uc = NewMatchingUsecase(resumes, mockJobRepo{exists: true}, mockJobSkillRepo{})
	if _, err := uc.CalculateMatch(ctx, uuid.New(), uuid.New()); !errors.Is(err, resume.ErrNotFound) {
		t.Fatalf("expected resume.ErrNotFound, got %v", err)
	}

	uc = NewMatchingUsecase(resumes, mockJobRepo{err: errors.New("boom")}, mockJobSkillRepo{})
	if _, err := uc.CalculateMatch(ctx, uuid.New(), uuid.New()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestMatchingUsecase_CalculateMatchForResume(t *testing.T) {
	ctx := context.Background()
	resumes := newTestResumeUsecase(newMemResumeRepo(), nil)
	p, err := resumes.Upload(ctx, uuid.New(), textUpload("cv.txt", "Java and Microservices"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	uc := NewMatchingUsecase(resumes, mockJobRepo{exists: true}, mockJobSkillRepo{names: []string{"Java", "Microservices", "SQL", "Docker"}})
	res, err := uc.CalculateMatchForResume(ctx, p.ID, uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.MatchPercentage != 50 {
		t.Fatalf("expected 50, got %v", res.MatchPercentage)
	}
	if !res.MissingSkills.Equal(skill.NewSet("SQL", "Docker")) {
		t.Fatalf("unexpected missing: %v", res.MissingSkills.Strings())
	}

	if _, err := uc.CalculateMatchForResume(ctx, uuid.New(), uuid.New()); !errors.Is(err, resume.ErrNotFound) {
		t.Fatalf("expected resume.ErrNotFound, got %v", err)
	}

	// unknown job reported first, even for an unknown resume
	uc = NewMatchingUsecase(resumes, mockJobRepo{exists: false}, mockJobSkillRepo{})
	if _, err := uc.CalculateMatchForResume(ctx, uuid.New(), uuid.New()); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := uc.CalculateMatchForResume(ctx, p.ID, uuid.Nil); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for nil job id, got %v", err)
	}
}
