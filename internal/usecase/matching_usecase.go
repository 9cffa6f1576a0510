package usecase

import (
	"context"

	"skill-sync-resume/internal/domain/matching"
	"skill-sync-resume/internal/domain/resume"
	"skill-sync-resume/internal/repository"

	"github.com/google/uuid"
)

type MatchingUsecase interface {
	CalculateMatch(ctx context.Context, ownerID, jobID uuid.UUID) (matching.Result, error)
	CalculateMatchForResume(ctx context.Context, resumeID, jobID uuid.UUID) (matching.Result, error)
}

type Matching struct {
	resumes   ResumeUsecase
	jobs      repository.JobRepository
	jobSkills repository.JobSkillRepository
}

func NewMatchingUsecase(resumes ResumeUsecase, jobs repository.JobRepository, jobSkills repository.JobSkillRepository) *Matching {
	return &Matching{resumes: resumes, jobs: jobs, jobSkills: jobSkills}
}

// CalculateMatch compares the owner's stored resume skills with the job's
// declared skills.
func (u *Matching) CalculateMatch(ctx context.Context, ownerID, jobID uuid.UUID) (matching.Result, error) {
	if ownerID == uuid.Nil {
		return matching.Result{}, ErrUnauthorized
	}
	return u.calculate(ctx, jobID, func() (resume.Profile, error) {
		return u.resumes.GetProfileByOwner(ctx, ownerID)
	})
}

// CalculateMatchForResume matches any stored resume against a job, the way a
// recruiter compares a candidate with a posting.
func (u *Matching) CalculateMatchForResume(ctx context.Context, resumeID, jobID uuid.UUID) (matching.Result, error) {
	return u.calculate(ctx, jobID, func() (resume.Profile, error) {
		return u.resumes.GetProfile(ctx, resumeID)
	})
}

// calculate checks the job before loading the profile, so an unknown job
// wins over an unknown resume.
func (u *Matching) calculate(ctx context.Context, jobID uuid.UUID, profile func() (resume.Profile, error)) (matching.Result, error) {
	if jobID == uuid.Nil {
		return matching.Result{}, ErrJobNotFound
	}

	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return matching.Result{}, ErrInternal
	}
	if !exists {
		return matching.Result{}, ErrJobNotFound
	}

	p, err := profile()
	if err != nil {
		return matching.Result{}, err
	}

	names, err := u.jobSkills.FindSkillNamesByJobID(ctx, jobID)
	if err != nil {
		return matching.Result{}, ErrInternal
	}

	return matching.Calculate(p.Skills, SkillSetFromNames(names)), nil
}
