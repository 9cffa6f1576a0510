package repository

import (
	"context"
	"database/sql"
	"errors"

	"skill-sync-resume/internal/database"
	"skill-sync-resume/internal/domain/resume"
	"skill-sync-resume/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (resume.Profile, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (resume.Profile, error)
	UpsertByOwner(ctx context.Context, ownerID uuid.UUID, up resume.Upload) (resume.Profile, error)
	SaveAssessment(ctx context.Context, id uuid.UUID, a resume.Assessment) (resume.Profile, error)
	SaveRating(ctx context.Context, id uuid.UUID, rating int) (resume.Profile, error)
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

const resumeColumns = `id, owner_id, COALESCE(filename, ''), COALESCE(raw_text, ''), COALESCE(skills, '{}'),
	ats_score, ats_feedback, recruiter_rating, created_at, updated_at`

func (r *PostgresResumeRepository) FindByID(ctx context.Context, id uuid.UUID) (resume.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	return scanResume(row)
}

func (r *PostgresResumeRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (resume.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE owner_id = $1`, ownerID)
	return scanResume(row)
}

// UpsertByOwner replaces the upload fields of the owner's profile in a single
// statement, creating the profile on first upload. Assessment and rating
// columns are never touched.
func (r *PostgresResumeRepository) UpsertByOwner(ctx context.Context, ownerID uuid.UUID, up resume.Upload) (resume.Profile, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO resumes (id, owner_id, filename, raw_text, skills)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (owner_id) DO UPDATE
		 SET filename = EXCLUDED.filename,
		     raw_text = EXCLUDED.raw_text,
		     skills = EXCLUDED.skills,
		     updated_at = now()
		 RETURNING `+resumeColumns,
		uuid.New(), ownerID, up.Filename, up.RawText, up.Skills.Strings(),
	)
	return scanResume(row)
}

func (r *PostgresResumeRepository) SaveAssessment(ctx context.Context, id uuid.UUID, a resume.Assessment) (resume.Profile, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE resumes
		 SET ats_score = $2, ats_feedback = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+resumeColumns,
		id, a.Score, a.Feedback,
	)
	return scanResume(row)
}

func (r *PostgresResumeRepository) SaveRating(ctx context.Context, id uuid.UUID, rating int) (resume.Profile, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE resumes
		 SET recruiter_rating = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+resumeColumns,
		id, rating,
	)
	return scanResume(row)
}

func scanResume(row database.Row) (resume.Profile, error) {
	var (
		p        resume.Profile
		skills   []string
		score    *float64
		feedback *string
		rating   *int32
	)
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Filename, &p.RawText, &skills,
		&score, &feedback, &rating, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return resume.Profile{}, ErrResumeNotFound
		}
		return resume.Profile{}, err
	}

	p.Skills = skill.SetFromStrings(skills)
	p.ATSScore = score
	p.ATSFeedback = feedback
	if rating != nil {
		v := int(*rating)
		p.RecruiterRating = &v
	}
	return p, nil
}
