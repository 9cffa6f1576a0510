package repository

import (
	"context"

	"skill-sync-resume/internal/database"

	"github.com/google/uuid"
)

type JobSkillRepository interface {
	FindSkillNamesByJobID(ctx context.Context, jobID uuid.UUID) ([]string, error)
}

type PostgresJobSkillRepository struct {
	db database.DB
}

func NewPostgresJobSkillRepository(db database.DB) *PostgresJobSkillRepository {
	return &PostgresJobSkillRepository{db: db}
}

// FindSkillNamesByJobID returns the declared skill names of a job as stored,
// without canonicalization.
func (r *PostgresJobSkillRepository) FindSkillNamesByJobID(ctx context.Context, jobID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.name
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = $1
		 ORDER BY s.name ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
