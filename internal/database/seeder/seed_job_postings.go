package seeder

import (
	"context"
	"fmt"

	"skill-sync-resume/internal/database"

	"github.com/google/uuid"
)

type demoJob struct {
	ID             uuid.UUID
	Title          string
	Company        string
	Description    string
	Location       string
	EmploymentType string
	Skills         []string
}

// Fixed ids keep the seeder idempotent across runs.
var demoJobs = []demoJob{
	{
		ID:    uuid.MustParse("5b1f0d1e-6a1c-4c59-9a7e-1f4e8d0a0001"),
		Title: "Software Engineer", Company: "Tech Solutions Inc.",
		Description: "Develop and maintain software applications.",
		Location:    "New York", EmploymentType: "Full-time",
		Skills: []string{"Java", "Spring Boot", "Microservices"},
	},
	{
		ID:    uuid.MustParse("5b1f0d1e-6a1c-4c59-9a7e-1f4e8d0a0002"),
		Title: "Frontend Developer", Company: "Web Innovations",
		Description: "Build responsive user interfaces.",
		Location:    "Remote", EmploymentType: "Full-time",
		Skills: []string{"JavaScript", "React", "HTML", "CSS"},
	},
	{
		ID:    uuid.MustParse("5b1f0d1e-6a1c-4c59-9a7e-1f4e8d0a0003"),
		Title: "Data Scientist", Company: "Data Insights Corp.",
		Description: "Analyze complex data sets and build predictive models.",
		Location:    "San Francisco", EmploymentType: "Full-time",
		Skills: []string{"Python", "R", "Machine Learning", "SQL"},
	},
	{
		ID:    uuid.MustParse("5b1f0d1e-6a1c-4c59-9a7e-1f4e8d0a0004"),
		Title: "DevOps Engineer", Company: "Cloud Builders",
		Description: "Manage and optimize cloud infrastructure.",
		Location:    "Seattle", EmploymentType: "Full-time",
		Skills: []string{"AWS", "Docker", "Kubernetes", "CI/CD"},
	},
	{
		ID:    uuid.MustParse("5b1f0d1e-6a1c-4c59-9a7e-1f4e8d0a0005"),
		Title: "Full Stack Developer", Company: "Global Tech Solutions",
		Description: "Develop and maintain both frontend and backend systems.",
		Location:    "Chennai", EmploymentType: "Full-time",
		Skills: []string{"Java", "Spring Boot", "Angular", "TypeScript", "SQL"},
	},
}

type JobPostingsSeeder struct{}

func (JobPostingsSeeder) Name() string { return "job_postings" }

func (JobPostingsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "title", "company", "description", "location", "employment_type"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "job_skills", "job_id", "skill_id", "importance_weight"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, j := range demoJobs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO jobs (id, title, company, description, location, employment_type)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO NOTHING`,
			j.ID, j.Title, j.Company, j.Description, j.Location, j.EmploymentType,
		); err != nil {
			return fmt.Errorf("job %s: %w", j.Title, err)
		}

		for _, name := range j.Skills {
			if _, err := tx.Exec(ctx,
				`INSERT INTO skills (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
				name,
			); err != nil {
				return fmt.Errorf("skill %s: %w", name, err)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO job_skills (job_id, skill_id, importance_weight)
				 SELECT $1, s.id, 3 FROM skills s WHERE s.name = $2
				 ON CONFLICT (job_id, skill_id) DO NOTHING`,
				j.ID, name,
			); err != nil {
				return fmt.Errorf("job skill %s/%s: %w", j.Title, name, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func Defaults() []Seeder {
	return []Seeder{JobPostingsSeeder{}}
}
