package repository

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"skill-sync-resume/internal/database"
	"skill-sync-resume/internal/domain/resume"
	"skill-sync-resume/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type valuesRow struct {
	vals []any
	err  error
}

func (r valuesRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.vals[i]))
	}
	return nil
}

// recordingDB captures the last statement and answers QueryRow with row.
type recordingDB struct {
	query string
	args  []any
	row   valuesRow
}

func (d *recordingDB) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }
func (d *recordingDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not used")
}
func (d *recordingDB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	d.query, d.args = query, args
	return d.row
}
func (d *recordingDB) Ping(context.Context) error                 { return nil }
func (d *recordingDB) Close() error                               { return nil }
func (d *recordingDB) Begin(context.Context) (database.Tx, error) { return nil, errors.New("not used") }
func (d *recordingDB) SQLDB() *sql.DB                             { return nil }

func profileRow(id, owner uuid.UUID, rating *int32) valuesRow {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	score, fb := 81.5, "solid"
	return valuesRow{vals: []any{
		id, owner, "cv.txt", "Go and SQL", []string{"SQL", "Go"},
		&score, &fb, rating, now, now,
	}}
}

// setClause returns the text between marker and RETURNING.
func setClause(t *testing.T, query, marker string) string {
	t.Helper()
	start := strings.Index(query, marker)
	end := strings.Index(query, "RETURNING")
	if start < 0 || end < start {
		t.Fatalf("unexpected statement shape: %s", query)
	}
	return query[start:end]
}

func TestResumeRepository_UpsertByOwner_LeavesAssessmentAndRating(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	four := int32(4)
	db := &recordingDB{row: profileRow(id, owner, &four)}
	repo := NewPostgresResumeRepository(db)

	p, err := repo.UpsertByOwner(context.Background(), owner, resume.Upload{
		Filename: "cv.txt", RawText: "Go and SQL", Skills: skill.NewSet("Go", "SQL"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if !strings.Contains(db.query, "ON CONFLICT (owner_id) DO UPDATE") {
		t.Fatalf("upsert must key on owner_id: %s", db.query)
	}
	set := setClause(t, db.query, "DO UPDATE")
	for _, col := range []string{"ats_score", "ats_feedback", "recruiter_rating"} {
		if strings.Contains(set, col) {
			t.Fatalf("upsert must not overwrite %s: %s", col, set)
		}
	}
	if db.args[1] != owner || db.args[2] != "cv.txt" {
		t.Fatalf("unexpected args %v", db.args)
	}
	if got := db.args[4].([]string); strings.Join(got, ",") != "Go,SQL" {
		t.Fatalf("skills arg should be sorted labels, got %v", got)
	}

	if p.ID != id || p.RecruiterRating == nil || *p.RecruiterRating != 4 || p.ATSScore == nil {
		t.Fatalf("scanned profile lost fields: %+v", p)
	}
}

func TestResumeRepository_GroupUpdatesTouchOwnColumnsOnly(t *testing.T) {
	id := uuid.New()
	db := &recordingDB{row: profileRow(id, uuid.New(), nil)}
	repo := NewPostgresResumeRepository(db)
	ctx := context.Background()

	if _, err := repo.SaveRating(ctx, id, 5); err != nil {
		t.Fatalf("rating: %v", err)
	}
	set := setClause(t, db.query, "SET")
	if !strings.Contains(set, "recruiter_rating") || strings.Contains(set, "ats_") || strings.Contains(set, "skills") {
		t.Fatalf("rating update touches other groups: %s", set)
	}

	if _, err := repo.SaveAssessment(ctx, id, resume.Assessment{Score: 70, Feedback: "ok"}); err != nil {
		t.Fatalf("assessment: %v", err)
	}
	set = setClause(t, db.query, "SET")
	if !strings.Contains(set, "ats_score") || strings.Contains(set, "recruiter_rating") || strings.Contains(set, "skills") {
		t.Fatalf("assessment update touches other groups: %s", set)
	}
}

func TestResumeRepository_NotFound(t *testing.T) {
	for _, noRows := range []error{pgx.ErrNoRows, sql.ErrNoRows} {
		repo := NewPostgresResumeRepository(&recordingDB{row: valuesRow{err: noRows}})
		if _, err := repo.FindByID(context.Background(), uuid.New()); !errors.Is(err, ErrResumeNotFound) {
			t.Fatalf("expected ErrResumeNotFound for %v, got %v", noRows, err)
		}
		if _, err := repo.SaveRating(context.Background(), uuid.New(), 3); !errors.Is(err, ErrResumeNotFound) {
			t.Fatalf("expected ErrResumeNotFound on update for %v, got %v", noRows, err)
		}
	}

	boom := errors.New("conn reset")
	repo := NewPostgresResumeRepository(&recordingDB{row: valuesRow{err: boom}})
	if _, err := repo.FindByOwner(context.Background(), uuid.New()); !errors.Is(err, boom) {
		t.Fatalf("expected driver error to pass through, got %v", err)
	}
}
