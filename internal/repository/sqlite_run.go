package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bxtheory/examplan/internal/domain"
)

const dateLayout = "2006-01-02"

// runColumns is the canonical SELECT column list for runs.
const runColumns = `id, course_name, chapter_count, total_days, total_study_days, total_hours,
		ok, hard_violations, soft_warnings, source, start_date, topics_json, plan_json,
		artifact_filename, artifact_version, created_at`

// SQLiteRunRepo implements RunRepo using a SQLite database.
type SQLiteRunRepo struct {
	db *sql.DB
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo.
func NewSQLiteRunRepo(db *sql.DB) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: db}
}

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.Run) error {
	topicsJSON := "{}"
	if run.Topics != nil {
		b, err := json.Marshal(run.Topics)
		if err != nil {
			return fmt.Errorf("encoding run topics: %w", err)
		}
		topicsJSON = string(b)
	}

	planJSON := "{}"
	if run.Plan != nil {
		b, err := json.Marshal(run.Plan)
		if err != nil {
			return fmt.Errorf("encoding run plan: %w", err)
		}
		planJSON = string(b)
	}

	// Both artifact columns stay NULL when nothing was saved; the schema's
	// foreign key only fires when both are set.
	var artifactFilename, artifactVersion interface{}
	if run.ArtifactFilename != "" {
		artifactFilename = run.ArtifactFilename
		artifactVersion = run.ArtifactVersion
	}

	query := `INSERT INTO runs (id, course_name, chapter_count, total_days, total_study_days, total_hours,
		ok, hard_violations, soft_warnings, source, start_date, topics_json, plan_json,
		artifact_filename, artifact_version, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.CourseName,
		run.ChapterCount,
		run.TotalDays,
		run.TotalStudyDays,
		run.TotalHours,
		boolToInt(run.OK),
		run.HardViolations,
		run.SoftWarnings,
		run.Source,
		nullableTimeToString(run.StartDate, dateLayout),
		topicsJSON,
		planJSON,
		artifactFilename,
		artifactVersion,
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanRun(row)
}

func (r *SQLiteRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent runs: %w", err)
	}
	defer rows.Close()
	return r.scanRuns(rows)
}

// scanRun scans a single run from a *sql.Row.
func (r *SQLiteRunRepo) scanRun(row *sql.Row) (*domain.Run, error) {
	var run domain.Run
	var ok int
	var startDateStr, artifactFilename sql.NullString
	var artifactVersion sql.NullInt64
	var topicsStr, planStr, createdAtStr string

	err := row.Scan(
		&run.ID, &run.CourseName, &run.ChapterCount, &run.TotalDays, &run.TotalStudyDays, &run.TotalHours,
		&ok, &run.HardViolations, &run.SoftWarnings, &run.Source, &startDateStr, &topicsStr, &planStr,
		&artifactFilename, &artifactVersion, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	return r.populateRun(&run, ok, startDateStr, topicsStr, planStr, artifactFilename, artifactVersion, createdAtStr)
}

// scanRuns scans multiple runs from *sql.Rows.
func (r *SQLiteRunRepo) scanRuns(rows *sql.Rows) ([]*domain.Run, error) {
	var runs []*domain.Run
	for rows.Next() {
		var run domain.Run
		var ok int
		var startDateStr, artifactFilename sql.NullString
		var artifactVersion sql.NullInt64
		var topicsStr, planStr, createdAtStr string

		err := rows.Scan(
			&run.ID, &run.CourseName, &run.ChapterCount, &run.TotalDays, &run.TotalStudyDays, &run.TotalHours,
			&ok, &run.HardViolations, &run.SoftWarnings, &run.Source, &startDateStr, &topicsStr, &planStr,
			&artifactFilename, &artifactVersion, &createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}

		populated, parseErr := r.populateRun(&run, ok, startDateStr, topicsStr, planStr, artifactFilename, artifactVersion, createdAtStr)
		if parseErr != nil {
			return nil, parseErr
		}

		runs = append(runs, populated)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// populateRun fills in parsed fields on a Run after scanning raw strings.
func (r *SQLiteRunRepo) populateRun(run *domain.Run, ok int, startDateStr sql.NullString, topicsStr, planStr string, artifactFilename sql.NullString, artifactVersion sql.NullInt64, createdAtStr string) (*domain.Run, error) {
	run.OK = intToBool(ok)
	run.StartDate = parseNullableTime(startDateStr, dateLayout)

	// "{}" marks a run stored without the corresponding snapshot.
	if topicsStr != "" && topicsStr != "{}" {
		run.Topics = &domain.TopicList{}
		if err := json.Unmarshal([]byte(topicsStr), run.Topics); err != nil {
			return nil, fmt.Errorf("decoding run topics: %w", err)
		}
	}
	if planStr != "" && planStr != "{}" {
		run.Plan = &domain.FullPlan{}
		if err := json.Unmarshal([]byte(planStr), run.Plan); err != nil {
			return nil, fmt.Errorf("decoding run plan: %w", err)
		}
	}

	if artifactFilename.Valid {
		run.ArtifactFilename = artifactFilename.String
	}
	if artifactVersion.Valid {
		run.ArtifactVersion = int(artifactVersion.Int64)
	}

	var parseErr error
	run.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}

	return run, nil
}
