package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SQLiteArtifactRepo implements ArtifactRepo using a SQLite database.
type SQLiteArtifactRepo struct {
	db *sql.DB
}

// NewSQLiteArtifactRepo creates a new SQLiteArtifactRepo.
func NewSQLiteArtifactRepo(db *sql.DB) *SQLiteArtifactRepo {
	return &SQLiteArtifactRepo{db: db}
}

// NextVersion returns the version number the next save of filename should
// use: 1 for a filename never seen, max+1 otherwise.
func (r *SQLiteArtifactRepo) NextVersion(ctx context.Context, filename string) (int, error) {
	query := `SELECT COALESCE(MAX(version), 0) + 1 FROM artifacts WHERE filename = ?`
	var next int
	if err := r.db.QueryRowContext(ctx, query, filename).Scan(&next); err != nil {
		return 0, fmt.Errorf("computing next artifact version: %w", err)
	}
	return next, nil
}

func (r *SQLiteArtifactRepo) Record(ctx context.Context, rec *ArtifactRecord) error {
	metadata := "{}"
	if len(rec.Metadata) > 0 {
		b, err := json.Marshal(rec.Metadata)
		if err != nil {
			return fmt.Errorf("encoding artifact metadata: %w", err)
		}
		metadata = string(b)
	}

	query := `INSERT INTO artifacts (filename, version, mime, size_bytes, sha256, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.Filename,
		rec.Version,
		rec.Mime,
		rec.SizeBytes,
		rec.SHA256,
		metadata,
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting artifact record: %w", err)
	}
	return nil
}

func (r *SQLiteArtifactRepo) ListRecent(ctx context.Context, limit int) ([]*ArtifactRecord, error) {
	query := `SELECT filename, version, mime, size_bytes, sha256, metadata, created_at
		FROM artifacts
		ORDER BY created_at DESC, filename, version DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent artifacts: %w", err)
	}
	defer rows.Close()
	return r.scanArtifacts(rows)
}

// scanArtifacts scans multiple artifact records from *sql.Rows.
func (r *SQLiteArtifactRepo) scanArtifacts(rows *sql.Rows) ([]*ArtifactRecord, error) {
	var records []*ArtifactRecord
	for rows.Next() {
		var rec ArtifactRecord
		var metadataStr, createdAtStr string

		err := rows.Scan(
			&rec.Filename, &rec.Version, &rec.Mime, &rec.SizeBytes, &rec.SHA256,
			&metadataStr, &createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning artifact row: %w", err)
		}

		record, parseErr := r.populateArtifact(&rec, metadataStr, createdAtStr)
		if parseErr != nil {
			return nil, parseErr
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating artifacts: %w", err)
	}
	return records, nil
}

// populateArtifact fills in parsed fields on an ArtifactRecord after scanning raw strings.
func (r *SQLiteArtifactRepo) populateArtifact(rec *ArtifactRecord, metadataStr, createdAtStr string) (*ArtifactRecord, error) {
	if metadataStr != "" && metadataStr != "{}" {
		if err := json.Unmarshal([]byte(metadataStr), &rec.Metadata); err != nil {
			return nil, fmt.Errorf("decoding artifact metadata: %w", err)
		}
	}

	var parseErr error
	rec.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}

	return rec, nil
}
