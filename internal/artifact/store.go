package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bxtheory/examplan/internal/repository"
)

// MIME types the pipeline renders.
const (
	MimeMarkdown = "text/markdown"
	MimeCSV      = "text/csv"
	MimeHTML     = "text/html"
)

// filenameLayout stamps artifact names to the second, giving the
// study_plan_<YYYYMMDD_HHMMSS> convention.
const filenameLayout = "study_plan_20060102_150405"

// Ref identifies one saved artifact: the generated filename plus the
// version the index assigned to it.
type Ref struct {
	Filename string
	Version  int
}

// Store persists rendered schedules. Implementations return a Ref on
// success; callers treat failures as warnings, never as pipeline errors.
type Store interface {
	Save(ctx context.Context, content []byte, mime string, metadata map[string]string) (Ref, error)
}

// FSStore writes artifacts to a directory and tracks versions in the
// artifact index. The index is optional: with a nil repo every save is
// version 1 and nothing is recorded.
type FSStore struct {
	dir       string
	artifacts repository.ArtifactRepo
	now       func() time.Time
}

// NewFSStore creates an FSStore rooted at dir.
func NewFSStore(dir string, artifacts repository.ArtifactRepo) *FSStore {
	return &FSStore{
		dir:       dir,
		artifacts: artifacts,
		now:       time.Now,
	}
}

// Save writes content to a timestamped file in the store directory.
// The write goes through a temp file and a rename, so a concurrent reader
// never sees a half-written schedule. Saving within the same second reuses
// the filename and bumps the version in the index; the file on disk always
// holds the latest bytes.
func (s *FSStore) Save(ctx context.Context, content []byte, mime string, metadata map[string]string) (Ref, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return Ref{}, fmt.Errorf("creating artifact directory: %w", err)
	}

	filename := s.now().UTC().Format(filenameLayout) + ExtensionFor(mime)

	version := 1
	if s.artifacts != nil {
		v, err := s.artifacts.NextVersion(ctx, filename)
		if err != nil {
			return Ref{}, fmt.Errorf("resolving artifact version: %w", err)
		}
		version = v
	}

	tmp, err := os.CreateTemp(s.dir, "tmp-*"+ExtensionFor(mime))
	if err != nil {
		return Ref{}, fmt.Errorf("creating temp artifact: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return Ref{}, fmt.Errorf("writing temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Ref{}, fmt.Errorf("closing temp artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, filename)); err != nil {
		return Ref{}, fmt.Errorf("renaming temp artifact: %w", err)
	}

	if s.artifacts != nil {
		sum := sha256.Sum256(content)
		rec := &repository.ArtifactRecord{
			Filename:  filename,
			Version:   version,
			Mime:      mime,
			SizeBytes: int64(len(content)),
			SHA256:    hex.EncodeToString(sum[:]),
			Metadata:  metadata,
			CreatedAt: s.now().UTC(),
		}
		if err := s.artifacts.Record(ctx, rec); err != nil {
			return Ref{}, fmt.Errorf("recording artifact: %w", err)
		}
	}

	return Ref{Filename: filename, Version: version}, nil
}

// ExtensionFor maps a MIME type to the file extension the store uses.
// Unrecognized types fall back to .md, markdown being the pipeline's
// native format.
func ExtensionFor(mime string) string {
	switch mime {
	case MimeCSV:
		return ".csv"
	case MimeHTML:
		return ".html"
	default:
		return ".md"
	}
}
