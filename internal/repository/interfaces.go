package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bxtheory/examplan/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// Callers match it with errors.Is; repos wrap it with the entity name.
var ErrNotFound = errors.New("not found")

// ArtifactRecord is one saved rendering of a study plan: the file that was
// written plus the bookkeeping the history views need.
type ArtifactRecord struct {
	Filename  string
	Version   int
	Mime      string
	SizeBytes int64
	SHA256    string
	Metadata  map[string]string
	CreatedAt time.Time
}

type ArtifactRepo interface {
	NextVersion(ctx context.Context, filename string) (int, error)
	Record(ctx context.Context, rec *ArtifactRecord) error
	ListRecent(ctx context.Context, limit int) ([]*ArtifactRecord, error)
}

type RunRepo interface {
	Create(ctx context.Context, r *domain.Run) error
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Run, error)
}
