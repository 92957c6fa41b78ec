package service

import (
	"context"
	"fmt"

	"github.com/bxtheory/examplan/internal/domain"
	"github.com/bxtheory/examplan/internal/repository"
)

// defaultHistoryLimit caps list queries when the caller passes no limit.
const defaultHistoryLimit = 20

type historyService struct {
	runs      repository.RunRepo
	artifacts repository.ArtifactRepo
}

// NewHistoryService creates a HistoryService over the run and artifact
// repositories.
func NewHistoryService(runs repository.RunRepo, artifacts repository.ArtifactRepo) HistoryService {
	return &historyService{runs: runs, artifacts: artifacts}
}

func (s *historyService) ListRuns(ctx context.Context, limit int) ([]*domain.Run, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	runs, err := s.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

func (s *historyService) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (s *historyService) ListArtifacts(ctx context.Context, limit int) ([]*repository.ArtifactRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	records, err := s.artifacts.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}
	return records, nil
}
