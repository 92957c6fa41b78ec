package service

import (
	"context"

	"github.com/bxtheory/examplan/internal/contract"
	"github.com/bxtheory/examplan/internal/domain"
	"github.com/bxtheory/examplan/internal/repository"
)

// PlanService runs the full planning pipeline: extract topics, generate a
// draft schedule, validate and normalize it, render markdown, and persist
// the result.
type PlanService interface {
	RunPlan(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error)
}

// HistoryService reads back what earlier runs produced.
type HistoryService interface {
	ListRuns(ctx context.Context, limit int) ([]*domain.Run, error)
	GetRun(ctx context.Context, id string) (*domain.Run, error)
	ListArtifacts(ctx context.Context, limit int) ([]*repository.ArtifactRecord, error)
}
