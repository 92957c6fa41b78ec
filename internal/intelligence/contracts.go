// Package intelligence holds the planning stages that sit between raw course
// material and a validated schedule: topic extraction and plan generation.
// Each stage has an LLM-backed implementation and a deterministic fallback,
// behind the same narrow interface.
package intelligence

import (
	"context"

	"github.com/bxtheory/examplan/internal/domain"
)

// CourseExtractor turns raw course material (textbook text, a syllabus, or a
// short free-text description) into a structured topic list.
type CourseExtractor interface {
	Extract(ctx context.Context, material string) (*domain.TopicList, error)
}

// GenerateOptions tunes plan generation.
type GenerateOptions struct {
	// AvailableDays bounds the schedule length; 0 lets the generator pick
	// a realistic horizon from the workload.
	AvailableDays int
}

// ScheduleGenerator turns a topic list into a day-by-day study plan. The
// returned plan is a draft: callers run it through schedule.Validate before
// trusting hours, day numbers or totals.
type ScheduleGenerator interface {
	Generate(ctx context.Context, topics *domain.TopicList, opts GenerateOptions) (*domain.FullPlan, error)
}
