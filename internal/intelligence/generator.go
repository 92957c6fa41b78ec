package intelligence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bxtheory/examplan/internal/domain"
	"github.com/bxtheory/examplan/internal/llm"
)

type llmGenerator struct {
	client llm.Client
}

// NewLLMGenerator creates a ScheduleGenerator backed by an LLM client.
// Generation failures surface as errors; choosing a fallback generator is
// the caller's decision, so it can record which path produced the plan.
func NewLLMGenerator(client llm.Client) ScheduleGenerator {
	return &llmGenerator{client: client}
}

func (g *llmGenerator) Generate(ctx context.Context, topics *domain.TopicList, opts GenerateOptions) (*domain.FullPlan, error) {
	if topics == nil || len(topics.Chapters) == 0 {
		return nil, fmt.Errorf("no topics to schedule")
	}

	topicsJSON, err := json.MarshalIndent(topics, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling topic list: %w", err)
	}

	prompt := "Here is the topic list:\n\n" + string(topicsJSON)
	if opts.AvailableDays > 0 {
		prompt += fmt.Sprintf("\n\nThe exam is in %d days. The schedule MUST fit within %d days.", opts.AvailableDays, opts.AvailableDays)
	}

	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSchedule,
		SystemPrompt: scheduleSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("llm schedule generation failed: %w", err)
	}

	plan, err := llm.ExtractJSON[domain.FullPlan](resp.Text, validateDraftPlan)
	if err != nil {
		// Models sometimes emit the day entries as a bare array instead of
		// the wrapping object. Recover those; totals are recomputed during
		// validation anyway.
		days, arrErr := llm.ExtractJSON[[]domain.StudyDay](resp.Text, nil)
		if arrErr != nil || len(days) == 0 {
			return nil, fmt.Errorf("failed to extract study plan: %w", err)
		}
		plan = domain.FullPlan{Plan: days}
	}

	return &plan, nil
}

// validateDraftPlan checks only shape. Hours, day numbering and totals are
// the validator's job; rejecting drafts for fixable defects would throw away
// usable output.
func validateDraftPlan(p domain.FullPlan) error {
	if len(p.Plan) == 0 {
		return fmt.Errorf("plan must not be empty")
	}
	return nil
}
