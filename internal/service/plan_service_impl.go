package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bxtheory/examplan/internal/artifact"
	"github.com/bxtheory/examplan/internal/contract"
	"github.com/bxtheory/examplan/internal/domain"
	"github.com/bxtheory/examplan/internal/intelligence"
	"github.com/bxtheory/examplan/internal/repository"
	"github.com/bxtheory/examplan/internal/schedule"
)

// persistTimeout bounds every artifact or history write. A slow disk or a
// locked database delays the run by at most this long; the rendered plan is
// returned either way.
const persistTimeout = 5 * time.Second

// artifactMetadata tags every saved schedule for later retrieval.
func artifactMetadata(format string) map[string]string {
	return map[string]string{
		"type":   "study_schedule",
		"format": format,
	}
}

type planService struct {
	extractor intelligence.CourseExtractor
	generator intelligence.ScheduleGenerator // nil when the LLM is disabled
	fallback  intelligence.ScheduleGenerator
	store     artifact.Store // nil disables saving entirely
	runs      repository.RunRepo
	observer  UseCaseObserver
	now       func() time.Time
	newID     func() string
}

// NewPlanService wires the planning pipeline. generator may be nil; every
// run then goes straight to the fallback. store and runs may be nil, which
// turns the corresponding persistence step off.
func NewPlanService(
	extractor intelligence.CourseExtractor,
	generator intelligence.ScheduleGenerator,
	fallback intelligence.ScheduleGenerator,
	store artifact.Store,
	runs repository.RunRepo,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		extractor: extractor,
		generator: generator,
		fallback:  fallback,
		store:     store,
		runs:      runs,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

func (s *planService) RunPlan(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error) {
	started := s.now().UTC()

	resp, err := s.runPlan(ctx, req, started)

	fields := map[string]any{}
	if resp != nil {
		fields["course"] = resp.Topics.CourseName
		fields["source"] = resp.Source
		fields["ok"] = resp.Validation.OK
		fields["days"] = len(resp.Validation.Normalized.Plan)
	}
	observe(ctx, s.observer, "run_plan", started, err, fields)

	return resp, err
}

func (s *planService) runPlan(ctx context.Context, req contract.PlanRequest, started time.Time) (*contract.PlanResponse, error) {
	topics, err := s.resolveTopics(ctx, req)
	if err != nil {
		return nil, err
	}

	draft, source, err := s.generate(ctx, topics, req)
	if err != nil {
		return nil, err
	}

	result := schedule.Validate(*draft)

	plan := result.Normalized
	if req.StartDate != nil {
		plan = schedule.AnchorDates(plan, *req.StartDate)
		result.Normalized = plan
	}

	markdown := schedule.RenderMarkdown(plan)
	summary := schedule.Summarize(plan)

	resp := &contract.PlanResponse{
		RunID:       s.newID(),
		GeneratedAt: started,
		Source:      source,
		Topics:      topics,
		Validation:  result,
		Summary:     summary,
		Markdown:    markdown,
	}

	if req.Save {
		s.persist(ctx, req, resp, plan)
	}
	s.record(ctx, req, resp, plan, started)

	return resp, nil
}

// resolveTopics returns the supplied topic list or extracts one from the
// raw material.
func (s *planService) resolveTopics(ctx context.Context, req contract.PlanRequest) (*domain.TopicList, error) {
	if req.Topics != nil {
		topics := *req.Topics
		topics.Normalize()
		if errs := topics.Validate(); len(errs) > 0 {
			return nil, &contract.PlanError{
				Code:    contract.PlanErrExtraction,
				Message: fmt.Sprintf("supplied topic list is invalid: %v", errs[0]),
			}
		}
		return &topics, nil
	}

	if req.Material == "" {
		return nil, &contract.PlanError{
			Code:    contract.PlanErrNoInput,
			Message: "no course material or topic list supplied",
		}
	}

	topics, err := s.extractor.Extract(ctx, req.Material)
	if err != nil {
		return nil, &contract.PlanError{
			Code:    contract.PlanErrExtraction,
			Message: err.Error(),
		}
	}
	return topics, nil
}

// generate produces a draft plan: a plan supplied on the request wins,
// then the LLM generator, then the deterministic pacer.
func (s *planService) generate(ctx context.Context, topics *domain.TopicList, req contract.PlanRequest) (*domain.FullPlan, string, error) {
	if req.Plan != nil {
		draft := req.Plan.Clone()
		source := req.PlanSource
		if source == "" {
			source = domain.SourceExternal
		}
		return &draft, source, nil
	}

	opts := intelligence.GenerateOptions{AvailableDays: req.AvailableDays}

	if s.generator != nil {
		draft, err := s.generator.Generate(ctx, topics, opts)
		if err == nil {
			return draft, domain.SourceLLM, nil
		}
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
	}

	if s.fallback == nil {
		return nil, "", &contract.PlanError{
			Code:    contract.PlanErrGeneration,
			Message: "schedule generation failed and no fallback generator is configured",
		}
	}

	draft, err := s.fallback.Generate(ctx, topics, opts)
	if err != nil {
		return nil, "", &contract.PlanError{
			Code:    contract.PlanErrGeneration,
			Message: err.Error(),
		}
	}
	return draft, domain.SourceFallback, nil
}

// persist saves the markdown artifact plus any extra formats. Failures
// become warnings on the response; the markdown has already been rendered
// and nothing here can take it away.
func (s *planService) persist(ctx context.Context, req contract.PlanRequest, resp *contract.PlanResponse, plan domain.FullPlan) {
	if s.store == nil {
		return
	}

	pctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	ref, err := s.store.Save(pctx, []byte(resp.Markdown), artifact.MimeMarkdown, artifactMetadata("markdown"))
	if err != nil {
		resp.Warnings = append(resp.Warnings, persistenceWarning("saving markdown artifact", err))
	} else {
		resp.Artifact = &ref
	}

	for _, mime := range req.ExtraFormats {
		content, format, rerr := renderExtra(plan, mime)
		if rerr != nil {
			resp.Warnings = append(resp.Warnings, persistenceWarning("rendering "+format+" artifact", rerr))
			continue
		}
		ref, err := s.store.Save(pctx, content, mime, artifactMetadata(format))
		if err != nil {
			resp.Warnings = append(resp.Warnings, persistenceWarning("saving "+format+" artifact", err))
			continue
		}
		resp.Extra = append(resp.Extra, ref)
	}
}

// record writes the run to history. Like persist, a failure is a warning.
func (s *planService) record(ctx context.Context, req contract.PlanRequest, resp *contract.PlanResponse, plan domain.FullPlan, started time.Time) {
	if s.runs == nil {
		return
	}

	_, lastDay := plan.Span()
	run := &domain.Run{
		ID:             resp.RunID,
		CourseName:     resp.Topics.CourseName,
		ChapterCount:   len(resp.Topics.Chapters),
		TotalDays:      lastDay,
		TotalStudyDays: plan.TotalStudyDays,
		TotalHours:     plan.TotalHours,
		OK:             resp.Validation.OK,
		HardViolations: len(resp.Validation.HardViolations),
		SoftWarnings:   len(resp.Validation.SoftWarnings),
		Source:         resp.Source,
		StartDate:      req.StartDate,
		Topics:         resp.Topics,
		Plan:           &plan,
		CreatedAt:      started,
	}
	if resp.Artifact != nil {
		run.ArtifactFilename = resp.Artifact.Filename
		run.ArtifactVersion = resp.Artifact.Version
	}

	pctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	if err := s.runs.Create(pctx, run); err != nil {
		resp.Warnings = append(resp.Warnings, persistenceWarning("recording run history", err))
	}
}

func renderExtra(plan domain.FullPlan, mime string) ([]byte, string, error) {
	switch mime {
	case artifact.MimeCSV:
		return []byte(schedule.RenderCSV(plan)), "csv", nil
	case artifact.MimeHTML:
		html, err := schedule.RenderHTML(plan)
		return []byte(html), "html", err
	default:
		return nil, mime, fmt.Errorf("unsupported artifact format %q", mime)
	}
}

func persistenceWarning(action string, err error) schedule.Violation {
	return schedule.Violation{
		Kind:    schedule.KindPersistenceWarning,
		Message: fmt.Sprintf("%s failed: %v", action, err),
	}
}
