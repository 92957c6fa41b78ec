package contract

import (
	"time"

	"github.com/bxtheory/examplan/internal/artifact"
	"github.com/bxtheory/examplan/internal/domain"
	"github.com/bxtheory/examplan/internal/schedule"
)

// PlanRequest describes one planning run. Topics, when set, supplies the
// course directly and skips extraction; otherwise Material is extracted
// first. AvailableDays caps the schedule horizon (0 = unconstrained) and
// StartDate anchors day numbers to calendar dates.
type PlanRequest struct {
	Material      string
	Topics        *domain.TopicList
	AvailableDays int
	StartDate     *time.Time
	Save          bool
	ExtraFormats  []string // extra renderings to save, as MIME types (artifact.MimeCSV, artifact.MimeHTML)

	// Plan supplies a ready-made draft schedule, skipping generation.
	// Topics must be set alongside it. PlanSource labels where the draft
	// came from in run history; empty means domain.SourceExternal.
	Plan       *domain.FullPlan
	PlanSource string
}

func NewPlanRequest(material string) PlanRequest {
	return PlanRequest{
		Material: material,
		Save:     true,
	}
}

// PlanResponse is everything one run produced. Markdown is always present,
// even when saving failed; Artifact is nil when nothing was saved.
type PlanResponse struct {
	RunID       string
	GeneratedAt time.Time
	Source      string // which path produced the plan: domain.SourceLLM or domain.SourceFallback
	Topics      *domain.TopicList
	Validation  schedule.ValidationResult
	Summary     schedule.Summary
	Markdown    string
	Artifact    *artifact.Ref
	Extra       []artifact.Ref
	Warnings    []schedule.Violation // pipeline warnings (persistence), distinct from Validation.SoftWarnings
}

type PlanErrorCode string

const (
	PlanErrNoInput    PlanErrorCode = "NO_INPUT"
	PlanErrExtraction PlanErrorCode = "EXTRACTION_FAILED"
	PlanErrGeneration PlanErrorCode = "GENERATION_FAILED"
)

type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
