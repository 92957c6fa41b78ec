package domain

import "time"

// Run records one planning invocation: what course was planned, how the
// schedule validated, and where the rendered artifact went.
type Run struct {
	ID             string
	CourseName     string
	ChapterCount   int
	TotalDays      int
	TotalStudyDays int
	TotalHours     float64
	OK             bool
	HardViolations int
	SoftWarnings   int
	Source         string     // "llm" or "fallback"
	StartDate      *time.Time // anchor date when the schedule was date-anchored, nil otherwise
	Topics         *TopicList
	Plan           *FullPlan

	// ArtifactFilename and ArtifactVersion point at the saved rendering,
	// when saving succeeded. Empty filename means no artifact was recorded.
	ArtifactFilename string
	ArtifactVersion  int

	CreatedAt time.Time
}

// Run sources.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
	SourceExternal = "external" // plan supplied by the caller, not generated
)
