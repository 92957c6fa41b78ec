package testutil

import (
	"time"

	"github.com/bxtheory/examplan/internal/domain"
	"github.com/google/uuid"
)

// TopicList options
type TopicListOption func(*domain.TopicList)

func WithCourseName(name string) TopicListOption {
	return func(t *domain.TopicList) {
		t.CourseName = name
	}
}

func WithChapters(chapters ...domain.Chapter) TopicListOption {
	return func(t *domain.TopicList) {
		t.Chapters = chapters
		t.TotalPages = 0
		for _, ch := range chapters {
			t.TotalPages += ch.PageCount
		}
	}
}

func WithExamTopics(topics ...string) TopicListOption {
	return func(t *domain.TopicList) {
		t.ExamTopics = topics
	}
}

// NewTestChapter builds a chapter with the given pacing inputs.
func NewTestChapter(name string, pages int, grade domain.Complexity) domain.Chapter {
	return domain.Chapter{
		Name:                name,
		PageCount:           pages,
		EstimatedComplexity: grade,
	}
}

// NewTestTopicList builds a small, valid extraction: a three-chapter
// course with one chapter of each complexity grade.
func NewTestTopicList(opts ...TopicListOption) *domain.TopicList {
	topics := &domain.TopicList{
		CourseName: "Calculus I",
		TotalPages: 120,
		Chapters: []domain.Chapter{
			NewTestChapter("Limits", 40, domain.ComplexityMedium),
			NewTestChapter("Derivatives", 40, domain.ComplexityHigh),
			NewTestChapter("Integrals", 40, domain.ComplexityLow),
		},
		ExamTopics: []string{"chain rule", "integration by parts"},
	}
	for _, opt := range opts {
		opt(topics)
	}
	return topics
}

// NewTestPlan builds a schedule that validates clean: consecutive days,
// hours within limits, aggregates matching the rows.
func NewTestPlan() *domain.FullPlan {
	return &domain.FullPlan{
		Plan: []domain.StudyDay{
			{Day: 1, Course: "Calculus I", Chapter: "Derivatives", Task: "Study Derivatives", EstimatedHours: 3.5},
			{Day: 2, Course: "Calculus I", Chapter: "Limits", Task: "Study Limits", EstimatedHours: 2.0},
			{Day: 3, Course: "Calculus I", Chapter: "Integrals", Task: "Study Integrals", EstimatedHours: 1.0},
			{Day: 4, Course: "Calculus I", Chapter: "All chapters", Task: "Comprehensive review of all chapters", EstimatedHours: 3.0},
		},
		TotalStudyDays: 4,
		TotalHours:     9.5,
	}
}

// Run options
type RunOption func(*domain.Run)

func WithRunSource(source string) RunOption {
	return func(r *domain.Run) {
		r.Source = source
	}
}

func WithRunArtifact(filename string, version int) RunOption {
	return func(r *domain.Run) {
		r.ArtifactFilename = filename
		r.ArtifactVersion = version
	}
}

func WithRunStartDate(d time.Time) RunOption {
	return func(r *domain.Run) {
		r.StartDate = &d
	}
}

func WithRunCreatedAt(t time.Time) RunOption {
	return func(r *domain.Run) {
		r.CreatedAt = t
	}
}

// NewTestRun builds a run record consistent with the topic list and plan
// fixtures above.
func NewTestRun(opts ...RunOption) *domain.Run {
	plan := NewTestPlan()
	r := &domain.Run{
		ID:             uuid.New().String(),
		CourseName:     "Calculus I",
		ChapterCount:   3,
		TotalDays:      4,
		TotalStudyDays: plan.TotalStudyDays,
		TotalHours:     plan.TotalHours,
		OK:             true,
		Source:         domain.SourceLLM,
		Topics:         NewTestTopicList(),
		Plan:           plan,
		CreatedAt:      time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
