package domain

import "fmt"

// Chapter describes one unit of course material with the metadata
// the scheduler needs to pace it.
type Chapter struct {
	Name                string     `json:"name"`
	PageCount           int        `json:"page_count"`
	Topics              []string   `json:"topics"`
	EstimatedComplexity Complexity `json:"estimated_complexity"`
}

// TopicList is the structured extraction of a course: what has to be
// studied, broken into chapters, plus any known exam emphasis.
type TopicList struct {
	CourseName string    `json:"course_name"`
	TotalPages int       `json:"total_pages"`
	Chapters   []Chapter `json:"chapters"`
	ExamTopics []string  `json:"exam_topics,omitempty"`
}

// Validate checks the extraction contract and returns all violations found,
// not just the first.
func (t *TopicList) Validate() []error {
	var errs []error

	if t.CourseName == "" {
		errs = append(errs, fmt.Errorf("course_name is required"))
	}
	if t.TotalPages < 0 {
		errs = append(errs, fmt.Errorf("total_pages must not be negative, got %d", t.TotalPages))
	}
	if len(t.Chapters) == 0 {
		errs = append(errs, fmt.Errorf("chapters must not be empty"))
	}

	for i, ch := range t.Chapters {
		prefix := fmt.Sprintf("chapters[%d]", i)
		if ch.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if ch.PageCount < 0 {
			errs = append(errs, fmt.Errorf("%s.page_count must not be negative, got %d", prefix, ch.PageCount))
		}
		if ch.EstimatedComplexity != "" && !ValidComplexities[string(ch.EstimatedComplexity)] {
			errs = append(errs, fmt.Errorf("%s.estimated_complexity must be low, medium or high, got %q", prefix, ch.EstimatedComplexity))
		}
	}

	return errs
}

// SumChapterPages totals the per-chapter page counts. TotalPages is allowed
// to drift from this sum (front matter, appendices), so callers treat the
// difference as advisory.
func (t *TopicList) SumChapterPages() int {
	total := 0
	for _, ch := range t.Chapters {
		total += ch.PageCount
	}
	return total
}

// Normalize lowercases complexity grades and defaults missing ones to medium.
func (t *TopicList) Normalize() {
	for i := range t.Chapters {
		t.Chapters[i].EstimatedComplexity = ParseComplexity(string(t.Chapters[i].EstimatedComplexity))
	}
}
