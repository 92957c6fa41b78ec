package intelligence

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bxtheory/examplan/internal/domain"
)

// defaultChapterPages is assumed when the material gives no page counts.
const defaultChapterPages = 40

// chapterHeadingRe matches table-of-contents style headings like
// "Chapter 3: Integration" or "Unit 2 - Cell Biology".
var chapterHeadingRe = regexp.MustCompile(`(?i)^\s*(chapter|unit|part|week|module)\s+\d+\s*[:.\-–]?\s*(.*)$`)

type heuristicExtractor struct{}

// NewHeuristicExtractor creates a CourseExtractor that parses course
// descriptions without an LLM. It understands labeled lines ("Course:",
// "Chapters:", "Pages:", "Topics:", "Complexity:") and table-of-contents
// style chapter headings; anything else becomes a single-chapter course.
func NewHeuristicExtractor() CourseExtractor {
	return &heuristicExtractor{}
}

func (e *heuristicExtractor) Extract(_ context.Context, material string) (*domain.TopicList, error) {
	material = strings.TrimSpace(material)
	if material == "" {
		return nil, fmt.Errorf("no course material to extract from")
	}

	topics := &domain.TopicList{}
	complexity := domain.ComplexityMedium
	var examTopics []string
	var headings []string
	freeLine := ""

	for _, line := range strings.Split(material, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if value, ok := labeledValue(line, "course", "course name", "subject"); ok {
			topics.CourseName = value
			continue
		}
		if value, ok := labeledValue(line, "pages", "total pages", "page count"); ok {
			if fields := strings.Fields(value); len(fields) > 0 {
				if n, err := strconv.Atoi(fields[0]); err == nil && n > 0 {
					topics.TotalPages = n
				}
			}
			continue
		}
		if value, ok := labeledValue(line, "chapters", "units"); ok {
			for _, name := range splitList(value) {
				topics.Chapters = append(topics.Chapters, domain.Chapter{Name: name})
			}
			continue
		}
		if value, ok := labeledValue(line, "topics", "exam topics"); ok {
			examTopics = append(examTopics, splitList(value)...)
			continue
		}
		if value, ok := labeledValue(line, "complexity", "difficulty"); ok {
			complexity = domain.ParseComplexity(value)
			continue
		}

		if m := chapterHeadingRe.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[2])
			if name == "" {
				name = line
			}
			headings = append(headings, name)
			continue
		}

		// First line that is neither a label nor a heading doubles as the
		// course name when none is given explicitly.
		if freeLine == "" {
			freeLine = line
		}
	}

	// TOC headings only count when no explicit chapter list was given.
	if len(topics.Chapters) == 0 {
		for _, name := range headings {
			topics.Chapters = append(topics.Chapters, domain.Chapter{Name: name})
		}
	}

	if topics.CourseName == "" {
		topics.CourseName = courseNameFrom(freeLine)
	}
	if len(topics.Chapters) == 0 {
		topics.Chapters = []domain.Chapter{{Name: "Full course"}}
	}

	// Spread pages evenly; without a stated total, assume a typical chapter.
	perChapter := defaultChapterPages
	if topics.TotalPages > 0 {
		perChapter = topics.TotalPages / len(topics.Chapters)
		if perChapter < 1 {
			perChapter = 1
		}
	}
	for i := range topics.Chapters {
		topics.Chapters[i].PageCount = perChapter
		topics.Chapters[i].EstimatedComplexity = complexity
	}
	if topics.TotalPages == 0 {
		topics.TotalPages = perChapter * len(topics.Chapters)
	}
	topics.ExamTopics = examTopics

	return topics, nil
}

// labeledValue matches lines like "Pages: 320" against a set of labels,
// case-insensitively, and returns the value after the colon.
func labeledValue(line string, labels ...string) (string, bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", false
	}
	key := strings.ToLower(strings.TrimSpace(line[:idx]))
	for _, label := range labels {
		if key == label {
			return strings.TrimSpace(line[idx+1:]), true
		}
	}
	return "", false
}

// splitList splits a comma- or semicolon-separated list, dropping empties.
func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// courseNameFrom clips a free-text line down to something title-sized.
func courseNameFrom(line string) string {
	if len(line) > 80 {
		line = strings.TrimSpace(line[:80])
	}
	if line == "" {
		return "Untitled course"
	}
	return line
}
