package intelligence

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/bxtheory/examplan/internal/domain"
)

// minutesPerTenPages is the pacing table: study minutes per 10 pages of
// material at each complexity grade.
var minutesPerTenPages = map[domain.Complexity]float64{
	domain.ComplexityLow:    17.5,
	domain.ComplexityMedium: 30.0,
	domain.ComplexityHigh:   50.0,
}

// complexityOrder ranks grades for scheduling; hardest material comes
// first, while energy is fresh.
var complexityOrder = map[domain.Complexity]int{
	domain.ComplexityHigh:   0,
	domain.ComplexityMedium: 1,
	domain.ComplexityLow:    2,
}

const reviewDayHours = 3.0

type pacingGenerator struct{}

// NewPacingGenerator creates a ScheduleGenerator that builds plans from the
// pacing table alone, no LLM involved. Its output always passes validation
// clean: one entry per day, days numbered from 1, hours within limits, a
// break every seventh day, and exact totals.
func NewPacingGenerator() ScheduleGenerator {
	return &pacingGenerator{}
}

func (g *pacingGenerator) Generate(_ context.Context, topics *domain.TopicList, opts GenerateOptions) (*domain.FullPlan, error) {
	if topics == nil || len(topics.Chapters) == 0 {
		return nil, fmt.Errorf("no topics to schedule")
	}

	chapters := orderedChapters(topics.Chapters)
	hours := make([]float64, len(chapters))
	for i, ch := range chapters {
		hours[i] = chapterHours(ch)
	}

	reviewDays := 1
	if len(chapters) >= 6 {
		reviewDays = 2
	}
	if opts.AvailableDays > 0 {
		scaleToFit(hours, opts.AvailableDays, reviewDays)
	}

	b := planBuilder{course: topics.CourseName}
	for i, ch := range chapters {
		left := hours[i]
		first := true
		for left > 0 {
			chunk := math.Min(left, domain.MaxDailyHours)
			b.addStudy(ch.Name, chapterTask(ch, first), chunk)
			left -= chunk
			first = false
		}
	}
	for i := 0; i < reviewDays; i++ {
		b.addStudy("", reviewTask(topics, i), reviewDayHours)
	}

	return b.plan(), nil
}

// planBuilder assembles one entry per day, inserting a break row whenever
// the day counter lands on a multiple of seven.
type planBuilder struct {
	course  string
	entries []domain.StudyDay
	day     int
}

func (b *planBuilder) addStudy(chapter, task string, hours float64) {
	if b.day == 0 {
		b.day = 1
	}
	if b.day%7 == 0 {
		b.entries = append(b.entries, domain.StudyDay{
			Day:  b.day,
			Task: "Break day",
		})
		b.day++
	}
	b.entries = append(b.entries, domain.StudyDay{
		Day:            b.day,
		Course:         b.course,
		Chapter:        chapter,
		Task:           task,
		EstimatedHours: hours,
	})
	b.day++
}

func (b *planBuilder) plan() *domain.FullPlan {
	plan := &domain.FullPlan{Plan: b.entries}
	for _, e := range b.entries {
		if e.EstimatedHours > 0 {
			plan.TotalStudyDays++
			plan.TotalHours += e.EstimatedHours
		}
	}
	return plan
}

// chapterHours converts a chapter's page count into study hours via the
// pacing table, rounded to the nearest half hour.
func chapterHours(ch domain.Chapter) float64 {
	pace, ok := minutesPerTenPages[ch.EstimatedComplexity]
	if !ok {
		pace = minutesPerTenPages[domain.ComplexityMedium]
	}
	h := float64(ch.PageCount) / 10.0 * pace / 60.0
	h = math.Round(h*2) / 2
	if h < domain.MinSessionHours {
		h = domain.MinSessionHours
	}
	return h
}

// orderedChapters returns the chapters hardest first, preserving the course
// order within each complexity grade. Unknown grades rank as medium, same
// as the pacing table treats them.
func orderedChapters(chapters []domain.Chapter) []domain.Chapter {
	rank := func(c domain.Complexity) int {
		if r, ok := complexityOrder[c]; ok {
			return r
		}
		return complexityOrder[domain.ComplexityMedium]
	}
	out := make([]domain.Chapter, len(chapters))
	copy(out, chapters)
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i].EstimatedComplexity) < rank(out[j].EstimatedComplexity)
	})
	return out
}

// scaleToFit compresses per-chapter hours until the plan fits the available
// horizon, allowing for break and review days. Each chapter gets a share of
// the study-day budget proportional to its hours (never less than one day),
// and its hours are capped at what those days can hold. A horizon shorter
// than the chapter count cannot be honored and the plan runs over.
func scaleToFit(hours []float64, availableDays, reviewDays int) {
	budget := availableDays - availableDays/7 - reviewDays
	if budget < len(hours) {
		budget = len(hours)
	}

	days := make([]int, len(hours))
	for i := range days {
		days[i] = 1
	}
	for extra := budget - len(hours); extra > 0; extra-- {
		best := 0
		for i := range hours {
			if hours[i]/float64(days[i]) > hours[best]/float64(days[best]) {
				best = i
			}
		}
		days[best]++
	}

	for i, h := range hours {
		hours[i] = math.Min(h, float64(days[i])*domain.MaxDailyHours)
	}
}

func chapterTask(ch domain.Chapter, first bool) string {
	if !first {
		return "Continue " + ch.Name
	}
	task := "Study " + ch.Name
	if len(ch.Topics) > 0 {
		task += ": " + strings.Join(ch.Topics, ", ")
	}
	return task
}

func reviewTask(topics *domain.TopicList, day int) string {
	if day > 0 {
		return "Final review and practice problems"
	}
	task := "Comprehensive review of all chapters"
	if len(topics.ExamTopics) > 0 {
		task += ", focusing on " + strings.Join(topics.ExamTopics, ", ")
	}
	return task
}
