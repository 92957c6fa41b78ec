package schedule

import (
	"github.com/samber/lo"

	"github.com/bxtheory/examplan/internal/domain"
)

// Summary carries the aggregate statistics shown alongside a rendered plan.
type Summary struct {
	TotalHours          float64
	StudyDays           int
	BreakDays           int
	DistinctDays        int
	PeakHours           float64
	AvgHoursPerStudyDay float64
	HoursByCourse       map[string]float64
}

// Summarize computes plan statistics. It trusts nothing: totals come from
// the entries, not from the plan's own aggregate fields.
func Summarize(plan domain.FullPlan) Summary {
	entries := plan.Plan

	s := Summary{
		TotalHours:    lo.SumBy(entries, func(e domain.StudyDay) float64 { return e.EstimatedHours }),
		StudyDays:     lo.CountBy(entries, func(e domain.StudyDay) bool { return e.EstimatedHours > 0 }),
		BreakDays:     lo.CountBy(entries, func(e domain.StudyDay) bool { return e.EstimatedHours == 0 }),
		DistinctDays:  len(lo.UniqBy(entries, func(e domain.StudyDay) int { return e.Day })),
		HoursByCourse: make(map[string]float64),
	}

	for _, e := range entries {
		if e.EstimatedHours > s.PeakHours {
			s.PeakHours = e.EstimatedHours
		}
		if e.EstimatedHours > 0 && e.Course != "" {
			s.HoursByCourse[e.Course] += e.EstimatedHours
		}
	}

	if s.StudyDays > 0 {
		s.AvgHoursPerStudyDay = s.TotalHours / float64(s.StudyDays)
	}

	return s
}
