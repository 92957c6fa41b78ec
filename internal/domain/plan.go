package domain

import "strings"

// Scheduling constraints shared by the generator and the validator.
const (
	// MaxDailyHours caps study time on any single day.
	MaxDailyHours = 4.0
	// MinSessionHours is the smallest useful study block; anything shorter
	// than this is either rounded up or treated as a rest day.
	MinSessionHours = 0.5
)

// StudyDay is one row of a study schedule.
type StudyDay struct {
	Day            int     `json:"day"`
	Date           string  `json:"date,omitempty"` // YYYY-MM-DD when known, "" otherwise
	Course         string  `json:"course"`
	Chapter        string  `json:"chapter"`
	Task           string  `json:"task"`
	EstimatedHours float64 `json:"estimated_hours"`
}

// IsBreak reports whether the entry is a scheduled rest day.
func (d StudyDay) IsBreak() bool {
	return strings.Contains(strings.ToLower(d.Task), "break")
}

// FullPlan is a complete day-by-day study schedule with its aggregates.
// The aggregates are denormalized and may be stale or wrong on input;
// validation always recomputes them.
type FullPlan struct {
	Plan           []StudyDay `json:"plan"`
	TotalStudyDays int        `json:"total_study_days"`
	TotalHours     float64    `json:"total_hours"`
}

// Clone returns a deep copy of the plan so callers can normalize without
// mutating the original.
func (p FullPlan) Clone() FullPlan {
	out := p
	if p.Plan != nil {
		out.Plan = make([]StudyDay, len(p.Plan))
		copy(out.Plan, p.Plan)
	}
	return out
}

// Span returns the lowest and highest day numbers in the plan.
// Both are zero when the plan is empty.
func (p FullPlan) Span() (first, last int) {
	if len(p.Plan) == 0 {
		return 0, 0
	}
	first, last = p.Plan[0].Day, p.Plan[0].Day
	for _, d := range p.Plan[1:] {
		if d.Day < first {
			first = d.Day
		}
		if d.Day > last {
			last = d.Day
		}
	}
	return first, last
}
