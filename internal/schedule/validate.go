package schedule

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/bxtheory/examplan/internal/domain"
)

// breakWindowDays is the rolling window checked for rest days: every run of
// this many consecutive day numbers should contain at least one zero-hour day.
const breakWindowDays = 7

// ValidationResult reports the outcome of validating one plan. Normalized is
// always populated and always renderable, even when OK is false.
type ValidationResult struct {
	OK             bool            `json:"ok"`
	HardViolations []Violation     `json:"hard_violations,omitempty"`
	SoftWarnings   []Violation     `json:"soft_warnings,omitempty"`
	Normalized     domain.FullPlan `json:"normalized"`
}

// Validate checks every scheduling constraint on the plan and returns the
// corrected copy alongside all violations found. The input is never mutated,
// the same input always yields the same result, and no plan is rejected:
// hours outside [0, MaxDailyHours] are clamped, decreasing or sub-1 day
// numbers trigger a sequential renumbering that preserves same-day ties, and
// the aggregate totals are recomputed from the corrected entries regardless
// of what the input claimed. Violation day numbers refer to the normalized
// plan.
//
// Validating an already-normalized plan finds nothing to correct, so
// Validate(Normalize(p)) returns the same plan with no hard violations.
func Validate(plan domain.FullPlan) ValidationResult {
	var hard, soft []Violation
	norm := plan.Clone()

	hard = append(hard, checkOrdering(norm.Plan)...)
	if len(hard) > 0 {
		renumberDays(norm.Plan)
	}

	for i := range norm.Plan {
		e := &norm.Plan[i]
		in := plan.Plan[i].EstimatedHours

		clamped, viol := clampHours(in, e.Day)
		if viol != nil {
			hard = append(hard, *viol)
		}
		e.EstimatedHours = clamped

		if e.Date != "" && !isValidDate(e.Date) {
			soft = append(soft, Violation{
				Kind:    KindInvalidDateFormat,
				Day:     e.Day,
				Message: fmt.Sprintf("date %q is not in YYYY-MM-DD format", e.Date),
				Detail:  e.Date,
			})
		}

		if e.EstimatedHours == 0 && !e.IsBreak() {
			soft = append(soft, Violation{
				Kind:    KindSuspiciousZeroHours,
				Day:     e.Day,
				Message: "zero hours on a day not marked as a break",
			})
		}
	}

	soft = append(soft, checkBreakDensity(norm)...)

	norm.TotalStudyDays, norm.TotalHours = recomputeTotals(norm.Plan)

	return ValidationResult{
		OK:             len(hard) == 0,
		HardViolations: hard,
		SoftWarnings:   soft,
		Normalized:     norm,
	}
}

// Normalize returns the corrected plan without the violation report.
func Normalize(plan domain.FullPlan) domain.FullPlan {
	return Validate(plan).Normalized
}

// checkOrdering flags day numbers below 1 and day numbers that decrease.
// Repeated day numbers are allowed: a day may hold several study blocks.
func checkOrdering(entries []domain.StudyDay) []Violation {
	var out []Violation
	for i, e := range entries {
		if e.Day < 1 {
			out = append(out, Violation{
				Kind:    KindDayOrderingError,
				Message: fmt.Sprintf("entry %d has day number %d; days are numbered from 1", i, e.Day),
				Detail:  strconv.Itoa(e.Day),
			})
			continue
		}
		if i > 0 && e.Day < entries[i-1].Day {
			out = append(out, Violation{
				Kind:    KindDayOrderingError,
				Message: fmt.Sprintf("day %d appears after day %d; day numbers must not decrease", e.Day, entries[i-1].Day),
				Detail:  strconv.Itoa(e.Day),
			})
		}
	}
	return out
}

// renumberDays rewrites day numbers sequentially from 1 in list order,
// keeping entries that shared an input day number on the same output day.
func renumberDays(entries []domain.StudyDay) {
	next := 0
	prev := 0
	for i := range entries {
		in := entries[i].Day
		if i == 0 || in != prev {
			next++
		}
		entries[i].Day = next
		prev = in
	}
}

// clampHours forces hours into [0, MaxDailyHours], returning the violation
// when the input was outside. NaN counts as out of range and becomes zero.
func clampHours(h float64, day int) (float64, *Violation) {
	if h >= 0 && h <= domain.MaxDailyHours {
		return h, nil
	}

	clamped := 0.0
	if h > domain.MaxDailyHours {
		clamped = domain.MaxDailyHours
	}

	detail := strconv.FormatFloat(h, 'g', -1, 64)
	msg := fmt.Sprintf("estimated_hours %s is outside [0.0, %.1f], clamped to %.1f", detail, domain.MaxDailyHours, clamped)
	if math.IsNaN(h) {
		detail = "NaN"
		msg = fmt.Sprintf("estimated_hours is not a number, clamped to %.1f", clamped)
	}

	return clamped, &Violation{
		Kind:    KindHoursOutOfRange,
		Day:     day,
		Message: msg,
		Detail:  detail,
	}
}

// checkBreakDensity warns for every disjoint run of breakWindowDays
// consecutive day numbers that are all present in the plan and all carry
// study hours. A day number missing from the plan counts as an implicit
// rest day, so gapped plans are not penalized.
func checkBreakDensity(plan domain.FullPlan) []Violation {
	first, last := plan.Span()
	if last-first+1 < breakWindowDays {
		return nil
	}

	present := make(map[int]bool)
	hasRest := make(map[int]bool)
	for _, e := range plan.Plan {
		present[e.Day] = true
		if e.EstimatedHours == 0 {
			hasRest[e.Day] = true
		}
	}

	var out []Violation
	for s := first; s+breakWindowDays-1 <= last; {
		violated := true
		for d := s; d < s+breakWindowDays; d++ {
			if !present[d] || hasRest[d] {
				violated = false
				break
			}
		}
		if !violated {
			s++
			continue
		}
		out = append(out, Violation{
			Kind:    KindNoBreakInWindow,
			Day:     s,
			Message: fmt.Sprintf("no break day between day %d and day %d", s, s+breakWindowDays-1),
		})
		s += breakWindowDays
	}
	return out
}

func recomputeTotals(entries []domain.StudyDay) (studyDays int, hours float64) {
	for _, e := range entries {
		if e.EstimatedHours > 0 {
			studyDays++
		}
		hours += e.EstimatedHours
	}
	return studyDays, hours
}

func isValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
