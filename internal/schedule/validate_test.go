package schedule

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bxtheory/examplan/internal/domain"
)

func day(n int, task string, hours float64) domain.StudyDay {
	return domain.StudyDay{
		Day:            n,
		Course:         "Math 135",
		Chapter:        "Chapter 1",
		Task:           task,
		EstimatedHours: hours,
	}
}

func TestValidate_CleanPlanPassesUntouched(t *testing.T) {
	plan := domain.FullPlan{
		Plan: []domain.StudyDay{
			day(1, "Study Chapter 1", 3.0),
			day(2, "Study Chapter 2", 2.5),
			day(3, "Break day", 0),
		},
		TotalStudyDays: 2,
		TotalHours:     5.5,
	}

	res := Validate(plan)

	assert.True(t, res.OK)
	assert.Empty(t, res.HardViolations)
	assert.Empty(t, res.SoftWarnings)
	assert.Equal(t, plan.Plan, res.Normalized.Plan)
}

func TestValidate_ClampsExcessiveHours(t *testing.T) {
	plan := domain.FullPlan{Plan: []domain.StudyDay{day(1, "Study Chapter 1", 5.5)}}

	res := Validate(plan)

	assert.False(t, res.OK)
	require.Len(t, res.HardViolations, 1)
	assert.Equal(t, KindHoursOutOfRange, res.HardViolations[0].Kind)
	assert.Equal(t, 1, res.HardViolations[0].Day)
	assert.Equal(t, "5.5", res.HardViolations[0].Detail)
	assert.Equal(t, 4.0, res.Normalized.Plan[0].EstimatedHours)
}

func TestValidate_ClampsNegativeHoursToZero(t *testing.T) {
	plan := domain.FullPlan{Plan: []domain.StudyDay{day(1, "Study Chapter 1", -2.0)}}

	res := Validate(plan)

	assert.False(t, res.OK)
	require.Len(t, res.HardViolations, 1)
	assert.Equal(t, KindHoursOutOfRange, res.HardViolations[0].Kind)
	assert.Equal(t, 0.0, res.Normalized.Plan[0].EstimatedHours)

	// The clamped day now reads as an unexplained zero-hour day.
	require.Len(t, res.SoftWarnings, 1)
	assert.Equal(t, KindSuspiciousZeroHours, res.SoftWarnings[0].Kind)
}

func TestValidate_BoundaryHoursAreLegal(t *testing.T) {
	plan := domain.FullPlan{
		Plan: []domain.StudyDay{
			day(1, "Break day", 0.0),
			day(2, "Study Chapter 1", 4.0),
		},
	}

	res := Validate(plan)

	assert.True(t, res.OK)
	assert.Empty(t, res.HardViolations)
}

func TestValidate_NaNHoursClampToZero(t *testing.T) {
	plan := domain.FullPlan{Plan: []domain.StudyDay{day(1, "Study Chapter 1", math.NaN())}}

	res := Validate(plan)

	assert.False(t, res.OK)
	require.Len(t, res.HardViolations, 1)
	assert.Equal(t, "NaN", res.HardViolations[0].Detail)
	assert.Equal(t, 0.0, res.Normalized.Plan[0].EstimatedHours)
	assert.Equal(t, 0.0, res.Normalized.TotalHours)
}

func TestValidate_RenumbersDecreasingDays(t *testing.T) {
	plan := domain.FullPlan{
		Plan: []domain.StudyDay{
			day(2, "Study Chapter 2", 2.0),
			day(1, "Study Chapter 1", 2.0),
		},
	}

	res := Validate(plan)

	assert.False(t, res.OK)
	require.Len(t, res.HardViolations, 1)
	assert.Equal(t, KindDayOrderingError, res.HardViolations[0].Kind)
	assert.Equal(t, 1, res.Normalized.Plan[0].Day)
	assert.Equal(t, 2, res.Normalized.Plan[1].Day)
}

func TestValidate_RenumberingPreservesSameDayPairs(t *testing.T) {
	plan := domain.FullPlan{
		Plan: []domain.StudyDay{
			day(3, "Study Chapter 1", 1.0),
			day(3, "Study Chapter 2", 1.0),
			day(1, "Study Chapter 3", 1.0),
		},
	}

	res := Validate(plan)

	assert.False(t, res.OK)
	days := []int{res.Normalized.Plan[0].Day, res.Normalized.Plan[1].Day, res.Normalized.Plan[2].Day}
	assert.Equal(t, []int{1, 1, 2}, days, "entries sharing a day must stay on one day")
}

func TestValidate_DayBelowOneIsOrderingError(t *testing.T) {
	plan := domain.FullPlan{
		Plan: []domain.StudyDay{
			day(0, "Study Chapter 1", 2.0),
			day(1, "Study Chapter 2", 2.0),
		},
	}

	res := Validate(plan)

	assert.False(t, res.OK)
	require.NotEmpty(t, res.HardViolations)
	assert.Equal(t, KindDayOrderingError, res.HardViolations[0].Kind)
	assert.Equal(t, 1, res.Normalized.Plan[0].Day)
	assert.Equal(t, 2, res.Normalized.Plan[1].Day)
}

func TestValidate_MonotonicGapsAreLegal(t *testing.T) {
	plan := domain.FullPlan{
		Plan: []domain.StudyDay{
			day(1, "Study Chapter 1", 2.0),
			day(4, "Study Chapter 2", 2.0),
		},
	}

	res := Validate(plan)

	assert.True(t, res.OK)
	assert.Equal(t, 4, res.Normalized.Plan[1].Day, "gapped but increasing days stay as given")
}

func TestValidate_RecomputesAggregates(t *testing.T) {
	plan := domain.FullPlan{
		Plan: []domain.StudyDay{
			day(1, "Study Chapter 1", 3.0),
			day(2, "Study Chapter 2", 2.5),
			day(3, "Break day", 0),
		},
		TotalStudyDays: 99,
		TotalHours:     -12.0,
	}

	res := Validate(plan)

	assert.True(t, res.OK, "wrong aggregates are corrected, not flagged")
	assert.Equal(t, 2, res.Normalized.TotalStudyDays)
	assert.InDelta(t, 5.5, res.Normalized.TotalHours, 1e-6)
}

func TestValidate_SuspiciousZeroHours(t *testing.T) {
	plan := domain.FullPlan{
		Plan: []domain.StudyDay{
			day(1, "Study Chapter 1", 0.0),
			day(2, "Break day", 0.0),
		},
	}

	res := Validate(plan)

	assert.True(t, res.OK, "zero hours is a warning, not a violation")
	require.Len(t, res.SoftWarnings, 1)
	assert.Equal(t, KindSuspiciousZeroHours, res.SoftWarnings[0].Kind)
	assert.Equal(t, 1, res.SoftWarnings[0].Day)
}

func TestValidate_NoBreakInWindow(t *testing.T) {
	var entries []domain.StudyDay
	for i := 1; i <= 8; i++ {
		entries = append(entries, day(i, "Study Chapter 1", 2.0))
	}

	res := Validate(domain.FullPlan{Plan: entries})

	assert.True(t, res.OK)
	require.Len(t, res.SoftWarnings, 1, "disjoint windows: days 1-7 warn once, day 8 alone is not a full window")
	assert.Equal(t, KindNoBreakInWindow, res.SoftWarnings[0].Kind)
	assert.Equal(t, 1, res.SoftWarnings[0].Day)
}

func TestValidate_BreakDayResetsWindow(t *testing.T) {
	var entries []domain.StudyDay
	for i := 1; i <= 14; i++ {
		if i == 7 || i == 14 {
			entries = append(entries, day(i, "Break day", 0))
			continue
		}
		entries = append(entries, day(i, "Study Chapter 1", 2.0))
	}

	res := Validate(domain.FullPlan{Plan: entries})

	assert.True(t, res.OK)
	assert.Empty(t, res.SoftWarnings, "a break every seventh day satisfies the window rule")
}

func TestValidate_ShortPlanSkipsBreakCheck(t *testing.T) {
	var entries []domain.StudyDay
	for i := 1; i <= 6; i++ {
		entries = append(entries, day(i, "Study Chapter 1", 3.0))
	}

	res := Validate(domain.FullPlan{Plan: entries})

	assert.Empty(t, res.SoftWarnings, "plans under a week cannot violate the weekly break rule")
}

func TestValidate_DayGapCountsAsRest(t *testing.T) {
	entries := []domain.StudyDay{
		day(1, "Study Chapter 1", 2.0),
		day(2, "Study Chapter 1", 2.0),
		day(3, "Study Chapter 2", 2.0),
		// day 4 missing: implicit rest
		day(5, "Study Chapter 2", 2.0),
		day(6, "Study Chapter 3", 2.0),
		day(7, "Study Chapter 3", 2.0),
		day(8, "Review", 2.0),
	}

	res := Validate(domain.FullPlan{Plan: entries})

	assert.Empty(t, res.SoftWarnings, "a day absent from the plan is a rest day")
}

func TestValidate_InvalidDateFormatWarns(t *testing.T) {
	e := day(1, "Study Chapter 1", 2.0)
	e.Date = "02/09/2026"
	res := Validate(domain.FullPlan{Plan: []domain.StudyDay{e}})

	assert.True(t, res.OK)
	require.Len(t, res.SoftWarnings, 1)
	assert.Equal(t, KindInvalidDateFormat, res.SoftWarnings[0].Kind)
	assert.Equal(t, "02/09/2026", res.SoftWarnings[0].Detail)
}

func TestValidate_ValidDateSilent(t *testing.T) {
	e := day(1, "Study Chapter 1", 2.0)
	e.Date = "2026-02-09"
	res := Validate(domain.FullPlan{Plan: []domain.StudyDay{e}})

	assert.Empty(t, res.SoftWarnings)
}

func TestValidate_EmptyPlan(t *testing.T) {
	res := Validate(domain.FullPlan{})

	assert.True(t, res.OK)
	assert.Empty(t, res.HardViolations)
	assert.Empty(t, res.SoftWarnings)
	assert.Equal(t, 0, res.Normalized.TotalStudyDays)
	assert.Equal(t, 0.0, res.Normalized.TotalHours)
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	plan := domain.FullPlan{
		Plan: []domain.StudyDay{
			day(2, "Study Chapter 1", 9.0),
			day(1, "Study Chapter 2", -1.0),
		},
		TotalHours: 8.0,
	}

	Validate(plan)

	assert.Equal(t, 2, plan.Plan[0].Day)
	assert.Equal(t, 9.0, plan.Plan[0].EstimatedHours)
	assert.Equal(t, -1.0, plan.Plan[1].EstimatedHours)
	assert.Equal(t, 8.0, plan.TotalHours)
}

func TestValidate_NormalizedPlanRevalidatesClean(t *testing.T) {
	plan := domain.FullPlan{
		Plan: []domain.StudyDay{
			day(3, "Study Chapter 1", 7.0),
			day(1, "Study Chapter 2", 2.0),
			day(1, "Study Chapter 3", -3.0),
		},
	}

	first := Validate(plan)
	assert.False(t, first.OK)

	second := Validate(first.Normalized)
	assert.True(t, second.OK)
	assert.Empty(t, second.HardViolations)
	assert.Equal(t, first.Normalized, second.Normalized)
	assert.Equal(t, first.SoftWarnings, second.SoftWarnings)
}

func TestNormalize_IsValidateShorthand(t *testing.T) {
	plan := domain.FullPlan{Plan: []domain.StudyDay{day(1, "Study Chapter 1", 6.0)}}
	assert.Equal(t, Validate(plan).Normalized, Normalize(plan))
}
