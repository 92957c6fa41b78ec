package schedule

import (
	"time"

	"github.com/bxtheory/examplan/internal/domain"
)

// AnchorDates returns a copy of the plan with missing dates filled in from a
// start date: day N gets start plus N-1 days. Entries that already carry a
// date keep it, and entries with day numbers below 1 are left alone.
func AnchorDates(plan domain.FullPlan, start time.Time) domain.FullPlan {
	out := plan.Clone()
	for i := range out.Plan {
		e := &out.Plan[i]
		if e.Date != "" || e.Day < 1 {
			continue
		}
		e.Date = start.AddDate(0, 0, e.Day-1).Format("2006-01-02")
	}
	return out
}
