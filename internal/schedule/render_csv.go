package schedule

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/bxtheory/examplan/internal/domain"
)

// RenderCSV renders a plan as CSV with the same columns as the markdown
// table, followed by comment lines carrying the aggregate totals. Hours keep
// the one-decimal format.
func RenderCSV(plan domain.FullPlan) string {
	var b strings.Builder
	w := csv.NewWriter(&b)

	w.Write([]string{"Day", "Date", "Course", "Chapter", "Task", "Hours"})
	for _, e := range plan.Plan {
		w.Write([]string{
			strconv.Itoa(e.Day),
			orDash(e.Date),
			orDash(e.Course),
			orDash(e.Chapter),
			orDash(e.Task),
			formatHours(e.EstimatedHours),
		})
	}
	w.Flush()

	fmt.Fprintf(&b, "# total_study_days=%d\n", plan.TotalStudyDays)
	fmt.Fprintf(&b, "# total_hours=%s\n", formatHours(plan.TotalHours))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
