package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bxtheory/examplan/internal/domain"
)

// markdownHeader is the fixed preamble of every rendered schedule. An empty
// plan renders as exactly this: title, column header, separator, no rows.
const markdownHeader = "# Study Schedule\n\n" +
	"| Day | Date | Course | Chapter | Task | Hours |\n" +
	"|---|---|---|---|---|---|\n"

// RenderMarkdown renders a plan as the canonical markdown table. The plan is
// expected to be normalized; render output is byte-for-byte deterministic in
// the input. Any plan renders: out-of-range values appear as-is rather than
// failing, since rendering never validates.
func RenderMarkdown(plan domain.FullPlan) string {
	var b strings.Builder
	b.WriteString(markdownHeader)
	for _, e := range plan.Plan {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			e.Day,
			cell(e.Date),
			cell(e.Course),
			cell(e.Chapter),
			cell(e.Task),
			formatHours(e.EstimatedHours),
		)
	}
	return b.String()
}

// cell prepares one table cell: empty values become a dash, and characters
// that would break the table structure are defused.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}

// formatHours renders hours with exactly one decimal place (3 -> "3.0",
// 2.25 -> "2.2") so the column reads uniformly.
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 1, 64)
}
