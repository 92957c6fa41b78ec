package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bxtheory/examplan/internal/contract"
	"github.com/bxtheory/examplan/internal/domain"
	"github.com/bxtheory/examplan/internal/repository"
	"github.com/bxtheory/examplan/internal/schedule"
)

// FormatPlanResult renders everything a plan run produced, minus the
// schedule itself (the caller prints the markdown separately).
func FormatPlanResult(resp *contract.PlanResponse) string {
	var b strings.Builder

	b.WriteString(Header(resp.Topics.CourseName))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s  %s\n",
		ValidationBadge(resp.Validation.OK),
		SourceBadge(resp.Source),
		Dim(fmt.Sprintf("run %.8s", resp.RunID)),
	)
	b.WriteString("\n")

	b.WriteString(FormatSummary(resp.Summary))

	if report := FormatValidation(resp.Validation); report != "" {
		b.WriteString("\n")
		b.WriteString(report)
	}

	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			fmt.Fprintf(&b, "%s %s\n", StyleYellow.Render("⚠"), w.Message)
		}
	}

	if resp.Artifact != nil {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Saved to %s %s\n",
			Bold(resp.Artifact.Filename),
			Dim(fmt.Sprintf("(v%d)", resp.Artifact.Version)),
		)
		for _, extra := range resp.Extra {
			fmt.Fprintf(&b, "Saved to %s %s\n",
				Bold(extra.Filename),
				Dim(fmt.Sprintf("(v%d)", extra.Version)),
			)
		}
	}

	return b.String()
}

// FormatSummary renders the aggregate statistics of a plan.
func FormatSummary(s schedule.Summary) string {
	rows := [][]string{
		{"Study days", strconv.Itoa(s.StudyDays)},
		{"Break days", strconv.Itoa(s.BreakDays)},
		{"Total hours", FormatHours(s.TotalHours)},
		{"Peak day", FormatHours(s.PeakHours)},
	}
	if s.StudyDays > 0 {
		rows = append(rows, []string{"Avg per study day", FormatHours(s.AvgHoursPerStudyDay)})
	}

	var b strings.Builder
	for _, row := range rows {
		// Pad before styling so the ANSI codes don't skew the column.
		fmt.Fprintf(&b, "  %s %s\n", Dim(fmt.Sprintf("%-18s", row[0])), row[1])
	}
	return b.String()
}

// FormatValidation renders the violation report, or "" for a clean plan.
func FormatValidation(result schedule.ValidationResult) string {
	if len(result.HardViolations) == 0 && len(result.SoftWarnings) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d corrected, %d warnings\n",
		len(result.HardViolations), len(result.SoftWarnings))
	for _, v := range result.HardViolations {
		fmt.Fprintf(&b, "  %s\n", ViolationStyle(v).Render(v.String()))
	}
	for _, v := range result.SoftWarnings {
		fmt.Fprintf(&b, "  %s\n", ViolationStyle(v).Render(v.String()))
	}
	return b.String()
}

// FormatRunList renders run history as an aligned table.
func FormatRunList(runs []*domain.Run) string {
	if len(runs) == 0 {
		return Dim("No runs recorded yet. Try: examplan plan \"your course description\"") + "\n"
	}

	headers := []string{"When", "Course", "Days", "Hours", "Valid", "Source", "Artifact"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		artifactCell := Dim("-")
		if r.ArtifactFilename != "" {
			artifactCell = r.ArtifactFilename
		}
		rows = append(rows, []string{
			HumanTimestamp(r.CreatedAt),
			r.CourseName,
			strconv.Itoa(r.TotalStudyDays),
			FormatHours(r.TotalHours),
			ValidationBadge(r.OK),
			SourceBadge(r.Source),
			artifactCell,
		})
	}
	return RenderTable(headers, rows)
}

// FormatArtifactList renders the artifact index as an aligned table.
func FormatArtifactList(records []*repository.ArtifactRecord) string {
	if len(records) == 0 {
		return Dim("No artifacts saved yet.") + "\n"
	}

	headers := []string{"Filename", "Ver", "Type", "Size", "When"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Filename,
			strconv.Itoa(rec.Version),
			rec.Mime,
			formatSize(rec.SizeBytes),
			HumanTimestamp(rec.CreatedAt),
		})
	}
	return RenderTable(headers, rows)
}

func formatSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%dB", n)
	}
	return fmt.Sprintf("%.1fKB", float64(n)/1024)
}
