package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bxtheory/examplan/internal/artifact"
	"github.com/bxtheory/examplan/internal/cli/formatter"
	"github.com/bxtheory/examplan/internal/contract"
	"github.com/bxtheory/examplan/internal/ingest"
	"github.com/bxtheory/examplan/internal/service"
)

func newPlanCmd(app *App) *cobra.Command {
	var (
		pdfPath   string
		wizard    bool
		days      int
		startDate string
		outputDir string
		noSave    bool
		review    bool
		saveCSV   bool
		saveHTML  bool
	)

	cmd := &cobra.Command{
		Use:   "plan [description]",
		Short: "Generate a study schedule from a course description or PDF",
		Long: `Generate a day-by-day study schedule.

Course material comes from the positional description, --pdf, piped stdin,
or the interactive --wizard. The schedule is validated, printed, and saved
as a markdown artifact unless --no-save is given.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewPlanRequest(strings.TrimSpace(strings.Join(args, " ")))
			req.AvailableDays = days
			req.Save = !noSave

			if startDate != "" {
				t, err := time.Parse("2006-01-02", startDate)
				if err != nil {
					return fmt.Errorf("invalid --start-date %q, want YYYY-MM-DD", startDate)
				}
				req.StartDate = &t
			}
			if saveCSV {
				req.ExtraFormats = append(req.ExtraFormats, artifact.MimeCSV)
			}
			if saveHTML {
				req.ExtraFormats = append(req.ExtraFormats, artifact.MimeHTML)
			}

			if pdfPath != "" {
				text, err := ingest.ReadMaterial(pdfPath)
				if err != nil {
					return err
				}
				req.Material = text
			}

			if wizard {
				if !app.interactive() {
					return fmt.Errorf("--wizard needs an interactive terminal")
				}
				topics, wizardDays, err := runCourseWizard()
				if err != nil {
					return err
				}
				req.Topics = topics
				if wizardDays > 0 {
					req.AvailableDays = wizardDays
				}
			}

			// No material anywhere: read piped stdin before giving up.
			if req.Material == "" && req.Topics == nil && !app.interactive() {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err == nil {
					req.Material = ingest.Sanitize(string(data))
				}
			}

			svc := app.Plan
			if outputDir != "" {
				if app.PlanTo == nil {
					return fmt.Errorf("--output is not supported in this configuration")
				}
				svc = app.PlanTo(outputDir)
			}

			if review {
				if !app.interactive() {
					return fmt.Errorf("--review needs an interactive terminal")
				}
				return runPlanWithReview(cmd, svc, req)
			}

			var stop func()
			if app.interactive() {
				stop = formatter.StartSpinner("drafting schedule...")
			}
			resp, err := svc.RunPlan(cmd.Context(), req)
			if stop != nil {
				stop()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Markdown)
			fmt.Fprint(out, formatter.FormatPlanResult(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Extract course material from a PDF or text file")
	cmd.Flags().BoolVar(&wizard, "wizard", false, "Enter the course interactively")
	cmd.Flags().IntVar(&days, "days", 0, "Days until the exam (0 = let the scheduler decide)")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Calendar date of day 1 (YYYY-MM-DD)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Directory to save artifacts into")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Print the schedule without saving an artifact")
	cmd.Flags().BoolVar(&review, "review", false, "Browse the schedule in a TUI before saving")
	cmd.Flags().BoolVar(&saveCSV, "csv", false, "Also save a CSV rendering")
	cmd.Flags().BoolVar(&saveHTML, "html", false, "Also save an HTML rendering")

	return cmd
}

// runPlanWithReview drafts without saving, shows the schedule in the review
// TUI, and only persists once the user accepts.
func runPlanWithReview(cmd *cobra.Command, svc service.PlanService, req contract.PlanRequest) error {
	wantSave := req.Save
	extra := req.ExtraFormats
	req.Save = false
	req.ExtraFormats = nil

	stop := formatter.StartSpinner("drafting schedule...")
	resp, err := svc.RunPlan(cmd.Context(), req)
	stop()
	if err != nil {
		return err
	}

	accepted, err := reviewPlan(resp)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !accepted {
		fmt.Fprintln(out, formatter.Dim("Schedule discarded."))
		return nil
	}

	if wantSave {
		// Persist exactly the plan that was reviewed: resubmit it as a
		// supplied plan so no second generation happens.
		req.Topics = resp.Topics
		req.Material = ""
		req.Plan = &resp.Validation.Normalized
		req.PlanSource = resp.Source
		req.Save = true
		req.ExtraFormats = extra
		resp, err = svc.RunPlan(cmd.Context(), req)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(out, resp.Markdown)
	fmt.Fprint(out, formatter.FormatPlanResult(resp))
	return nil
}
