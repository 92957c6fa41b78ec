package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bxtheory/examplan/internal/cli/formatter"
	"github.com/bxtheory/examplan/internal/schedule"
)

func newValidateCmd(app *App) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "validate <plan.json>",
		Short: "Check an externally produced plan against the scheduling constraints",
		Long: `Validate a FullPlan JSON file.

Hard violations (hours outside [0, 4], broken day ordering) are corrected in
the normalized output and reported; soft warnings (missing break days,
suspicious zero-hour entries) are advisory. Without --fix the command exits
non-zero when hard violations were found; with --fix it writes the
normalized plan back to the file and exits zero.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading plan file: %w", err)
			}

			plan, err := schedule.DecodePlanJSON(data)
			if err != nil {
				return err
			}

			result := schedule.Validate(plan)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, formatter.ValidationBadge(result.OK))
			if report := formatter.FormatValidation(result); report != "" {
				fmt.Fprint(out, report)
			}

			if !result.OK && fix {
				fixed, err := json.MarshalIndent(result.Normalized, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding normalized plan: %w", err)
				}
				if err := os.WriteFile(args[0], append(fixed, '\n'), 0644); err != nil {
					return fmt.Errorf("writing normalized plan: %w", err)
				}
				fmt.Fprintln(out, "Normalized plan written to", args[0])
				return nil
			}

			if !result.OK {
				return fmt.Errorf("plan has %d hard violations (use --fix to normalize)", len(result.HardViolations))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Write the normalized plan back to the file")

	return cmd
}
