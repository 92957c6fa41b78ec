package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bxtheory/examplan/internal/schedule"
)

func newRenderCmd(app *App) *cobra.Command {
	var (
		asCSV   bool
		asHTML  bool
		outPath string
	)

	cmd := &cobra.Command{
		Use:          "render <plan.json>",
		Short:        "Render a plan file as a markdown table, CSV, or HTML",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asCSV && asHTML {
				return fmt.Errorf("--csv and --html are mutually exclusive")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading plan file: %w", err)
			}

			plan, err := schedule.DecodePlanJSON(data)
			if err != nil {
				return err
			}

			// Render the corrected plan; rendering raw drafts would put
			// out-of-range hours into the artifact.
			normalized := schedule.Normalize(plan)

			var rendered string
			switch {
			case asCSV:
				rendered = schedule.RenderCSV(normalized)
			case asHTML:
				rendered, err = schedule.RenderHTML(normalized)
				if err != nil {
					return err
				}
			default:
				rendered = schedule.RenderMarkdown(normalized)
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(rendered), 0644); err != nil {
					return fmt.Errorf("writing rendered plan: %w", err)
				}
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asCSV, "csv", false, "Render as CSV with summary comments")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render as HTML")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")

	return cmd
}
