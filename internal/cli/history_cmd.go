package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bxtheory/examplan/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	var (
		limit     int
		artifacts bool
	)

	cmd := &cobra.Command{
		Use:          "history",
		Short:        "List recent planning runs",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if artifacts {
				records, err := app.History.ListArtifacts(cmd.Context(), limit)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatArtifactList(records))
				return nil
			}

			runs, err := app.History.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatRunList(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries to show (0 = default)")
	cmd.Flags().BoolVar(&artifacts, "artifacts", false, "List saved artifacts instead of runs")

	return cmd
}
