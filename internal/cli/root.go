// Package cli holds the cobra command tree: planning, validating and
// rendering schedules, and browsing run history.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bxtheory/examplan/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plan    service.PlanService
	History service.HistoryService

	// PlanTo builds a plan service saving into a caller-chosen directory,
	// for the --output flag. Nil leaves --output unsupported.
	PlanTo func(dir string) service.PlanService

	// IsInteractive reports whether stdin/stdout are a terminal; the
	// wizard and the review TUI refuse to start without one.
	IsInteractive func() bool
}

// interactive is safe against a partially wired App (tests often leave
// IsInteractive nil).
func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "examplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "examplan",
		Short: "Turn course material into a day-by-day exam study schedule",
	}

	// Accept underscores where flags use dashes (--start_date == --start-date).
	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(
		newPlanCmd(app),
		newValidateCmd(app),
		newRenderCmd(app),
		newHistoryCmd(app),
	)

	return root
}
