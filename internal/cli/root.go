package cli

import (
	"github.com/Yotsura/mangaflow/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Works    service.WorkService
	Settings service.SettingsService
	Progress service.ProgressService

	// IsInteractive reports whether stdin is a terminal; interactive forms
	// and the dashboard are only offered when it returns true.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "mangaflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "mangaflow",
		Short: "Serialized-work progress tracker",
	}

	root.AddCommand(
		newWorkCmd(app),
		newUnitCmd(app),
		newStructureCmd(app),
		newStageCmd(app),
		newGranularityCmd(app),
		newSnapshotCmd(app),
		newStatusCmd(app),
		newUICmd(app),
	)

	return root
}
