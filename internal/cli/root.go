package cli

import (
	"github.com/spf13/cobra"

	"github.com/lmsforge/packlint/internal/repository"
	"github.com/lmsforge/packlint/internal/service"
)

// App holds references to the service interfaces used by CLI commands.
type App struct {
	Scans   service.ScanService
	History repository.ScanRepo

	// IsInteractive reports whether stdin/stdout are attached to a
	// terminal; interactive commands refuse to run without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "packlint" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "packlint",
		Short: "Validate and inspect e-learning content packages",
		Long: `packlint detects the format of a content package (SCORM 1.2, SCORM 2004,
AICC, cmi5, xAPI/TinCan), validates its manifest against the specification,
and reports the normalized metadata plus every rule violation found.`,
	}

	root.AddCommand(
		newScanCmd(app),
		newInspectCmd(app),
		newReportCmd(app),
		newHistoryCmd(app),
	)

	return root
}
