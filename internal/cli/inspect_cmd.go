package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lmsforge/packlint/internal/cli/formatter"
)

func newInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <package>",
		Short: "Show the normalized metadata of a content package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Scans.Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n\n",
				formatter.StyleBold.Render("Type:"),
				string(report.Edition))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMetadata(&report.Metadata))
			return nil
		},
	}
}
