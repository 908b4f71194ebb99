package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lmsforge/packlint/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse stored scan reports",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryShowCmd(app),
		newHistoryRemoveCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored scan reports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := app.History.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(reports))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of reports to show (0 for all)")
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one stored scan report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveReportID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			report, err := app.History.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(report))
			return nil
		},
	}
}

func newHistoryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a stored scan report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveReportID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.History.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted scan report %s\n", id)
			return nil
		},
	}
}

// resolveReportID accepts a full report id or an unambiguous prefix.
func resolveReportID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("report ID is required")
	}

	reports, err := app.History.List(ctx, 0)
	if err != nil {
		return "", err
	}

	for _, r := range reports {
		if r.ID == input {
			return r.ID, nil
		}
	}

	var matches []string
	for _, r := range reports {
		if strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("scan report not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("report ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
