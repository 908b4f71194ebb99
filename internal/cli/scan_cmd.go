package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lmsforge/packlint/internal/cli/formatter"
	"github.com/lmsforge/packlint/internal/domain"
)

func newScanCmd(app *App) *cobra.Command {
	var jsonOut, save, interactive bool
	var typeName string

	cmd := &cobra.Command{
		Use:   "scan [package]",
		Short: "Validate a content package and report issues",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			packagePath := ""
			if len(args) == 1 {
				packagePath = args[0]
			}

			if interactive {
				if app.IsInteractive != nil && !app.IsInteractive() {
					return fmt.Errorf("interactive scan requires a terminal")
				}
				values, err := runScanForm(packagePath, typeName, save)
				if err != nil {
					return err
				}
				packagePath = values.packagePath
				typeName = values.moduleType
				save = values.save
			}
			if packagePath == "" {
				return fmt.Errorf("package path is required")
			}

			var report *domain.ScanReport
			var err error
			if typeName != "" {
				moduleType, parseErr := domain.ParseModuleType(typeName)
				if parseErr != nil {
					return parseErr
				}
				report, err = app.Scans.ScanAs(cmd.Context(), packagePath, moduleType)
			} else {
				report, err = app.Scans.Scan(cmd.Context(), packagePath)
			}
			if err != nil {
				return err
			}

			if save {
				if err := app.History.Save(cmd.Context(), report); err != nil {
					return fmt.Errorf("saving scan report: %w", err)
				}
			}

			if jsonOut {
				if err := writeReportJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(report))
			}
			if report.Status == domain.ScanWithErrors {
				// Non-zero exit so CI pipelines can gate on validity,
				// regardless of output format.
				cmd.SilenceUsage = true
				return fmt.Errorf("package is invalid: %d error(s)", len(report.Result.Errors()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the report as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "persist the report to scan history")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for scan parameters")
	cmd.Flags().StringVar(&typeName, "type", "",
		"skip detection and validate as the given module type (scorm_1.2, scorm_2004, aicc, cmi5, xapi)")

	return cmd
}

// reportJSON is the stable machine-readable projection of a scan report.
type reportJSON struct {
	ID          string       `json:"id"`
	PackagePath string       `json:"package_path"`
	ModuleType  string       `json:"module_type"`
	Edition     string       `json:"edition"`
	Status      string       `json:"status"`
	ScannedAt   string       `json:"scanned_at"`
	Metadata    metadataJSON `json:"metadata"`
	Issues      []issueJSON  `json:"issues"`
	IsValid     bool         `json:"is_valid"`
}

type metadataJSON struct {
	Identifier    string              `json:"identifier"`
	Title         string              `json:"title"`
	Description   string              `json:"description,omitempty"`
	LaunchURL     string              `json:"launch_url"`
	Prerequisites map[string][]string `json:"prerequisites,omitempty"`
}

type issueJSON struct {
	Code         string `json:"code"`
	Severity     string `json:"severity"`
	Message      string `json:"message"`
	Location     string `json:"location"`
	SuggestedFix string `json:"suggested_fix,omitempty"`
}

func writeReportJSON(cmd *cobra.Command, report *domain.ScanReport) error {
	out := reportJSON{
		ID:          report.ID,
		PackagePath: report.PackagePath,
		ModuleType:  string(report.ModuleType),
		Edition:     string(report.Edition),
		Status:      string(report.Status),
		ScannedAt:   report.ScannedAt.Format("2006-01-02T15:04:05Z07:00"),
		IsValid:     report.Result.IsValid(),
		Metadata: metadataJSON{
			Identifier:    report.Metadata.Identifier,
			Title:         report.Metadata.Title,
			Description:   report.Metadata.Description,
			LaunchURL:     report.Metadata.LaunchURL,
			Prerequisites: report.Metadata.Prerequisites,
		},
		Issues: make([]issueJSON, 0, len(report.Result.Issues)),
	}
	for _, issue := range report.Result.Issues {
		out.Issues = append(out.Issues, issueJSON{
			Code:         issue.Code,
			Severity:     string(issue.Severity),
			Message:      issue.Message,
			Location:     issue.Location,
			SuggestedFix: issue.SuggestedFix,
		})
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
