package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lmsforge/packlint/internal/domain"
)

// FormatReport renders a full scan report: header block, metadata, and the
// issue table.
func FormatReport(report *domain.ScanReport) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("Scan Report"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleBold.Render("Package:"), report.PackagePath))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleBold.Render("Type:"), formatType(report)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleBold.Render("Status:"), StatusIndicator(report.Status)))
	b.WriteString("\n")
	b.WriteString(FormatMetadata(&report.Metadata))

	if len(report.Result.Issues) == 0 {
		b.WriteString("\n")
		b.WriteString(StyleGreen.Render("No issues found."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %d error(s), %d warning(s)\n\n",
		StyleBold.Render("Issues:"),
		len(report.Result.Errors()),
		len(report.Result.Warnings())))

	rows := make([][]string, 0, len(report.Result.Issues))
	for _, issue := range report.Result.Issues {
		rows = append(rows, []string{
			SeverityStyle(issue.Severity).Render(strings.ToUpper(string(issue.Severity))),
			issue.Code,
			issue.Message,
		})
	}
	b.WriteString(RenderTable([]string{"SEVERITY", "CODE", "MESSAGE"}, rows))
	return b.String()
}

// FormatMetadata renders the normalized metadata block of a report.
func FormatMetadata(meta *domain.Metadata) string {
	var b strings.Builder
	writeField := func(label, value string) {
		if value == "" {
			value = StyleDim.Render("(none)")
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleDim.Render(label+":"), value))
	}
	writeField("Identifier", meta.Identifier)
	writeField("Title", meta.Title)
	writeField("Launch URL", meta.LaunchURL)
	if meta.Description != "" {
		writeField("Description", meta.Description)
	}
	if len(meta.Prerequisites) > 0 {
		b.WriteString(fmt.Sprintf("  %s\n", StyleDim.Render("Prerequisites:")))
		units := make([]string, 0, len(meta.Prerequisites))
		for unit := range meta.Prerequisites {
			units = append(units, unit)
		}
		sort.Strings(units)
		for _, unit := range units {
			b.WriteString(fmt.Sprintf("    %s ← %s\n", unit, strings.Join(meta.Prerequisites[unit], ", ")))
		}
	}
	return b.String()
}

// FormatHistory renders a table of stored scan reports, newest first.
func FormatHistory(reports []*domain.ScanReport) string {
	if len(reports) == 0 {
		return StyleDim.Render("No scan history.") + "\n"
	}
	rows := make([][]string, 0, len(reports))
	for _, report := range reports {
		rows = append(rows, []string{
			shortID(report.ID),
			report.ScannedAt.Format("2006-01-02 15:04"),
			string(report.ModuleType),
			StatusIndicator(report.Status),
			fmt.Sprintf("%d", len(report.Result.Issues)),
			report.PackagePath,
		})
	}
	return RenderTable([]string{"ID", "SCANNED", "TYPE", "STATUS", "ISSUES", "PACKAGE"}, rows)
}

func formatType(report *domain.ScanReport) string {
	if string(report.Edition) != string(report.ModuleType) {
		return fmt.Sprintf("%s (%s)", report.ModuleType, report.Edition)
	}
	return string(report.ModuleType)
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
