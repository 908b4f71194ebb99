package formatter

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/lmsforge/packlint/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityStyle returns the style for a validation issue severity.
func SeverityStyle(severity domain.Severity) lipgloss.Style {
	switch severity {
	case domain.SeverityError:
		return StyleRed
	case domain.SeverityWarning:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored status marker such as "✗ WITH ERRORS".
func StatusIndicator(status domain.ScanStatus) string {
	switch status {
	case domain.ScanValid:
		return StyleGreen.Render("✓ VALID")
	case domain.ScanWithWarnings:
		return StyleYellow.Render("⚠ WITH WARNINGS")
	case domain.ScanWithErrors:
		return StyleRed.Render("✗ WITH ERRORS")
	default:
		return StyleDim.Render(fmt.Sprintf("? %s", status))
	}
}
