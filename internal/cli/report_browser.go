package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lmsforge/packlint/internal/cli/formatter"
	"github.com/lmsforge/packlint/internal/domain"
)

func newReportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report <package>",
		Short: "Scan a package and browse its issues interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("report browser requires a terminal, use 'packlint scan' instead")
			}
			report, err := app.Scans.Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			model := newIssueBrowser(report)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// severityFilter selects which issues the browser lists.
type severityFilter int

const (
	filterAll severityFilter = iota
	filterErrors
	filterWarnings
)

// issueBrowser is an interactive list of a report's issues with a detail
// pane for the selected issue.
type issueBrowser struct {
	report *domain.ScanReport
	filter severityFilter
	cursor int
	height int
}

func newIssueBrowser(report *domain.ScanReport) *issueBrowser {
	return &issueBrowser{report: report}
}

func (b *issueBrowser) shortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "errors")),
		key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warnings")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (b *issueBrowser) visibleIssues() []domain.ValidationIssue {
	switch b.filter {
	case filterErrors:
		return b.report.Result.Errors()
	case filterWarnings:
		return b.report.Result.Warnings()
	default:
		return b.report.Result.Issues
	}
}

func (b *issueBrowser) Init() tea.Cmd { return nil }

func (b *issueBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.height = msg.Height
		return b, nil

	case tea.KeyMsg:
		visible := b.visibleIssues()
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return b, tea.Quit
		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}
		case "down", "j":
			if b.cursor < len(visible)-1 {
				b.cursor++
			}
		case "e":
			b.filter = filterErrors
			b.cursor = 0
		case "w":
			b.filter = filterWarnings
			b.cursor = 0
		case "a":
			b.filter = filterAll
			b.cursor = 0
		}
	}
	return b, nil
}

func (b *issueBrowser) View() string {
	var s strings.Builder

	s.WriteString(formatter.StyleHeader.Render(fmt.Sprintf("Issues — %s", b.report.PackagePath)))
	s.WriteString("  ")
	s.WriteString(formatter.StatusIndicator(b.report.Status))
	s.WriteString("\n\n")

	visible := b.visibleIssues()
	if len(visible) == 0 {
		s.WriteString(formatter.StyleDim.Render("No issues match the current filter."))
		s.WriteString("\n")
	}
	for i, issue := range visible {
		prefix := "  "
		if i == b.cursor {
			prefix = formatter.StyleBlue.Render("> ")
		}
		line := fmt.Sprintf("%s%s %s",
			prefix,
			formatter.SeverityStyle(issue.Severity).Render(fmt.Sprintf("%-7s", strings.ToUpper(string(issue.Severity)))),
			issue.Code)
		s.WriteString(line)
		s.WriteString("\n")
	}

	if b.cursor < len(visible) {
		selected := visible[b.cursor]
		s.WriteString("\n")
		s.WriteString(formatter.StyleFg.Render(selected.Message))
		s.WriteString("\n")
		s.WriteString(formatter.StyleDim.Render("at " + selected.Location))
		s.WriteString("\n")
		if selected.SuggestedFix != "" {
			s.WriteString(formatter.StyleGreen.Render("fix: " + selected.SuggestedFix))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	var help []string
	for _, binding := range b.shortHelp() {
		help = append(help, fmt.Sprintf("%s %s", binding.Help().Key, binding.Help().Desc))
	}
	s.WriteString(formatter.StyleDim.Render(strings.Join(help, " · ")))
	s.WriteString("\n")
	return s.String()
}
