package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	advisoryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle        = lipgloss.NewStyle().Faint(true)
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// statusLine renders whichever transient messages are active, each on
// its own line, ending with a blank separator when non-empty.
func (m Model) statusLine() string {
	var b strings.Builder
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	if m.advisory != "" {
		b.WriteString(advisoryStyle.Render(m.advisory))
		b.WriteString("\n")
	}
	if m.infoMsg != "" {
		b.WriteString(infoStyle.Render(m.infoMsg))
		b.WriteString("\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}
