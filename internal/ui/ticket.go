package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) updateTicket(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "e":
		m.infoMsg = ""
		m.errMsg = ""
		return m, m.exportCmd()
	case "n", "esc":
		m.view = viewSearch
		m.records = nil
		m.layout = nil
		m.results = nil
		m.cursor = 0
		m.infoMsg = ""
		m.errMsg = ""
		m.focusSearch(0)
		return m, m.fetchBalanceCmd()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) exportCmd() tea.Cmd {
	exporter := m.exporter
	layout := m.layout
	return func() tea.Msg {
		path, err := exporter.Export(layout)
		return exportDoneMsg{path: path, err: err}
	}
}

// ticketColumnWidths mirrors the PDF column proportions so the
// terminal table and the exported document read the same.
var ticketColumnWidths = []int{16, 5, 11, 11, 14, 8, 10, 12, 12, 10}

func (m Model) viewTicket() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.layout.Title))
	b.WriteString("\n\n")

	if len(m.layout.Rows) == 0 {
		b.WriteString(m.layout.Placeholder)
		b.WriteString("\n")
	} else {
		b.WriteString(renderTicketRow(m.layout.Columns, tableHeaderStyle))
		for _, row := range m.layout.Rows {
			b.WriteString(renderTicketRow(row, lipgloss.NewStyle()))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString(helpStyle.Render("e: save PDF • n: new search • q: quit"))
	return b.String()
}

func renderTicketRow(cells []string, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		w := 12
		if i < len(ticketColumnWidths) {
			w = ticketColumnWidths[i]
		}
		parts[i] = style.Width(w).MaxHeight(1).Render(truncate(cell, w-1))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + "\n"
}

func truncate(s string, w int) string {
	r := []rune(s)
	if w < 1 || len(r) <= w {
		return s
	}
	return string(r[:w-1]) + "…"
}
