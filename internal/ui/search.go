package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pari08yadav/train-ticket-booking/internal/booking"
	"github.com/pari08yadav/train-ticket-booking/internal/domain"
)

// listFocus is the pseudo focus index for the result list, one past
// the last search input.
func (m Model) listFocus() int { return len(m.searchInputs) }

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.searchFocus < m.listFocus() {
			var cmd tea.Cmd
			m.searchInputs[m.searchFocus], cmd = m.searchInputs[m.searchFocus].Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key.Type {
	case tea.KeyTab:
		next := m.searchFocus + 1
		if next > m.listFocus() || (next == m.listFocus() && len(m.results) == 0) {
			next = 0
		}
		m.focusSearch(next)
		return m, nil
	case tea.KeyShiftTab:
		prev := m.searchFocus - 1
		if prev < 0 {
			prev = m.listFocus()
			if len(m.results) == 0 {
				prev = len(m.searchInputs) - 1
			}
		}
		m.focusSearch(prev)
		return m, nil
	case tea.KeyEnter:
		if m.searchFocus == m.listFocus() {
			return m.selectResult()
		}
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		m.infoMsg = ""
		return m, m.searchCmd()
	case tea.KeyUp:
		if m.searchFocus == m.listFocus() && m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.searchFocus == m.listFocus() && m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil
	}

	if m.searchFocus < m.listFocus() {
		var cmd tea.Cmd
		m.searchInputs[m.searchFocus], cmd = m.searchInputs[m.searchFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// selectResult moves a bookable option into the roster view. A sold
// out option only raises the self-clearing advisory and stays put.
func (m Model) selectResult() (tea.Model, tea.Cmd) {
	if len(m.results) == 0 {
		return m, nil
	}
	opt := m.results[m.cursor]
	if !booking.CanBook(opt) {
		m.advisory = booking.UnavailableAdvisory
		return m, clearAdvisoryCmd()
	}
	m.advisory = ""
	m.errMsg = ""
	m.selected = opt
	m.roster = booking.NewRoster()
	m.payment = domain.PaymentPending
	m.rosterRows = []passengerRow{newPassengerRow()}
	m.rosterFocus = 0
	m.rosterRows[0].name.Focus()
	m.view = viewRoster
	return m, nil
}

func (m Model) searchCmd() tea.Cmd {
	client := m.client
	source := strings.TrimSpace(m.searchInputs[0].Value())
	destination := strings.TrimSpace(m.searchInputs[1].Value())
	date := strings.TrimSpace(m.searchInputs[2].Value())
	return func() tea.Msg {
		options, err := client.Search(context.Background(), source, destination, date)
		return searchDoneMsg{options: options, err: err}
	}
}

func (m Model) viewSearch() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Search Trains"))
	if m.hasBalance {
		b.WriteString(helpStyle.Render(fmt.Sprintf("   balance: Rs %.2f", m.balance)))
	}
	b.WriteString("\n\n")
	for i := range m.searchInputs {
		b.WriteString(m.searchInputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.busy {
		b.WriteString("Searching...\n")
	}
	for i, opt := range m.results {
		line := fmt.Sprintf("%s (%s)  %s -> %s  %s  seats: %d",
			opt.TrainName, opt.TrainNumber, opt.Source, opt.Destination, opt.Date, opt.AvailableSeats)
		if m.searchFocus == m.listFocus() && i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString(helpStyle.Render("tab: next field • enter: search / select • ctrl+c: quit"))
	return b.String()
}
