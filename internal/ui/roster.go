package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pari08yadav/train-ticket-booking/internal/booking"
	"github.com/pari08yadav/train-ticket-booking/internal/domain"
)

// Three focusable fields per passenger row: name, age, class.
const fieldsPerRow = 3

func newPassengerRow() passengerRow {
	name := textinput.New()
	name.Placeholder = "Name"
	age := textinput.New()
	age.Placeholder = "Age"
	age.CharLimit = 3
	return passengerRow{name: name, age: age}
}

func (m Model) updateRoster(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateRosterInput(msg)
	}

	row, field := m.rosterFocus/fieldsPerRow, m.rosterFocus%fieldsPerRow

	switch key.Type {
	case tea.KeyTab, tea.KeyDown:
		m.setRosterFocus((m.rosterFocus + 1) % (len(m.rosterRows) * fieldsPerRow))
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		total := len(m.rosterRows) * fieldsPerRow
		m.setRosterFocus((m.rosterFocus + total - 1) % total)
		return m, nil
	case tea.KeyLeft, tea.KeyRight:
		if field == 2 {
			m.rosterRows[row].class = cycleClass(m.rosterRows[row].class, key.Type == tea.KeyRight)
			return m, nil
		}
	case tea.KeyEsc:
		m.view = viewSearch
		m.errMsg = ""
		return m, nil
	case tea.KeyCtrlN:
		m.syncRoster()
		m.roster.Add()
		m.rosterRows = append(m.rosterRows, newPassengerRow())
		m.setRosterFocus((len(m.rosterRows) - 1) * fieldsPerRow)
		m.errMsg = ""
		return m, nil
	case tea.KeyCtrlD:
		m.syncRoster()
		if err := m.roster.Remove(row); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.rosterRows = append(m.rosterRows[:row], m.rosterRows[row+1:]...)
		if m.rosterFocus >= len(m.rosterRows)*fieldsPerRow {
			m.rosterFocus = (len(m.rosterRows) - 1) * fieldsPerRow
		}
		m.setRosterFocus(m.rosterFocus)
		m.errMsg = ""
		return m, nil
	case tea.KeyCtrlP:
		m.payment = cyclePayment(m.payment)
		return m, nil
	case tea.KeyCtrlS:
		if m.busy {
			return m, nil
		}
		m.syncRoster()
		m.busy = true
		m.errMsg = ""
		return m, m.submitCmd()
	}

	return m.updateRosterInput(msg)
}

func (m Model) updateRosterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	row, field := m.rosterFocus/fieldsPerRow, m.rosterFocus%fieldsPerRow
	var cmd tea.Cmd
	switch field {
	case 0:
		m.rosterRows[row].name, cmd = m.rosterRows[row].name.Update(msg)
	case 1:
		m.rosterRows[row].age, cmd = m.rosterRows[row].age.Update(msg)
	}
	return m, cmd
}

func (m *Model) setRosterFocus(target int) {
	m.rosterFocus = target
	for i := range m.rosterRows {
		m.rosterRows[i].name.Blur()
		m.rosterRows[i].age.Blur()
	}
	row, field := target/fieldsPerRow, target%fieldsPerRow
	switch field {
	case 0:
		m.rosterRows[row].name.Focus()
	case 1:
		m.rosterRows[row].age.Focus()
	}
}

// syncRoster copies the editable inputs into the roster so the
// submitter sees exactly what is on screen, in row order.
func (m *Model) syncRoster() {
	for i := range m.rosterRows {
		m.roster.Update(i, booking.FieldName, strings.TrimSpace(m.rosterRows[i].name.Value()))
		m.roster.Update(i, booking.FieldAge, strings.TrimSpace(m.rosterRows[i].age.Value()))
		m.roster.Update(i, booking.FieldClass, string(domain.ClassTypes[m.rosterRows[i].class]))
	}
}

func cycleClass(current int, forward bool) int {
	n := len(domain.ClassTypes)
	if forward {
		return (current + 1) % n
	}
	return (current + n - 1) % n
}

func cyclePayment(current domain.PaymentStatus) domain.PaymentStatus {
	order := []domain.PaymentStatus{domain.PaymentPending, domain.PaymentCompleted, domain.PaymentFailed}
	for i, s := range order {
		if s == current {
			return order[(i+1)%len(order)]
		}
	}
	return domain.PaymentPending
}

func (m Model) submitCmd() tea.Cmd {
	submitter := m.submitter
	opt := m.selected
	roster := m.roster
	status := m.payment
	return func() tea.Msg {
		records, err := submitter.Submit(context.Background(), opt, roster, status)
		return submitDoneMsg{records: records, err: err}
	}
}

func (m Model) viewRoster() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Passengers"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s (%s)  %s -> %s  %s\n\n",
		m.selected.TrainName, m.selected.TrainNumber, m.selected.Source, m.selected.Destination, m.selected.Date))

	for i := range m.rosterRows {
		class := string(domain.ClassTypes[m.rosterRows[i].class])
		marker := "  "
		if m.rosterFocus/fieldsPerRow == i && m.rosterFocus%fieldsPerRow == 2 {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%d. %s  %s  %s< %s >\n",
			i+1, m.rosterRows[i].name.View(), m.rosterRows[i].age.View(), marker, class))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Payment: %s\n\n", m.payment))

	if m.busy {
		b.WriteString("Booking...\n")
	}
	b.WriteString(m.statusLine())
	b.WriteString(helpStyle.Render("tab: next • left/right: class • ctrl+n: add • ctrl+d: remove • ctrl+p: payment • ctrl+s: book • esc: back"))
	return b.String()
}
