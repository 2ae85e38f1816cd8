package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyTab, tea.KeyDown:
			m.setLoginFocus((m.loginFocus + 1) % len(m.loginInputs))
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.setLoginFocus((m.loginFocus + len(m.loginInputs) - 1) % len(m.loginInputs))
			return m, nil
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			identifier := strings.TrimSpace(m.loginInputs[0].Value())
			password := m.loginInputs[1].Value()
			if identifier == "" || password == "" {
				m.errMsg = "Email or phone and password are required."
				return m, nil
			}
			m.busy = true
			m.errMsg = ""
			return m, m.loginCmd(identifier, password)
		}
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	return m, cmd
}

func (m *Model) setLoginFocus(target int) {
	m.loginFocus = target
	for i := range m.loginInputs {
		if i == target {
			m.loginInputs[i].Focus()
		} else {
			m.loginInputs[i].Blur()
		}
	}
}

func (m Model) loginCmd(identifier, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.Login(context.Background(), identifier, password)
		return loginDoneMsg{err: err}
	}
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Train Ticket Booking"))
	b.WriteString("\n\n")
	b.WriteString("Log in to continue\n\n")
	for i := range m.loginInputs {
		b.WriteString(m.loginInputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString(helpStyle.Render("tab: next field • enter: log in • ctrl+c: quit"))
	return b.String()
}
