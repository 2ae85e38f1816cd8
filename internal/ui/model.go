// Package ui is the terminal client for the booking workflow. One
// bubbletea model drives the four views — login, search, roster,
// ticket — as a single-threaded event loop: network calls run as
// commands and their completions arrive as messages, so no view state
// is ever touched concurrently.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pari08yadav/train-ticket-booking/internal/api"
	"github.com/pari08yadav/train-ticket-booking/internal/booking"
	"github.com/pari08yadav/train-ticket-booking/internal/domain"
	"github.com/pari08yadav/train-ticket-booking/internal/session"
	"github.com/pari08yadav/train-ticket-booking/internal/ticket"
)

type view int

const (
	viewLogin view = iota
	viewSearch
	viewRoster
	viewTicket
)

// advisoryDelay is how long the "tickets unavailable" notice stays
// visible before it self-clears.
const advisoryDelay = 3 * time.Second

// Completion messages delivered through the event loop.
type (
	loginDoneMsg struct{ err error }
	searchDoneMsg struct {
		options []domain.ScheduleOption
		err     error
	}
	submitDoneMsg struct {
		records []domain.BookingRecord
		err     error
	}
	balanceDoneMsg struct {
		balance float64
		err     error
	}
	exportDoneMsg struct {
		path string
		err  error
	}
	advisoryClearMsg struct{}
)

// passengerRow keeps the editable inputs for one roster entry. The
// class selector cycles through domain.ClassTypes.
type passengerRow struct {
	name  textinput.Model
	age   textinput.Model
	class int
}

// Model is the whole client state machine.
type Model struct {
	client    *api.Client
	session   *session.Service
	submitter *booking.Submitter
	exporter  *ticket.Exporter

	view   view
	width  int
	height int

	busy     bool
	errMsg   string
	infoMsg  string
	advisory string

	loginInputs []textinput.Model
	loginFocus  int

	searchInputs []textinput.Model
	searchFocus  int
	results      []domain.ScheduleOption
	cursor       int
	balance      float64
	hasBalance   bool

	selected    domain.ScheduleOption
	roster      *booking.Roster
	rosterRows  []passengerRow
	rosterFocus int
	payment     domain.PaymentStatus

	records []domain.BookingRecord
	layout  *ticket.Layout
}

// NewModel wires the workflow components into the state machine. The
// session guard decides the entry view: a live session skips login.
func NewModel(client *api.Client, sess *session.Service, submitter *booking.Submitter, exporter *ticket.Exporter) Model {
	m := Model{
		client:    client,
		session:   sess,
		submitter: submitter,
		exporter:  exporter,
	}

	m.loginInputs = make([]textinput.Model, 2)
	for i, placeholder := range []string{"Email or phone", "Password"} {
		in := textinput.New()
		in.Placeholder = placeholder
		m.loginInputs[i] = in
	}
	m.loginInputs[1].EchoMode = textinput.EchoPassword

	m.searchInputs = make([]textinput.Model, 3)
	for i, placeholder := range []string{"Source", "Destination", "Date (YYYY-MM-DD, optional)"} {
		in := textinput.New()
		in.Placeholder = placeholder
		m.searchInputs[i] = in
	}

	if sess.Admit().Allow {
		m.view = viewSearch
		m.searchInputs[0].Focus()
	} else {
		m.view = viewLogin
		m.loginInputs[0].Focus()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.view == viewSearch {
		return m.fetchBalanceCmd()
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case advisoryClearMsg:
		m.advisory = ""
		return m, nil

	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = domain.UserMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.view = viewSearch
		m.focusSearch(0)
		return m, m.fetchBalanceCmd()

	case searchDoneMsg:
		m.busy = false
		if msg.err != nil {
			// Auth expiry tears the whole session down; everything
			// else leaves the view intact with a message and an empty
			// result list.
			if domain.IsAuthExpired(msg.err) {
				return m.toLogin(domain.UserMessage(msg.err)), nil
			}
			m.errMsg = domain.UserMessage(msg.err)
			m.results = nil
			m.cursor = 0
			return m, nil
		}
		m.errMsg = ""
		m.results = msg.options
		m.cursor = 0
		if len(m.results) > 0 {
			m.focusSearch(len(m.searchInputs))
		}
		return m, nil

	case submitDoneMsg:
		m.busy = false
		if msg.err != nil {
			if domain.IsAuthExpired(msg.err) {
				// Roster state is deliberately kept: correcting and
				// resubmitting after re-login must be possible.
				return m.toLogin(domain.UserMessage(msg.err)), nil
			}
			m.errMsg = domain.UserMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.records = msg.records
		m.layout = ticket.BuildLayout(msg.records)
		m.view = viewTicket
		return m, nil

	case balanceDoneMsg:
		if msg.err == nil {
			m.balance = msg.balance
			m.hasBalance = true
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.errMsg = domain.UserMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.infoMsg = "Saved " + msg.path
		return m, nil
	}

	switch m.view {
	case viewLogin:
		return m.updateLogin(msg)
	case viewSearch:
		return m.updateSearch(msg)
	case viewRoster:
		return m.updateRoster(msg)
	case viewTicket:
		return m.updateTicket(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.view {
	case viewLogin:
		return m.viewLogin()
	case viewSearch:
		return m.viewSearch()
	case viewRoster:
		return m.viewRoster()
	case viewTicket:
		return m.viewTicket()
	}
	return ""
}

// toLogin redirects to the login view after session teardown. The API
// layer has already cleared the token by the time this runs.
func (m Model) toLogin(message string) Model {
	m.view = viewLogin
	m.errMsg = message
	m.busy = false
	m.loginFocus = 0
	for i := range m.loginInputs {
		m.loginInputs[i].Blur()
	}
	m.loginInputs[0].Focus()
	return m
}

func (m *Model) focusSearch(target int) {
	m.searchFocus = target
	for i := range m.searchInputs {
		if i == target {
			m.searchInputs[i].Focus()
		} else {
			m.searchInputs[i].Blur()
		}
	}
}

func (m Model) fetchBalanceCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		balance, err := client.Balance(context.Background())
		return balanceDoneMsg{balance: balance, err: err}
	}
}

func clearAdvisoryCmd() tea.Cmd {
	return tea.Tick(advisoryDelay, func(time.Time) tea.Msg {
		return advisoryClearMsg{}
	})
}
