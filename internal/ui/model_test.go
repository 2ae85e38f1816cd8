package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pari08yadav/train-ticket-booking/internal/api"
	"github.com/pari08yadav/train-ticket-booking/internal/booking"
	"github.com/pari08yadav/train-ticket-booking/internal/domain"
	"github.com/pari08yadav/train-ticket-booking/internal/session"
	"github.com/pari08yadav/train-ticket-booking/internal/ticket"
)

func testModel(t *testing.T, token string) Model {
	t.Helper()
	sess := session.NewService(&session.MemStore{})
	if token != "" {
		if err := sess.Set(token); err != nil {
			t.Fatalf("set token: %v", err)
		}
	}
	client := api.NewClient("http://127.0.0.1:0", sess)
	submitter := booking.NewSubmitter(client, sess)
	exporter := ticket.NewExporter(t.TempDir())
	return NewModel(client, sess, submitter, exporter)
}

func TestEntryViewFollowsSession(t *testing.T) {
	if m := testModel(t, ""); m.view != viewLogin {
		t.Fatalf("no session: view = %d, want login", m.view)
	}
	if m := testModel(t, "tok"); m.view != viewSearch {
		t.Fatalf("with session: view = %d, want search", m.view)
	}
}

func TestSoldOutSelectionRaisesAdvisory(t *testing.T) {
	m := testModel(t, "tok")
	m.results = []domain.ScheduleOption{
		{ScheduleID: 2, TrainName: "Duronto", AvailableSeats: 0},
	}
	m.focusSearch(m.listFocus())

	next, cmd := m.selectResult()
	got := next.(Model)
	if got.view != viewSearch {
		t.Fatalf("view = %d, selecting a sold-out option must not leave search", got.view)
	}
	if got.advisory != booking.UnavailableAdvisory {
		t.Fatalf("advisory = %q, want %q", got.advisory, booking.UnavailableAdvisory)
	}
	if cmd == nil {
		t.Fatal("expected a clear-advisory command")
	}

	cleared, _ := got.Update(advisoryClearMsg{})
	if cleared.(Model).advisory != "" {
		t.Fatal("advisory should clear on the tick message")
	}
}

func TestBookableSelectionOpensRoster(t *testing.T) {
	m := testModel(t, "tok")
	m.results = []domain.ScheduleOption{
		{ScheduleID: 1, TrainName: "Rajdhani", AvailableSeats: 5},
	}
	m.focusSearch(m.listFocus())

	next, _ := m.selectResult()
	got := next.(Model)
	if got.view != viewRoster {
		t.Fatalf("view = %d, want roster", got.view)
	}
	if got.roster == nil || got.roster.Len() != 1 {
		t.Fatal("roster should start with a single blank passenger")
	}
	if got.selected.ScheduleID != 1 {
		t.Fatalf("selected schedule = %d, want 1", got.selected.ScheduleID)
	}
	if got.payment != domain.PaymentPending {
		t.Fatalf("payment = %q, want %q", got.payment, domain.PaymentPending)
	}
}

func TestAuthExpiryTearsDownToLogin(t *testing.T) {
	m := testModel(t, "tok")
	m.view = viewRoster

	next, _ := m.Update(submitDoneMsg{err: domain.AuthExpiredError{}})
	got := next.(Model)
	if got.view != viewLogin {
		t.Fatalf("view = %d, want login after auth expiry", got.view)
	}
	if got.errMsg != domain.MsgAuthExpired {
		t.Fatalf("errMsg = %q, want %q", got.errMsg, domain.MsgAuthExpired)
	}
}

func TestSearchFailureKeepsViewAndClearsResults(t *testing.T) {
	m := testModel(t, "tok")
	m.results = []domain.ScheduleOption{{ScheduleID: 1}}
	m.busy = true

	next, _ := m.Update(searchDoneMsg{err: domain.ServerError{Msg: "boom"}})
	got := next.(Model)
	if got.view != viewSearch {
		t.Fatalf("view = %d, want search", got.view)
	}
	if got.busy {
		t.Fatal("busy flag should drop when the search completes")
	}
	if len(got.results) != 0 {
		t.Fatal("stale results should be dropped on failure")
	}
	if got.errMsg == "" {
		t.Fatal("expected a user-facing error message")
	}
}

func TestSuccessfulSubmitShowsTicket(t *testing.T) {
	m := testModel(t, "tok")
	m.view = viewRoster

	records := []domain.BookingRecord{
		{PassengerName: "Asha", SeatNumber: "SN-1-5"},
	}
	next, _ := m.Update(submitDoneMsg{records: records})
	got := next.(Model)
	if got.view != viewTicket {
		t.Fatalf("view = %d, want ticket", got.view)
	}
	if got.layout == nil || len(got.layout.Rows) != 1 {
		t.Fatal("layout should carry one row per booking record")
	}
}

func TestRosterAddAndRemoveRows(t *testing.T) {
	m := testModel(t, "tok")
	m.results = []domain.ScheduleOption{{ScheduleID: 1, AvailableSeats: 5}}
	m.focusSearch(m.listFocus())
	next, _ := m.selectResult()
	m = next.(Model)

	next, _ = m.updateRoster(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = next.(Model)
	if m.roster.Len() != 2 || len(m.rosterRows) != 2 {
		t.Fatalf("after add: roster=%d rows=%d, want 2/2", m.roster.Len(), len(m.rosterRows))
	}

	// Add is unbounded; roster and input rows stay in lockstep.
	next, _ = m.updateRoster(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = next.(Model)
	if m.roster.Len() != 3 || len(m.rosterRows) != 3 {
		t.Fatalf("after second add: roster=%d rows=%d, want 3/3", m.roster.Len(), len(m.rosterRows))
	}

	next, _ = m.updateRoster(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(Model)
	next, _ = m.updateRoster(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(Model)
	if m.roster.Len() != 1 || len(m.rosterRows) != 1 {
		t.Fatalf("after remove: roster=%d rows=%d, want 1/1", m.roster.Len(), len(m.rosterRows))
	}

	// The last row refuses removal.
	next, _ = m.updateRoster(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(Model)
	if m.roster.Len() != 1 {
		t.Fatal("removing the last passenger must be rejected")
	}
	if m.errMsg == "" {
		t.Fatal("expected an error message for the rejected removal")
	}
}
