package api

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pari08yadav/train-ticket-booking/internal/domain"
	"github.com/pari08yadav/train-ticket-booking/internal/server"
	"github.com/pari08yadav/train-ticket-booking/internal/server/store"
	"github.com/pari08yadav/train-ticket-booking/internal/session"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// testEnv runs the reference service in-process so every test drives
// the real route table, middleware and error payloads.
type testEnv struct {
	srv     *httptest.Server
	store   *store.MemoryStore
	session *session.Service
	client  *Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := store.NewMemoryStore()
	st.Seed()
	router := server.NewRouter(server.Config{
		Secret:   []byte("test-secret"),
		TokenTTL: time.Hour,
	}, st)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	sess := session.NewService(&session.MemStore{})
	return &testEnv{
		srv:     srv,
		store:   st,
		session: sess,
		client:  NewClient(srv.URL, sess),
	}
}

// loggedIn signs up a fresh account and logs in through the real
// endpoints, so the session holds a token the middleware accepts.
func (e *testEnv) loggedIn(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	err := e.client.Signup(ctx, SignupRequest{
		Username:    "asha",
		Email:       "asha@example.com",
		PhoneNumber: "9876543210",
		Password:    "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := e.client.Login(ctx, "asha@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !e.session.Present() {
		t.Fatal("login should store a session token")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	e := newTestEnv(t)
	e.loggedIn(t)
	e.session.Clear()

	err := e.client.Login(context.Background(), "asha@example.com", "wrong")
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
	if got := domain.UserMessage(err); got != "Invalid email or password" {
		t.Fatalf("message = %q", got)
	}
	if e.session.Present() {
		t.Fatal("failed login must not leave a token behind")
	}
}

func TestSearchReturnsOptionsInServerOrder(t *testing.T) {
	e := newTestEnv(t)
	e.loggedIn(t)

	options, err := e.client.Search(context.Background(), "Delhi", "Mumbai", "2024-05-01")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("got %d options, want 2", len(options))
	}
	if options[0].AvailableSeats != 5 || options[1].AvailableSeats != 0 {
		t.Fatalf("seats = %d,%d; want 5,0", options[0].AvailableSeats, options[1].AvailableSeats)
	}
	if options[0].TrainName != "Rajdhani Express" || options[1].TrainName != "Duronto Express" {
		t.Fatalf("order not preserved: %q, %q", options[0].TrainName, options[1].TrainName)
	}
	if options[0].ScheduleID != 1 {
		t.Fatalf("schedule id = %d, want 1", options[0].ScheduleID)
	}
}

func TestSearchMissIsEmptyWithNotFound(t *testing.T) {
	e := newTestEnv(t)
	e.loggedIn(t)

	options, err := e.client.Search(context.Background(), "Nowhere", "Elsewhere", "")
	if !domain.IsNotFound(err) {
		t.Fatalf("err = %v, want not-found", err)
	}
	if options == nil || len(options) != 0 {
		t.Fatalf("options = %#v, want empty non-nil slice", options)
	}
	if got := domain.UserMessage(err); got != "No trains found for the given criteria." {
		t.Fatalf("message = %q", got)
	}
}

func TestSearchLocalPreconditions(t *testing.T) {
	e := newTestEnv(t)
	e.loggedIn(t)

	_, err := e.client.Search(context.Background(), "", "Mumbai", "")
	if !domain.IsValidation(err) {
		t.Fatalf("blank source: err = %v, want validation", err)
	}
	if got := domain.UserMessage(err); got != "Please fill in all required fields." {
		t.Fatalf("message = %q", got)
	}

	e.session.Clear()
	_, err = e.client.Search(context.Background(), "Delhi", "Mumbai", "")
	if !domain.IsValidation(err) {
		t.Fatalf("logged out: err = %v, want validation", err)
	}
	if got := domain.UserMessage(err); got != "You must be logged in to search for trains." {
		t.Fatalf("message = %q", got)
	}
}

func TestSearchInvalidDateIsValidation(t *testing.T) {
	e := newTestEnv(t)
	e.loggedIn(t)

	_, err := e.client.Search(context.Background(), "Delhi", "Mumbai", "01-05-2024")
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
	if got := domain.UserMessage(err); got != "Invalid date format. Use YYYY-MM-DD." {
		t.Fatalf("message = %q", got)
	}
}

func TestUnauthorizedTearsDownSession(t *testing.T) {
	e := newTestEnv(t)
	if err := e.session.Set("not-a-real-token"); err != nil {
		t.Fatalf("set token: %v", err)
	}

	_, err := e.client.Search(context.Background(), "Delhi", "Mumbai", "")
	if !domain.IsAuthExpired(err) {
		t.Fatalf("err = %v, want auth-expired", err)
	}
	if got := domain.UserMessage(err); got != domain.MsgAuthExpired {
		t.Fatalf("message = %q, want %q", got, domain.MsgAuthExpired)
	}
	if e.session.Present() {
		t.Fatal("a 401 must clear the stored session")
	}
}

func TestSubmitBookingRoundTrip(t *testing.T) {
	e := newTestEnv(t)
	e.loggedIn(t)
	ctx := context.Background()

	balance, err := e.client.AddFunds(ctx, 500)
	if err != nil {
		t.Fatalf("add funds: %v", err)
	}
	if balance != 500 {
		t.Fatalf("balance = %v, want 500", balance)
	}

	records, err := e.client.SubmitBooking(ctx, domain.BookingRequest{
		TrainScheduleID: 1,
		Passengers: []domain.Passenger{
			{Name: "asha", Age: 30, ClassType: domain.ClassSleeper},
			{Name: "bilal", Age: 28, ClassType: domain.ClassThirdAC},
		},
		PaymentStatus: domain.PaymentCompleted,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Records come back in submission order with capitalized names and
	// allocated seats.
	if records[0].PassengerName != "Asha" || records[1].PassengerName != "Bilal" {
		t.Fatalf("names = %q,%q", records[0].PassengerName, records[1].PassengerName)
	}
	if records[0].SeatNumber != "SN-1-5" || records[1].SeatNumber != "SN-1-4" {
		t.Fatalf("seats = %q,%q", records[0].SeatNumber, records[1].SeatNumber)
	}
	if records[0].TotalFare != 120.50 {
		t.Fatalf("fare = %v, want 120.50", records[0].TotalFare)
	}
	if records[0].TrainName != "Rajdhani Express" || records[0].Date != "2024-05-01" {
		t.Fatalf("schedule fields = %q %q", records[0].TrainName, records[0].Date)
	}

	left, err := e.client.Balance(ctx)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if left != 259 {
		t.Fatalf("balance after booking = %v, want 259", left)
	}

	// Seats were decremented.
	options, err := e.client.Search(ctx, "Delhi", "Mumbai", "2024-05-01")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if options[0].AvailableSeats != 3 {
		t.Fatalf("seats after booking = %d, want 3", options[0].AvailableSeats)
	}
}

func TestSubmitBookingServerRejections(t *testing.T) {
	e := newTestEnv(t)
	e.loggedIn(t)
	ctx := context.Background()

	passengers := []domain.Passenger{{Name: "Asha", Age: 30, ClassType: domain.ClassSleeper}}

	_, err := e.client.SubmitBooking(ctx, domain.BookingRequest{
		TrainScheduleID: 999, Passengers: passengers, PaymentStatus: domain.PaymentPending,
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("unknown schedule: err = %v, want not-found", err)
	}
	if got := domain.UserMessage(err); got != "Train schedule not found." {
		t.Fatalf("message = %q", got)
	}

	_, err = e.client.SubmitBooking(ctx, domain.BookingRequest{
		TrainScheduleID: 2, Passengers: passengers, PaymentStatus: domain.PaymentPending,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("sold out: err = %v, want validation", err)
	}
	if got := domain.UserMessage(err); got != "Not enough seats available." {
		t.Fatalf("message = %q", got)
	}

	_, err = e.client.SubmitBooking(ctx, domain.BookingRequest{
		TrainScheduleID: 1, Passengers: passengers, PaymentStatus: domain.PaymentPending,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("empty wallet: err = %v, want validation", err)
	}
	if got := domain.UserMessage(err); got != "Insufficient balance to book tickets." {
		t.Fatalf("message = %q", got)
	}
}

func TestUnreachableServer(t *testing.T) {
	e := newTestEnv(t)
	e.loggedIn(t)
	e.srv.Close()

	_, err := e.client.Search(context.Background(), "Delhi", "Mumbai", "")
	if !domain.IsUnreachable(err) {
		t.Fatalf("err = %v, want unreachable", err)
	}
	if got := domain.UserMessage(err); got != domain.MsgUnreachable {
		t.Fatalf("message = %q, want %q", got, domain.MsgUnreachable)
	}
}

func TestSignupDuplicateIsValidation(t *testing.T) {
	e := newTestEnv(t)
	e.loggedIn(t)

	err := e.client.Signup(context.Background(), SignupRequest{
		Username:    "asha",
		Email:       "asha@example.com",
		PhoneNumber: "9876543210",
		Password:    "another-pass",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
}
