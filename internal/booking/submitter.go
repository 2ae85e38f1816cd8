package booking

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/pari08yadav/train-ticket-booking/internal/domain"
	"github.com/pari08yadav/train-ticket-booking/internal/session"
)

// UnavailableAdvisory is the transient message shown when a zero-seat
// schedule is selected. The UI clears it after a fixed short delay.
const UnavailableAdvisory = "Tickets are not available for this train."

// ErrSubmitInFlight rejects a second Submit while one is outstanding,
// so a double click cannot issue two independent booking requests.
var ErrSubmitInFlight = errors.New("a booking submission is already in progress")

// CanBook reports whether a schedule selection may proceed to the
// roster. A sold-out schedule never transitions to booking.
func CanBook(opt domain.ScheduleOption) bool {
	return opt.AvailableSeats > 0
}

// SubmitAPI is the slice of the API client the submitter needs.
type SubmitAPI interface {
	SubmitBooking(ctx context.Context, req domain.BookingRequest) ([]domain.BookingRecord, error)
}

// Submitter validates and submits one booking per user action. The
// session service is injected; local precondition failures never reach
// the network.
type Submitter struct {
	api      SubmitAPI
	session  *session.Service
	inFlight atomic.Bool
}

func NewSubmitter(api SubmitAPI, sess *session.Service) *Submitter {
	return &Submitter{api: api, session: sess}
}

// Submit books the current roster against the selected schedule. On
// success it returns one BookingRecord per passenger in submission
// order. Classified failures leave the roster and selection intact so
// the user can correct and resubmit.
func (s *Submitter) Submit(ctx context.Context, opt domain.ScheduleOption, roster *Roster, status domain.PaymentStatus) ([]domain.BookingRecord, error) {
	if opt.ScheduleID == 0 {
		return nil, domain.ValidationError{Msg: domain.MsgMissingOption}
	}
	if !s.session.Present() {
		return nil, domain.ValidationError{Msg: domain.MsgNotLoggedIn}
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	req := domain.BookingRequest{
		TrainScheduleID: opt.ScheduleID,
		Passengers:      roster.Passengers(),
		PaymentStatus:   status,
	}
	return s.api.SubmitBooking(ctx, req)
}
