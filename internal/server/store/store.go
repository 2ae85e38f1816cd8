// Package store persists the reference server's trains, schedules,
// users and bookings. MemoryStore backs development and tests; SQLStore
// backs a MySQL deployment.
package store

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrUserExists    = errors.New("user already exists")
	ErrNoSeats       = errors.New("not enough seats available")
	ErrLowBalance    = errors.New("insufficient balance")
	ErrInvalidAmount = errors.New("invalid amount")
)

// User is an account row. PasswordHash is bcrypt.
type User struct {
	ID           int64
	Username     string
	Email        string
	PhoneNumber  string
	PasswordHash string
}

// Train is a named run between two stations with a per-seat price.
type Train struct {
	ID          int64
	Name        string
	Number      string
	Source      string
	Destination string
	Price       float64
}

// Schedule is one dated departure of a train with a seat count.
type Schedule struct {
	ID             int64
	TrainID        int64
	Date           string
	AvailableSeats int
}

// ScheduleView is the denormalized search row handed to handlers.
type ScheduleView struct {
	ScheduleID     int64
	TrainName      string
	TrainNumber    string
	Source         string
	Destination    string
	Date           string
	AvailableSeats int
	Price          float64
}

// BookedSeat records one allocated seat inside a booking.
type BookedSeat struct {
	BookingID     int64
	TicketID      int64
	SeatNumber    string
	PassengerName string
	PassengerAge  int
	ClassType     string
	Fare          float64
}

// Store is the persistence contract of the reference server. BookSeats
// must allocate seats, decrement availability and debit the wallet as
// one unit.
type Store interface {
	CreateUser(u User) (int64, error)
	UserByIdentifier(identifier string) (User, error)

	SearchSchedules(source, destination, date string) ([]ScheduleView, error)
	ScheduleByID(id int64) (ScheduleView, error)

	BookSeats(userID, scheduleID int64, passengers []SeatRequest, paymentStatus string) ([]BookedSeat, error)

	Balance(userID int64) (float64, error)
	AddBalance(userID int64, amount float64) (float64, error)
}

// SeatRequest is one passenger awaiting a seat allocation.
type SeatRequest struct {
	Name      string
	Age       int
	ClassType string
}
