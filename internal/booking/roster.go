// Package booking holds the workflow between a selected schedule and a
// confirmed booking: the passenger roster and the submitter.
package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pari08yadav/train-ticket-booking/internal/domain"
)

// ErrLastPassenger rejects removal of the final roster entry. A booking
// always carries at least one passenger.
var ErrLastPassenger = errors.New("a booking needs at least one passenger")

// Field names a mutable passenger attribute for Update.
type Field string

const (
	FieldName  Field = "name"
	FieldAge   Field = "age"
	FieldClass Field = "classType"
)

// Roster is the ordered, editable passenger list for one pending
// booking. Insertion order is submission order. Edits are not validated
// here; the server judges field completeness at submission.
type Roster struct {
	passengers []domain.Passenger
}

// NewRoster starts with a single blank passenger, matching the initial
// booking form.
func NewRoster() *Roster {
	return &Roster{passengers: []domain.Passenger{{}}}
}

// Add appends a blank passenger. Unbounded.
func (r *Roster) Add() {
	r.passengers = append(r.passengers, domain.Passenger{})
}

// Remove deletes the entry at index. Removing the last remaining
// passenger is rejected, not clamped.
func (r *Roster) Remove(index int) error {
	if index < 0 || index >= len(r.passengers) {
		return fmt.Errorf("passenger index %d out of range", index)
	}
	if len(r.passengers) == 1 {
		return ErrLastPassenger
	}
	r.passengers = append(r.passengers[:index], r.passengers[index+1:]...)
	return nil
}

// Update mutates one field in place. Age takes the best-effort integer
// parse of the value; anything unparsable lands as zero and is left for
// the server to reject.
func (r *Roster) Update(index int, field Field, value string) error {
	if index < 0 || index >= len(r.passengers) {
		return fmt.Errorf("passenger index %d out of range", index)
	}
	switch field {
	case FieldName:
		r.passengers[index].Name = value
	case FieldAge:
		age, _ := strconv.Atoi(strings.TrimSpace(value))
		r.passengers[index].Age = age
	case FieldClass:
		r.passengers[index].ClassType = domain.ClassType(value)
	default:
		return fmt.Errorf("unknown passenger field %q", field)
	}
	return nil
}

// Len reports the roster size.
func (r *Roster) Len() int {
	return len(r.passengers)
}

// Get returns the passenger at index.
func (r *Roster) Get(index int) domain.Passenger {
	return r.passengers[index]
}

// Passengers returns a copy of the roster in insertion order.
func (r *Roster) Passengers() []domain.Passenger {
	out := make([]domain.Passenger, len(r.passengers))
	copy(out, r.passengers)
	return out
}
