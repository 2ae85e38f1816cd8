package booking

import (
	"errors"
	"testing"

	"github.com/pari08yadav/train-ticket-booking/internal/domain"
)

func TestRosterStartsWithOneBlankPassenger(t *testing.T) {
	r := NewRoster()
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}
	if p := r.Get(0); p.Name != "" || p.Age != 0 || p.ClassType != "" {
		t.Fatalf("first passenger not blank: %+v", p)
	}
}

func TestRemoveLastPassengerRejected(t *testing.T) {
	r := NewRoster()
	if err := r.Remove(0); !errors.Is(err, ErrLastPassenger) {
		t.Fatalf("remove on roster of one: err = %v, want ErrLastPassenger", err)
	}
	if r.Len() != 1 {
		t.Fatalf("roster length changed to %d", r.Len())
	}
}

func TestRemoveKeepsInsertionOrder(t *testing.T) {
	r := NewRoster()
	r.Update(0, FieldName, "A")
	r.Add()
	r.Update(1, FieldName, "B")
	r.Add()
	r.Update(2, FieldName, "C")

	if err := r.Remove(1); err != nil {
		t.Fatalf("remove error: %v", err)
	}

	got := r.Passengers()
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "C" {
		t.Fatalf("passengers after remove = %+v", got)
	}
}

func TestRemoveOutOfRange(t *testing.T) {
	r := NewRoster()
	r.Add()
	if err := r.Remove(5); err == nil {
		t.Fatalf("out-of-range remove succeeded")
	}
	if err := r.Remove(-1); err == nil {
		t.Fatalf("negative-index remove succeeded")
	}
}

func TestUpdateFields(t *testing.T) {
	r := NewRoster()
	if err := r.Update(0, FieldName, "Asha"); err != nil {
		t.Fatalf("update name: %v", err)
	}
	if err := r.Update(0, FieldAge, "30"); err != nil {
		t.Fatalf("update age: %v", err)
	}
	if err := r.Update(0, FieldClass, string(domain.ClassSleeper)); err != nil {
		t.Fatalf("update class: %v", err)
	}

	p := r.Get(0)
	if p.Name != "Asha" || p.Age != 30 || p.ClassType != domain.ClassSleeper {
		t.Fatalf("passenger = %+v", p)
	}

	// Edit-time leniency: junk age parses to zero, left for the server.
	if err := r.Update(0, FieldAge, "not-a-number"); err != nil {
		t.Fatalf("update junk age: %v", err)
	}
	if got := r.Get(0).Age; got != 0 {
		t.Fatalf("junk age stored as %d", got)
	}

	if err := r.Update(0, "seat", "A1"); err == nil {
		t.Fatalf("unknown field accepted")
	}
}

func TestPassengersReturnsCopy(t *testing.T) {
	r := NewRoster()
	r.Update(0, FieldName, "A")
	got := r.Passengers()
	got[0].Name = "mutated"
	if r.Get(0).Name != "A" {
		t.Fatalf("external mutation reached the roster")
	}
}
