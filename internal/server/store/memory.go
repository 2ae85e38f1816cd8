package store

import (
	"fmt"
	"strings"
	"sync"
)

// MemoryStore is the in-process Store used for development and tests.
type MemoryStore struct {
	mu        sync.Mutex
	users     map[int64]User
	trains    map[int64]Train
	schedules map[int64]Schedule
	balances  map[int64]float64

	nextUserID    int64
	nextTicketID  int64
	nextBookingID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     map[int64]User{},
		trains:    map[int64]Train{},
		schedules: map[int64]Schedule{},
		balances:  map[int64]float64{},
	}
}

// Seed loads a small demo timetable. The Delhi–Mumbai pair carries one
// bookable and one sold-out schedule so the zero-seat path is easy to
// exercise by hand.
func (m *MemoryStore) Seed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trains[1] = Train{ID: 1, Name: "Rajdhani Express", Number: "12951", Source: "Delhi", Destination: "Mumbai", Price: 120.50}
	m.trains[2] = Train{ID: 2, Name: "Duronto Express", Number: "12263", Source: "Delhi", Destination: "Mumbai", Price: 95.00}
	m.trains[3] = Train{ID: 3, Name: "Shatabdi Express", Number: "12002", Source: "Delhi", Destination: "Bhopal", Price: 80.00}
	m.schedules[1] = Schedule{ID: 1, TrainID: 1, Date: "2024-05-01", AvailableSeats: 5}
	m.schedules[2] = Schedule{ID: 2, TrainID: 2, Date: "2024-05-01", AvailableSeats: 0}
	m.schedules[3] = Schedule{ID: 3, TrainID: 3, Date: "2024-05-02", AvailableSeats: 12}
}

func (m *MemoryStore) CreateUser(u User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return 0, ErrUserExists
		}
	}
	m.nextUserID++
	u.ID = m.nextUserID
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *MemoryStore) UserByIdentifier(identifier string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == identifier || u.PhoneNumber == identifier || u.Username == identifier {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (m *MemoryStore) SearchSchedules(source, destination, date string) ([]ScheduleView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ScheduleView
	// Iterate in schedule-id order so results are stable.
	for id := int64(1); id <= m.maxScheduleIDLocked(); id++ {
		sch, ok := m.schedules[id]
		if !ok {
			continue
		}
		train := m.trains[sch.TrainID]
		if !stationMatch(train.Source, source) || !stationMatch(train.Destination, destination) {
			continue
		}
		if date != "" && sch.Date != date {
			continue
		}
		out = append(out, viewOf(train, sch))
	}
	return out, nil
}

func (m *MemoryStore) ScheduleByID(id int64) (ScheduleView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sch, ok := m.schedules[id]
	if !ok {
		return ScheduleView{}, ErrNotFound
	}
	return viewOf(m.trains[sch.TrainID], sch), nil
}

func (m *MemoryStore) BookSeats(userID, scheduleID int64, passengers []SeatRequest, paymentStatus string) ([]BookedSeat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sch, ok := m.schedules[scheduleID]
	if !ok {
		return nil, ErrNotFound
	}
	if sch.AvailableSeats < len(passengers) {
		return nil, ErrNoSeats
	}
	train := m.trains[sch.TrainID]

	total := train.Price * float64(len(passengers))
	if m.balances[userID] < total {
		return nil, ErrLowBalance
	}

	var seats []BookedSeat
	for _, p := range passengers {
		m.nextTicketID++
		m.nextBookingID++
		seats = append(seats, BookedSeat{
			BookingID:     m.nextBookingID,
			TicketID:      m.nextTicketID,
			SeatNumber:    fmt.Sprintf("SN-%d-%d", scheduleID, sch.AvailableSeats),
			PassengerName: p.Name,
			PassengerAge:  p.Age,
			ClassType:     p.ClassType,
			Fare:          train.Price,
		})
		sch.AvailableSeats--
	}
	m.schedules[scheduleID] = sch
	m.balances[userID] -= total
	return seats, nil
}

func (m *MemoryStore) Balance(userID int64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[userID], nil
}

func (m *MemoryStore) AddBalance(userID int64, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[userID] += amount
	return m.balances[userID], nil
}

func (m *MemoryStore) maxScheduleIDLocked() int64 {
	var max int64
	for id := range m.schedules {
		if id > max {
			max = id
		}
	}
	return max
}

func viewOf(t Train, s Schedule) ScheduleView {
	return ScheduleView{
		ScheduleID:     s.ID,
		TrainName:      t.Name,
		TrainNumber:    t.Number,
		Source:         t.Source,
		Destination:    t.Destination,
		Date:           s.Date,
		AvailableSeats: s.AvailableSeats,
		Price:          t.Price,
	}
}

func stationMatch(have, want string) bool {
	return strings.Contains(strings.ToLower(have), strings.ToLower(strings.TrimSpace(want)))
}
