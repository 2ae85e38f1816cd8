package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLStore implements Store over MySQL. Schema: users, trains,
// train_schedules, tickets, bookings, user_balances.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) SQLStore {
	return SQLStore{DB: db}
}

func (s SQLStore) CreateUser(u User) (int64, error) {
	var exists int
	err := s.DB.QueryRow(`
        SELECT COUNT(*) FROM users WHERE email = ? OR username = ?
    `, u.Email, u.Username).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check user: %w", err)
	}
	if exists > 0 {
		return 0, ErrUserExists
	}

	res, err := s.DB.Exec(`
        INSERT INTO users (username, email, phone_number, password_hash, created_at, updated_at)
        VALUES (?, ?, ?, ?, NOW(), NOW())
    `, u.Username, u.Email, u.PhoneNumber, u.PasswordHash)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

func (s SQLStore) UserByIdentifier(identifier string) (User, error) {
	var u User
	err := s.DB.QueryRow(`
        SELECT id, username, email, phone_number, password_hash
        FROM users
        WHERE email = ? OR phone_number = ? OR username = ?
    `, identifier, identifier, identifier).Scan(
		&u.ID, &u.Username, &u.Email, &u.PhoneNumber, &u.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

const scheduleSelect = `
    SELECT s.id, t.name, t.train_number, t.source, t.destination, s.date, s.available_seats, t.price
    FROM train_schedules s
    JOIN trains t ON t.id = s.train_id
`

func (s SQLStore) SearchSchedules(source, destination, date string) ([]ScheduleView, error) {
	query := scheduleSelect + ` WHERE LOWER(t.source) LIKE ? AND LOWER(t.destination) LIKE ?`
	args := []any{like(source), like(destination)}
	if strings.TrimSpace(date) != "" {
		query += ` AND s.date = ?`
		args = append(args, date)
	}
	query += ` ORDER BY s.id ASC`

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search schedules: %w", err)
	}
	defer rows.Close()

	var out []ScheduleView
	for rows.Next() {
		var v ScheduleView
		if err := rows.Scan(&v.ScheduleID, &v.TrainName, &v.TrainNumber, &v.Source, &v.Destination, &v.Date, &v.AvailableSeats, &v.Price); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s SQLStore) ScheduleByID(id int64) (ScheduleView, error) {
	var v ScheduleView
	err := s.DB.QueryRow(scheduleSelect+` WHERE s.id = ?`, id).Scan(
		&v.ScheduleID, &v.TrainName, &v.TrainNumber, &v.Source, &v.Destination, &v.Date, &v.AvailableSeats, &v.Price,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ScheduleView{}, ErrNotFound
		}
		return ScheduleView{}, fmt.Errorf("query schedule: %w", err)
	}
	return v, nil
}

// BookSeats runs the whole allocation in one transaction: seat check,
// ticket + booking inserts, seat decrement, wallet debit.
func (s SQLStore) BookSeats(userID, scheduleID int64, passengers []SeatRequest, paymentStatus string) ([]BookedSeat, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback()

	var seatsLeft int
	var price float64
	err = tx.QueryRow(`
        SELECT s.available_seats, t.price
        FROM train_schedules s JOIN trains t ON t.id = s.train_id
        WHERE s.id = ? FOR UPDATE
    `, scheduleID).Scan(&seatsLeft, &price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock schedule: %w", err)
	}
	if seatsLeft < len(passengers) {
		return nil, ErrNoSeats
	}

	total := price * float64(len(passengers))
	var balance float64
	err = tx.QueryRow(`SELECT balance FROM user_balances WHERE user_id = ? FOR UPDATE`, userID).Scan(&balance)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lock balance: %w", err)
	}
	if balance < total {
		return nil, ErrLowBalance
	}

	var seats []BookedSeat
	for _, p := range passengers {
		seatNumber := fmt.Sprintf("SN-%d-%d", scheduleID, seatsLeft)

		res, err := tx.Exec(`
            INSERT INTO tickets (train_schedule_id, seat_number, is_booked, class_type)
            VALUES (?, ?, 1, ?)
        `, scheduleID, seatNumber, p.ClassType)
		if err != nil {
			return nil, fmt.Errorf("insert ticket: %w", err)
		}
		ticketID, _ := res.LastInsertId()

		res, err = tx.Exec(`
            INSERT INTO bookings (user_id, ticket_id, passenger_name, passenger_age, payment_status)
            VALUES (?, ?, ?, ?, ?)
        `, userID, ticketID, p.Name, p.Age, paymentStatus)
		if err != nil {
			return nil, fmt.Errorf("insert booking: %w", err)
		}
		bookingID, _ := res.LastInsertId()

		seats = append(seats, BookedSeat{
			BookingID:     bookingID,
			TicketID:      ticketID,
			SeatNumber:    seatNumber,
			PassengerName: p.Name,
			PassengerAge:  p.Age,
			ClassType:     p.ClassType,
			Fare:          price,
		})
		seatsLeft--
	}

	if _, err := tx.Exec(`UPDATE train_schedules SET available_seats = ? WHERE id = ?`, seatsLeft, scheduleID); err != nil {
		return nil, fmt.Errorf("update seats: %w", err)
	}
	if _, err := tx.Exec(`UPDATE user_balances SET balance = balance - ? WHERE user_id = ?`, total, userID); err != nil {
		return nil, fmt.Errorf("debit balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}
	return seats, nil
}

func (s SQLStore) Balance(userID int64) (float64, error) {
	var balance float64
	err := s.DB.QueryRow(`SELECT balance FROM user_balances WHERE user_id = ?`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("query balance: %w", err)
	}
	return balance, nil
}

func (s SQLStore) AddBalance(userID int64, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	_, err := s.DB.Exec(`
        INSERT INTO user_balances (user_id, balance) VALUES (?, ?)
        ON DUPLICATE KEY UPDATE balance = balance + VALUES(balance)
    `, userID, amount)
	if err != nil {
		return 0, fmt.Errorf("credit balance: %w", err)
	}
	return s.Balance(userID)
}

func like(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
