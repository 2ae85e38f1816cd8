package domain

// ClassType is the travel class attached to one passenger. Values match
// the reservation service's accepted class names.
type ClassType string

const (
	ClassSleeper  ClassType = "Sleeper"
	ClassFirstAC  ClassType = "First AC"
	ClassSecondAC ClassType = "Second AC"
	ClassThirdAC  ClassType = "Third AC"
)

// ClassTypes lists the selectable classes in display order.
var ClassTypes = []ClassType{ClassSleeper, ClassFirstAC, ClassSecondAC, ClassThirdAC}

func (c ClassType) Valid() bool {
	for _, v := range ClassTypes {
		if c == v {
			return true
		}
	}
	return false
}

// PaymentStatus of a booking request.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// ScheduleOption is one bookable train run returned by search. Immutable
// snapshot; ScheduleID is the only field required downstream.
type ScheduleOption struct {
	ScheduleID     int64  `json:"train_schedule_id"`
	TrainName      string `json:"train_name"`
	TrainNumber    string `json:"train_number"`
	Source         string `json:"source"`
	Destination    string `json:"destination"`
	Date           string `json:"date"`
	AvailableSeats int    `json:"available_seats"`
}

// Passenger is one row of the booking roster. Fields are unvalidated
// until submission; the server is the judge of completeness.
type Passenger struct {
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	ClassType ClassType `json:"classType"`
}

// BookingRequest is the submit payload. Built once at submission time
// from the selected schedule and the current roster, never persisted.
type BookingRequest struct {
	TrainScheduleID int64         `json:"train_schedule_id"`
	Passengers      []Passenger   `json:"passengers"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
}

// BookingRecord is the server-confirmed outcome of one passenger's
// booking. One record per submitted passenger, same order.
type BookingRecord struct {
	BookingID     int64     `json:"booking_id"`
	TicketID      int64     `json:"ticket_id"`
	SeatNumber    string    `json:"seat_number"`
	PassengerName string    `json:"passenger_name"`
	PassengerAge  int       `json:"passenger_age"`
	ClassType     ClassType `json:"class_type"`
	TotalFare     float64   `json:"total_fare"`
	TrainName     string    `json:"train_name"`
	TrainNumber   string    `json:"train_number"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	Date          string    `json:"date"`
}
