package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pari08yadav/train-ticket-booking/internal/domain"
	"github.com/pari08yadav/train-ticket-booking/internal/server/middleware"
	"github.com/pari08yadav/train-ticket-booking/internal/server/store"
	"github.com/pari08yadav/train-ticket-booking/internal/utils"
)

// GET /api/search/tickets/
//
// A criteria miss answers 200 with a message object rather than an
// error status, mirroring the original service contract.
func (h Handler) SearchTickets(c *gin.Context) {
	source := strings.TrimSpace(c.Query("source"))
	destination := strings.TrimSpace(c.Query("destination"))
	date := strings.TrimSpace(c.Query("date"))

	if source == "" || destination == "" {
		RespondError(c, http.StatusBadRequest, "Both source and destination are required.")
		return
	}
	if date != "" {
		if _, err := utils.ParseDate(date); err != nil {
			RespondError(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
			return
		}
	}

	views, err := h.Store.SearchSchedules(source, destination, date)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to search schedules")
		return
	}
	if len(views) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No trains found for the given criteria."})
		return
	}

	out := make([]domain.ScheduleOption, 0, len(views))
	for _, v := range views {
		out = append(out, domain.ScheduleOption{
			ScheduleID:     v.ScheduleID,
			TrainName:      v.TrainName,
			TrainNumber:    v.TrainNumber,
			Source:         v.Source,
			Destination:    v.Destination,
			Date:           v.Date,
			AvailableSeats: v.AvailableSeats,
		})
	}
	utils.LogEvent(requestID(c), "search", "tickets", "results="+itoa(int64(len(out))))
	c.JSON(http.StatusOK, out)
}

type bookRequest struct {
	TrainScheduleID int64              `json:"train_schedule_id"`
	Passengers      []domain.Passenger `json:"passengers"`
	PaymentStatus   string             `json:"payment_status"`
}

// POST /api/book/ticket/
func (h Handler) BookTicket(c *gin.Context) {
	var req bookRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if len(req.Passengers) == 0 {
		RespondError(c, http.StatusBadRequest, "Passenger details are required and must be a list.")
		return
	}
	if req.TrainScheduleID == 0 {
		RespondError(c, http.StatusBadRequest, "Train schedule ID is required.")
		return
	}
	if req.PaymentStatus == "" {
		req.PaymentStatus = string(domain.PaymentPending)
	}
	if !domain.PaymentStatus(req.PaymentStatus).Valid() {
		RespondError(c, http.StatusBadRequest, "Invalid payment status.")
		return
	}

	seatReqs := make([]store.SeatRequest, 0, len(req.Passengers))
	for _, p := range req.Passengers {
		if strings.TrimSpace(p.Name) == "" || p.Age <= 0 || !p.ClassType.Valid() {
			RespondError(c, http.StatusBadRequest, "Valid passenger name, age, and class type are required.")
			return
		}
		seatReqs = append(seatReqs, store.SeatRequest{
			Name:      strings.TrimSpace(p.Name),
			Age:       p.Age,
			ClassType: string(p.ClassType),
		})
	}

	view, err := h.Store.ScheduleByID(req.TrainScheduleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "Train schedule not found.")
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to load schedule")
		return
	}

	userID := middleware.UserID(c)
	seats, err := h.Store.BookSeats(userID, req.TrainScheduleID, seatReqs, req.PaymentStatus)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			RespondError(c, http.StatusNotFound, "Train schedule not found.")
		case errors.Is(err, store.ErrNoSeats):
			RespondError(c, http.StatusBadRequest, "Not enough seats available.")
		case errors.Is(err, store.ErrLowBalance):
			RespondError(c, http.StatusBadRequest, "Insufficient balance to book tickets.")
		default:
			RespondError(c, http.StatusInternalServerError, "An unexpected error occurred.")
		}
		return
	}

	bookings := make([]domain.BookingRecord, 0, len(seats))
	for _, seat := range seats {
		bookings = append(bookings, domain.BookingRecord{
			BookingID:     seat.BookingID,
			TicketID:      seat.TicketID,
			SeatNumber:    seat.SeatNumber,
			PassengerName: utils.Capitalize(seat.PassengerName),
			PassengerAge:  seat.PassengerAge,
			ClassType:     domain.ClassType(seat.ClassType),
			TotalFare:     seat.Fare,
			TrainName:     utils.Capitalize(view.TrainName),
			TrainNumber:   view.TrainNumber,
			Source:        utils.Capitalize(view.Source),
			Destination:   utils.Capitalize(view.Destination),
			Date:          view.Date,
		})
	}

	utils.LogEvent(requestID(c), "booking", "create",
		"user_id="+itoa(userID)+" schedule_id="+itoa(req.TrainScheduleID)+" seats="+itoa(int64(len(seats))))
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Tickets booked successfully!",
		"bookings": bookings,
	})
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
