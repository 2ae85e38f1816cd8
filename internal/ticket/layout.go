// Package ticket turns confirmed booking records into a shareable
// document. The pipeline has two stages: BuildLayout renders records
// into a pure tabular layout model, and a Backend renders that layout
// into document bytes. The split keeps document generation independent
// of any live display surface.
package ticket

import (
	"fmt"
	"strings"

	"github.com/pari08yadav/train-ticket-booking/internal/domain"
)

// DocumentTitle heads both the on-screen view and the exported file.
const DocumentTitle = "Your Ticket Details"

// EmptyPlaceholder is shown when there are no booking records to
// render. Empty input is a placeholder state, never an empty table.
const EmptyPlaceholder = "No booking data found."

// Columns is the fixed column contract, one row per booking record.
// Order and naming are a compatibility contract for downstream
// consumers such as printed receipts.
var Columns = []string{
	"Passenger Name",
	"Passenger Age",
	"Class Type",
	"Total Fare",
	"Train Name",
	"Train Number",
	"Source",
	"Destination",
	"Date",
	"Seat Number",
}

// Layout is the rendered ticket model: a titled table plus the QR
// payload identifying the bookings it covers.
type Layout struct {
	Title     string
	Columns   []string
	Rows      [][]string
	QRPayload string

	// Placeholder is non-empty for the no-data state; Rows is nil then.
	Placeholder string
}

// Empty reports whether the layout is the placeholder state.
func (l *Layout) Empty() bool {
	return l.Placeholder != ""
}

// BuildLayout renders booking records into the tabular layout, one row
// per record in the order received.
func BuildLayout(records []domain.BookingRecord) *Layout {
	if len(records) == 0 {
		return &Layout{Title: DocumentTitle, Columns: Columns, Placeholder: EmptyPlaceholder}
	}

	rows := make([][]string, 0, len(records))
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.PassengerName,
			fmt.Sprintf("%d", rec.PassengerAge),
			string(rec.ClassType),
			FormatFare(rec.TotalFare),
			rec.TrainName,
			rec.TrainNumber,
			rec.Source,
			rec.Destination,
			rec.Date,
			rec.SeatNumber,
		})
		ids = append(ids, fmt.Sprintf("%d", rec.BookingID))
	}

	return &Layout{
		Title:     DocumentTitle,
		Columns:   Columns,
		Rows:      rows,
		QRPayload: "bookings:" + strings.Join(ids, ","),
	}
}

// FormatFare renders a fare amount for display. The PDF core fonts
// cannot encode the rupee sign, so the textual prefix is used in both
// the table and the document.
func FormatFare(v float64) string {
	return fmt.Sprintf("Rs %.2f", v)
}
