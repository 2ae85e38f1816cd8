package ticket

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Backend renders a layout into document bytes. Swappable so the
// document stage can run headless or be replaced wholesale.
type Backend interface {
	Render(l *Layout) ([]byte, error)
}

// PDFBackend renders the layout as an A4 portrait PDF. Width is fixed
// to the page; height follows the content through automatic page
// breaks, so a long table is paginated rather than truncated.
type PDFBackend struct{}

// A4 portrait content geometry in millimeters.
const (
	pageMarginMM  = 10.0
	contentWidth  = 190.0
	rowHeightMM   = 8.0
	qrSideMM      = 30.0
	maxCellChars  = 18
	printableYMax = 297.0 - pageMarginMM
)

// columnWidths sums to contentWidth; narrow numeric columns give room
// to names and station columns.
var columnWidths = []float64{28, 12, 18, 20, 24, 18, 18, 18, 18, 16}

func (PDFBackend) Render(l *Layout) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(l.Title, false)
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(true, pageMarginMM)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, l.Title)
	pdf.Ln(14)

	if l.Empty() {
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 8, l.Placeholder, "", "", false)
		return output(pdf)
	}

	// Header row.
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(240, 240, 240)
	for i, col := range l.Columns {
		pdf.CellFormat(columnWidths[i], rowHeightMM, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(rowHeightMM)

	// Body rows. The auto page break re-enters below the top margin on
	// overflow, so the full height of the content is always preserved.
	pdf.SetFont("Helvetica", "", 8)
	for _, row := range l.Rows {
		for i, cell := range row {
			pdf.CellFormat(columnWidths[i], rowHeightMM, clip(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(rowHeightMM)
	}

	if l.QRPayload != "" {
		if err := drawQR(pdf, l.QRPayload); err != nil {
			return nil, err
		}
	}

	return output(pdf)
}

// drawQR embeds a QR code carrying the booking ids, for verification at
// boarding. Moved to a fresh page when the table ran close to the edge.
func drawQR(pdf *gofpdf.Fpdf, payload string) error {
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode ticket QR: %w", err)
	}
	if pdf.GetY()+qrSideMM+12 > printableYMax {
		pdf.AddPage()
	}
	pdf.Ln(6)
	y := pdf.GetY()
	pdf.RegisterImageOptionsReader("ticket-qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(png))
	pdf.ImageOptions("ticket-qr", pageMarginMM, y, qrSideMM, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")
	pdf.SetY(y + qrSideMM + 2)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Scan to verify this booking.")
	return nil
}

// clip keeps long values from spilling across cell borders; the table
// is a summary, the QR payload carries the authoritative ids.
func clip(s string) string {
	runes := []rune(s)
	if len(runes) <= maxCellChars {
		return s
	}
	return string(runes[:maxCellChars-3]) + "..."
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
