package ticket

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pari08yadav/train-ticket-booking/internal/domain"
)

func TestPDFBackendRendersDocument(t *testing.T) {
	data, err := PDFBackend{}.Render(BuildLayout(sampleRecords()))
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF (starts with %q)", data[:4])
	}
}

func TestPDFBackendRendersPlaceholder(t *testing.T) {
	data, err := PDFBackend{}.Render(BuildLayout(nil))
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("placeholder output is not a PDF")
	}
}

func TestPDFBackendPaginatesLongTable(t *testing.T) {
	// Enough rows to overflow one A4 page; the document must keep the
	// full content height instead of truncating.
	var records []domain.BookingRecord
	for i := 0; i < 80; i++ {
		rec := sampleRecords()[0]
		rec.BookingID = int64(i + 1)
		records = append(records, rec)
	}
	long, err := PDFBackend{}.Render(BuildLayout(records))
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	short, err := PDFBackend{}.Render(BuildLayout(sampleRecords()))
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	pages := func(pdf []byte) int { return bytes.Count(pdf, []byte("/Type /Page")) }
	if pages(long) <= pages(short) {
		t.Fatalf("long table did not paginate: %d pages vs %d", pages(long), pages(short))
	}
}

func TestExportWritesFixedFilename(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir)
	path, err := e.Export(BuildLayout(sampleRecords()))
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	if filepath.Base(path) != DocumentFilename {
		t.Fatalf("export path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
}

type failingBackend struct{}

func (failingBackend) Render(*Layout) ([]byte, error) {
	return nil, errors.New("rendering surface unavailable")
}

func TestExportFailureLeavesLayoutIntact(t *testing.T) {
	l := BuildLayout(sampleRecords())
	e := &Exporter{Backend: failingBackend{}, Dir: t.TempDir()}

	_, err := e.Export(l)
	if err == nil {
		t.Fatalf("export with failing backend succeeded")
	}
	// The rendered view survives the failed export.
	if l.Empty() || len(l.Rows) != 2 {
		t.Fatalf("layout disturbed by failed export: %+v", l)
	}
	if _, err := os.Stat(filepath.Join(e.Dir, DocumentFilename)); !os.IsNotExist(err) {
		t.Fatalf("partial document written despite render failure")
	}
}
