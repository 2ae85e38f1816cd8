package ticket

import (
	"fmt"
	"os"
	"path/filepath"
)

// DocumentFilename is the fixed name of the exported artifact.
const DocumentFilename = "ticket-details.pdf"

// Exporter writes rendered layouts to disk through a backend. An
// export failure is reported to the caller and leaves the on-screen
// rendering untouched; the layout itself is never mutated here.
type Exporter struct {
	Backend Backend
	Dir     string
}

func NewExporter(dir string) *Exporter {
	return &Exporter{Backend: PDFBackend{}, Dir: dir}
}

// Export renders the layout and writes it under the fixed filename,
// returning the written path.
func (e *Exporter) Export(l *Layout) (string, error) {
	backend := e.Backend
	if backend == nil {
		backend = PDFBackend{}
	}
	data, err := backend.Render(l)
	if err != nil {
		return "", fmt.Errorf("generate ticket document: %w", err)
	}
	path := filepath.Join(e.Dir, DocumentFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write ticket document: %w", err)
	}
	return path, nil
}
