// Package csvlog persists telemetry records as CSV.
package csvlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/robotalks/imurecv/pkg/telemetry"
)

// Writer appends rows to a CSV log. The header row is written once on
// creation, and rows are pushed to the file on every Flush.
type Writer struct {
	path   string
	out    io.WriteCloser
	csv    *csv.Writer
	rows   uint64
	closed bool
}

// Create creates the file at path, truncating any existing one,
// and writes the header row.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}
	w, err := New(f, path)
	if err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// New writes the header row to out and returns a Writer on it.
func New(out io.WriteCloser, path string) (*Writer, error) {
	cw := csv.NewWriter(out)
	cw.UseCRLF = true
	w := &Writer{path: path, out: out, csv: cw}
	if err := cw.Write(telemetry.Header); err != nil {
		return nil, fmt.Errorf("csv write header: %w", err)
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("csv write header: %w", err)
	}
	return w, nil
}

// Path returns the file path.
func (w *Writer) Path() string {
	return w.path
}

// WriteRow appends a single row. It's buffered until Flush.
func (w *Writer) WriteRow(row []string) error {
	if w.closed {
		return os.ErrClosed
	}
	if err := w.csv.Write(row); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Flush pushes buffered rows to the file.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

// Rows returns the number of data rows written, excluding the header.
func (w *Writer) Rows() uint64 {
	return w.rows
}

// Close flushes remaining data and closes the file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.Flush()
	if cerr := w.out.Close(); err == nil {
		err = cerr
	}
	return err
}
