package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"boligbudsjett/models"
)

// BreakdownHeader is the first row of every breakdown export.
var BreakdownHeader = []string{"kategori", "tiltak", "kvalitet", "omfang", "enhet", "enhetspris", "kostnad"}

// CSVWriter writes renovation breakdowns as CSV.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	closer io.Closer
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	c, err := newCSVWriter(f, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return c, nil
}

// NewCSVStreamWriter writes to w, e.g. an HTTP response. Close only flushes.
func NewCSVStreamWriter(w io.Writer) (*CSVWriter, error) {
	return newCSVWriter(w, nil)
}

func newCSVWriter(w io.Writer, closer io.Closer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(BreakdownHeader); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	return &CSVWriter{closer: closer, writer: cw}, nil
}

// WriteBreakdown appends one row per selection.
func (c *CSVWriter) WriteBreakdown(selections []models.RenovationSelection) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range selections {
		row := []string{
			s.Category,
			s.Item,
			string(s.Tier),
			strconv.FormatFloat(s.Quantity, 'f', 1, 64),
			s.Unit.Label(),
			strconv.FormatFloat(s.UnitCost, 'f', -1, 64),
			strconv.FormatFloat(s.TotalCost, 'f', 2, 64),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file, if any.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	if c.closer == nil {
		return c.writer.Error()
	}
	return c.closer.Close()
}
