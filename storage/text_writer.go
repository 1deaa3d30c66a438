package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// TextReportWriter saves a plain-text report to a file.
type TextReportWriter struct {
	file *os.File
}

// NewTextReportWriter creates (or truncates) the report file at path.
func NewTextReportWriter(path string) (*TextReportWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("report: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("report: create file %q: %w", path, err)
	}
	return &TextReportWriter{file: f}, nil
}

func (w *TextReportWriter) WriteReport(report string) error {
	if _, err := w.file.WriteString(report); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}
	return nil
}

func (w *TextReportWriter) Close() error {
	return w.file.Close()
}

var (
	_ BreakdownWriter = (*CSVWriter)(nil)
	_ ReportWriter    = (*TextReportWriter)(nil)
)
