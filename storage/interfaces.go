package storage

import "boligbudsjett/models"

// BreakdownWriter is the interface for exporting the per-item renovation
// breakdown.
type BreakdownWriter interface {
	WriteBreakdown(selections []models.RenovationSelection) error
	Close() error
}

// ReportWriter is the interface for saving a rendered plain-text report.
type ReportWriter interface {
	WriteReport(report string) error
	Close() error
}
