package report

import (
	"context"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// ReportService renders payroll figures as downloadable documents.
type ReportService interface {
	// ExportWeeklyGross renders the Monday-Sunday gross grid as a workbook.
	ExportWeeklyGross(ctx context.Context, week time.Time) (File, error)

	// ExportStatement renders commissions, bonuses and total salary of the
	// selected period as a PDF.
	ExportStatement(ctx context.Context, sel payroll.PeriodSelection) (File, error)
}
