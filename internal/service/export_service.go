package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hadir-app/hadir-api/internal/dto"
	"github.com/hadir-app/hadir-api/pkg/export"
	appErrors "github.com/hadir-app/hadir-api/pkg/errors"
)

// ReportFormat selects a rendering backend for report downloads.
type ReportFormat string

const (
	FormatCSV ReportFormat = "csv"
	FormatPDF ReportFormat = "pdf"
)

type monthlyReporter interface {
	Monthly(ctx context.Context, year int, month time.Month, employeeID string) ([]dto.MonthlyReportRow, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered report ready for download.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the monthly attendance report as CSV or PDF.
type ExportService struct {
	reports monthlyReporter
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(reports monthlyReporter, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{reports: reports, csv: csv, pdf: pdf, logger: logger}
}

// ExportMonthly renders the monthly report in the requested format.
func (s *ExportService) ExportMonthly(ctx context.Context, year int, month time.Month, format ReportFormat) (*ExportResult, error) {
	format = ReportFormat(strings.ToLower(string(format)))
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported format, expected csv or pdf")
	}
	rows, err := s.reports.Monthly(ctx, year, month, "")
	if err != nil {
		return nil, err
	}
	dataset := monthlyReportDataset(rows)
	name := fmt.Sprintf("attendance-report-%04d-%02d", year, month)

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: name + ".csv"}, nil
	default:
		title := fmt.Sprintf("Monthly Attendance Report %s %d", time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January"), year)
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: name + ".pdf"}, nil
	}
}

func monthlyReportDataset(rows []dto.MonthlyReportRow) export.Dataset {
	headers := []string{"Name", "Job Title", "Working Days", "Present", "Leave", "Sick", "Absent", "Percentage"}
	data := export.Dataset{Headers: headers, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"Name":         row.Name,
			"Job Title":    row.JobTitle,
			"Working Days": strconv.Itoa(row.WorkingDays),
			"Present":      strconv.Itoa(row.Present),
			"Leave":        strconv.Itoa(row.Leave),
			"Sick":         strconv.Itoa(row.Sick),
			"Absent":       strconv.Itoa(row.Absent),
			"Percentage":   strconv.Itoa(row.Percentage) + "%",
		})
	}
	return data
}
