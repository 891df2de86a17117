package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ihs-frontdesk-api/internal/idgen"
	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	"github.com/noah-isme/ihs-frontdesk-api/pkg/export"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
)

const timestampLayout = "2006-01-02 15:04:05"

var visitorExportHeaders = []string{"ID", "Token Number", "Name", "CNIC", "Phone", "Purpose", "Person To Meet", "Visitor Type", "Check In Time", "Check Out Time"}

var fineExportHeaders = []string{"Student ID", "Name", "Department", "Fine Type", "Amount", "Reason", "Date", "Added By"}

// ExportFile is a rendered download: bytes plus the suggested filename
// and content type.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

type exportVisitorSource interface {
	List(ctx context.Context, filter models.VisitorFilter) ([]models.Visitor, error)
}

type exportFineSource interface {
	List(ctx context.Context, filter models.FineFilter) ([]models.Fine, error)
}

// ExportService renders visitor and fine datasets into downloadable CSV
// files and the daily report into PDF.
type ExportService struct {
	visitors exportVisitorSource
	fines    exportFineSource
	reports  *ReportService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs the export service.
func NewExportService(visitors exportVisitorSource, fines exportFineSource, reports *ReportService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		visitors: visitors,
		fines:    fines,
		reports:  reports,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
		now:      time.Now,
	}
}

// VisitorsCSV exports the filtered visitor log as CSV.
func (s *ExportService) VisitorsCSV(ctx context.Context, filter models.VisitorFilter) (*ExportFile, error) {
	visitors, err := s.visitors.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(visitors))
	for _, v := range visitors {
		checkOut := ""
		if v.CheckOutTime != nil {
			checkOut = v.CheckOutTime.Local().Format(timestampLayout)
		}
		rows = append(rows, map[string]string{
			"ID":             v.PassID,
			"Token Number":   v.TokenNumber,
			"Name":           v.Name,
			"CNIC":           v.CNIC,
			"Phone":          v.Phone,
			"Purpose":        v.Purpose,
			"Person To Meet": v.PersonToMeet,
			"Visitor Type":   v.VisitorType,
			"Check In Time":  v.CheckInTime.Local().Format(timestampLayout),
			"Check Out Time": checkOut,
		})
	}

	content, err := s.csv.Render(export.Dataset{Headers: visitorExportHeaders, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render visitor export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("visitors-%s.csv", s.now().Format(dateLayout)),
		ContentType: "text/csv",
		Content:     content,
	}, nil
}

// FinesCSV exports the filtered fine ledger as CSV.
func (s *ExportService) FinesCSV(ctx context.Context, filter models.FineFilter) (*ExportFile, error) {
	fines, err := s.fines.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(fines))
	for _, f := range fines {
		rows = append(rows, map[string]string{
			"Student ID": f.StudentID,
			"Name":       f.Name,
			"Department": f.Department,
			"Fine Type":  f.FineType,
			"Amount":     strconv.FormatFloat(f.Amount, 'f', 2, 64),
			"Reason":     f.Reason,
			"Date":       f.Date.Local().Format(timestampLayout),
			"Added By":   f.AddedBy,
		})
	}

	content, err := s.csv.Render(export.Dataset{Headers: fineExportHeaders, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render fine export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("fines-%s.csv", s.now().Format(dateLayout)),
		ContentType: "text/csv",
		Content:     content,
	}, nil
}

// DailyReportPDF renders the daily report for the given date (empty
// means today) as a one-page PDF summary.
func (s *ExportService) DailyReportPDF(ctx context.Context, date string) (*ExportFile, error) {
	stats, err := s.reports.Daily(ctx, date)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Metric", "Value"},
		Rows: []map[string]string{
			{"Metric": "Date", "Value": stats.Date},
			{"Metric": "Visitor Check-ins", "Value": strconv.Itoa(stats.VisitorCount)},
			{"Metric": "Student Entries", "Value": strconv.Itoa(stats.StudentEntryCount)},
		},
	}
	content, err := s.pdf.Render(dataset, fmt.Sprintf("Daily Entry Report %s", stats.Date))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render daily report")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("daily-report-%s.pdf", stats.Date),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// DayFilter builds a visitor filter covering one local calendar day.
func DayFilter(day time.Time) (time.Time, time.Time) {
	start := idgen.StartOfDay(day)
	return start, start.Add(24*time.Hour - time.Nanosecond)
}
