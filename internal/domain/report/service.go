package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// GenerateWeeklyOverview rebuilds the planned week of an employee
	GenerateWeeklyOverview(ctx context.Context, req WeeklyReportRequest) (WeeklyReportResponse, error)

	// ExportWeeklyOverview renders the same overview as an .xlsx workbook
	ExportWeeklyOverview(ctx context.Context, req WeeklyReportRequest) (ExportFile, error)
}
