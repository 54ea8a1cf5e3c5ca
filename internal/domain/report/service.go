package report

import (
	"context"
)

// ReportService defines business logic for attendance reporting
type ReportService interface {
	// GenerateMonthlyReport reconciles all punches of a calendar month
	GenerateMonthlyReport(ctx context.Context, req MonthlyReportRequest) (AttendanceReport, error)

	// GenerateRangeReport reconciles all punches of an arbitrary inclusive range
	GenerateRangeReport(ctx context.Context, req RangeReportRequest) (AttendanceReport, error)

	// GenerateDailyOverview builds the single-day live dashboard view
	GenerateDailyOverview(ctx context.Context, req DailyOverviewRequest) (DailyOverview, error)

	// ExportMonthlyCSV renders the monthly report as CSV rows, one column
	// per calendar day
	ExportMonthlyCSV(ctx context.Context, req MonthlyReportRequest) ([][]string, error)
}
