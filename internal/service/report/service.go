package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/punch"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/report"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/clock"
)

type ReportServiceImpl struct {
	punchRepo  punch.PunchRepository
	reconciler *Reconciler
	clk        clock.Clock
}

func NewReportService(punchRepo punch.PunchRepository, clk clock.Clock) report.ReportService {
	return &ReportServiceImpl{
		punchRepo:  punchRepo,
		reconciler: NewReconciler(),
		clk:        clk,
	}
}

// GenerateMonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateMonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	window := monthWindow(req.Year, time.Month(req.Month))
	return s.generate(ctx, window)
}

// GenerateRangeReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateRangeReport(ctx context.Context, req report.RangeReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	window, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return report.AttendanceReport{}, err
	}
	return s.generate(ctx, window)
}

func (s *ReportServiceImpl) generate(ctx context.Context, window report.Window) (report.AttendanceReport, error) {
	punches, err := s.punchRepo.ListByRange(ctx, window.Start, windowEnd(window))
	if err != nil {
		return report.AttendanceReport{}, fmt.Errorf("failed to fetch punches: %w", err)
	}

	employees, stats, err := s.reconciler.Reconcile(punches, window)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	sorted := make([]report.EmployeeAttendance, 0, len(employees))
	for _, emp := range employees {
		sorted = append(sorted, emp)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EmployeeName != sorted[j].EmployeeName {
			return sorted[i].EmployeeName < sorted[j].EmployeeName
		}
		return sorted[i].EmployeeID < sorted[j].EmployeeID
	})

	return report.AttendanceReport{
		PeriodStart: window.Start.Format(dateLayout),
		PeriodEnd:   window.End.Format(dateLayout),
		GeneratedAt: s.clk.Now().UTC().Format(time.RFC3339),
		Employees:   sorted,
		Stats:       stats,
	}, nil
}

// GenerateDailyOverview implements report.ReportService.
func (s *ReportServiceImpl) GenerateDailyOverview(ctx context.Context, req report.DailyOverviewRequest) (report.DailyOverview, error) {
	if err := req.Validate(); err != nil {
		return report.DailyOverview{}, err
	}

	window, err := parseWindow(req.Date, req.Date)
	if err != nil {
		return report.DailyOverview{}, err
	}

	punches, err := s.punchRepo.ListByRange(ctx, window.Start, windowEnd(window))
	if err != nil {
		return report.DailyOverview{}, fmt.Errorf("failed to fetch punches: %w", err)
	}

	now := s.clk.Now()
	stats, rows := s.reconciler.DailyOverview(punches, req.Date, now)

	return report.DailyOverview{
		Date:        req.Date,
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Stats:       stats,
		Rows:        rows,
	}, nil
}

// ExportMonthlyCSV implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyCSV(ctx context.Context, req report.MonthlyReportRequest) ([][]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	window := monthWindow(req.Year, time.Month(req.Month))

	punches, err := s.punchRepo.ListByRange(ctx, window.Start, windowEnd(window))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch punches: %w", err)
	}

	employees, _, err := s.reconciler.Reconcile(punches, window)
	if err != nil {
		return nil, err
	}

	return BuildMonthlyCSV(employees, window), nil
}

// monthWindow covers an entire calendar month, both endpoints inclusive.
func monthWindow(year int, month time.Month) report.Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return report.Window{Start: start, End: end}
}

func parseWindow(startDate, endDate string) (report.Window, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return report.Window{}, report.ErrInvalidWindow
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.UTC)
	if err != nil {
		return report.Window{}, report.ErrInvalidWindow
	}
	if end.Before(start) {
		return report.Window{}, report.ErrInvalidWindow
	}
	return report.Window{Start: start, End: end}, nil
}

// windowEnd is the upper fetch bound: the last nanosecond of the
// window's final day, so overnight OUTs inside the window still load.
func windowEnd(window report.Window) time.Time {
	day := time.Date(window.End.Year(), window.End.Month(), window.End.Day(), 0, 0, 0, 0, window.End.Location())
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
