package report

import (
	"context"
	"testing"
	"time"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/punch"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/report"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPunchRepo serves a fixed punch list filtered by range.
type stubPunchRepo struct {
	punches []punch.Punch
}

func (s *stubPunchRepo) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	return p, nil
}

func (s *stubPunchRepo) ListByRange(ctx context.Context, from time.Time, to time.Time) ([]punch.Punch, error) {
	var out []punch.Punch
	for _, p := range s.punches {
		if !p.Timestamp.Before(from) && !p.Timestamp.After(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPunchRepo) List(ctx context.Context, filter punch.PunchFilter) ([]punch.Punch, int64, error) {
	return s.punches, int64(len(s.punches)), nil
}

func (s *stubPunchRepo) GetStaleOpenIns(ctx context.Context, cutoff time.Time) ([]punch.Punch, error) {
	return nil, nil
}

func TestReportService_GenerateMonthlyReport(t *testing.T) {
	repo := &stubPunchRepo{
		punches: []punch.Punch{
			mkPunch(t, "E1", punch.TypeIn, "2024-01-10T08:30"),
			mkPunch(t, "E1", punch.TypeOut, "2024-01-10T17:00"),
			// Outside January, must not leak into the report.
			mkPunch(t, "E1", punch.TypeIn, "2024-02-01T08:30"),
		},
	}
	clk := clock.Fixed{Instant: mustTime(t, "2024-02-15T10:00")}
	svc := NewReportService(repo, clk)

	rep, err := svc.GenerateMonthlyReport(context.Background(), report.MonthlyReportRequest{Month: 1, Year: 2024})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", rep.PeriodStart)
	assert.Equal(t, "2024-01-31", rep.PeriodEnd)
	require.Len(t, rep.Employees, 1)
	assert.Equal(t, 2, rep.Stats.TotalPunchRecords)
	assert.Equal(t, 1, rep.Stats.TotalPresentDays)

	day := rep.Employees[0].Days["2024-01-10"]
	assert.Equal(t, "Present", day.Status.Label)
}

func TestReportService_GenerateMonthlyReport_InvalidMonth(t *testing.T) {
	svc := NewReportService(&stubPunchRepo{}, clock.NewRealClock())

	_, err := svc.GenerateMonthlyReport(context.Background(), report.MonthlyReportRequest{Month: 13, Year: 2024})
	assert.Error(t, err)
}

func TestReportService_GenerateRangeReport(t *testing.T) {
	repo := &stubPunchRepo{
		punches: []punch.Punch{
			mkPunch(t, "E1", punch.TypeIn, "2024-03-04T09:00"),
			mkPunch(t, "E1", punch.TypeOut, "2024-03-04T18:00"),
			mkPunch(t, "E2", punch.TypeIn, "2024-03-05T09:30"),
			mkPunch(t, "E2", punch.TypeOut, "2024-03-05T17:45"),
		},
	}
	clk := clock.Fixed{Instant: mustTime(t, "2024-03-10T12:00")}
	svc := NewReportService(repo, clk)

	rep, err := svc.GenerateRangeReport(context.Background(), report.RangeReportRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-05",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Stats.UniqueEmployees)
	assert.Equal(t, 2, rep.Stats.TotalPresentDays)
	// 2 present days over 2 employees x 2 days.
	assert.Equal(t, 50.0, rep.Stats.AverageAttendancePercent)
}

func TestReportService_GenerateRangeReport_EndBeforeStart(t *testing.T) {
	svc := NewReportService(&stubPunchRepo{}, clock.NewRealClock())

	_, err := svc.GenerateRangeReport(context.Background(), report.RangeReportRequest{
		StartDate: "2024-03-10",
		EndDate:   "2024-03-01",
	})
	assert.Error(t, err)
}

func TestReportService_GenerateDailyOverview(t *testing.T) {
	repo := &stubPunchRepo{
		punches: []punch.Punch{
			mkPunch(t, "E1", punch.TypeIn, "2024-03-04T09:00"),
		},
	}
	clk := clock.Fixed{Instant: mustTime(t, "2024-03-04T13:00")}
	svc := NewReportService(repo, clk)

	overview, err := svc.GenerateDailyOverview(context.Background(), report.DailyOverviewRequest{Date: "2024-03-04"})
	require.NoError(t, err)

	assert.Equal(t, 1, overview.Stats.TotalPresent)
	assert.Equal(t, 1, overview.Stats.CurrentlyActive)
	require.Len(t, overview.Rows, 1)
	// Shift still open on "today": elapsed against the injected clock.
	assert.Equal(t, 4.0, overview.Rows[0].WorkHours)
}

func TestReportService_ExportMonthlyCSV(t *testing.T) {
	repo := &stubPunchRepo{
		punches: []punch.Punch{
			mkPunch(t, "E1", punch.TypeIn, "2024-01-02T09:00"),
			mkPunch(t, "E1", punch.TypeOut, "2024-01-02T17:00"),
		},
	}
	svc := NewReportService(repo, clock.NewRealClock())

	rows, err := svc.ExportMonthlyCSV(context.Background(), report.MonthlyReportRequest{Month: 1, Year: 2024})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "09:00-17:00 (8.0h) Present", rows[1][5])
}
