package report

import (
	"math"
	"sort"
	"time"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/punch"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/report"
)

// Classification thresholds, in fractional hours.
const (
	// StandardStartHour is the shift start used by monthly/range
	// classification. An IN after 9:00 counts as late.
	StandardStartHour = 9.0

	// DailyLateThresholdHour is the late cutoff used by the single-day
	// overview. The daily dashboard historically allowed a 15-minute
	// grace window, so it is kept at 9:15 rather than unified with
	// StandardStartHour.
	DailyLateThresholdHour = 9.25

	HalfDayThreshold = 4.0
	FullDayThreshold = 8.0

	maxShiftHours = 24.0
)

const dateLayout = "2006-01-02"

// Reconciler turns a flat punch list into per-employee, per-day
// attendance. It is a pure computation: no I/O, no clock reads, no state
// between calls.
type Reconciler struct {
}

func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Reconcile pairs the punches of a reporting window into shifts and
// classifies each employee-day. Malformed records are skipped, never
// fatal; the only error is a window whose end precedes its start.
func (r *Reconciler) Reconcile(punches []punch.Punch, window report.Window) (map[string]report.EmployeeAttendance, report.WindowStats, error) {
	if window.End.Before(window.Start) {
		return nil, report.WindowStats{}, report.ErrInvalidWindow
	}

	stats := report.WindowStats{
		TotalPunchRecords: len(punches),
	}

	grouped, order := groupByEmployee(punches)

	result := make(map[string]report.EmployeeAttendance, len(grouped))
	for _, employeeID := range order {
		group := grouped[employeeID]

		days, skipped, superseded := r.pairPunches(group)
		stats.SkippedRecords += skipped
		stats.SupersededIns += superseded

		att := report.EmployeeAttendance{
			EmployeeID: employeeID,
			Days:       days,
		}
		// Display fields ride along on the punches themselves.
		for _, p := range group {
			if att.EmployeeName == "" && p.EmployeeName != nil {
				att.EmployeeName = *p.EmployeeName
			}
			if att.Department == "" && p.Department != nil {
				att.Department = *p.Department
			}
			if att.Designation == "" && p.Designation != nil {
				att.Designation = *p.Designation
			}
		}

		for _, day := range days {
			if day.Status.Status != report.StatusAbsent {
				stats.TotalPresentDays++
			}
		}

		result[employeeID] = att
	}

	stats.UniqueEmployees = len(result)
	stats.AverageAttendancePercent = averageAttendance(stats.TotalPresentDays, stats.UniqueEmployees, window.DaysInWindow())

	return result, stats, nil
}

// pairPunches folds one employee's chronologically sorted punches into
// ShiftDay entries keyed by the IN punch's calendar date.
//
// The pairing is a two-state machine per employee: idle, or open with
// exactly one pending IN. A second IN while one is pending supersedes it
// (last IN wins); the abandoned IN is recorded as an IN-only day for its
// own date and counted.
func (r *Reconciler) pairPunches(punches []punch.Punch) (days map[string]report.ShiftDay, skipped int, superseded int) {
	sorted := make([]punch.Punch, len(punches))
	copy(sorted, punches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	days = make(map[string]report.ShiftDay)
	var pending *punch.Punch

	for i := range sorted {
		p := sorted[i]

		if p.Timestamp.IsZero() || !p.Type.Valid() {
			skipped++
			continue
		}

		switch p.Type {
		case punch.TypeIn:
			if pending != nil {
				r.recordAbandonedIn(days, *pending)
				superseded++
			}
			pending = &sorted[i]

		case punch.TypeOut:
			if pending != nil {
				r.closeShift(days, *pending, p)
				pending = nil
			} else {
				r.recordUnmatchedOut(days, p)
			}
		}
	}

	// A still-open shift at the end of the window stays an IN-only day.
	if pending != nil {
		r.recordAbandonedIn(days, *pending)
	}

	for date, day := range days {
		day.WorkHours = CalculateWorkHours(day.InTime, day.OutTime)
		day.Status = ClassifyStatus(day.InTime, day.OutTime, day.WorkHours)
		days[date] = day
	}

	return days, skipped, superseded
}

// closeShift records a matched IN/OUT pair on the IN's calendar date.
// The OUT may fall on the next date (overnight shift).
func (r *Reconciler) closeShift(days map[string]report.ShiftDay, in punch.Punch, out punch.Punch) {
	date := in.Timestamp.Format(dateLayout)
	day, ok := days[date]
	if !ok {
		day = report.ShiftDay{Date: date}
	}

	// Keep the earliest IN seen for the day.
	if day.InTime == nil || in.Timestamp.Before(*day.InTime) {
		t := in.Timestamp
		day.InTime = &t
	}
	t := out.Timestamp
	day.OutTime = &t
	day.RawPunches = append(day.RawPunches, in, out)

	days[date] = day
}

// recordAbandonedIn records an IN that never got an OUT, either because a
// later IN superseded it or the window ended.
func (r *Reconciler) recordAbandonedIn(days map[string]report.ShiftDay, in punch.Punch) {
	date := in.Timestamp.Format(dateLayout)
	day, ok := days[date]
	if !ok {
		day = report.ShiftDay{Date: date}
	}

	if day.InTime == nil {
		t := in.Timestamp
		day.InTime = &t
	}
	day.RawPunches = append(day.RawPunches, in)

	days[date] = day
}

// recordUnmatchedOut records an OUT with no pending IN, keyed by the
// OUT's own calendar date. The latest such OUT wins.
func (r *Reconciler) recordUnmatchedOut(days map[string]report.ShiftDay, out punch.Punch) {
	date := out.Timestamp.Format(dateLayout)
	day, ok := days[date]
	if !ok {
		day = report.ShiftDay{Date: date}
	}

	if day.OutTime == nil || out.Timestamp.After(*day.OutTime) {
		t := out.Timestamp
		day.OutTime = &t
	}
	day.RawPunches = append(day.RawPunches, out)

	days[date] = day
}

// CalculateWorkHours returns the worked duration of a shift in fractional
// hours. A negative span means the OUT wrapped past midnight relative to
// a same-day comparison and gets 24 hours added back. The result is
// clamped to [0, 24].
func CalculateWorkHours(inTime *time.Time, outTime *time.Time) float64 {
	if inTime == nil || outTime == nil {
		return 0
	}

	hours := outTime.Sub(*inTime).Hours()
	if hours < 0 {
		hours += 24
	}
	if hours < 0 {
		return 0
	}
	if hours > maxShiftHours {
		return maxShiftHours
	}
	return hours
}

// ClassifyStatus applies the day classification rules in order:
// single-punch days are absent with a qualifying label, then worked hours
// decide between half-day and full-day, with lateness judged against
// StandardStartHour.
func ClassifyStatus(inTime *time.Time, outTime *time.Time, workHours float64) report.DayStatus {
	switch {
	case inTime != nil && outTime == nil:
		return report.DayStatus{Status: report.StatusAbsent, Label: "Absent (No OUT)"}
	case inTime == nil && outTime != nil:
		return report.DayStatus{Status: report.StatusAbsent, Label: "Absent (No IN)"}
	case inTime == nil && outTime == nil:
		return report.DayStatus{Status: report.StatusAbsent, Label: "Absent"}
	}

	isLate := fractionalHour(*inTime) > StandardStartHour

	switch {
	case workHours < HalfDayThreshold:
		return report.DayStatus{Status: report.StatusHalfDay, Label: "Absent (<4h)"}
	case workHours < FullDayThreshold:
		if isLate {
			return report.DayStatus{Status: report.StatusHalfDay, Label: "Late/Half Day"}
		}
		return report.DayStatus{Status: report.StatusHalfDay, Label: "Half Day"}
	default:
		if isLate {
			return report.DayStatus{Status: report.StatusLate, Label: "Late"}
		}
		return report.DayStatus{Status: report.StatusPresent, Label: "Present"}
	}
}

// DailyOverview folds one calendar day's punches into the live dashboard
// rows and counters. now is the injected current instant; when date is
// today, employees still on shift get elapsed hours against now instead
// of their last punch.
func (r *Reconciler) DailyOverview(punches []punch.Punch, date string, now time.Time) (report.DailyStats, []report.DailyEmployeeRow) {
	grouped, order := groupByEmployee(punches)

	isToday := now.Format(dateLayout) == date

	var stats report.DailyStats
	rows := make([]report.DailyEmployeeRow, 0, len(grouped))

	for _, employeeID := range order {
		group := grouped[employeeID]

		sorted := make([]punch.Punch, len(group))
		copy(sorted, group)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		})

		row := report.DailyEmployeeRow{EmployeeID: employeeID}

		for _, p := range sorted {
			if p.Timestamp.IsZero() || !p.Type.Valid() {
				continue
			}

			if p.EmployeeName != nil {
				row.EmployeeName = *p.EmployeeName
			}
			if p.Department != nil {
				row.Department = *p.Department
			}
			if p.Designation != nil {
				row.Designation = *p.Designation
			}

			t := p.Timestamp
			switch p.Type {
			case punch.TypeIn:
				if row.FirstIn == nil {
					row.FirstIn = &t
				}
			case punch.TypeOut:
				if row.LastOut == nil || t.After(*row.LastOut) {
					row.LastOut = &t
				}
			}
			row.LastPunch = &t
			row.LastType = string(p.Type)
			row.DeviceID = p.DeviceID
		}

		if row.LastPunch == nil {
			// Every punch for this employee was malformed.
			continue
		}

		row.Working = row.LastType == string(punch.TypeIn)

		if row.FirstIn != nil {
			row.IsLate = fractionalHour(*row.FirstIn) > DailyLateThresholdHour
		}

		switch {
		case row.Working && isToday:
			// Shift in progress: elapsed hours against the injected clock.
			row.WorkHours = CalculateWorkHours(row.FirstIn, &now)
		default:
			// Gross span from first IN to the last punch of the day, so a
			// trailing IN with no OUT still extends the span.
			row.WorkHours = CalculateWorkHours(row.FirstIn, row.LastPunch)
		}

		stats.TotalPresent++
		if row.IsLate {
			stats.Late++
		} else {
			stats.OnTime++
		}
		if row.Working {
			stats.CurrentlyActive++
		} else {
			stats.CheckedOut++
		}

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EmployeeName < rows[j].EmployeeName
	})

	return stats, rows
}

// groupByEmployee splits punches per employee, preserving first-seen
// employee order so results are deterministic.
func groupByEmployee(punches []punch.Punch) (map[string][]punch.Punch, []string) {
	grouped := make(map[string][]punch.Punch)
	order := make([]string, 0)

	for _, p := range punches {
		if p.EmployeeID == "" {
			continue
		}
		if _, ok := grouped[p.EmployeeID]; !ok {
			order = append(order, p.EmployeeID)
		}
		grouped[p.EmployeeID] = append(grouped[p.EmployeeID], p)
	}

	return grouped, order
}

// fractionalHour converts a timestamp's wall-clock time of day into
// fractional hours, e.g. 09:30 -> 9.5.
func fractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60.0
}

// averageAttendance computes the window attendance percentage rounded to
// one decimal. Zero employees means zero percent, never a division error.
func averageAttendance(totalPresentDays int, uniqueEmployees int, daysInWindow int) float64 {
	if uniqueEmployees == 0 || daysInWindow == 0 {
		return 0
	}
	pct := float64(totalPresentDays) / float64(uniqueEmployees*daysInWindow) * 100
	return math.Round(pct*10) / 10
}
