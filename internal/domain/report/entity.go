package report

import (
	"time"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/punch"
)

// Status is the reconciled classification of one employee-day.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
	StatusAbsent  Status = "absent"
)

// DayStatus pairs the machine status with the human-readable badge label.
type DayStatus struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
}

// ShiftDay is one reconciled employee-day, keyed by the calendar date of
// its IN punch. The OUT may fall on the following date (overnight shift).
type ShiftDay struct {
	Date       string        `json:"date"` // YYYY-MM-DD
	InTime     *time.Time    `json:"in_time,omitempty"`
	OutTime    *time.Time    `json:"out_time,omitempty"`
	RawPunches []punch.Punch `json:"-"`
	WorkHours  float64       `json:"work_hours"`
	Status     DayStatus     `json:"status"`
}

// EmployeeAttendance is the reconciled month/range view for one employee.
// Days maps YYYY-MM-DD to the ShiftDay for that date; dates with no
// punches are simply absent from the map.
type EmployeeAttendance struct {
	EmployeeID   string              `json:"employee_id"`
	EmployeeName string              `json:"employee_name"`
	Department   string              `json:"department"`
	Designation  string              `json:"designation"`
	Days         map[string]ShiftDay `json:"days"`
}

// Window is an inclusive reporting date range. Both bounds are taken at
// calendar-day granularity.
type Window struct {
	Start time.Time
	End   time.Time
}

// DaysInWindow returns the number of calendar days in the window,
// counting both endpoints.
func (w Window) DaysInWindow() int {
	start := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, w.Start.Location())
	end := time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, w.End.Location())
	return int(end.Sub(start).Hours()/24) + 1
}

// WindowStats are the aggregate statistics for a reporting window.
type WindowStats struct {
	UniqueEmployees          int     `json:"unique_employees"`
	TotalPunchRecords        int     `json:"total_punch_records"`
	TotalPresentDays         int     `json:"total_present_days"`
	AverageAttendancePercent float64 `json:"average_attendance_percent"`

	// Records excluded from pairing (missing timestamp or unknown type)
	// and IN punches superseded by a later IN before any OUT.
	SkippedRecords int `json:"skipped_records"`
	SupersededIns  int `json:"superseded_ins"`
}

// DailyEmployeeRow is one employee's line in the single-day overview.
type DailyEmployeeRow struct {
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	Department   string     `json:"department"`
	Designation  string     `json:"designation"`
	FirstIn      *time.Time `json:"first_in,omitempty"`
	LastOut      *time.Time `json:"last_out,omitempty"`
	LastPunch    *time.Time `json:"last_punch,omitempty"`
	LastType     string     `json:"last_type,omitempty"`
	DeviceID     *string    `json:"device_id,omitempty"`
	Working      bool       `json:"working"` // last punch is IN with no later OUT
	IsLate       bool       `json:"is_late"`
	WorkHours    float64    `json:"work_hours"`
}

// DailyStats are the single-day dashboard counters.
type DailyStats struct {
	TotalPresent    int `json:"total_present"` // employees with any punch that day
	OnTime          int `json:"on_time"`
	Late            int `json:"late"`
	CurrentlyActive int `json:"currently_active"`
	CheckedOut      int `json:"checked_out"`
}
