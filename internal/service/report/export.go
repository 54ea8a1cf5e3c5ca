package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/report"
)

const timeLayout = "15:04"

// BuildMonthlyCSV renders a reconciled report as CSV rows: one row per
// employee, one column per calendar day of the window, and a trailing
// total. Each day cell encodes the shift as a single string:
//
//	"09:00-17:30 (8.5h) Present"
//	"IN: 09:00 - Absent (No OUT)"
//	"Absent"
func BuildMonthlyCSV(employees map[string]report.EmployeeAttendance, window report.Window) [][]string {
	dates := windowDates(window)

	header := []string{"Employee ID", "Employee Name", "Department", "Designation"}
	for i := range dates {
		header = append(header, fmt.Sprintf("%d", i+1))
	}
	header = append(header, "Total Working Hours")

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

	rows := [][]string{header}
	for _, emp := range sorted {
		row := []string{emp.EmployeeID, emp.EmployeeName, emp.Department, emp.Designation}

		var totalHours float64
		for _, date := range dates {
			day, ok := emp.Days[date]
			cell := "Absent"

			switch {
			case ok && day.InTime != nil && day.OutTime != nil:
				totalHours += day.WorkHours
				cell = fmt.Sprintf("%s-%s (%.1fh) %s",
					day.InTime.Format(timeLayout),
					day.OutTime.Format(timeLayout),
					day.WorkHours,
					day.Status.Label,
				)
			case ok && day.InTime != nil:
				cell = fmt.Sprintf("IN: %s - %s", day.InTime.Format(timeLayout), day.Status.Label)
			case ok && day.OutTime != nil:
				cell = fmt.Sprintf("OUT: %s - %s", day.OutTime.Format(timeLayout), day.Status.Label)
			}

			row = append(row, cell)
		}

		row = append(row, fmt.Sprintf("%.2f", totalHours))
		rows = append(rows, row)
	}

	return rows
}

// windowDates expands an inclusive window into its YYYY-MM-DD dates.
func windowDates(window report.Window) []string {
	start := time.Date(window.Start.Year(), window.Start.Month(), window.Start.Day(), 0, 0, 0, 0, window.Start.Location())
	end := time.Date(window.End.Year(), window.End.Month(), window.End.Day(), 0, 0, 0, 0, window.End.Location())

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}
