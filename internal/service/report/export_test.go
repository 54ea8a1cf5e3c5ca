package report

import (
	"testing"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthlyCSV(t *testing.T) {
	r := NewReconciler()
	window := mkWindow(t, "2024-01-01", "2024-01-31")

	punches := []punch.Punch{
		mkPunch(t, "E1", punch.TypeIn, "2024-01-02T09:00"),
		mkPunch(t, "E1", punch.TypeOut, "2024-01-02T17:30"),
		mkPunch(t, "E1", punch.TypeIn, "2024-01-03T10:15"),
	}

	employees, _, err := r.Reconcile(punches, window)
	require.NoError(t, err)

	rows := BuildMonthlyCSV(employees, window)
	require.Len(t, rows, 2)

	header := rows[0]
	// 4 identity columns, 31 day columns, 1 total column.
	require.Len(t, header, 36)
	assert.Equal(t, "Employee ID", header[0])
	assert.Equal(t, "1", header[4])
	assert.Equal(t, "31", header[34])
	assert.Equal(t, "Total Working Hours", header[35])

	row := rows[1]
	assert.Equal(t, "E1", row[0])
	assert.Equal(t, "Employee E1", row[1])

	assert.Equal(t, "Absent", row[4])
	assert.Equal(t, "09:00-17:30 (8.5h) Present", row[5])
	assert.Equal(t, "IN: 10:15 - Absent (No OUT)", row[6])
	// Only closed shifts count toward the monthly total.
	assert.Equal(t, "8.50", row[35])
}

func TestBuildMonthlyCSV_UnmatchedOutCell(t *testing.T) {
	r := NewReconciler()
	window := mkWindow(t, "2024-02-01", "2024-02-29")

	punches := []punch.Punch{
		mkPunch(t, "E1", punch.TypeOut, "2024-02-05T18:00"),
	}

	employees, _, err := r.Reconcile(punches, window)
	require.NoError(t, err)

	rows := BuildMonthlyCSV(employees, window)
	require.Len(t, rows, 2)
	assert.Equal(t, "OUT: 18:00 - Absent (No IN)", rows[1][8])
	assert.Equal(t, "0.00", rows[1][33])
}

func TestBuildMonthlyCSV_SortsEmployeesByName(t *testing.T) {
	r := NewReconciler()
	window := mkWindow(t, "2024-03-01", "2024-03-31")

	punches := []punch.Punch{
		mkPunch(t, "E2", punch.TypeIn, "2024-03-04T09:00"),
		mkPunch(t, "E2", punch.TypeOut, "2024-03-04T17:00"),
		mkPunch(t, "E1", punch.TypeIn, "2024-03-04T09:00"),
		mkPunch(t, "E1", punch.TypeOut, "2024-03-04T17:00"),
	}

	employees, _, err := r.Reconcile(punches, window)
	require.NoError(t, err)

	rows := BuildMonthlyCSV(employees, window)
	require.Len(t, rows, 3)
	assert.Equal(t, "E1", rows[1][0])
	assert.Equal(t, "E2", rows[2][0])
}

func TestBuildMonthlyCSV_Idempotent(t *testing.T) {
	r := NewReconciler()
	window := mkWindow(t, "2024-01-01", "2024-01-31")

	punches := []punch.Punch{
		mkPunch(t, "E1", punch.TypeIn, "2024-01-02T09:00"),
		mkPunch(t, "E1", punch.TypeOut, "2024-01-02T17:30"),
	}

	employees, _, err := r.Reconcile(punches, window)
	require.NoError(t, err)

	first := BuildMonthlyCSV(employees, window)
	second := BuildMonthlyCSV(employees, window)
	assert.Equal(t, first, second)
}
