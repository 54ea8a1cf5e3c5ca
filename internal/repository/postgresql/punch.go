package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/punch"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/database"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

// Create implements punch.PunchRepository.
func (r *punchRepositoryImpl) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punches (employee_id, punch_type, punched_at, device_id, proof_photo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_id, punch_type, punched_at, device_id, proof_photo_url, created_at
	`

	var created punch.Punch
	err := q.QueryRow(ctx, query,
		p.EmployeeID, p.Type, p.Timestamp, p.DeviceID, p.ProofPhotoURL,
	).Scan(
		&created.ID, &created.EmployeeID, &created.Type, &created.Timestamp,
		&created.DeviceID, &created.ProofPhotoURL, &created.CreatedAt,
	)
	if err != nil {
		return punch.Punch{}, err
	}
	return created, nil
}

// ListByRange implements punch.PunchRepository. Punches come back ordered
// by timestamp ascending, which the reconciliation pairing depends on.
func (r *punchRepositoryImpl) ListByRange(ctx context.Context, from time.Time, to time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.employee_id, p.punch_type, p.punched_at, p.device_id, p.proof_photo_url, p.created_at,
			   e.full_name, e.department, e.designation
		FROM punches p
		JOIN employees e ON p.employee_id = e.id
		WHERE p.punched_at >= $1 AND p.punched_at <= $2
		ORDER BY p.punched_at ASC, p.created_at ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		var p punch.Punch
		err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.Type, &p.Timestamp,
			&p.DeviceID, &p.ProofPhotoURL, &p.CreatedAt,
			&p.EmployeeName, &p.Department, &p.Designation,
		)
		if err != nil {
			return nil, err
		}
		punches = append(punches, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return punches, nil
}

// List implements punch.PunchRepository.
func (r *punchRepositoryImpl) List(ctx context.Context, filter punch.PunchFilter) ([]punch.Punch, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClause += fmt.Sprintf(" AND p.employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}

	if filter.Type != nil && *filter.Type != "" {
		whereClause += fmt.Sprintf(" AND p.punch_type = $%d", argIndex)
		args = append(args, *filter.Type)
		argIndex++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClause += fmt.Sprintf(" AND p.punched_at >= $%d::date", argIndex)
		args = append(args, *filter.StartDate)
		argIndex++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClause += fmt.Sprintf(" AND p.punched_at < $%d::date + INTERVAL '1 day'", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}

	// Count total
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM punches p %s`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Get data with pagination
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	offset := (filter.Page - 1) * filter.Limit

	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.employee_id, p.punch_type, p.punched_at, p.device_id, p.proof_photo_url, p.created_at,
			   e.full_name, e.department, e.designation
		FROM punches p
		JOIN employees e ON p.employee_id = e.id
		%s
		ORDER BY p.punched_at %s
		LIMIT $%d OFFSET $%d
	`, whereClause, sortOrder, argIndex, argIndex+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		var p punch.Punch
		err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.Type, &p.Timestamp,
			&p.DeviceID, &p.ProofPhotoURL, &p.CreatedAt,
			&p.EmployeeName, &p.Department, &p.Designation,
		)
		if err != nil {
			return nil, 0, err
		}
		punches = append(punches, p)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return punches, total, nil
}

// GetStaleOpenIns implements punch.PunchRepository.
func (r *punchRepositoryImpl) GetStaleOpenIns(ctx context.Context, cutoff time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT ON (p.employee_id)
			   p.id, p.employee_id, p.punch_type, p.punched_at, p.device_id, p.proof_photo_url, p.created_at,
			   e.full_name, e.department, e.designation
		FROM punches p
		JOIN employees e ON p.employee_id = e.id
		WHERE p.punch_type = 'IN'
		  AND p.punched_at < $1
		  AND NOT EXISTS (
			  SELECT 1 FROM punches o
			  WHERE o.employee_id = p.employee_id
				AND o.punch_type = 'OUT'
				AND o.punched_at > p.punched_at
		  )
		ORDER BY p.employee_id, p.punched_at DESC
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		var p punch.Punch
		err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.Type, &p.Timestamp,
			&p.DeviceID, &p.ProofPhotoURL, &p.CreatedAt,
			&p.EmployeeName, &p.Department, &p.Designation,
		)
		if err != nil {
			return nil, err
		}
		punches = append(punches, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return punches, nil
}
