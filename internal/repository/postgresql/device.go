package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/device"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/database"
)

type deviceRepositoryImpl struct {
	db *database.DB
}

func NewDeviceRepository(db *database.DB) device.DeviceRepository {
	return &deviceRepositoryImpl{db: db}
}

const deviceColumns = `id, name, location, fingerprint, status, last_seen_at, created_at, updated_at`

// Create implements device.DeviceRepository.
func (r *deviceRepositoryImpl) Create(ctx context.Context, d device.Device) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO devices (name, location, fingerprint, status)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, deviceColumns)

	var created device.Device
	err := q.QueryRow(ctx, query, d.Name, d.Location, d.Fingerprint, d.Status).Scan(
		&created.ID, &created.Name, &created.Location, &created.Fingerprint,
		&created.Status, &created.LastSeenAt, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return device.Device{}, err
	}
	return created, nil
}

// GetByID implements device.DeviceRepository.
func (r *deviceRepositoryImpl) GetByID(ctx context.Context, id string) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM devices WHERE id = $1`, deviceColumns)

	var d device.Device
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Location, &d.Fingerprint,
		&d.Status, &d.LastSeenAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return device.Device{}, err
	}
	return d, nil
}

// GetByFingerprint implements device.DeviceRepository.
func (r *deviceRepositoryImpl) GetByFingerprint(ctx context.Context, fingerprint string) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM devices WHERE fingerprint = $1`, deviceColumns)

	var d device.Device
	err := q.QueryRow(ctx, query, fingerprint).Scan(
		&d.ID, &d.Name, &d.Location, &d.Fingerprint,
		&d.Status, &d.LastSeenAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return device.Device{}, err
	}
	return d, nil
}

// List implements device.DeviceRepository.
func (r *deviceRepositoryImpl) List(ctx context.Context, filter device.DeviceFilter) ([]device.Device, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Status != nil && *filter.Status != "" {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM devices %s`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s
		FROM devices
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, deviceColumns, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var devices []device.Device
	for rows.Next() {
		var d device.Device
		err := rows.Scan(
			&d.ID, &d.Name, &d.Location, &d.Fingerprint,
			&d.Status, &d.LastSeenAt, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		devices = append(devices, d)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return devices, total, nil
}

// UpdateStatus implements device.DeviceRepository.
func (r *deviceRepositoryImpl) UpdateStatus(ctx context.Context, id string, status device.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE devices
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, status, id).Scan(&updatedID); err != nil {
		return err
	}

	return nil
}

// TouchLastSeen implements device.DeviceRepository.
func (r *deviceRepositoryImpl) TouchLastSeen(ctx context.Context, id string, seenAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE devices
		SET last_seen_at = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := q.Exec(ctx, query, seenAt, id)
	return err
}

// ListApprovedNotSeenSince implements device.DeviceRepository.
func (r *deviceRepositoryImpl) ListApprovedNotSeenSince(ctx context.Context, cutoff time.Time) ([]device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM devices
		WHERE status = $1
		  AND (last_seen_at IS NULL OR last_seen_at < $2)
	`, deviceColumns)

	rows, err := q.Query(ctx, query, device.StatusApproved, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []device.Device
	for rows.Next() {
		var d device.Device
		err := rows.Scan(
			&d.ID, &d.Name, &d.Location, &d.Fingerprint,
			&d.Status, &d.LastSeenAt, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return devices, nil
}
