package punch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/device"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/employee"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/punch"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/sse"
	"github.com/shancon-hr/attendance-backend-go/internal/service/file"
)

type PunchServiceImpl struct {
	punchRepo    punch.PunchRepository
	employeeRepo employee.EmployeeRepository
	deviceRepo   device.DeviceRepository
	fileService  file.FileService
	sseHub       *sse.Hub
	clk          clock.Clock
}

func NewPunchService(
	punchRepo punch.PunchRepository,
	employeeRepo employee.EmployeeRepository,
	deviceRepo device.DeviceRepository,
	fileService file.FileService,
	sseHub *sse.Hub,
	clk clock.Clock,
) punch.PunchService {
	return &PunchServiceImpl{
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
		deviceRepo:   deviceRepo,
		fileService:  fileService,
		sseHub:       sseHub,
		clk:          clk,
	}
}

// Mark implements punch.PunchService.
func (s *PunchServiceImpl) Mark(ctx context.Context, req punch.MarkPunchRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	dev, err := s.deviceRepo.GetByFingerprint(ctx, req.DeviceFingerprint)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.PunchResponse{}, device.ErrDeviceNotFound
		}
		return punch.PunchResponse{}, fmt.Errorf("failed to look up device: %w", err)
	}

	switch dev.Status {
	case device.StatusRevoked:
		return punch.PunchResponse{}, device.ErrDeviceRevoked
	case device.StatusApproved:
		// ok
	default:
		return punch.PunchResponse{}, device.ErrDeviceNotApproved
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Kiosks may send the employee code instead of the UUID.
			emp, err = s.employeeRepo.GetByCode(ctx, req.EmployeeID)
		}
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return punch.PunchResponse{}, employee.ErrEmployeeNotFound
			}
			return punch.PunchResponse{}, fmt.Errorf("failed to look up employee: %w", err)
		}
	}

	if emp.Status != employee.StatusActive {
		return punch.PunchResponse{}, employee.ErrEmployeeInactive
	}

	punchedAt := s.clk.Now()
	if req.Timestamp != nil && *req.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, *req.Timestamp); err == nil {
			punchedAt = parsed
		}
	}

	var proofPath *string
	if req.File != nil && req.FileHeader != nil {
		path, err := s.fileService.UploadPunchProof(ctx, emp.ID, punchedAt, req.File, req.FileHeader.Filename, req.Type)
		if err != nil {
			return punch.PunchResponse{}, fmt.Errorf("failed to store proof photo: %w", err)
		}
		proofPath = &path
	}

	created, err := s.punchRepo.Create(ctx, punch.Punch{
		EmployeeID:    emp.ID,
		Type:          punch.Type(req.Type),
		Timestamp:     punchedAt,
		DeviceID:      &dev.ID,
		ProofPhotoURL: proofPath,
	})
	if err != nil {
		return punch.PunchResponse{}, fmt.Errorf("failed to create punch: %w", err)
	}

	if err := s.deviceRepo.TouchLastSeen(ctx, dev.ID, punchedAt); err != nil {
		// Activity tracking is best effort.
		slog.Warn("failed to update device last seen", "device_id", dev.ID, "error", err)
	}

	created.EmployeeName = &emp.FullName
	created.Department = &emp.Department
	created.Designation = &emp.Designation

	resp := toResponse(created)

	s.sseHub.Broadcast(sse.Event{
		Event: "punch.marked",
		Data:  resp,
	})

	return resp, nil
}

// List implements punch.PunchService.
func (s *PunchServiceImpl) List(ctx context.Context, filter punch.PunchFilter) (punch.ListPunchesResponse, error) {
	if err := filter.Validate(); err != nil {
		return punch.ListPunchesResponse{}, err
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	punches, total, err := s.punchRepo.List(ctx, filter)
	if err != nil {
		return punch.ListPunchesResponse{}, fmt.Errorf("failed to list punches: %w", err)
	}

	responses := make([]punch.PunchResponse, 0, len(punches))
	for _, p := range punches {
		responses = append(responses, toResponse(p))
	}

	return punch.ListPunchesResponse{
		Punches:    responses,
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func toResponse(p punch.Punch) punch.PunchResponse {
	return punch.PunchResponse{
		ID:            p.ID,
		EmployeeID:    p.EmployeeID,
		EmployeeName:  p.EmployeeName,
		Department:    p.Department,
		Designation:   p.Designation,
		Type:          string(p.Type),
		Timestamp:     p.Timestamp.Format(time.RFC3339),
		DeviceID:      p.DeviceID,
		ProofPhotoURL: p.ProofPhotoURL,
	}
}
