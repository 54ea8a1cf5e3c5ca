package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/device"
	"github.com/shancon-hr/attendance-backend-go/internal/handler/http/response"
)

type DeviceHandler interface {
	RegisterDevice(w http.ResponseWriter, r *http.Request)
	GetDevice(w http.ResponseWriter, r *http.Request)
	ListDevices(w http.ResponseWriter, r *http.Request)
	ApproveDevice(w http.ResponseWriter, r *http.Request)
	RevokeDevice(w http.ResponseWriter, r *http.Request)
}

type deviceHandlerImpl struct {
	deviceService device.DeviceService
}

func NewDeviceHandler(deviceService device.DeviceService) DeviceHandler {
	return &deviceHandlerImpl{deviceService: deviceService}
}

// RegisterDevice is the only unauthenticated device endpoint. Kiosks call
// it on first boot and stay pending until an admin approves them.
func (h *deviceHandlerImpl) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var req device.RegisterDeviceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RegisterDevice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.deviceService.Register(r.Context(), req)
	if err != nil {
		slog.Error("RegisterDevice service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Device registered, pending approval", resp)
}

func (h *deviceHandlerImpl) GetDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.deviceService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Device retrieved successfully", resp)
}

func (h *deviceHandlerImpl) ListDevices(w http.ResponseWriter, r *http.Request) {
	filter := device.DeviceFilter{}

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.deviceService.List(r.Context(), filter)
	if err != nil {
		slog.Error("ListDevices service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp.Devices, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.TotalItems,
	})
}

func (h *deviceHandlerImpl) ApproveDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.deviceService.Approve(r.Context(), id)
	if err != nil {
		slog.Error("ApproveDevice service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Device approved", "device_id", id)
	response.SuccessWithMessage(w, "Device approved successfully", resp)
}

func (h *deviceHandlerImpl) RevokeDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.deviceService.Revoke(r.Context(), id)
	if err != nil {
		slog.Error("RevokeDevice service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Device revoked", "device_id", id)
	response.SuccessWithMessage(w, "Device revoked successfully", resp)
}
