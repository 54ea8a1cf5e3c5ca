package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/punch"
	"github.com/shancon-hr/attendance-backend-go/internal/handler/http/response"
)

type PunchHandler interface {
	MarkPunch(w http.ResponseWriter, r *http.Request)
	ListPunches(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.PunchService
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &punchHandlerImpl{punchService: punchService}
}

// MarkPunch ingests a clock event from a kiosk. The request is multipart:
// a 'data' field carrying the JSON payload and an optional 'photo' field
// with the webcam capture.
func (h *punchHandlerImpl) MarkPunch(w http.ResponseWriter, r *http.Request) {
	var req punch.MarkPunchRequest

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// The proof photo is optional; kiosks without a webcam still punch.
	file, fileHeader, err := r.FormFile("photo")
	if err != nil && err != http.ErrMissingFile {
		slog.Error("Failed to read proof photo", "error", err)
		response.BadRequest(w, "Invalid proof photo", nil)
		return
	}
	if file != nil {
		defer file.Close()
		req.File = file
		req.FileHeader = fileHeader
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.punchService.Mark(r.Context(), req)
	if err != nil {
		slog.Error("MarkPunch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded successfully", resp)
}

func (h *punchHandlerImpl) ListPunches(w http.ResponseWriter, r *http.Request) {
	filter := punch.PunchFilter{}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if punchType := r.URL.Query().Get("type"); punchType != "" {
		filter.Type = &punchType
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if sortOrder := r.URL.Query().Get("sort_order"); sortOrder != "" {
		filter.SortOrder = sortOrder
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

	resp, err := h.punchService.List(r.Context(), filter)
	if err != nil {
		slog.Error("ListPunches service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp.Punches, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.TotalItems,
	})
}
