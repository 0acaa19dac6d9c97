package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/kantorkita/hrms-backend-go/internal/domain/attendance"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/response"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/validator"
	attendancesvc "github.com/kantorkita/hrms-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendancesvc.Service
}

func NewAttendanceHandler(attendanceService attendancesvc.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler. The body is optional; clients
// without geolocation or face verification send nothing.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var checkInReq attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&checkInReq); err != nil && err != io.EOF {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(checkInReq); err != nil {
		response.HandleError(w, err)
		return
	}

	rec, err := h.attendanceService.CheckIn(r.Context(), identity.UserID, checkInReq)
	if err != nil {
		slog.Error("CheckIn service error", "error", err, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}
	slog.Info("User checked in", "user_id", identity.UserID, "record_id", rec.ID)
	response.Created(w, "Checked in", attendance.ToResponse(rec))
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var checkOutReq attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&checkOutReq); err != nil && err != io.EOF {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(checkOutReq); err != nil {
		response.HandleError(w, err)
		return
	}

	rec, err := h.attendanceService.CheckOut(r.Context(), identity.UserID, checkOutReq)
	if err != nil {
		slog.Error("CheckOut service error", "error", err, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}
	slog.Info("User checked out", "user_id", identity.UserID, "record_id", rec.ID)
	response.SuccessWithMessage(w, "Checked out", attendance.ToResponse(rec))
}

func attendanceFilterFromQuery(r *http.Request) (attendance.ListFilter, error) {
	from, err := queryDate(r, "from")
	if err != nil {
		return attendance.ListFilter{}, err
	}
	to, err := queryDate(r, "to")
	if err != nil {
		return attendance.ListFilter{}, err
	}
	return attendance.ListFilter{
		From:       from,
		To:         to,
		DivisionID: queryString(r, "division_id"),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
	}, nil
}

// ListMine implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	filter, err := attendanceFilterFromQuery(r)
	if err != nil {
		response.BadRequest(w, "Dates must use the format 2006-01-02", nil)
		return
	}

	records, total, err := h.attendanceService.ListMine(r.Context(), identity.UserID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]attendance.Response, 0, len(records))
	for _, rec := range records {
		out = append(out, attendance.ToResponse(rec))
	}
	response.SuccessWithMeta(w, out, response.NewMeta(filter.Page, filter.Limit, total))
}

// List implements AttendanceHandler. Managers and admins only; enforced by
// the router.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	filter, err := attendanceFilterFromQuery(r)
	if err != nil {
		response.BadRequest(w, "Dates must use the format 2006-01-02", nil)
		return
	}

	// Managers are confined to their own division regardless of the query.
	if identity.Role != user.RoleAdmin {
		filter.DivisionID = identity.DivisionID
	}

	records, total, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]attendance.Response, 0, len(records))
	for _, rec := range records {
		out = append(out, attendance.ToResponse(rec))
	}
	response.SuccessWithMeta(w, out, response.NewMeta(filter.Page, filter.Limit, total))
}
