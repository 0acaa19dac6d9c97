package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
	"github.com/kantorkita/hrms-backend-go/internal/domain/overtime"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/response"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/validator"
	overtimesvc "github.com/kantorkita/hrms-backend-go/internal/service/overtime"
)

type OvertimeHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type OvertimeHandlerImpl struct {
	overtimeService overtimesvc.Service
}

func NewOvertimeHandler(overtimeService overtimesvc.Service) OvertimeHandler {
	return &OvertimeHandlerImpl{overtimeService: overtimeService}
}

// Submit implements OvertimeHandler.
func (h *OvertimeHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var createReq overtime.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Overtime submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(createReq); err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := h.overtimeService.Submit(r.Context(), identity.UserID, createReq)
	if err != nil {
		slog.Error("Overtime submit service error", "error", err, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}
	slog.Info("Overtime request submitted", "request_id", req.ID, "user_id", identity.UserID, "status", req.Status)
	response.Created(w, "Overtime request submitted", overtime.ToResponse(req))
}

// GetByID implements OvertimeHandler.
func (h *OvertimeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	req, err := h.overtimeService.GetByID(r.Context(), id, actorFromIdentity(identity))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, overtime.ToResponse(req))
}

func overtimeFilterFromQuery(r *http.Request) (overtime.ListFilter, error) {
	from, err := queryDate(r, "from")
	if err != nil {
		return overtime.ListFilter{}, err
	}
	to, err := queryDate(r, "to")
	if err != nil {
		return overtime.ListFilter{}, err
	}

	filter := overtime.ListFilter{
		DivisionID: queryString(r, "division_id"),
		From:       from,
		To:         to,
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
	}
	if statusStr := queryString(r, "status"); statusStr != nil {
		status := approval.Status(*statusStr)
		filter.Status = &status
	}
	return filter, nil
}

// ListMine implements OvertimeHandler.
func (h *OvertimeHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	filter, err := overtimeFilterFromQuery(r)
	if err != nil {
		response.BadRequest(w, "Dates must use the format 2006-01-02", nil)
		return
	}

	requests, total, err := h.overtimeService.ListMine(r.Context(), identity.UserID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeOvertimeList(w, requests, filter, total)
}

// List implements OvertimeHandler. Managers and admins only; enforced by the
// router. Managers are confined to their own division.
func (h *OvertimeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	filter, err := overtimeFilterFromQuery(r)
	if err != nil {
		response.BadRequest(w, "Dates must use the format 2006-01-02", nil)
		return
	}
	if identity.Role != user.RoleAdmin {
		filter.DivisionID = identity.DivisionID
	}

	requests, total, err := h.overtimeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeOvertimeList(w, requests, filter, total)
}

func writeOvertimeList(w http.ResponseWriter, requests []overtime.Request, filter overtime.ListFilter, total int64) {
	out := make([]overtime.Response, 0, len(requests))
	for _, req := range requests {
		out = append(out, overtime.ToResponse(req))
	}
	response.SuccessWithMeta(w, out, response.NewMeta(filter.Page, filter.Limit, total))
}

// Decide implements OvertimeHandler.
func (h *OvertimeHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var decisionReq overtime.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&decisionReq); err != nil {
		slog.Error("Overtime decide decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(decisionReq); err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := h.overtimeService.Decide(r.Context(), id, identity.UserID, decisionReq)
	if err != nil {
		slog.Error("Overtime decide service error", "error", err, "request_id", id, "approver_id", identity.UserID)
		response.HandleError(w, err)
		return
	}
	slog.Info("Overtime request decided", "request_id", id, "approver_id", identity.UserID, "status", req.Status)
	response.SuccessWithMessage(w, "Decision recorded", overtime.ToResponse(req))
}

// Cancel implements OvertimeHandler.
func (h *OvertimeHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var cancelReq overtime.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&cancelReq); err != nil && err != io.EOF {
		slog.Error("Overtime cancel decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(cancelReq); err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := h.overtimeService.Cancel(r.Context(), id, actorFromIdentity(identity), cancelReq)
	if err != nil {
		slog.Error("Overtime cancel service error", "error", err, "request_id", id, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}
	slog.Info("Overtime request cancelled", "request_id", id, "user_id", identity.UserID)
	response.SuccessWithMessage(w, "Request cancelled", overtime.ToResponse(req))
}
