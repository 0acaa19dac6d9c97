package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
	"github.com/kantorkita/hrms-backend-go/internal/domain/leave"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/response"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/validator"
	leavesvc "github.com/kantorkita/hrms-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leavesvc.Service
}

func NewLeaveHandler(leaveService leavesvc.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

func actorFromIdentity(identity middleware.Identity) user.User {
	return user.User{
		ID:         identity.UserID,
		Role:       identity.Role,
		DivisionID: identity.DivisionID,
	}
}

// Submit implements LeaveHandler.
func (h *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var createReq leave.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Leave submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(createReq); err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := h.leaveService.Submit(r.Context(), identity.UserID, createReq)
	if err != nil {
		slog.Error("Leave submit service error", "error", err, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}
	slog.Info("Leave request submitted", "request_id", req.ID, "user_id", identity.UserID, "status", req.Status)
	response.Created(w, "Leave request submitted", leave.ToResponse(req))
}

// GetByID implements LeaveHandler.
func (h *LeaveHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	req, err := h.leaveService.GetByID(r.Context(), id, actorFromIdentity(identity))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.ToResponse(req))
}

func leaveFilterFromQuery(r *http.Request) (leave.ListFilter, error) {
	from, err := queryDate(r, "from")
	if err != nil {
		return leave.ListFilter{}, err
	}
	to, err := queryDate(r, "to")
	if err != nil {
		return leave.ListFilter{}, err
	}

	filter := leave.ListFilter{
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

// ListMine implements LeaveHandler.
func (h *LeaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	filter, err := leaveFilterFromQuery(r)
	if err != nil {
		response.BadRequest(w, "Dates must use the format 2006-01-02", nil)
		return
	}

	requests, total, err := h.leaveService.ListMine(r.Context(), identity.UserID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeLeaveList(w, requests, filter, total)
}

// List implements LeaveHandler. Managers and admins only; enforced by the
// router. Managers are confined to their own division.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	filter, err := leaveFilterFromQuery(r)
	if err != nil {
		response.BadRequest(w, "Dates must use the format 2006-01-02", nil)
		return
	}
	if identity.Role != user.RoleAdmin {
		filter.DivisionID = identity.DivisionID
	}

	requests, total, err := h.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeLeaveList(w, requests, filter, total)
}

func writeLeaveList(w http.ResponseWriter, requests []leave.Request, filter leave.ListFilter, total int64) {
	out := make([]leave.Response, 0, len(requests))
	for _, req := range requests {
		out = append(out, leave.ToResponse(req))
	}
	response.SuccessWithMeta(w, out, response.NewMeta(filter.Page, filter.Limit, total))
}

// Decide implements LeaveHandler.
func (h *LeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var decisionReq leave.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&decisionReq); err != nil {
		slog.Error("Leave decide decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(decisionReq); err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := h.leaveService.Decide(r.Context(), id, identity.UserID, decisionReq)
	if err != nil {
		slog.Error("Leave decide service error", "error", err, "request_id", id, "approver_id", identity.UserID)
		response.HandleError(w, err)
		return
	}
	slog.Info("Leave request decided", "request_id", id, "approver_id", identity.UserID, "status", req.Status)
	response.SuccessWithMessage(w, "Decision recorded", leave.ToResponse(req))
}

// Cancel implements LeaveHandler.
func (h *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var cancelReq leave.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&cancelReq); err != nil && err != io.EOF {
		slog.Error("Leave cancel decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(cancelReq); err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := h.leaveService.Cancel(r.Context(), id, actorFromIdentity(identity), cancelReq)
	if err != nil {
		slog.Error("Leave cancel service error", "error", err, "request_id", id, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}
	slog.Info("Leave request cancelled", "request_id", id, "user_id", identity.UserID)
	response.SuccessWithMessage(w, "Request cancelled", leave.ToResponse(req))
}
