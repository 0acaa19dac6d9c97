package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kantorkita/hrms-backend-go/internal/domain/division"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/response"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/validator"
	divisionsvc "github.com/kantorkita/hrms-backend-go/internal/service/division"
)

type DivisionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Tree(w http.ResponseWriter, r *http.Request)
	Children(w http.ResponseWriter, r *http.Request)
	Ancestors(w http.ResponseWriter, r *http.Request)
	Employees(w http.ResponseWriter, r *http.Request)
}

type DivisionHandlerImpl struct {
	divisionService divisionsvc.Service
}

func NewDivisionHandler(divisionService divisionsvc.Service) DivisionHandler {
	return &DivisionHandlerImpl{divisionService: divisionService}
}

// Create implements DivisionHandler. Admin only; enforced by the router.
func (h *DivisionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq division.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Division create decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(createReq); err != nil {
		response.HandleError(w, err)
		return
	}

	d, err := h.divisionService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Division create service error", "error", err)
		response.HandleError(w, err)
		return
	}
	slog.Info("Division created", "division_id", d.ID, "code", d.Code)
	response.Created(w, "Division created", division.ToResponse(d))
}

// GetByID implements DivisionHandler.
func (h *DivisionHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := h.divisionService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, division.ToResponse(d))
}

// Update implements DivisionHandler. Admin only; enforced by the router.
func (h *DivisionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var updateReq division.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Division update decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(updateReq); err != nil {
		response.HandleError(w, err)
		return
	}

	d, err := h.divisionService.Update(r.Context(), id, updateReq)
	if err != nil {
		slog.Error("Division update service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Division updated", division.ToResponse(d))
}

// Delete implements DivisionHandler. Admin only; enforced by the router.
func (h *DivisionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.divisionService.Delete(r.Context(), id); err != nil {
		slog.Error("Division delete service error", "error", err)
		response.HandleError(w, err)
		return
	}
	slog.Info("Division deactivated", "division_id", id)
	response.SuccessWithMessage(w, "Division deactivated", nil)
}

// List implements DivisionHandler.
func (h *DivisionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := division.ListFilter{
		ParentID: queryString(r, "parent_id"),
		TopOnly:  r.URL.Query().Get("top_only") == "true",
		Search:   queryString(r, "search"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 20),
	}
	if levelStr := r.URL.Query().Get("level"); levelStr != "" {
		level := queryInt(r, "level", 0)
		filter.Level = &level
	}

	divisions, total, err := h.divisionService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]division.Response, 0, len(divisions))
	for _, d := range divisions {
		out = append(out, division.ToResponse(d))
	}
	response.SuccessWithMeta(w, out, response.NewMeta(filter.Page, filter.Limit, total))
}

// Tree implements DivisionHandler.
func (h *DivisionHandlerImpl) Tree(w http.ResponseWriter, r *http.Request) {
	roots, err := h.divisionService.Tree(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, toTreeResponses(roots))
}

func toTreeResponses(nodes []*division.Node) []division.TreeResponse {
	out := make([]division.TreeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, division.TreeResponse{
			Response: division.ToResponse(n.Division),
			Children: toTreeResponses(n.Children),
		})
	}
	return out
}

// Children implements DivisionHandler.
func (h *DivisionHandlerImpl) Children(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	children, err := h.divisionService.Children(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]division.Response, 0, len(children))
	for _, d := range children {
		out = append(out, division.ToResponse(d))
	}
	response.Success(w, out)
}

// Ancestors implements DivisionHandler.
func (h *DivisionHandlerImpl) Ancestors(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ancestors, err := h.divisionService.Ancestors(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]division.Response, 0, len(ancestors))
	for _, d := range ancestors {
		out = append(out, division.ToResponse(d))
	}
	response.Success(w, out)
}

// Employees implements DivisionHandler.
func (h *DivisionHandlerImpl) Employees(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	filter := user.ListFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}

	users, total, err := h.divisionService.Employees(r.Context(), id, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]user.Response, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToResponse(u))
	}
	response.SuccessWithMeta(w, out, response.NewMeta(filter.Page, filter.Limit, total))
}
