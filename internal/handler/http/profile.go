package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/response"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/validator"
	usersvc "github.com/kantorkita/hrms-backend-go/internal/service/user"
)

type ProfileHandler interface {
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	DeactivateUser(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	userService usersvc.Service
}

func NewProfileHandler(userService usersvc.Service) ProfileHandler {
	return &ProfileHandlerImpl{userService: userService}
}

// GetProfile implements ProfileHandler.
func (h *ProfileHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	u, err := h.userService.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("GetProfile service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, user.ToResponse(u))
}

// UpdateProfile implements ProfileHandler.
func (h *ProfileHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var updateReq user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(updateReq); err != nil {
		response.HandleError(w, err)
		return
	}

	u, err := h.userService.UpdateProfile(r.Context(), identity.UserID, updateReq)
	if err != nil {
		slog.Error("UpdateProfile service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile updated", user.ToResponse(u))
}

// ListUsers implements ProfileHandler. Admin only; enforced by the router.
func (h *ProfileHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := user.ListFilter{
		DivisionID: queryString(r, "division_id"),
		Search:     queryString(r, "search"),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
	}
	if roleStr := queryString(r, "role"); roleStr != nil {
		role := user.Role(*roleStr)
		filter.Role = &role
	}

	users, total, err := h.userService.List(r.Context(), filter)
	if err != nil {
		slog.Error("ListUsers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]user.Response, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToResponse(u))
	}
	response.SuccessWithMeta(w, out, response.NewMeta(filter.Page, filter.Limit, total))
}

// DeactivateUser implements ProfileHandler. Admin only; enforced by the router.
func (h *ProfileHandlerImpl) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userService.Deactivate(r.Context(), id); err != nil {
		slog.Error("DeactivateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}
	slog.Info("User deactivated", "user_id", id)
	response.SuccessWithMessage(w, "User deactivated", nil)
}
