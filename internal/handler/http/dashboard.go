package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/response"
	approvalsvc "github.com/kantorkita/hrms-backend-go/internal/service/approval"
	dashboardsvc "github.com/kantorkita/hrms-backend-go/internal/service/dashboard"
)

type DashboardHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	PendingApprovals(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboardsvc.Service
	approvalService  approvalsvc.Service
}

func NewDashboardHandler(dashboardService dashboardsvc.Service, approvalService approvalsvc.Service) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService, approvalService: approvalService}
}

// Summary implements DashboardHandler. Defaults to the current month;
// override with ?month=2006-01.
func (h *DashboardHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	month := time.Now()
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		parsed, err := time.Parse("2006-01", monthStr)
		if err != nil {
			response.BadRequest(w, "Month must use the format 2006-01", nil)
			return
		}
		month = parsed
	}

	summary, err := h.dashboardService.Summary(r.Context(), actorFromIdentity(identity), month)
	if err != nil {
		slog.Error("Dashboard summary service error", "error", err, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// PendingApprovals lists the steps currently waiting on the caller.
func (h *DashboardHandlerImpl) PendingApprovals(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	steps, err := h.approvalService.PendingForApprover(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("PendingApprovals service error", "error", err, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}

	type pendingStep struct {
		RequestType approval.RequestType  `json:"request_type"`
		RequestID   string                `json:"request_id"`
		Step        approval.StepResponse `json:"step"`
	}
	out := make([]pendingStep, 0, len(steps))
	for _, s := range steps {
		out = append(out, pendingStep{
			RequestType: s.RequestType,
			RequestID:   s.RequestID,
			Step:        approval.ToStepResponses([]approval.Step{s})[0],
		})
	}
	response.Success(w, out)
}
