package leave

import (
	"time"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
)

type CreateRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"required,max=500"`
}

type DecisionRequest struct {
	Decision string  `json:"decision" validate:"required,oneof=approved rejected"`
	Note     *string `json:"note" validate:"omitempty,max=500"`
}

type CancelRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

type Response struct {
	ID          string                  `json:"id"`
	UserID      string                  `json:"user_id"`
	UserName    *string                 `json:"user_name,omitempty"`
	StartDate   string                  `json:"start_date"`
	EndDate     string                  `json:"end_date"`
	TotalDays   int                     `json:"total_days"`
	Reason      string                  `json:"reason"`
	Status      approval.Status         `json:"status"`
	CurrentStep int                     `json:"current_step,omitempty"`
	Steps       []approval.StepResponse `json:"steps"`
	SubmittedAt time.Time               `json:"submitted_at"`
}

func ToResponse(r Request) Response {
	resp := Response{
		ID:          r.ID,
		UserID:      r.UserID,
		UserName:    r.UserName,
		StartDate:   r.StartDate.Format("2006-01-02"),
		EndDate:     r.EndDate.Format("2006-01-02"),
		TotalDays:   r.TotalDays,
		Reason:      r.Reason,
		Status:      r.Status,
		SubmittedAt: r.SubmittedAt,
	}
	if r.Status == approval.StatusPending {
		resp.CurrentStep = r.CurrentStep
	}
	resp.Steps = approval.ToStepResponses(r.Steps)
	return resp
}
