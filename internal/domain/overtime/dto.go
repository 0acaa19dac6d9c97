package overtime

import (
	"time"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
)

type CreateRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
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
	ID              string                  `json:"id"`
	UserID          string                  `json:"user_id"`
	UserName        *string                 `json:"user_name,omitempty"`
	Date            string                  `json:"date"`
	StartTime       string                  `json:"start_time"`
	EndTime         string                  `json:"end_time"`
	DurationMinutes int                     `json:"duration_minutes"`
	Reason          string                  `json:"reason"`
	Status          approval.Status         `json:"status"`
	CurrentStep     int                     `json:"current_step,omitempty"`
	Steps           []approval.StepResponse `json:"steps"`
	SubmittedAt     time.Time               `json:"submitted_at"`
}

func ToResponse(r Request) Response {
	resp := Response{
		ID:              r.ID,
		UserID:          r.UserID,
		UserName:        r.UserName,
		Date:            r.Date.Format("2006-01-02"),
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		DurationMinutes: r.DurationMinutes,
		Reason:          r.Reason,
		Status:          r.Status,
		SubmittedAt:     r.SubmittedAt,
	}
	if r.Status == approval.StatusPending {
		resp.CurrentStep = r.CurrentStep
	}
	resp.Steps = approval.ToStepResponses(r.Steps)
	return resp
}
