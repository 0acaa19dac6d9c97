package leave

import (
	"time"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
)

// Request is a leave request. Status and CurrentStep are owned by the
// approval engine; the approver chain itself lives in approval steps
// resolved at submission time.
type Request struct {
	ID     string
	UserID string

	StartDate time.Time
	EndDate   time.Time
	TotalDays int
	Reason    string

	Status      approval.Status
	CurrentStep int

	CancelledBy        *string
	CancelledAt        *time.Time
	CancellationReason *string

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join fields for responses
	UserName *string
	Steps    []approval.Step
}

// State extracts the workflow view the approval engine operates on.
func (r Request) State() approval.State {
	return approval.State{
		RequestID:   r.ID,
		RequesterID: r.UserID,
		Status:      r.Status,
		CurrentStep: r.CurrentStep,
	}
}
