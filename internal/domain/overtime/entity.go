package overtime

import (
	"time"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
)

// Request is an overtime request; it shares the approval machinery with
// leave requests but covers a single date with a start/end time.
type Request struct {
	ID     string
	UserID string

	Date            time.Time
	StartTime       string // "15:04"
	EndTime         string
	DurationMinutes int
	Reason          string

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

func (r Request) State() approval.State {
	return approval.State{
		RequestID:   r.ID,
		RequesterID: r.UserID,
		Status:      r.Status,
		CurrentStep: r.CurrentStep,
	}
}
