package approval

import (
	"time"

	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
	// DecisionSkipped marks steps after a rejection; they never execute.
	DecisionSkipped Decision = "skipped"
)

type RequestType string

const (
	RequestTypeLeave    RequestType = "leave"
	RequestTypeOvertime RequestType = "overtime"
)

// Step is one persisted entry of a request's approver chain. The chain is
// resolved once at submission; later hierarchy changes do not touch it.
type Step struct {
	ID           string
	RequestType  RequestType
	RequestID    string
	StepOrder    int // 1-based, fixed at submission
	ApproverID   string
	ApproverRole user.Role
	Decision     Decision
	Note         *string
	DecidedAt    *time.Time
	CreatedAt    time.Time

	// Join field for responses
	ApproverName *string
}

// State is the workflow-relevant slice of a request row. CurrentStep is
// 1-based and only meaningful while Status is pending.
type State struct {
	RequestID   string
	RequesterID string
	Status      Status
	CurrentStep int
}

// Approver is one resolved entry of a chain before it is persisted as steps.
type Approver struct {
	UserID     string
	Role       user.Role
	DivisionID *string
}

// StepsFromChain materializes a resolved chain into ordered pending steps.
func StepsFromChain(requestType RequestType, requestID string, chain []Approver) []Step {
	steps := make([]Step, 0, len(chain))
	for i, a := range chain {
		steps = append(steps, Step{
			RequestType:  requestType,
			RequestID:    requestID,
			StepOrder:    i + 1,
			ApproverID:   a.UserID,
			ApproverRole: a.Role,
			Decision:     DecisionPending,
		})
	}
	return steps
}
