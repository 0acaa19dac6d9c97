package approval

import "context"

// StepRepository persists approver chains. Steps are immutable after
// creation except for their decision fields.
type StepRepository interface {
	CreateBatch(ctx context.Context, steps []Step) ([]Step, error)
	ListByRequest(ctx context.Context, requestType RequestType, requestID string) ([]Step, error)
	UpdateDecision(ctx context.Context, step Step) error
	ListPendingForApprover(ctx context.Context, approverID string) ([]Step, error)
}
