package approval

import "errors"

var (
	// ErrChainUnresolved is the configuration error: the approval matrix
	// could not produce the required approvers for the requester.
	ErrChainUnresolved = errors.New("approval chain cannot be resolved for requester")

	// ErrNotCurrentApprover is an authorization error: the actor is not the
	// approver of the current pending step.
	ErrNotCurrentApprover = errors.New("actor is not the approver of the current step")

	// ErrRequestFinalized is an invalid-state error: the request is already
	// in a terminal state (approved, rejected or cancelled).
	ErrRequestFinalized = errors.New("request is already finalized")

	ErrCancelNotAllowed = errors.New("only the requester or an admin can cancel a pending request")
	ErrInvalidDecision  = errors.New("decision must be approved or rejected")
	ErrStepMissing      = errors.New("no step recorded for the current position")
)
