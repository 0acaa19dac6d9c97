package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingChain(requestID string, approverIDs ...string) []Step {
	steps := make([]Step, 0, len(approverIDs))
	for i, id := range approverIDs {
		steps = append(steps, Step{
			ID:          "step-" + id,
			RequestType: RequestTypeLeave,
			RequestID:   requestID,
			StepOrder:   i + 1,
			ApproverID:  id,
			Decision:    DecisionPending,
		})
	}
	return steps
}

func TestDecide_ApproveAdvancesToNextStep(t *testing.T) {
	st := State{RequestID: "req-1", RequesterID: "emp-1", Status: StatusPending, CurrentStep: 1}
	steps := pendingChain("req-1", "mgr-eng", "mgr-hr", "admin-1")

	out, err := Decide(st, steps, "mgr-eng", DecisionApproved, nil, time.Now())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, out.State.Status)
	assert.Equal(t, 2, out.State.CurrentStep)
	assert.Equal(t, DecisionApproved, out.DecidedStep.Decision)
	assert.Equal(t, "mgr-eng", out.DecidedStep.ApproverID)
	assert.NotNil(t, out.DecidedStep.DecidedAt)
	assert.Empty(t, out.SkippedSteps)
}

func TestDecide_ApproveFinalStepTerminatesApproved(t *testing.T) {
	st := State{RequestID: "req-1", RequesterID: "emp-1", Status: StatusPending, CurrentStep: 3}
	steps := pendingChain("req-1", "mgr-eng", "mgr-hr", "admin-1")
	steps[0].Decision = DecisionApproved
	steps[1].Decision = DecisionApproved

	out, err := Decide(st, steps, "admin-1", DecisionApproved, nil, time.Now())
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, out.State.Status)
	assert.True(t, out.State.Status.Terminal())
}

func TestDecide_RejectTerminatesAndSkipsRemaining(t *testing.T) {
	st := State{RequestID: "req-1", RequesterID: "emp-1", Status: StatusPending, CurrentStep: 1}
	steps := pendingChain("req-1", "mgr-eng", "mgr-hr", "admin-1")

	note := "insufficient coverage during that week"
	out, err := Decide(st, steps, "mgr-eng", DecisionRejected, &note, time.Now())
	require.NoError(t, err)

	assert.Equal(t, StatusRejected, out.State.Status)
	assert.Equal(t, &note, out.DecidedStep.Note)
	require.Len(t, out.SkippedSteps, 2)
	for _, s := range out.SkippedSteps {
		assert.Equal(t, DecisionSkipped, s.Decision)
	}
}

func TestDecide_WrongApproverIsRejected(t *testing.T) {
	st := State{RequestID: "req-1", RequesterID: "emp-1", Status: StatusPending, CurrentStep: 1}
	steps := pendingChain("req-1", "mgr-eng", "mgr-hr")

	// The second approver cannot act before the chain reaches them.
	_, err := Decide(st, steps, "mgr-hr", DecisionApproved, nil, time.Now())
	assert.ErrorIs(t, err, ErrNotCurrentApprover)
}

func TestDecide_FinalizedRequestRefusesFurtherDecisions(t *testing.T) {
	steps := pendingChain("req-1", "mgr-eng", "mgr-hr")

	for _, status := range []Status{StatusApproved, StatusRejected, StatusCancelled} {
		st := State{RequestID: "req-1", RequesterID: "emp-1", Status: status, CurrentStep: 1}
		_, err := Decide(st, steps, "mgr-eng", DecisionApproved, nil, time.Now())
		assert.ErrorIs(t, err, ErrRequestFinalized, "status %s", status)
	}
}

func TestDecide_RejectThenApproveFails(t *testing.T) {
	st := State{RequestID: "req-1", RequesterID: "emp-1", Status: StatusPending, CurrentStep: 1}
	steps := pendingChain("req-1", "mgr-eng", "mgr-hr")

	out, err := Decide(st, steps, "mgr-eng", DecisionRejected, nil, time.Now())
	require.NoError(t, err)
	require.Equal(t, StatusRejected, out.State.Status)

	_, err = Decide(out.State, steps, "mgr-hr", DecisionApproved, nil, time.Now())
	assert.ErrorIs(t, err, ErrRequestFinalized)
}

func TestDecide_InvalidDecisionValue(t *testing.T) {
	st := State{RequestID: "req-1", RequesterID: "emp-1", Status: StatusPending, CurrentStep: 1}
	steps := pendingChain("req-1", "mgr-eng")

	_, err := Decide(st, steps, "mgr-eng", DecisionSkipped, nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidDecision)

	_, err = Decide(st, steps, "mgr-eng", DecisionPending, nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestDecide_MissingStepForCurrentPosition(t *testing.T) {
	st := State{RequestID: "req-1", RequesterID: "emp-1", Status: StatusPending, CurrentStep: 5}
	steps := pendingChain("req-1", "mgr-eng")

	_, err := Decide(st, steps, "mgr-eng", DecisionApproved, nil, time.Now())
	assert.ErrorIs(t, err, ErrStepMissing)
}

func TestCancel_RequesterCancelsPendingRequest(t *testing.T) {
	st := State{RequestID: "req-1", RequesterID: "emp-1", Status: StatusPending, CurrentStep: 2}

	out, err := Cancel(st, "emp-1", false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, out.Status)
}

func TestCancel_AdminCancelsOnBehalf(t *testing.T) {
	st := State{RequestID: "req-1", RequesterID: "emp-1", Status: StatusPending, CurrentStep: 1}

	out, err := Cancel(st, "admin-1", true)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, out.Status)
}

func TestCancel_OtherUsersCannotCancel(t *testing.T) {
	st := State{RequestID: "req-1", RequesterID: "emp-1", Status: StatusPending, CurrentStep: 1}

	_, err := Cancel(st, "emp-2", false)
	assert.ErrorIs(t, err, ErrCancelNotAllowed)
}

func TestCancel_FinalizedRequestCannotBeCancelled(t *testing.T) {
	for _, status := range []Status{StatusApproved, StatusRejected, StatusCancelled} {
		st := State{RequestID: "req-1", RequesterID: "emp-1", Status: status}
		_, err := Cancel(st, "emp-1", false)
		assert.ErrorIs(t, err, ErrRequestFinalized, "status %s", status)
	}
}

func TestStepsFromChain_OrdersStepsFromOne(t *testing.T) {
	chain := []Approver{
		{UserID: "mgr-eng"},
		{UserID: "mgr-hr"},
	}
	steps := StepsFromChain(RequestTypeOvertime, "req-9", chain)

	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0].StepOrder)
	assert.Equal(t, 2, steps[1].StepOrder)
	for _, s := range steps {
		assert.Equal(t, RequestTypeOvertime, s.RequestType)
		assert.Equal(t, "req-9", s.RequestID)
		assert.Equal(t, DecisionPending, s.Decision)
	}
}
