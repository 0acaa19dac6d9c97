package approval

import "time"

// Outcome is the result of a decision applied to a pending request. The
// caller persists State, DecidedStep and SkippedSteps in one transaction.
type Outcome struct {
	State        State
	DecidedStep  Step
	SkippedSteps []Step
}

// Decide applies an approver's decision to the current pending step.
//
// Transitions:
//   - approve on a non-final step: stay pending, advance to the next step
//   - approve on the final step:   terminal approved
//   - reject on any step:          terminal rejected, remaining steps skipped
//
// The function is pure; persistence and locking are the caller's concern.
func Decide(st State, steps []Step, approverID string, decision Decision, note *string, now time.Time) (Outcome, error) {
	if st.Status.Terminal() {
		return Outcome{}, ErrRequestFinalized
	}
	if st.Status != StatusPending {
		return Outcome{}, ErrRequestFinalized
	}
	if decision != DecisionApproved && decision != DecisionRejected {
		return Outcome{}, ErrInvalidDecision
	}

	var current *Step
	for i := range steps {
		if steps[i].StepOrder == st.CurrentStep {
			current = &steps[i]
			break
		}
	}
	if current == nil {
		return Outcome{}, ErrStepMissing
	}
	if current.ApproverID != approverID {
		return Outcome{}, ErrNotCurrentApprover
	}
	if current.Decision != DecisionPending {
		return Outcome{}, ErrRequestFinalized
	}

	decided := *current
	decided.Decision = decision
	decided.Note = note
	decided.DecidedAt = &now

	out := Outcome{State: st, DecidedStep: decided}

	if decision == DecisionRejected {
		out.State.Status = StatusRejected
		for _, s := range steps {
			if s.StepOrder > st.CurrentStep && s.Decision == DecisionPending {
				s.Decision = DecisionSkipped
				out.SkippedSteps = append(out.SkippedSteps, s)
			}
		}
		return out, nil
	}

	if st.CurrentStep >= lastOrder(steps) {
		out.State.Status = StatusApproved
	} else {
		out.State.CurrentStep = st.CurrentStep + 1
	}
	return out, nil
}

// Cancel transitions a pending request to terminal cancelled. Only the
// original requester or an admin may cancel.
func Cancel(st State, actorID string, isAdmin bool) (State, error) {
	if st.Status.Terminal() {
		return State{}, ErrRequestFinalized
	}
	if actorID != st.RequesterID && !isAdmin {
		return State{}, ErrCancelNotAllowed
	}
	st.Status = StatusCancelled
	return st, nil
}

func lastOrder(steps []Step) int {
	max := 0
	for _, s := range steps {
		if s.StepOrder > max {
			max = s.StepOrder
		}
	}
	return max
}
