package leave

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
	"github.com/kantorkita/hrms-backend-go/internal/domain/leave"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
)

type fakeLeaveRepo struct {
	byID        map[string]leave.Request
	overlapping bool

	// loseRace makes TransitionState report zero affected rows, the shape a
	// concurrent decision leaves behind.
	loseRace bool
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{byID: map[string]leave.Request{}}
}

func (f *fakeLeaveRepo) Create(_ context.Context, r leave.Request) (leave.Request, error) {
	r.ID = "leave-1"
	r.SubmittedAt = time.Now()
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	r, ok := f.byID[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeLeaveRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.Request, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeLeaveRepo) TransitionState(_ context.Context, id string, fromStep int, to approval.State) (bool, error) {
	if f.loseRace {
		return false, nil
	}
	r, ok := f.byID[id]
	if !ok || r.Status != approval.StatusPending || r.CurrentStep != fromStep {
		return false, nil
	}
	r.Status = to.Status
	r.CurrentStep = to.CurrentStep
	f.byID[id] = r
	return true, nil
}

func (f *fakeLeaveRepo) Cancel(_ context.Context, id, cancelledBy string, reason *string) (bool, error) {
	r, ok := f.byID[id]
	if !ok || r.Status != approval.StatusPending {
		return false, nil
	}
	r.Status = approval.StatusCancelled
	r.CancelledBy = &cancelledBy
	r.CancellationReason = reason
	f.byID[id] = r
	return true, nil
}

func (f *fakeLeaveRepo) ListByUser(_ context.Context, _ string, _ leave.ListFilter) ([]leave.Request, int64, error) {
	return nil, 0, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, _ leave.ListFilter) ([]leave.Request, int64, error) {
	return nil, 0, nil
}

func (f *fakeLeaveRepo) CheckOverlapping(_ context.Context, _ string, _, _ time.Time) (bool, error) {
	return f.overlapping, nil
}

type fakeStepRepo struct {
	byRequest map[string][]approval.Step
}

func newFakeStepRepo() *fakeStepRepo {
	return &fakeStepRepo{byRequest: map[string][]approval.Step{}}
}

func (f *fakeStepRepo) CreateBatch(_ context.Context, steps []approval.Step) ([]approval.Step, error) {
	if len(steps) == 0 {
		return nil, nil
	}
	for i := range steps {
		steps[i].ID = steps[i].RequestID + "-step"
		steps[i].CreatedAt = time.Now()
	}
	f.byRequest[steps[0].RequestID] = steps
	return steps, nil
}

func (f *fakeStepRepo) ListByRequest(_ context.Context, _ approval.RequestType, requestID string) ([]approval.Step, error) {
	return append([]approval.Step(nil), f.byRequest[requestID]...), nil
}

func (f *fakeStepRepo) UpdateDecision(_ context.Context, step approval.Step) error {
	steps := f.byRequest[step.RequestID]
	for i := range steps {
		if steps[i].StepOrder == step.StepOrder {
			steps[i] = step
			return nil
		}
	}
	return approval.ErrStepMissing
}

func (f *fakeStepRepo) ListPendingForApprover(_ context.Context, _ string) ([]approval.Step, error) {
	return nil, nil
}

type fakeUserRepo struct {
	user.Repository
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type fakeApprovalService struct {
	chain []approval.Approver
}

func (f *fakeApprovalService) ResolveChain(_ context.Context, _ user.User) ([]approval.Approver, error) {
	return f.chain, nil
}

func (f *fakeApprovalService) Matrix() approval.Matrix { return approval.Matrix{} }

func (f *fakeApprovalService) PendingForApprover(_ context.Context, _ string) ([]approval.Step, error) {
	return nil, nil
}

type disabledMail struct{}

func (disabledMail) SendDecisionNotice(_, _, _, _ string, _ *string) error { return nil }
func (disabledMail) SendSubmissionNotice(_, _, _, _ string) error          { return nil }
func (disabledMail) Enabled() bool                                         { return false }

func twoStepChain() []approval.Approver {
	engDiv := "engineering"
	hrDiv := "hr"
	return []approval.Approver{
		{UserID: "eng-head", Role: user.RoleManager, DivisionID: &engDiv},
		{UserID: "hr-head", Role: user.RoleManager, DivisionID: &hrDiv},
	}
}

func buildService(chain []approval.Approver) (*fakeLeaveRepo, Service) {
	repo := newFakeLeaveRepo()
	users := &fakeUserRepo{users: map[string]user.User{
		"emp-1": {ID: "emp-1", FullName: "Jane Doe", Email: "jane@kantorkita.id", Role: user.RoleEmployee},
	}}
	svc := NewService(
		nil,
		repo,
		newFakeStepRepo(),
		users,
		&fakeApprovalService{chain: chain},
		disabledMail{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	).(*serviceImpl)
	svc.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	return repo, svc
}

func submitRequest() leave.CreateRequest {
	return leave.CreateRequest{
		StartDate: "2026-09-07",
		EndDate:   "2026-09-09",
		Reason:    "family matters",
	}
}

func TestSubmit_PendingAtStepOne(t *testing.T) {
	_, svc := buildService(twoStepChain())

	created, err := svc.Submit(context.Background(), "emp-1", submitRequest())
	require.NoError(t, err)

	assert.Equal(t, approval.StatusPending, created.Status)
	assert.Equal(t, 1, created.CurrentStep)
	assert.Equal(t, 3, created.TotalDays)
	require.Len(t, created.Steps, 2)
	assert.Equal(t, "eng-head", created.Steps[0].ApproverID)
	assert.Equal(t, "hr-head", created.Steps[1].ApproverID)
}

func TestSubmit_EmptyChainIsBornApproved(t *testing.T) {
	_, svc := buildService(nil)

	created, err := svc.Submit(context.Background(), "emp-1", submitRequest())
	require.NoError(t, err)

	assert.Equal(t, approval.StatusApproved, created.Status)
	assert.Equal(t, 0, created.CurrentStep)
	assert.Empty(t, created.Steps)
}

func TestSubmit_OverlappingWindowRefused(t *testing.T) {
	repo, svc := buildService(twoStepChain())
	repo.overlapping = true

	_, err := svc.Submit(context.Background(), "emp-1", submitRequest())
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestDecide_ChainApprovesStepByStep(t *testing.T) {
	_, svc := buildService(twoStepChain())
	ctx := context.Background()

	created, err := svc.Submit(ctx, "emp-1", submitRequest())
	require.NoError(t, err)

	afterFirst, err := svc.Decide(ctx, created.ID, "eng-head", leave.DecisionRequest{Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, approval.StatusPending, afterFirst.Status)
	assert.Equal(t, 2, afterFirst.CurrentStep)
	assert.Equal(t, approval.DecisionApproved, afterFirst.Steps[0].Decision)

	afterSecond, err := svc.Decide(ctx, created.ID, "hr-head", leave.DecisionRequest{Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, approval.StatusApproved, afterSecond.Status)
	assert.Equal(t, approval.DecisionApproved, afterSecond.Steps[1].Decision)
}

func TestDecide_RejectionSkipsRemainingSteps(t *testing.T) {
	_, svc := buildService(twoStepChain())
	ctx := context.Background()

	created, err := svc.Submit(ctx, "emp-1", submitRequest())
	require.NoError(t, err)

	rejected, err := svc.Decide(ctx, created.ID, "eng-head", leave.DecisionRequest{Decision: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, approval.StatusRejected, rejected.Status)
	assert.Equal(t, approval.DecisionSkipped, rejected.Steps[1].Decision)

	// The second approver can no longer act on the dead request.
	_, err = svc.Decide(ctx, created.ID, "hr-head", leave.DecisionRequest{Decision: "approved"})
	assert.ErrorIs(t, err, approval.ErrRequestFinalized)
}

func TestDecide_WrongApproverRefused(t *testing.T) {
	_, svc := buildService(twoStepChain())
	ctx := context.Background()

	created, err := svc.Submit(ctx, "emp-1", submitRequest())
	require.NoError(t, err)

	_, err = svc.Decide(ctx, created.ID, "hr-head", leave.DecisionRequest{Decision: "approved"})
	assert.ErrorIs(t, err, approval.ErrNotCurrentApprover)
}

func TestDecide_ConcurrentLoserGetsFinalized(t *testing.T) {
	repo, svc := buildService(twoStepChain())
	ctx := context.Background()

	created, err := svc.Submit(ctx, "emp-1", submitRequest())
	require.NoError(t, err)

	repo.loseRace = true
	_, err = svc.Decide(ctx, created.ID, "eng-head", leave.DecisionRequest{Decision: "approved"})
	assert.ErrorIs(t, err, approval.ErrRequestFinalized)
}

func TestCancel_RequesterCancelsPending(t *testing.T) {
	_, svc := buildService(twoStepChain())
	ctx := context.Background()

	created, err := svc.Submit(ctx, "emp-1", submitRequest())
	require.NoError(t, err)

	reason := "plans changed"
	actor := user.User{ID: "emp-1", Role: user.RoleEmployee}
	cancelled, err := svc.Cancel(ctx, created.ID, actor, leave.CancelRequest{Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, approval.StatusCancelled, cancelled.Status)

	_, err = svc.Decide(ctx, created.ID, "eng-head", leave.DecisionRequest{Decision: "approved"})
	assert.ErrorIs(t, err, approval.ErrRequestFinalized)
}
