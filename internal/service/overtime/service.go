package overtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
	"github.com/kantorkita/hrms-backend-go/internal/domain/overtime"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/database"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/mail"
	"github.com/kantorkita/hrms-backend-go/internal/repository/postgresql"
	approvalsvc "github.com/kantorkita/hrms-backend-go/internal/service/approval"
)

type Service interface {
	Submit(ctx context.Context, userID string, req overtime.CreateRequest) (overtime.Request, error)
	GetByID(ctx context.Context, id string, actor user.User) (overtime.Request, error)
	ListMine(ctx context.Context, userID string, filter overtime.ListFilter) ([]overtime.Request, int64, error)
	List(ctx context.Context, filter overtime.ListFilter) ([]overtime.Request, int64, error)
	Decide(ctx context.Context, id, approverID string, req overtime.DecisionRequest) (overtime.Request, error)
	Cancel(ctx context.Context, id string, actor user.User, req overtime.CancelRequest) (overtime.Request, error)
}

type serviceImpl struct {
	db       *database.DB
	repo     overtime.Repository
	stepRepo approval.StepRepository
	userRepo user.Repository
	approval approvalsvc.Service
	mail     mail.Service
	logger   *slog.Logger
	now      func() time.Time
	runTx    func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewService(
	db *database.DB,
	repo overtime.Repository,
	stepRepo approval.StepRepository,
	userRepo user.Repository,
	approvalService approvalsvc.Service,
	mailService mail.Service,
	logger *slog.Logger,
) Service {
	s := &serviceImpl{
		db:       db,
		repo:     repo,
		stepRepo: stepRepo,
		userRepo: userRepo,
		approval: approvalService,
		mail:     mailService,
		logger:   logger,
		now:      time.Now,
	}
	s.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, s.db, fn)
	}
	return s
}

func (s *serviceImpl) Submit(ctx context.Context, userID string, req overtime.CreateRequest) (overtime.Request, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return overtime.Request{}, overtime.ErrInvalidTimeRange
	}
	startTime, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return overtime.Request{}, overtime.ErrInvalidTimeRange
	}
	endTime, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return overtime.Request{}, overtime.ErrInvalidTimeRange
	}
	if !endTime.After(startTime) {
		return overtime.Request{}, overtime.ErrInvalidTimeRange
	}
	duration := int(endTime.Sub(startTime).Minutes())

	requester, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return overtime.Request{}, err
	}

	open, err := s.repo.HasOpenForDate(ctx, userID, date)
	if err != nil {
		return overtime.Request{}, err
	}
	if open {
		return overtime.Request{}, overtime.ErrDuplicateRequest
	}

	chain, err := s.approval.ResolveChain(ctx, requester)
	if err != nil {
		return overtime.Request{}, err
	}

	created := overtime.Request{
		UserID:          userID,
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: duration,
		Reason:          req.Reason,
	}
	if len(chain) == 0 {
		created.Status = approval.StatusApproved
		created.CurrentStep = 0
	} else {
		created.Status = approval.StatusPending
		created.CurrentStep = 1
	}

	err = s.runTx(ctx, func(txCtx context.Context) error {
		created, err = s.repo.Create(txCtx, created)
		if err != nil {
			return err
		}
		steps := approval.StepsFromChain(approval.RequestTypeOvertime, created.ID, chain)
		created.Steps, err = s.stepRepo.CreateBatch(txCtx, steps)
		return err
	})
	if err != nil {
		return overtime.Request{}, err
	}

	if len(chain) > 0 {
		s.notifyApprover(ctx, chain[0].UserID, requester.FullName)
	}

	created.UserName = &requester.FullName
	return created, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (overtime.Request, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return overtime.Request{}, err
	}
	req.Steps, err = s.stepRepo.ListByRequest(ctx, approval.RequestTypeOvertime, id)
	if err != nil {
		return overtime.Request{}, err
	}
	return req, nil
}

func (s *serviceImpl) GetByID(ctx context.Context, id string, actor user.User) (overtime.Request, error) {
	req, err := s.load(ctx, id)
	if err != nil {
		return overtime.Request{}, err
	}

	if !canViewRequest(req.UserID, req.Steps, actor) {
		return overtime.Request{}, overtime.ErrRequestNotFound
	}
	return req, nil
}

func canViewRequest(requesterID string, steps []approval.Step, actor user.User) bool {
	if actor.IsAdmin() || actor.ID == requesterID {
		return true
	}
	for _, step := range steps {
		if step.ApproverID == actor.ID {
			return true
		}
	}
	return false
}

func (s *serviceImpl) ListMine(ctx context.Context, userID string, filter overtime.ListFilter) ([]overtime.Request, int64, error) {
	return s.repo.ListByUser(ctx, userID, filter)
}

func (s *serviceImpl) List(ctx context.Context, filter overtime.ListFilter) ([]overtime.Request, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *serviceImpl) Decide(ctx context.Context, id, approverID string, req overtime.DecisionRequest) (overtime.Request, error) {
	var outcome approval.Outcome

	err := s.runTx(ctx, func(txCtx context.Context) error {
		locked, err := s.repo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		steps, err := s.stepRepo.ListByRequest(txCtx, approval.RequestTypeOvertime, id)
		if err != nil {
			return err
		}

		outcome, err = approval.Decide(locked.State(), steps, approverID, approval.Decision(req.Decision), req.Note, s.now())
		if err != nil {
			return err
		}

		if err := s.stepRepo.UpdateDecision(txCtx, outcome.DecidedStep); err != nil {
			return err
		}
		for _, skipped := range outcome.SkippedSteps {
			if err := s.stepRepo.UpdateDecision(txCtx, skipped); err != nil {
				return err
			}
		}

		ok, err := s.repo.TransitionState(txCtx, id, locked.CurrentStep, outcome.State)
		if err != nil {
			return err
		}
		if !ok {
			return approval.ErrRequestFinalized
		}
		return nil
	})
	if err != nil {
		return overtime.Request{}, err
	}

	s.notifyAfterDecision(ctx, outcome)

	return s.load(ctx, id)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, actor user.User, req overtime.CancelRequest) (overtime.Request, error) {
	err := s.runTx(ctx, func(txCtx context.Context) error {
		locked, err := s.repo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := approval.Cancel(locked.State(), actor.ID, actor.IsAdmin()); err != nil {
			return err
		}

		ok, err := s.repo.Cancel(txCtx, id, actor.ID, req.Reason)
		if err != nil {
			return err
		}
		if !ok {
			return approval.ErrRequestFinalized
		}
		return nil
	})
	if err != nil {
		return overtime.Request{}, err
	}

	return s.load(ctx, id)
}

func (s *serviceImpl) notifyApprover(ctx context.Context, approverID, requesterName string) {
	if !s.mail.Enabled() {
		return
	}
	approver, err := s.userRepo.GetByID(ctx, approverID)
	if err != nil {
		s.logger.Warn("failed to load approver for notification", "approver_id", approverID, "error", err)
		return
	}
	if err := s.mail.SendSubmissionNotice(approver.Email, approver.FullName, requesterName, "overtime"); err != nil {
		s.logger.Warn("failed to send submission notice", "approver_id", approverID, "error", err)
	}
}

func (s *serviceImpl) notifyAfterDecision(ctx context.Context, outcome approval.Outcome) {
	if !s.mail.Enabled() {
		return
	}

	requester, err := s.userRepo.GetByID(ctx, outcome.State.RequesterID)
	if err != nil {
		s.logger.Warn("failed to load requester for notification", "user_id", outcome.State.RequesterID, "error", err)
		return
	}

	if outcome.State.Status.Terminal() {
		err = s.mail.SendDecisionNotice(requester.Email, requester.FullName, "overtime", string(outcome.State.Status), outcome.DecidedStep.Note)
		if err != nil {
			s.logger.Warn("failed to send decision notice", "user_id", requester.ID, "error", err)
		}
		return
	}

	steps, err := s.stepRepo.ListByRequest(ctx, approval.RequestTypeOvertime, outcome.State.RequestID)
	if err != nil {
		s.logger.Warn("failed to load steps for notification", "request_id", outcome.State.RequestID, "error", err)
		return
	}
	for _, step := range steps {
		if step.StepOrder == outcome.State.CurrentStep {
			s.notifyApprover(ctx, step.ApproverID, requester.FullName)
			return
		}
	}
}
