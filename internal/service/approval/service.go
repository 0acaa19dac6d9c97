package approval

import (
	"context"

	"github.com/kantorkita/hrms-backend-go/internal/config"
	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
	"github.com/kantorkita/hrms-backend-go/internal/domain/division"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
)

// Service resolves approver chains from the configured matrix and exposes
// the approver-facing inbox. The actual state transitions live with the
// request services, which own the request rows.
type Service interface {
	ResolveChain(ctx context.Context, requester user.User) ([]approval.Approver, error)
	Matrix() approval.Matrix
	PendingForApprover(ctx context.Context, approverID string) ([]approval.Step, error)
}

type serviceImpl struct {
	matrix   approval.Matrix
	dir      approval.Directory
	stepRepo approval.StepRepository
}

func NewService(cfg *config.Config, userRepo user.Repository, divisionRepo division.Repository, stepRepo approval.StepRepository) Service {
	return &serviceImpl{
		matrix: approval.Matrix{
			MaxDepth:         cfg.Approval.MaxDepth,
			MinApprovers:     cfg.Approval.MinApprovers,
			RequireHRFinal:   cfg.Approval.RequireHRFinal,
			EmptyChainPolicy: approval.EmptyChainPolicy(cfg.Approval.EmptyChainPolicy),
		},
		dir:      &repoDirectory{userRepo: userRepo, divisionRepo: divisionRepo},
		stepRepo: stepRepo,
	}
}

func (s *serviceImpl) ResolveChain(ctx context.Context, requester user.User) ([]approval.Approver, error) {
	return s.matrix.ResolveChain(ctx, s.dir, requester)
}

func (s *serviceImpl) Matrix() approval.Matrix {
	return s.matrix
}

func (s *serviceImpl) PendingForApprover(ctx context.Context, approverID string) ([]approval.Step, error) {
	return s.stepRepo.ListPendingForApprover(ctx, approverID)
}

// repoDirectory adapts the user and division repositories to the lookup
// surface the chain resolver needs.
type repoDirectory struct {
	userRepo     user.Repository
	divisionRepo division.Repository
}

func (d *repoDirectory) DivisionByID(ctx context.Context, id string) (division.Division, error) {
	return d.divisionRepo.GetByID(ctx, id)
}

func (d *repoDirectory) DivisionManager(ctx context.Context, divisionID string) (user.User, error) {
	return d.userRepo.GetDivisionManager(ctx, divisionID)
}

func (d *repoDirectory) ActiveAdmin(ctx context.Context) (user.User, error) {
	return d.userRepo.GetActiveAdmin(ctx)
}
