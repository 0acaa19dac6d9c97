package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
)

type Service interface {
	GetProfile(ctx context.Context, userID string) (user.User, error)
	UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (user.User, error)
	List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error)
	Deactivate(ctx context.Context, userID string) error
}

type serviceImpl struct {
	userRepo user.Repository
}

func NewService(userRepo user.Repository) Service {
	return &serviceImpl{userRepo: userRepo}
}

func (s *serviceImpl) GetProfile(ctx context.Context, userID string) (user.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.User{}, err
		}
		passwordHash := string(hash)
		u.PasswordHash = &passwordHash
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return user.User{}, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

func (s *serviceImpl) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	return s.userRepo.List(ctx, filter)
}

func (s *serviceImpl) Deactivate(ctx context.Context, userID string) error {
	return s.userRepo.Deactivate(ctx, userID)
}
