package user

import "context"

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmployeeCode(ctx context.Context, code string) (User, error)
	Update(ctx context.Context, u User) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)

	// GetDivisionManager returns the active manager of a division, used by
	// the approval chain resolver. ErrUserNotFound when the division has no
	// active manager.
	GetDivisionManager(ctx context.Context, divisionID string) (User, error)

	// GetActiveAdmin returns an active HR admin for the final approval step.
	GetActiveAdmin(ctx context.Context) (User, error)
}

type ListFilter struct {
	DivisionID *string
	Role       *Role
	Search     *string
	Page       int
	Limit      int
}
