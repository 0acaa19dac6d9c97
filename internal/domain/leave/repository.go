package leave

import (
	"context"
	"time"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
)

type Repository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// GetByIDForUpdate locks the row (SELECT ... FOR UPDATE) and must run
	// inside a transaction carried on ctx.
	GetByIDForUpdate(ctx context.Context, id string) (Request, error)

	// TransitionState advances status/current_step only while the stored row
	// is still pending at fromStep; reports false when a concurrent decision
	// won the race.
	TransitionState(ctx context.Context, id string, fromStep int, to approval.State) (bool, error)

	// Cancel is guarded on pending the same way.
	Cancel(ctx context.Context, id, cancelledBy string, reason *string) (bool, error)

	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Request, int64, error)
	List(ctx context.Context, filter ListFilter) ([]Request, int64, error)
	CheckOverlapping(ctx context.Context, userID string, start, end time.Time) (bool, error)
}

type ListFilter struct {
	Status     *approval.Status
	DivisionID *string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}
