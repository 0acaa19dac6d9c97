package overtime

import (
	"context"
	"time"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
)

type Repository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	GetByIDForUpdate(ctx context.Context, id string) (Request, error)
	TransitionState(ctx context.Context, id string, fromStep int, to approval.State) (bool, error)
	Cancel(ctx context.Context, id, cancelledBy string, reason *string) (bool, error)
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Request, int64, error)
	List(ctx context.Context, filter ListFilter) ([]Request, int64, error)

	// HasOpenForDate guards against duplicate pending/approved requests on
	// the same date.
	HasOpenForDate(ctx context.Context, userID string, date time.Time) (bool, error)
}

type ListFilter struct {
	Status     *approval.Status
	DivisionID *string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}
