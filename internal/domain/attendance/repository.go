package attendance

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r Record) (Record, error)
	Update(ctx context.Context, r Record) error

	// GetOpenRecord returns the user's open (not checked out) record for the
	// given local date. ErrRecordNotFound when there is none; the invariant
	// of at most one open record per user per day hangs on this lookup
	// running in the same transaction as the subsequent write.
	GetOpenRecord(ctx context.Context, userID string, date time.Time) (Record, error)
	HasCheckedIn(ctx context.Context, userID string, date time.Time) (bool, error)

	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Record, int64, error)
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)
	ListForExport(ctx context.Context, from, to time.Time, divisionID *string) ([]Record, error)
}

type ListFilter struct {
	From       *time.Time
	To         *time.Time
	DivisionID *string
	Page       int
	Limit      int
}
