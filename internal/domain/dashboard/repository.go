package dashboard

import (
	"context"
	"time"
)

type Repository interface {
	AttendanceSummary(ctx context.Context, from, to time.Time, scope Scope) (AttendanceSummary, error)
	LeaveSummary(ctx context.Context, from, to time.Time, scope Scope) (RequestSummary, int64, error)
	OvertimeSummary(ctx context.Context, from, to time.Time, scope Scope) (RequestSummary, int64, error)
}
