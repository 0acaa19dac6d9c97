package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
	"github.com/kantorkita/hrms-backend-go/internal/domain/overtime"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/database"
)

type overtimeRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.Repository {
	return &overtimeRepositoryImpl{db: db}
}

const overtimeColumns = `
	ot.id, ot.user_id, ot.date, ot.start_time, ot.end_time, ot.duration_minutes, ot.reason,
	ot.status, ot.current_step,
	ot.cancelled_by, ot.cancelled_at, ot.cancellation_reason,
	ot.submitted_at, ot.created_at, ot.updated_at
`

func scanOvertimeRequest(row pgx.Row) (overtime.Request, error) {
	var r overtime.Request
	err := row.Scan(
		&r.ID, &r.UserID, &r.Date, &r.StartTime, &r.EndTime, &r.DurationMinutes, &r.Reason,
		&r.Status, &r.CurrentStep,
		&r.CancelledBy, &r.CancelledAt, &r.CancellationReason,
		&r.SubmittedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r *overtimeRepositoryImpl) Create(ctx context.Context, req overtime.Request) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_requests (
			id, user_id, date, start_time, end_time, duration_minutes, reason,
			status, current_step, submitted_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW(), NOW())
		RETURNING id, submitted_at, created_at, updated_at
	`

	id := uuid.NewString()
	err := q.QueryRow(ctx, query,
		id, req.UserID, req.Date, req.StartTime, req.EndTime, req.DurationMinutes, req.Reason,
		req.Status, req.CurrentStep,
	).Scan(&req.ID, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return overtime.Request{}, fmt.Errorf("failed to create overtime request: %w", err)
	}
	return req, nil
}

func (r *overtimeRepositoryImpl) GetByID(ctx context.Context, id string) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, u.full_name
		FROM overtime_requests ot
		JOIN users u ON ot.user_id = u.id
		WHERE ot.id = $1
	`, overtimeColumns)

	var req overtime.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.Date, &req.StartTime, &req.EndTime, &req.DurationMinutes, &req.Reason,
		&req.Status, &req.CurrentStep,
		&req.CancelledBy, &req.CancelledAt, &req.CancellationReason,
		&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
		&req.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Request{}, overtime.ErrRequestNotFound
		}
		return overtime.Request{}, err
	}
	return req, nil
}

func (r *overtimeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM overtime_requests ot WHERE ot.id = $1 FOR UPDATE`, overtimeColumns)
	req, err := scanOvertimeRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Request{}, overtime.ErrRequestNotFound
		}
		return overtime.Request{}, err
	}
	return req, nil
}

func (r *overtimeRepositoryImpl) TransitionState(ctx context.Context, id string, fromStep int, to approval.State) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = $1, current_step = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4 AND current_step = $5
	`
	tag, err := q.Exec(ctx, query, to.Status, to.CurrentStep, id, approval.StatusPending, fromStep)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *overtimeRepositoryImpl) Cancel(ctx context.Context, id, cancelledBy string, reason *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = $1, cancelled_by = $2, cancelled_at = NOW(),
		    cancellation_reason = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5
	`
	tag, err := q.Exec(ctx, query, approval.StatusCancelled, cancelledBy, reason, id, approval.StatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *overtimeRepositoryImpl) ListByUser(ctx context.Context, userID string, filter overtime.ListFilter) ([]overtime.Request, int64, error) {
	return r.list(ctx, &userID, filter)
}

func (r *overtimeRepositoryImpl) List(ctx context.Context, filter overtime.ListFilter) ([]overtime.Request, int64, error) {
	return r.list(ctx, nil, filter)
}

func (r *overtimeRepositoryImpl) list(ctx context.Context, userID *string, filter overtime.ListFilter) ([]overtime.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if userID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ot.user_id = $%d", argIdx))
		args = append(args, *userID)
		argIdx++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ot.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DivisionID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("u.division_id = $%d", argIdx))
		args = append(args, *filter.DivisionID)
		argIdx++
	}
	if filter.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ot.date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ot.date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	whereClause := "WHERE " + strings.Join(whereClauses, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM overtime_requests ot
		JOIN users u ON ot.user_id = u.id
	` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count overtime requests: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s, u.full_name
		FROM overtime_requests ot
		JOIN users u ON ot.user_id = u.id
		%s
		ORDER BY ot.submitted_at DESC
		LIMIT $%d OFFSET $%d
	`, overtimeColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query overtime requests: %w", err)
	}
	defer rows.Close()

	var requests []overtime.Request
	for rows.Next() {
		var req overtime.Request
		err := rows.Scan(
			&req.ID, &req.UserID, &req.Date, &req.StartTime, &req.EndTime, &req.DurationMinutes, &req.Reason,
			&req.Status, &req.CurrentStep,
			&req.CancelledBy, &req.CancelledAt, &req.CancellationReason,
			&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
			&req.UserName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *overtimeRepositoryImpl) HasOpenForDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM overtime_requests
			WHERE user_id = $1 AND date = $2 AND status IN ($3, $4)
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query,
		userID, date, approval.StatusPending, approval.StatusApproved,
	).Scan(&exists)
	return exists, err
}
