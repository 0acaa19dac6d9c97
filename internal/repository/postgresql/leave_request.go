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
	"github.com/kantorkita/hrms-backend-go/internal/domain/leave"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `
	lr.id, lr.user_id, lr.start_date, lr.end_date, lr.total_days, lr.reason,
	lr.status, lr.current_step,
	lr.cancelled_by, lr.cancelled_at, lr.cancellation_reason,
	lr.submitted_at, lr.created_at, lr.updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var r leave.Request
	err := row.Scan(
		&r.ID, &r.UserID, &r.StartDate, &r.EndDate, &r.TotalDays, &r.Reason,
		&r.Status, &r.CurrentStep,
		&r.CancelledBy, &r.CancelledAt, &r.CancellationReason,
		&r.SubmittedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r *leaveRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, user_id, start_date, end_date, total_days, reason,
			status, current_step, submitted_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW(), NOW())
		RETURNING id, submitted_at, created_at, updated_at
	`

	id := uuid.NewString()
	err := q.QueryRow(ctx, query,
		id, req.UserID, req.StartDate, req.EndDate, req.TotalDays, req.Reason,
		req.Status, req.CurrentStep,
	).Scan(&req.ID, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return req, nil
}

func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, u.full_name
		FROM leave_requests lr
		JOIN users u ON lr.user_id = u.id
		WHERE lr.id = $1
	`, leaveColumns)

	var req leave.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.StartDate, &req.EndDate, &req.TotalDays, &req.Reason,
		&req.Status, &req.CurrentStep,
		&req.CancelledBy, &req.CancelledAt, &req.CancellationReason,
		&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
		&req.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}
	return req, nil
}

func (r *leaveRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM leave_requests lr WHERE lr.id = $1 FOR UPDATE`, leaveColumns)
	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}
	return req, nil
}

func (r *leaveRepositoryImpl) TransitionState(ctx context.Context, id string, fromStep int, to approval.State) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, current_step = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4 AND current_step = $5
	`
	tag, err := q.Exec(ctx, query, to.Status, to.CurrentStep, id, approval.StatusPending, fromStep)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *leaveRepositoryImpl) Cancel(ctx context.Context, id, cancelledBy string, reason *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
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

func (r *leaveRepositoryImpl) ListByUser(ctx context.Context, userID string, filter leave.ListFilter) ([]leave.Request, int64, error) {
	return r.list(ctx, &userID, filter)
}

func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.ListFilter) ([]leave.Request, int64, error) {
	return r.list(ctx, nil, filter)
}

func (r *leaveRepositoryImpl) list(ctx context.Context, userID *string, filter leave.ListFilter) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if userID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.user_id = $%d", argIdx))
		args = append(args, *userID)
		argIdx++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DivisionID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("u.division_id = $%d", argIdx))
		args = append(args, *filter.DivisionID)
		argIdx++
	}
	if filter.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.end_date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.start_date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	whereClause := "WHERE " + strings.Join(whereClauses, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM leave_requests lr
		JOIN users u ON lr.user_id = u.id
	` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
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
		FROM leave_requests lr
		JOIN users u ON lr.user_id = u.id
		%s
		ORDER BY lr.submitted_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var req leave.Request
		err := rows.Scan(
			&req.ID, &req.UserID, &req.StartDate, &req.EndDate, &req.TotalDays, &req.Reason,
			&req.Status, &req.CurrentStep,
			&req.CancelledBy, &req.CancelledAt, &req.CancellationReason,
			&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
			&req.UserName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *leaveRepositoryImpl) CheckOverlapping(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE user_id = $1
			  AND status IN ($2, $3)
			  AND start_date <= $4 AND end_date >= $5
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query,
		userID, approval.StatusPending, approval.StatusApproved, end, start,
	).Scan(&exists)
	return exists, err
}
