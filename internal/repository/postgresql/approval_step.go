package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kantorkita/hrms-backend-go/internal/domain/approval"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/database"
)

type approvalStepRepositoryImpl struct {
	db *database.DB
}

func NewApprovalStepRepository(db *database.DB) approval.StepRepository {
	return &approvalStepRepositoryImpl{db: db}
}

func (r *approvalStepRepositoryImpl) CreateBatch(ctx context.Context, steps []approval.Step) ([]approval.Step, error) {
	if len(steps) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approval_steps (
			id, request_type, request_id, step_order, approver_id, approver_role,
			decision, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	out := make([]approval.Step, 0, len(steps))
	for _, s := range steps {
		id := uuid.NewString()
		err := q.QueryRow(ctx, query,
			id, s.RequestType, s.RequestID, s.StepOrder, s.ApproverID, s.ApproverRole, s.Decision,
		).Scan(&s.ID, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create approval step: %w", err)
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *approvalStepRepositoryImpl) ListByRequest(ctx context.Context, requestType approval.RequestType, requestID string) ([]approval.Step, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.request_type, s.request_id, s.step_order, s.approver_id, s.approver_role,
		       s.decision, s.note, s.decided_at, s.created_at, u.full_name
		FROM approval_steps s
		JOIN users u ON s.approver_id = u.id
		WHERE s.request_type = $1 AND s.request_id = $2
		ORDER BY s.step_order
	`

	rows, err := q.Query(ctx, query, requestType, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approval steps: %w", err)
	}
	defer rows.Close()

	return collectSteps(rows)
}

func (r *approvalStepRepositoryImpl) UpdateDecision(ctx context.Context, step approval.Step) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE approval_steps
		SET decision = $1, note = $2, decided_at = $3
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, step.Decision, step.Note, step.DecidedAt, step.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return approval.ErrStepMissing
	}
	return nil
}

// ListPendingForApprover returns only steps whose request still sits at the
// step's order, i.e. the ones the approver can act on right now.
func (r *approvalStepRepositoryImpl) ListPendingForApprover(ctx context.Context, approverID string) ([]approval.Step, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.request_type, s.request_id, s.step_order, s.approver_id, s.approver_role,
		       s.decision, s.note, s.decided_at, s.created_at, u.full_name
		FROM approval_steps s
		JOIN users u ON s.approver_id = u.id
		WHERE s.approver_id = $1 AND s.decision = $2
		  AND (
			(s.request_type = $3 AND EXISTS (
				SELECT 1 FROM leave_requests lr
				WHERE lr.id = s.request_id AND lr.status = $5 AND lr.current_step = s.step_order
			))
			OR
			(s.request_type = $4 AND EXISTS (
				SELECT 1 FROM overtime_requests ot
				WHERE ot.id = s.request_id AND ot.status = $5 AND ot.current_step = s.step_order
			))
		  )
		ORDER BY s.created_at
	`

	rows, err := q.Query(ctx, query,
		approverID, approval.DecisionPending,
		approval.RequestTypeLeave, approval.RequestTypeOvertime, approval.StatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending approvals: %w", err)
	}
	defer rows.Close()

	return collectSteps(rows)
}

func collectSteps(rows pgx.Rows) ([]approval.Step, error) {
	var steps []approval.Step
	for rows.Next() {
		var s approval.Step
		err := rows.Scan(
			&s.ID, &s.RequestType, &s.RequestID, &s.StepOrder, &s.ApproverID, &s.ApproverRole,
			&s.Decision, &s.Note, &s.DecidedAt, &s.CreatedAt, &s.ApproverName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval step: %w", err)
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}
