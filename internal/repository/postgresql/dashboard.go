package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kantorkita/hrms-backend-go/internal/domain/dashboard"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.Repository {
	return &dashboardRepositoryImpl{db: db}
}

// scopeClause appends user/division predicates; the caller's query must join
// users as u and alias the scoped table's user_id column as given.
func scopeClause(userIDColumn string, scope dashboard.Scope, args []interface{}) (string, []interface{}) {
	clause := ""
	if scope.UserID != nil {
		args = append(args, *scope.UserID)
		clause += fmt.Sprintf(" AND %s = $%d", userIDColumn, len(args))
	}
	if scope.DivisionID != nil {
		args = append(args, *scope.DivisionID)
		clause += fmt.Sprintf(" AND u.division_id = $%d", len(args))
	}
	return clause, args
}

func (r *dashboardRepositoryImpl) AttendanceSummary(ctx context.Context, from, to time.Time, scope dashboard.Scope) (dashboard.AttendanceSummary, error) {
	q := GetQuerier(ctx, r.db)

	args := []interface{}{from, to}
	clause, args := scopeClause("a.user_id", scope, args)

	query := `
		SELECT COUNT(*),
		       COUNT(DISTINCT a.user_id),
		       COUNT(*) FILTER (WHERE a.check_out IS NULL),
		       COALESCE(SUM(a.work_minutes), 0)
		FROM attendance_records a
		JOIN users u ON a.user_id = u.id
		WHERE a.date >= $1 AND a.date <= $2
	` + clause

	var s dashboard.AttendanceSummary
	var totalMinutes int64
	err := q.QueryRow(ctx, query, args...).Scan(
		&s.TotalRecords, &s.DistinctUsers, &s.OpenRecords, &totalMinutes,
	)
	if err != nil {
		return dashboard.AttendanceSummary{}, fmt.Errorf("failed to query attendance summary: %w", err)
	}
	s.TotalWorkHours = float64(totalMinutes) / 60
	return s, nil
}

func (r *dashboardRepositoryImpl) LeaveSummary(ctx context.Context, from, to time.Time, scope dashboard.Scope) (dashboard.RequestSummary, int64, error) {
	q := GetQuerier(ctx, r.db)

	args := []interface{}{from, to}
	clause, args := scopeClause("lr.user_id", scope, args)

	query := `
		SELECT COUNT(*) FILTER (WHERE lr.status = 'pending'),
		       COUNT(*) FILTER (WHERE lr.status = 'approved'),
		       COUNT(*) FILTER (WHERE lr.status = 'rejected'),
		       COUNT(*) FILTER (WHERE lr.status = 'cancelled'),
		       COALESCE(SUM(lr.total_days) FILTER (WHERE lr.status = 'approved'), 0)
		FROM leave_requests lr
		JOIN users u ON lr.user_id = u.id
		WHERE lr.start_date <= $2 AND lr.end_date >= $1
	` + clause

	var s dashboard.RequestSummary
	var approvedDays int64
	err := q.QueryRow(ctx, query, args...).Scan(
		&s.Pending, &s.Approved, &s.Rejected, &s.Cancelled, &approvedDays,
	)
	if err != nil {
		return dashboard.RequestSummary{}, 0, fmt.Errorf("failed to query leave summary: %w", err)
	}
	return s, approvedDays, nil
}

func (r *dashboardRepositoryImpl) OvertimeSummary(ctx context.Context, from, to time.Time, scope dashboard.Scope) (dashboard.RequestSummary, int64, error) {
	q := GetQuerier(ctx, r.db)

	args := []interface{}{from, to}
	clause, args := scopeClause("ot.user_id", scope, args)

	query := `
		SELECT COUNT(*) FILTER (WHERE ot.status = 'pending'),
		       COUNT(*) FILTER (WHERE ot.status = 'approved'),
		       COUNT(*) FILTER (WHERE ot.status = 'rejected'),
		       COUNT(*) FILTER (WHERE ot.status = 'cancelled'),
		       COALESCE(SUM(ot.duration_minutes) FILTER (WHERE ot.status = 'approved'), 0)
		FROM overtime_requests ot
		JOIN users u ON ot.user_id = u.id
		WHERE ot.date >= $1 AND ot.date <= $2
	` + clause

	var s dashboard.RequestSummary
	var approvedMinutes int64
	err := q.QueryRow(ctx, query, args...).Scan(
		&s.Pending, &s.Approved, &s.Rejected, &s.Cancelled, &approvedMinutes,
	)
	if err != nil {
		return dashboard.RequestSummary{}, 0, fmt.Errorf("failed to query overtime summary: %w", err)
	}
	return s, approvedMinutes, nil
}
