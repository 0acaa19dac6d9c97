package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kantorkita/hrms-backend-go/internal/domain/attendance"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.date, a.check_in, a.check_out, a.face_match_score,
	a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
	a.work_minutes, a.created_at, a.updated_at
`

func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, user_id, date, check_in, face_match_score,
			check_in_latitude, check_in_longitude, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	id := uuid.NewString()
	err := q.QueryRow(ctx, query,
		id, rec.UserID, rec.Date, rec.CheckIn, rec.FaceMatchScore,
		rec.CheckInLatitude, rec.CheckInLongitude,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Unique index on (user_id, date) catches racing check-ins.
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_out = $1, check_out_latitude = $2, check_out_longitude = $3,
		    work_minutes = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query,
		rec.CheckOut, rec.CheckOutLatitude, rec.CheckOutLongitude, rec.WorkMinutes, rec.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func (r *attendanceRepositoryImpl) GetOpenRecord(ctx context.Context, userID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendance_records a
		WHERE a.user_id = $1 AND a.date = $2 AND a.check_out IS NULL
		FOR UPDATE
	`, attendanceColumns)

	var rec attendance.Record
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.FaceMatchScore,
		&rec.CheckInLatitude, &rec.CheckInLongitude, &rec.CheckOutLatitude, &rec.CheckOutLongitude,
		&rec.WorkMinutes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) HasCheckedIn(ctx context.Context, userID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendance_records WHERE user_id = $1 AND date = $2)`,
		userID, date,
	).Scan(&exists)
	return exists, err
}

func (r *attendanceRepositoryImpl) ListByUser(ctx context.Context, userID string, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	scoped := filter
	return r.list(ctx, &userID, scoped)
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	return r.list(ctx, nil, filter)
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, userID *string, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if userID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.user_id = $%d", argIdx))
		args = append(args, *userID)
		argIdx++
	}
	if filter.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.DivisionID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("u.division_id = $%d", argIdx))
		args = append(args, *filter.DivisionID)
		argIdx++
	}

	whereClause := "WHERE " + strings.Join(whereClauses, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_records a
		JOIN users u ON a.user_id = u.id
	` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s, u.full_name, u.employee_code, d.name AS division_name
		FROM attendance_records a
		JOIN users u ON a.user_id = u.id
		LEFT JOIN divisions d ON u.division_id = d.id
		%s
		ORDER BY a.date DESC, a.check_in DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	records, err := collectAttendanceRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *attendanceRepositoryImpl) ListForExport(ctx context.Context, from, to time.Time, divisionID *string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	args := []interface{}{from, to}
	divisionClause := ""
	if divisionID != nil {
		divisionClause = "AND u.division_id = $3"
		args = append(args, *divisionID)
	}

	query := fmt.Sprintf(`
		SELECT %s, u.full_name, u.employee_code, d.name AS division_name
		FROM attendance_records a
		JOIN users u ON a.user_id = u.id
		LEFT JOIN divisions d ON u.division_id = d.id
		WHERE a.date >= $1 AND a.date <= $2 %s
		ORDER BY a.date, u.employee_code
	`, attendanceColumns, divisionClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance export: %w", err)
	}
	defer rows.Close()

	return collectAttendanceRecords(rows)
}

func collectAttendanceRecords(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.FaceMatchScore,
			&rec.CheckInLatitude, &rec.CheckInLongitude, &rec.CheckOutLatitude, &rec.CheckOutLongitude,
			&rec.WorkMinutes, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.UserName, &rec.EmployeeCode, &rec.DivisionName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
