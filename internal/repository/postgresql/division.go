package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kantorkita/hrms-backend-go/internal/domain/division"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/database"
)

type divisionRepositoryImpl struct {
	db *database.DB
}

func NewDivisionRepository(db *database.DB) division.Repository {
	return &divisionRepositoryImpl{db: db}
}

const divisionColumns = `
	d.id, d.name, d.code, d.description, d.parent_id, d.level, d.is_active,
	d.created_at, d.updated_at
`

func scanDivision(row pgx.Row) (division.Division, error) {
	var d division.Division
	err := row.Scan(
		&d.ID, &d.Name, &d.Code, &d.Description, &d.ParentID, &d.Level, &d.IsActive,
		&d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

func (r *divisionRepositoryImpl) Create(ctx context.Context, d division.Division) (division.Division, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO divisions (id, name, code, description, parent_id, level, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	id := uuid.NewString()
	err := q.QueryRow(ctx, query,
		id, d.Name, d.Code, d.Description, d.ParentID, d.Level,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return division.Division{}, division.ErrCodeExists
		}
		return division.Division{}, err
	}

	d.IsActive = true
	return d, nil
}

func (r *divisionRepositoryImpl) GetByID(ctx context.Context, id string) (division.Division, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, p.name AS parent_name,
		       (SELECT COUNT(*) FROM users u WHERE u.division_id = d.id AND u.is_active) AS employee_count
		FROM divisions d
		LEFT JOIN divisions p ON d.parent_id = p.id
		WHERE d.id = $1
	`, divisionColumns)

	var d division.Division
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Code, &d.Description, &d.ParentID, &d.Level, &d.IsActive,
		&d.CreatedAt, &d.UpdatedAt,
		&d.ParentName, &d.EmployeeCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return division.Division{}, division.ErrDivisionNotFound
		}
		return division.Division{}, err
	}
	return d, nil
}

func (r *divisionRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (division.Division, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM divisions d WHERE d.id = $1 FOR UPDATE`, divisionColumns)
	d, err := scanDivision(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return division.Division{}, division.ErrDivisionNotFound
		}
		return division.Division{}, err
	}
	return d, nil
}

func (r *divisionRepositoryImpl) GetByCode(ctx context.Context, code string) (division.Division, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM divisions d WHERE d.code = $1`, divisionColumns)
	d, err := scanDivision(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return division.Division{}, division.ErrDivisionNotFound
		}
		return division.Division{}, err
	}
	return d, nil
}

func (r *divisionRepositoryImpl) Update(ctx context.Context, d division.Division) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE divisions
		SET name = $1, description = $2, parent_id = $3, level = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query, d.Name, d.Description, d.ParentID, d.Level, d.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return division.ErrDivisionNotFound
	}
	return nil
}

func (r *divisionRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE divisions SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return division.ErrDivisionNotFound
	}
	return nil
}

func (r *divisionRepositoryImpl) List(ctx context.Context, filter division.ListFilter) ([]division.Division, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"d.is_active"}
	args := []interface{}{}
	argIdx := 1

	if filter.Level != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("d.level = $%d", argIdx))
		args = append(args, *filter.Level)
		argIdx++
	}
	if filter.ParentID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("d.parent_id = $%d", argIdx))
		args = append(args, *filter.ParentID)
		argIdx++
	}
	if filter.TopOnly {
		whereClauses = append(whereClauses, "d.parent_id IS NULL")
	}
	if filter.Search != nil && *filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(d.name ILIKE $%d OR d.code ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := "WHERE " + strings.Join(whereClauses, " AND ")

	countQuery := "SELECT COUNT(*) FROM divisions d " + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count divisions: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s, p.name AS parent_name,
		       (SELECT COUNT(*) FROM users u WHERE u.division_id = d.id AND u.is_active) AS employee_count
		FROM divisions d
		LEFT JOIN divisions p ON d.parent_id = p.id
		%s
		ORDER BY d.level, d.code
		LIMIT $%d OFFSET $%d
	`, divisionColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query divisions: %w", err)
	}
	defer rows.Close()

	divisions, err := collectDivisionsWithJoins(rows)
	if err != nil {
		return nil, 0, err
	}
	return divisions, total, nil
}

func (r *divisionRepositoryImpl) ListAllActive(ctx context.Context) ([]division.Division, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, p.name AS parent_name,
		       (SELECT COUNT(*) FROM users u WHERE u.division_id = d.id AND u.is_active) AS employee_count
		FROM divisions d
		LEFT JOIN divisions p ON d.parent_id = p.id
		WHERE d.is_active
		ORDER BY d.level, d.code
	`, divisionColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query divisions: %w", err)
	}
	defer rows.Close()

	return collectDivisionsWithJoins(rows)
}

func (r *divisionRepositoryImpl) ListChildren(ctx context.Context, parentID string) ([]division.Division, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, p.name AS parent_name,
		       (SELECT COUNT(*) FROM users u WHERE u.division_id = d.id AND u.is_active) AS employee_count
		FROM divisions d
		LEFT JOIN divisions p ON d.parent_id = p.id
		WHERE d.parent_id = $1 AND d.is_active
		ORDER BY d.code
	`, divisionColumns)

	rows, err := q.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query child divisions: %w", err)
	}
	defer rows.Close()

	return collectDivisionsWithJoins(rows)
}

func (r *divisionRepositoryImpl) CountActiveChildren(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM divisions WHERE parent_id = $1 AND is_active`, id,
	).Scan(&count)
	return count, err
}

func (r *divisionRepositoryImpl) CountActiveEmployees(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE division_id = $1 AND is_active`, id,
	).Scan(&count)
	return count, err
}

func collectDivisionsWithJoins(rows pgx.Rows) ([]division.Division, error) {
	var divisions []division.Division
	for rows.Next() {
		var d division.Division
		err := rows.Scan(
			&d.ID, &d.Name, &d.Code, &d.Description, &d.ParentID, &d.Level, &d.IsActive,
			&d.CreatedAt, &d.UpdatedAt,
			&d.ParentName, &d.EmployeeCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan division: %w", err)
		}
		divisions = append(divisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return divisions, nil
}
