package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.employee_code, u.full_name, u.email, u.phone, u.password_hash,
	u.role, u.division_id, u.hire_date, u.oauth_provider, u.oauth_provider_id,
	u.is_active, u.deactivated_at, u.created_at, u.updated_at
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.EmployeeCode, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash,
		&u.Role, &u.DivisionID, &u.HireDate, &u.OAuthProvider, &u.OAuthProviderID,
		&u.IsActive, &u.DeactivatedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, employee_code, full_name, email, phone, password_hash,
			role, division_id, hire_date, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	id := uuid.NewString()
	err := q.QueryRow(ctx, query,
		id, u.EmployeeCode, u.FullName, u.Email, u.Phone, u.PasswordHash,
		u.Role, u.DivisionID, u.HireDate,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "employee_code") {
				return user.User{}, user.ErrEmployeeCodeExists
			}
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, err
	}

	u.IsActive = true
	return u, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, d.name AS division_name
		FROM users u
		LEFT JOIN divisions d ON u.division_id = d.id
		WHERE u.id = $1
	`, userColumns)

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.EmployeeCode, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash,
		&u.Role, &u.DivisionID, &u.HireDate, &u.OAuthProvider, &u.OAuthProviderID,
		&u.IsActive, &u.DeactivatedAt, &u.CreatedAt, &u.UpdatedAt,
		&u.DivisionName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users u WHERE LOWER(u.email) = LOWER($1)`, userColumns)
	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByEmployeeCode(ctx context.Context, code string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users u WHERE u.employee_code = $1`, userColumns)
	u, err := scanUser(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET full_name = $1, phone = $2, password_hash = $3, role = $4,
		    division_id = $5, hire_date = $6, updated_at = NOW()
		WHERE id = $7
	`
	tag, err := q.Exec(ctx, query,
		u.FullName, u.Phone, u.PasswordHash, u.Role, u.DivisionID, u.HireDate, u.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET is_active = FALSE, deactivated_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_active
	`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"u.is_active"}
	args := []interface{}{}
	argIdx := 1

	if filter.DivisionID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("u.division_id = $%d", argIdx))
		args = append(args, *filter.DivisionID)
		argIdx++
	}
	if filter.Role != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("u.role = $%d", argIdx))
		args = append(args, *filter.Role)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(u.full_name ILIKE $%d OR u.employee_code ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := "WHERE " + strings.Join(whereClauses, " AND ")

	countQuery := "SELECT COUNT(*) FROM users u " + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s, d.name AS division_name
		FROM users u
		LEFT JOIN divisions d ON u.division_id = d.id
		%s
		ORDER BY u.employee_code
		LIMIT $%d OFFSET $%d
	`, userColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		err := rows.Scan(
			&u.ID, &u.EmployeeCode, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash,
			&u.Role, &u.DivisionID, &u.HireDate, &u.OAuthProvider, &u.OAuthProviderID,
			&u.IsActive, &u.DeactivatedAt, &u.CreatedAt, &u.UpdatedAt,
			&u.DivisionName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// GetDivisionManager returns the oldest active manager assigned to the
// division, giving the chain resolver a deterministic pick.
func (r *userRepositoryImpl) GetDivisionManager(ctx context.Context, divisionID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM users u
		WHERE u.division_id = $1 AND u.role = $2 AND u.is_active
		ORDER BY u.created_at
		LIMIT 1
	`, userColumns)

	u, err := scanUser(q.QueryRow(ctx, query, divisionID, user.RoleManager))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetActiveAdmin(ctx context.Context) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM users u
		WHERE u.role = $1 AND u.is_active
		ORDER BY u.created_at
		LIMIT 1
	`, userColumns)

	u, err := scanUser(q.QueryRow(ctx, query, user.RoleAdmin))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
