package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumiere-institute/lumiere/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `u.id, u.email, u.name, u.role_id, r.name, COALESCE(u.avatar_url, ''), u.is_active, u.created_at, u.updated_at`

// ListUsers returns accounts matching the filters, newest first.
func (r *Repository) ListUsers(ctx context.Context, filters ListFilters) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE 1=1`
	args := []any{}
	if filters.Query != "" {
		args = append(args, "%"+filters.Query+"%")
		query += ` AND (u.name ILIKE $1 OR u.email ILIKE $1)`
	}
	if filters.RoleID > 0 {
		args = append(args, filters.RoleID)
		if len(args) == 1 {
			query += ` AND u.role_id = $1`
		} else {
			query += ` AND u.role_id = $2`
		}
	}
	query += ` ORDER BY u.id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.RoleID, &user.RoleName,
			&user.AvatarURL, &user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser inserts a new active account.
func (r *Repository) CreateUser(ctx context.Context, email, name, passwordHash string, roleID int64) (*User, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash, role_id, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, TRUE, now(), now()) RETURNING id`,
		email, name, passwordHash, roleID).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, shared.ErrDuplicate
			case "23503":
				return nil, shared.ErrRoleNotFound
			}
		}
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.id = $1`, id)
	var user User
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.RoleID, &user.RoleName,
		&user.AvatarURL, &user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// RoleExists reports whether a role id is present.
func (r *Repository) RoleExists(ctx context.Context, roleID int64) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM roles WHERE id = $1`, roleID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var _ RepositoryPort = (*Repository)(nil)
