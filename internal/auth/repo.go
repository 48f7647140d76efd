package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumiere-institute/lumiere/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	CountUsersWithRole(ctx context.Context, roleName string) (int, error)
	CreateUser(ctx context.Context, email, name, passwordHash string, roleID int64) (*User, error)
	FindRoleIDByName(ctx context.Context, roleName string) (int64, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const userColumns = `u.id, u.email, u.name, u.password_hash, u.role_id, r.name, COALESCE(u.avatar_url, ''), u.is_active, u.created_at, u.updated_at`

// FindByEmail fetches a user with their role name.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users u JOIN roles r ON r.id = u.role_id WHERE lower(u.email) = lower($1)`, email)
	return scanUser(row)
}

// CountUsersWithRole counts accounts holding the named role.
func (r *PGRepository) CountUsersWithRole(ctx context.Context, roleName string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users u JOIN roles r ON r.id = u.role_id WHERE lower(r.name) = lower($1)`, roleName).Scan(&count)
	return count, err
}

// CreateUser inserts a new active account.
func (r *PGRepository) CreateUser(ctx context.Context, email, name, passwordHash string, roleID int64) (*User, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash, role_id, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, TRUE, now(), now()) RETURNING id`,
		email, name, passwordHash, roleID).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.FindByEmail(ctx, email)
}

// FindRoleIDByName resolves a role name to its id.
func (r *PGRepository) FindRoleIDByName(ctx context.Context, roleName string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM roles WHERE lower(name) = lower($1)`, roleName).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, shared.ErrRoleNotFound
		}
		return 0, err
	}
	return id, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.RoleID, &user.RoleName,
		&user.AvatarURL, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

var _ Repository = (*PGRepository)(nil)
