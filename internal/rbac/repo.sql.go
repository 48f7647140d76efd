package rbac

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumiere-institute/lumiere/internal/platform/db"
	"github.com/lumiere-institute/lumiere/internal/shared"
)

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const roleColumns = `r.id, r.name, r.description, r.created_at, r.updated_at,
	COALESCE((SELECT array_agg(rp.permission_id ORDER BY rp.permission_id) FROM role_permissions rp WHERE rp.role_id = r.id), '{}') AS permissions,
	(SELECT COUNT(*) FROM users u WHERE u.role_id = r.id) AS user_count`

// ListRoles returns all roles in creation order.
func (r *PGRepository) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+roleColumns+` FROM roles r ORDER BY r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}

// GetRole fetches a role by id.
func (r *PGRepository) GetRole(ctx context.Context, id int64) (*Role, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles r WHERE r.id = $1`, id)
	return scanRoleErr(row)
}

// GetRoleByName fetches a role by name, case-insensitively.
func (r *PGRepository) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles r WHERE lower(r.name) = lower($1)`, name)
	return scanRoleErr(row)
}

// CreateRole inserts a role row and its permission assignments atomically.
func (r *PGRepository) CreateRole(ctx context.Context, name, description string, permissions []string) (*Role, error) {
	var roleID int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO roles (name, description, created_at, updated_at) VALUES ($1, $2, now(), now()) RETURNING id`,
			name, description).Scan(&roleID); err != nil {
			return err
		}
		return insertPermissions(ctx, tx, roleID, permissions)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, shared.ErrDuplicateRole
		}
		return nil, err
	}
	return r.GetRole(ctx, roleID)
}

// UpdateRole replaces a role's fields and permission set atomically.
func (r *PGRepository) UpdateRole(ctx context.Context, id int64, name, description string, permissions []string) (*Role, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE roles SET name = $2, description = $3, updated_at = now() WHERE id = $1`,
			id, name, description)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrRoleNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, id); err != nil {
			return err
		}
		return insertPermissions(ctx, tx, id, permissions)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, shared.ErrDuplicateRole
		}
		return nil, err
	}
	return r.GetRole(ctx, id)
}

// DeleteRole removes a role by id. Assignments cascade via foreign keys.
func (r *PGRepository) DeleteRole(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrRoleNotFound
	}
	return nil
}

// GetRolePermissions returns the permission ids assigned to a role.
func (r *PGRepository) GetRolePermissions(ctx context.Context, id int64) ([]string, error) {
	role, err := r.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}
	return role.Permissions, nil
}

// GetRolePermissionsByName returns the permission ids for a role name.
func (r *PGRepository) GetRolePermissionsByName(ctx context.Context, name string) ([]string, error) {
	role, err := r.GetRoleByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return role.Permissions, nil
}

func insertPermissions(ctx context.Context, tx pgx.Tx, roleID int64, permissions []string) error {
	for _, perm := range permissions {
		if _, err := tx.Exec(ctx,
			`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`,
			roleID, perm); err != nil {
			return err
		}
	}
	return nil
}

func scanRole(row pgx.Row) (*Role, error) {
	var role Role
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt, &role.Permissions, &role.UserCount); err != nil {
		return nil, err
	}
	if role.Permissions == nil {
		role.Permissions = []string{}
	}
	return &role, nil
}

func scanRoleErr(row pgx.Row) (*Role, error) {
	role, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Repository = (*PGRepository)(nil)
