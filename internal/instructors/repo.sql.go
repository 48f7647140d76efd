package instructors

import (
	"context"
	"errors"

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

// ListInstructors returns staff, optionally filtered by name, email, or specialty.
func (r *Repository) ListInstructors(ctx context.Context, query string) ([]Instructor, error) {
	sql := `SELECT id, name, email, specialty, COALESCE(bio, ''), is_active, created_at FROM instructors`
	args := []any{}
	if query != "" {
		sql += ` WHERE name ILIKE $1 OR email ILIKE $1 OR specialty ILIKE $1`
		args = append(args, "%"+query+"%")
	}
	sql += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var instructors []Instructor
	for rows.Next() {
		var in Instructor
		if err := rows.Scan(&in.ID, &in.Name, &in.Email, &in.Specialty, &in.Bio, &in.IsActive, &in.CreatedAt); err != nil {
			return nil, err
		}
		instructors = append(instructors, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return instructors, nil
}

// CreateInstructor inserts an active staff record.
func (r *Repository) CreateInstructor(ctx context.Context, params CreateInstructorParams) (*Instructor, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO instructors (name, email, specialty, bio, is_active, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), TRUE, now())
		 RETURNING id, name, email, specialty, COALESCE(bio, ''), is_active, created_at`,
		params.Name, params.Email, params.Specialty, params.Bio)
	var in Instructor
	if err := row.Scan(&in.ID, &in.Name, &in.Email, &in.Specialty, &in.Bio, &in.IsActive, &in.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, shared.ErrDuplicate
		}
		return nil, err
	}
	return &in, nil
}

// DeleteInstructor removes a staff record.
func (r *Repository) DeleteInstructor(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
