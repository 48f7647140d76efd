package projects

import (
	"context"
	"errors"
	"fmt"

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

const projectColumns = `p.id, p.name, COALESCE(p.description, ''), COALESCE(p.image_url, ''),
	p.type, p.mentor_name, COALESCE(p.mentor_address, ''),
	(SELECT COUNT(*) FROM trainings t WHERE t.project_id = p.id),
	(SELECT COUNT(DISTINCT s.id) FROM students s
		JOIN trainings t ON t.course_id = s.course_id
		WHERE t.project_id = p.id),
	p.status, p.created_at`

// ListProjects returns projects matching the filters, newest first.
func (r *Repository) ListProjects(ctx context.Context, filters ListFilters) ([]Project, error) {
	sql := `SELECT ` + projectColumns + ` FROM projects p`

	var (
		conds []string
		args  []any
	)
	if filters.Query != "" {
		args = append(args, "%"+filters.Query+"%")
		conds = append(conds, fmt.Sprintf("(p.name ILIKE $%d OR p.mentor_name ILIKE $%d)", len(args), len(args)))
	}
	if filters.Type != "" {
		args = append(args, filters.Type)
		conds = append(conds, fmt.Sprintf("p.type = $%d", len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		conds = append(conds, fmt.Sprintf("p.status = $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			sql += " WHERE " + cond
		} else {
			sql += " AND " + cond
		}
	}
	sql += ` ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL,
			&p.Type, &p.MentorName, &p.MentorAddress,
			&p.TrainingsCount, &p.StudentsCount, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateProject inserts an active project.
func (r *Repository) CreateProject(ctx context.Context, params CreateProjectParams) (*Project, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO projects (name, description, image_url, type, mentor_name, mentor_address, status, created_at)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, NULLIF($6, ''), 'active', now())
		 RETURNING id, name, COALESCE(description, ''), COALESCE(image_url, ''),
			type, mentor_name, COALESCE(mentor_address, ''), status, created_at`,
		params.Name, params.Description, params.ImageURL, params.Type, params.MentorName, params.MentorAddress)
	var p Project
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL,
		&p.Type, &p.MentorName, &p.MentorAddress, &p.Status, &p.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, shared.ErrDuplicate
		}
		return nil, err
	}
	return &p, nil
}

// DeleteProject removes a project. Trainings keep running with their
// project link cleared by the schema's ON DELETE SET NULL.
func (r *Repository) DeleteProject(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetProjectStatus flips the status flag.
func (r *Repository) SetProjectStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE projects SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
