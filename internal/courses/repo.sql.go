package courses

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

const courseColumns = `c.id, c.title, COALESCE(c.description, ''), c.category_id, cat.name,
	c.price_cents, c.duration_weeks, c.level, c.is_published, c.created_at`

// ListCourses returns courses matching the filters, newest first.
func (r *Repository) ListCourses(ctx context.Context, filters ListFilters) ([]Course, error) {
	sql := `SELECT ` + courseColumns + `
		FROM courses c
		JOIN categories cat ON cat.id = c.category_id`

	var (
		conds []string
		args  []any
	)
	if filters.Query != "" {
		args = append(args, "%"+filters.Query+"%")
		conds = append(conds, fmt.Sprintf("c.title ILIKE $%d", len(args)))
	}
	if filters.CategoryID > 0 {
		args = append(args, filters.CategoryID)
		conds = append(conds, fmt.Sprintf("c.category_id = $%d", len(args)))
	}
	if filters.Level != "" {
		args = append(args, filters.Level)
		conds = append(conds, fmt.Sprintf("c.level = $%d", len(args)))
	}
	if filters.Published != nil {
		args = append(args, *filters.Published)
		conds = append(conds, fmt.Sprintf("c.is_published = $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			sql += " WHERE " + cond
		} else {
			sql += " AND " + cond
		}
	}
	sql += ` ORDER BY c.created_at DESC, c.id DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.CategoryID, &c.CategoryName,
			&c.Price, &c.DurationWeeks, &c.Level, &c.IsPublished, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateCourse inserts an unpublished course.
func (r *Repository) CreateCourse(ctx context.Context, params CreateCourseParams) (*Course, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO courses (title, description, category_id, price_cents, duration_weeks, level, is_published, created_at)
		 VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, FALSE, now())
		 RETURNING id, title, COALESCE(description, ''), category_id,
			(SELECT name FROM categories WHERE id = category_id),
			price_cents, duration_weeks, level, is_published, created_at`,
		params.Title, params.Description, params.CategoryID, params.Price, params.DurationWeeks, params.Level)
	var c Course
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.CategoryID, &c.CategoryName,
		&c.Price, &c.DurationWeeks, &c.Level, &c.IsPublished, &c.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, shared.ErrDuplicate
			case "23503":
				return nil, shared.ErrNotFound
			}
		}
		return nil, err
	}
	return &c, nil
}

// DeleteCourse removes a course.
func (r *Repository) DeleteCourse(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// PublishCourse flips the published flag.
func (r *Repository) PublishCourse(ctx context.Context, id int64, published bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE courses SET is_published = $2 WHERE id = $1`, id, published)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListCategories returns all categories with live course counts.
func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT cat.id, cat.name, COALESCE(cat.description, ''),
			(SELECT COUNT(*) FROM courses c WHERE c.category_id = cat.id)
		 FROM categories cat
		 ORDER BY cat.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.CourseCount); err != nil {
			return nil, err
		}
		list = append(list, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateCategory inserts a category.
func (r *Repository) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, description)
		 VALUES ($1, NULLIF($2, ''))
		 RETURNING id, name, COALESCE(description, '')`,
		name, description)
	var cat Category
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, shared.ErrDuplicate
		}
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes an empty category.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return shared.ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
