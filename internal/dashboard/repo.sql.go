package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed aggregates.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CountStudents(ctx context.Context) (total, active int64, err error) {
	row := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'enrolled') FROM students`)
	err = row.Scan(&total, &active)
	return total, active, err
}

func (r *Repository) CountPublishedCourses(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM courses WHERE is_published`).Scan(&n)
	return n, err
}

func (r *Repository) CountUpcomingTrainings(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM trainings WHERE starts_on >= now()`).Scan(&n)
	return n, err
}

func (r *Repository) CountInstructors(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM instructors WHERE is_active`).Scan(&n)
	return n, err
}

// SumRevenueCents totals course prices across enrolled and completed students.
func (r *Repository) SumRevenueCents(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(c.price_cents), 0)
		 FROM students s
		 JOIN courses c ON c.id = s.course_id
		 WHERE s.status IN ('enrolled', 'completed')`).Scan(&n)
	return n, err
}

var _ RepositoryPort = (*Repository)(nil)
