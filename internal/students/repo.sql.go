package students

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

const studentColumns = `s.id, s.name, s.email, COALESCE(s.phone, ''), s.course_id, c.title, s.status, s.enrolled_at`

// ListStudents returns enrollments matching the filters, newest first, plus
// the total count before pagination.
func (r *Repository) ListStudents(ctx context.Context, filters ListFilters) ([]Student, int, error) {
	where := ` FROM students s JOIN courses c ON c.id = s.course_id WHERE 1=1`
	args := []any{}
	if filters.Query != "" {
		args = append(args, "%"+filters.Query+"%")
		where += fmt.Sprintf(` AND (s.name ILIKE $%d OR s.email ILIKE $%d)`, len(args), len(args))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		where += fmt.Sprintf(` AND s.status = $%d`, len(args))
	}
	if filters.CourseID > 0 {
		args = append(args, filters.CourseID)
		where += fmt.Sprintf(` AND s.course_id = $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + studentColumns + where + ` ORDER BY s.id DESC`
	if filters.PerPage > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		args = append(args, filters.PerPage)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
		args = append(args, (page-1)*filters.PerPage)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var students []Student
	for rows.Next() {
		var st Student
		if err := rows.Scan(&st.ID, &st.Name, &st.Email, &st.Phone, &st.CourseID, &st.CourseName, &st.Status, &st.EnrolledAt); err != nil {
			return nil, 0, err
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// CreateStudent inserts an enrollment with status enrolled.
func (r *Repository) CreateStudent(ctx context.Context, params CreateStudentParams) (*Student, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (name, email, phone, course_id, status, enrolled_at)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, now()) RETURNING id`,
		params.Name, params.Email, params.Phone, params.CourseID, StatusEnrolled).Scan(&id)
	if err != nil {
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
	row := r.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students s JOIN courses c ON c.id = s.course_id WHERE s.id = $1`, id)
	var st Student
	if err := row.Scan(&st.ID, &st.Name, &st.Email, &st.Phone, &st.CourseID, &st.CourseName, &st.Status, &st.EnrolledAt); err != nil {
		return nil, err
	}
	return &st, nil
}

// DeleteStudent removes an enrollment record.
func (r *Repository) DeleteStudent(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
