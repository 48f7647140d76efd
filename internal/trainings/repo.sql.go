package trainings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumiere-institute/lumiere/internal/platform/db"
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

const trainingColumns = `t.id, t.title, COALESCE(t.description, ''), t.course_id, c.title,
	COALESCE(t.project_id, 0), t.instructor_id, i.name, t.starts_on, t.ends_on, t.capacity,
	(SELECT COUNT(*) FROM training_modules m WHERE m.training_id = t.id),
	t.created_at`

func scanTraining(row pgx.Row) (*Training, error) {
	var tr Training
	err := row.Scan(&tr.ID, &tr.Title, &tr.Description, &tr.CourseID, &tr.CourseTitle,
		&tr.ProjectID, &tr.InstructorID, &tr.Instructor, &tr.StartsOn, &tr.EndsOn, &tr.Capacity,
		&tr.ModuleCount, &tr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tr, nil
}

// ListTrainings returns training programs matching the filters, soonest first.
func (r *Repository) ListTrainings(ctx context.Context, filters ListFilters) ([]Training, error) {
	sql := `SELECT ` + trainingColumns + `
		FROM trainings t
		JOIN courses c ON c.id = t.course_id
		JOIN instructors i ON i.id = t.instructor_id`

	var (
		conds []string
		args  []any
	)
	if filters.Query != "" {
		args = append(args, "%"+filters.Query+"%")
		conds = append(conds, fmt.Sprintf("t.title ILIKE $%d", len(args)))
	}
	if filters.CourseID > 0 {
		args = append(args, filters.CourseID)
		conds = append(conds, fmt.Sprintf("t.course_id = $%d", len(args)))
	}
	if filters.ProjectID > 0 {
		args = append(args, filters.ProjectID)
		conds = append(conds, fmt.Sprintf("t.project_id = $%d", len(args)))
	}
	if filters.InstructorID > 0 {
		args = append(args, filters.InstructorID)
		conds = append(conds, fmt.Sprintf("t.instructor_id = $%d", len(args)))
	}
	if filters.Upcoming {
		conds = append(conds, "t.starts_on >= now()")
	}
	for i, cond := range conds {
		if i == 0 {
			sql += " WHERE " + cond
		} else {
			sql += " AND " + cond
		}
	}
	sql += ` ORDER BY t.starts_on, t.id`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Training
	for rows.Next() {
		tr, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// GetTraining returns one training program.
func (r *Repository) GetTraining(ctx context.Context, id int64) (*Training, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+trainingColumns+`
		FROM trainings t
		JOIN courses c ON c.id = t.course_id
		JOIN instructors i ON i.id = t.instructor_id
		WHERE t.id = $1`, id)
	return scanTraining(row)
}

// CreateTraining inserts a training program.
func (r *Repository) CreateTraining(ctx context.Context, params CreateTrainingParams) (*Training, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO trainings (title, description, course_id, project_id, instructor_id, starts_on, ends_on, capacity, created_at)
		 VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, 0), $5, $6, $7, $8, now())
		 RETURNING id`,
		params.Title, params.Description, params.CourseID, params.ProjectID, params.InstructorID,
		params.StartsOn, params.EndsOn, params.Capacity)
	var id int64
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.GetTraining(ctx, id)
}

// DeleteTraining removes a training and its modules in one transaction.
func (r *Repository) DeleteTraining(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM training_modules WHERE training_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM trainings WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ListModules returns a training's modules ordered by position.
func (r *Repository) ListModules(ctx context.Context, trainingID int64) ([]Module, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, training_id, position, title, COALESCE(summary, ''), hours
		 FROM training_modules
		 WHERE training_id = $1
		 ORDER BY position`, trainingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Module
	for rows.Next() {
		var m Module
		if err := rows.Scan(&m.ID, &m.TrainingID, &m.Position, &m.Title, &m.Summary, &m.Hours); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateModule appends a module at the next free position.
func (r *Repository) CreateModule(ctx context.Context, params CreateModuleParams) (*Module, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO training_modules (training_id, position, title, summary, hours)
		 VALUES ($1,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM training_modules WHERE training_id = $1),
			$2, NULLIF($3, ''), $4)
		 RETURNING id, training_id, position, title, COALESCE(summary, ''), hours`,
		params.TrainingID, params.Title, params.Summary, params.Hours)
	var m Module
	if err := row.Scan(&m.ID, &m.TrainingID, &m.Position, &m.Title, &m.Summary, &m.Hours); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// DeleteModule removes one module from a training.
func (r *Repository) DeleteModule(ctx context.Context, trainingID, moduleID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM training_modules WHERE id = $1 AND training_id = $2`, moduleID, trainingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
