package students

import "context"

// RepositoryPort defines data access methods for students.
type RepositoryPort interface {
	ListStudents(ctx context.Context, filters ListFilters) ([]Student, int, error)
	CreateStudent(ctx context.Context, params CreateStudentParams) (*Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}
