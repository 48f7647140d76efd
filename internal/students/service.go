package students

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/lumiere-institute/lumiere/internal/shared"
)

// Service handles student enrollment logic.
type Service struct {
	repo     RepositoryPort
	enqueuer WelcomeEnqueuer
}

// WelcomeEnqueuer queues a welcome mail after a successful enrollment. A nil
// enqueuer disables the notification.
type WelcomeEnqueuer interface {
	EnqueueWelcome(ctx context.Context, email, name string) error
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, enqueuer WelcomeEnqueuer) *Service {
	return &Service{repo: repo, enqueuer: enqueuer}
}

// ListStudents returns enrollments matching the filters together with
// pagination metadata.
func (s *Service) ListStudents(ctx context.Context, filters ListFilters) ([]Student, shared.Pagination, error) {
	filters.Query = strings.TrimSpace(filters.Query)
	students, total, err := s.repo.ListStudents(ctx, filters)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return students, shared.NewPagination(filters.Page, filters.PerPage, total), nil
}

// CreateStudent enrolls a learner and queues the welcome mail. A failed
// enqueue never fails the enrollment.
func (s *Service) CreateStudent(ctx context.Context, params CreateStudentParams) (*Student, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	student, err := s.repo.CreateStudent(ctx, params)
	if err != nil {
		return nil, err
	}
	if s.enqueuer != nil {
		_ = s.enqueuer.EnqueueWelcome(ctx, student.Email, student.Name)
	}
	return student, nil
}

// DeleteStudent removes an enrollment.
func (s *Service) DeleteStudent(ctx context.Context, id int64) error {
	return s.repo.DeleteStudent(ctx, id)
}

// ExportCSV renders the filtered student list as CSV with a header row. The
// export always covers the full filtered set, never a single page.
func (s *Service) ExportCSV(ctx context.Context, filters ListFilters) ([]byte, error) {
	filters.Page, filters.PerPage = 0, 0
	filters.Query = strings.TrimSpace(filters.Query)
	students, _, err := s.repo.ListStudents(ctx, filters)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{"id", "name", "email", "phone", "course", "status", "enrolled_at"}); err != nil {
		return nil, err
	}
	for _, st := range students {
		record := []string{
			strconv.FormatInt(st.ID, 10),
			st.Name,
			st.Email,
			st.Phone,
			st.CourseName,
			st.Status,
			st.EnrolledAt.UTC().Format("2006-01-02"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
