package instructors

import (
	"context"
	"strings"
)

// RepositoryPort defines data access methods for instructors.
type RepositoryPort interface {
	ListInstructors(ctx context.Context, query string) ([]Instructor, error)
	CreateInstructor(ctx context.Context, params CreateInstructorParams) (*Instructor, error)
	DeleteInstructor(ctx context.Context, id int64) error
}

// Service handles instructor management logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListInstructors returns staff matching the search query.
func (s *Service) ListInstructors(ctx context.Context, query string) ([]Instructor, error) {
	return s.repo.ListInstructors(ctx, strings.TrimSpace(query))
}

// CreateInstructor inserts a staff record.
func (s *Service) CreateInstructor(ctx context.Context, params CreateInstructorParams) (*Instructor, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	return s.repo.CreateInstructor(ctx, params)
}

// DeleteInstructor removes a staff record.
func (s *Service) DeleteInstructor(ctx context.Context, id int64) error {
	return s.repo.DeleteInstructor(ctx, id)
}
