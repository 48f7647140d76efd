package courses

import (
	"context"
	"strings"
)

// RepositoryPort defines data access methods for courses and categories.
type RepositoryPort interface {
	ListCourses(ctx context.Context, filters ListFilters) ([]Course, error)
	CreateCourse(ctx context.Context, params CreateCourseParams) (*Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	PublishCourse(ctx context.Context, id int64, published bool) error

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, name, description string) (*Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// Service handles course catalog logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListCourses returns courses matching the filters.
func (s *Service) ListCourses(ctx context.Context, filters ListFilters) ([]Course, error) {
	filters.Query = strings.TrimSpace(filters.Query)
	return s.repo.ListCourses(ctx, filters)
}

// CreateCourse inserts a draft course.
func (s *Service) CreateCourse(ctx context.Context, params CreateCourseParams) (*Course, error) {
	params.Title = strings.TrimSpace(params.Title)
	return s.repo.CreateCourse(ctx, params)
}

// DeleteCourse removes a course.
func (s *Service) DeleteCourse(ctx context.Context, id int64) error {
	return s.repo.DeleteCourse(ctx, id)
}

// PublishCourse toggles a course's published flag.
func (s *Service) PublishCourse(ctx context.Context, id int64, published bool) error {
	return s.repo.PublishCourse(ctx, id, published)
}

// ListCategories returns all categories with course counts.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

// CreateCategory inserts a category.
func (s *Service) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	return s.repo.CreateCategory(ctx, strings.TrimSpace(name), strings.TrimSpace(description))
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.repo.DeleteCategory(ctx, id)
}
