package projects

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"
)

// RepositoryPort defines data access methods for projects.
type RepositoryPort interface {
	ListProjects(ctx context.Context, filters ListFilters) ([]Project, error)
	CreateProject(ctx context.Context, params CreateProjectParams) (*Project, error)
	DeleteProject(ctx context.Context, id int64) error
	SetProjectStatus(ctx context.Context, id int64, status string) error
}

// Service handles project offering logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListProjects returns projects matching the filters.
func (s *Service) ListProjects(ctx context.Context, filters ListFilters) ([]Project, error) {
	filters.Query = strings.TrimSpace(filters.Query)
	return s.repo.ListProjects(ctx, filters)
}

// CreateProject inserts an active project.
func (s *Service) CreateProject(ctx context.Context, params CreateProjectParams) (*Project, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.MentorName = strings.TrimSpace(params.MentorName)
	return s.repo.CreateProject(ctx, params)
}

// DeleteProject removes a project. Linked trainings are detached, not deleted.
func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	return s.repo.DeleteProject(ctx, id)
}

// SetProjectStatus flips a project between active and inactive.
func (s *Service) SetProjectStatus(ctx context.Context, id int64, status string) error {
	return s.repo.SetProjectStatus(ctx, id, status)
}

// ExportCSV renders the filtered project list as CSV with a header row.
func (s *Service) ExportCSV(ctx context.Context, filters ListFilters) ([]byte, error) {
	filters.Query = strings.TrimSpace(filters.Query)
	projects, err := s.repo.ListProjects(ctx, filters)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{"id", "name", "description", "type", "mentor", "trainings", "students", "status"}); err != nil {
		return nil, err
	}
	for _, p := range projects {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Description,
			p.Type,
			p.MentorName,
			strconv.Itoa(p.TrainingsCount),
			strconv.Itoa(p.StudentsCount),
			p.Status,
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
