package trainings

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumiere-institute/lumiere/internal/shared"
)

// RepositoryPort defines data access methods for trainings and their modules.
type RepositoryPort interface {
	ListTrainings(ctx context.Context, filters ListFilters) ([]Training, error)
	GetTraining(ctx context.Context, id int64) (*Training, error)
	CreateTraining(ctx context.Context, params CreateTrainingParams) (*Training, error)
	DeleteTraining(ctx context.Context, id int64) error

	ListModules(ctx context.Context, trainingID int64) ([]Module, error)
	CreateModule(ctx context.Context, params CreateModuleParams) (*Module, error)
	DeleteModule(ctx context.Context, trainingID, moduleID int64) error
}

// Service handles training program logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListTrainings returns trainings matching the filters.
func (s *Service) ListTrainings(ctx context.Context, filters ListFilters) ([]Training, error) {
	filters.Query = strings.TrimSpace(filters.Query)
	return s.repo.ListTrainings(ctx, filters)
}

// GetTraining returns one training with its module count.
func (s *Service) GetTraining(ctx context.Context, id int64) (*Training, error) {
	return s.repo.GetTraining(ctx, id)
}

// CreateTraining inserts a new training program after checking the schedule.
func (s *Service) CreateTraining(ctx context.Context, params CreateTrainingParams) (*Training, error) {
	params.Title = strings.TrimSpace(params.Title)
	if !params.EndsOn.After(params.StartsOn) {
		return nil, fmt.Errorf("%w: training must end after it starts", shared.ErrInvalidInput)
	}
	return s.repo.CreateTraining(ctx, params)
}

// DeleteTraining removes a training and its modules.
func (s *Service) DeleteTraining(ctx context.Context, id int64) error {
	return s.repo.DeleteTraining(ctx, id)
}

// ListModules returns a training's modules in position order.
func (s *Service) ListModules(ctx context.Context, trainingID int64) ([]Module, error) {
	if _, err := s.repo.GetTraining(ctx, trainingID); err != nil {
		return nil, err
	}
	return s.repo.ListModules(ctx, trainingID)
}

// AddModule appends a module to the end of a training's syllabus.
func (s *Service) AddModule(ctx context.Context, params CreateModuleParams) (*Module, error) {
	params.Title = strings.TrimSpace(params.Title)
	if _, err := s.repo.GetTraining(ctx, params.TrainingID); err != nil {
		return nil, err
	}
	return s.repo.CreateModule(ctx, params)
}

// RemoveModule deletes a module from a training.
func (s *Service) RemoveModule(ctx context.Context, trainingID, moduleID int64) error {
	return s.repo.DeleteModule(ctx, trainingID, moduleID)
}
