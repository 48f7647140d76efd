package trainings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumiere-institute/lumiere/internal/shared"
)

type mockRepository struct {
	trainings map[int64]Training
	modules   map[int64]Module
	nextID    int64

	listErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		trainings: make(map[int64]Training),
		modules:   make(map[int64]Module),
		nextID:    1,
	}
}

func (m *mockRepository) seedTraining(title string, startsOn time.Time) Training {
	tr := Training{
		ID:       m.nextID,
		Title:    title,
		StartsOn: startsOn,
		EndsOn:   startsOn.AddDate(0, 2, 0),
		Capacity: 20,
	}
	m.trainings[tr.ID] = tr
	m.nextID++
	return tr
}

func (m *mockRepository) ListTrainings(_ context.Context, filters ListFilters) ([]Training, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	now := time.Now()
	var list []Training
	for _, tr := range m.trainings {
		if filters.Upcoming && tr.StartsOn.Before(now) {
			continue
		}
		list = append(list, tr)
	}
	return list, nil
}

func (m *mockRepository) GetTraining(_ context.Context, id int64) (*Training, error) {
	tr, ok := m.trainings[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	tr.ModuleCount = 0
	for _, mod := range m.modules {
		if mod.TrainingID == id {
			tr.ModuleCount++
		}
	}
	return &tr, nil
}

func (m *mockRepository) CreateTraining(_ context.Context, params CreateTrainingParams) (*Training, error) {
	tr := Training{
		ID:           m.nextID,
		Title:        params.Title,
		Description:  params.Description,
		CourseID:     params.CourseID,
		ProjectID:    params.ProjectID,
		InstructorID: params.InstructorID,
		StartsOn:     params.StartsOn,
		EndsOn:       params.EndsOn,
		Capacity:     params.Capacity,
		CreatedAt:    time.Now(),
	}
	m.trainings[tr.ID] = tr
	m.nextID++
	return &tr, nil
}

func (m *mockRepository) DeleteTraining(_ context.Context, id int64) error {
	if _, ok := m.trainings[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.trainings, id)
	for modID, mod := range m.modules {
		if mod.TrainingID == id {
			delete(m.modules, modID)
		}
	}
	return nil
}

func (m *mockRepository) ListModules(_ context.Context, trainingID int64) ([]Module, error) {
	var list []Module
	for _, mod := range m.modules {
		if mod.TrainingID == trainingID {
			list = append(list, mod)
		}
	}
	return list, nil
}

func (m *mockRepository) CreateModule(_ context.Context, params CreateModuleParams) (*Module, error) {
	position := 0
	for _, mod := range m.modules {
		if mod.TrainingID == params.TrainingID && mod.Position > position {
			position = mod.Position
		}
	}
	mod := Module{
		ID:         m.nextID,
		TrainingID: params.TrainingID,
		Position:   position + 1,
		Title:      params.Title,
		Summary:    params.Summary,
		Hours:      params.Hours,
	}
	m.modules[mod.ID] = mod
	m.nextID++
	return &mod, nil
}

func (m *mockRepository) DeleteModule(_ context.Context, trainingID, moduleID int64) error {
	mod, ok := m.modules[moduleID]
	if !ok || mod.TrainingID != trainingID {
		return shared.ErrNotFound
	}
	delete(m.modules, moduleID)
	return nil
}

var _ RepositoryPort = (*mockRepository)(nil)

func TestCreateTrainingRejectsBackwardsSchedule(t *testing.T) {
	svc := NewService(newMockRepository())

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.CreateTraining(context.Background(), CreateTrainingParams{
		Title:    "Bridal Styling Intensive",
		StartsOn: start,
		EndsOn:   start.AddDate(0, 0, -7),
		Capacity: 12,
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestCreateTrainingTrimsTitle(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	tr, err := svc.CreateTraining(context.Background(), CreateTrainingParams{
		Title:    "  Autumn Cohort  ",
		StartsOn: start,
		EndsOn:   start.AddDate(0, 3, 0),
		Capacity: 24,
	})
	require.NoError(t, err)
	assert.Equal(t, "Autumn Cohort", tr.Title)
}

func TestListTrainingsUpcoming(t *testing.T) {
	repo := newMockRepository()
	repo.seedTraining("Past Cohort", time.Now().AddDate(0, -6, 0))
	repo.seedTraining("Next Cohort", time.Now().AddDate(0, 1, 0))
	svc := NewService(repo)

	upcoming, err := svc.ListTrainings(context.Background(), ListFilters{Upcoming: true})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Next Cohort", upcoming[0].Title)
}

func TestModuleLifecycle(t *testing.T) {
	repo := newMockRepository()
	tr := repo.seedTraining("Spring Cohort", time.Now().AddDate(0, 1, 0))
	svc := NewService(repo)

	first, err := svc.AddModule(context.Background(), CreateModuleParams{
		TrainingID: tr.ID, Title: "Color Theory", Hours: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Position)

	second, err := svc.AddModule(context.Background(), CreateModuleParams{
		TrainingID: tr.ID, Title: "Client Consultation", Hours: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)

	got, err := svc.GetTraining(context.Background(), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ModuleCount)

	require.NoError(t, svc.RemoveModule(context.Background(), tr.ID, first.ID))
	assert.ErrorIs(t, svc.RemoveModule(context.Background(), tr.ID, first.ID), shared.ErrNotFound)
}

func TestAddModuleUnknownTraining(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.AddModule(context.Background(), CreateModuleParams{
		TrainingID: 99, Title: "Orphan Module", Hours: 4,
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListModulesUnknownTraining(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.ListModules(context.Background(), 7)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
