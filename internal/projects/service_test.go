package projects

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumiere-institute/lumiere/internal/shared"
)

type mockRepository struct {
	projects map[int64]Project
	nextID   int64

	listErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{projects: make(map[int64]Project), nextID: 1}
}

func (m *mockRepository) seedProject(name, projectType, mentor string) Project {
	p := Project{
		ID:         m.nextID,
		Name:       name,
		Type:       projectType,
		MentorName: mentor,
		Status:     "active",
	}
	m.projects[p.ID] = p
	m.nextID++
	return p
}

func (m *mockRepository) ListProjects(_ context.Context, filters ListFilters) ([]Project, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var list []Project
	for _, p := range m.projects {
		if filters.Query != "" {
			q := strings.ToLower(filters.Query)
			if !strings.Contains(strings.ToLower(p.Name), q) &&
				!strings.Contains(strings.ToLower(p.MentorName), q) {
				continue
			}
		}
		if filters.Type != "" && p.Type != filters.Type {
			continue
		}
		if filters.Status != "" && p.Status != filters.Status {
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

func (m *mockRepository) CreateProject(_ context.Context, params CreateProjectParams) (*Project, error) {
	for _, p := range m.projects {
		if strings.EqualFold(p.Name, params.Name) {
			return nil, shared.ErrDuplicate
		}
	}
	p := Project{
		ID:            m.nextID,
		Name:          params.Name,
		Description:   params.Description,
		ImageURL:      params.ImageURL,
		Type:          params.Type,
		MentorName:    params.MentorName,
		MentorAddress: params.MentorAddress,
		Status:        "active",
	}
	m.projects[p.ID] = p
	m.nextID++
	return &p, nil
}

func (m *mockRepository) DeleteProject(_ context.Context, id int64) error {
	if _, ok := m.projects[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *mockRepository) SetProjectStatus(_ context.Context, id int64, status string) error {
	p, ok := m.projects[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.Status = status
	m.projects[id] = p
	return nil
}

func TestCreateProjectTrimsFields(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	p, err := svc.CreateProject(context.Background(), CreateProjectParams{
		Name:       "  Professional Makeup Mastery  ",
		Type:       "paid",
		MentorName: " Sarah Johnson ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Professional Makeup Mastery", p.Name)
	assert.Equal(t, "Sarah Johnson", p.MentorName)
	assert.Equal(t, "active", p.Status)
}

func TestCreateProjectDuplicateName(t *testing.T) {
	repo := newMockRepository()
	repo.seedProject("Basic Hair Styling", "free", "Michael Chen")
	svc := NewService(repo)

	_, err := svc.CreateProject(context.Background(), CreateProjectParams{
		Name:       "basic hair styling",
		Type:       "free",
		MentorName: "Someone Else",
	})
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestListProjectsFilters(t *testing.T) {
	repo := newMockRepository()
	repo.seedProject("Professional Makeup Mastery", "paid", "Sarah Johnson")
	repo.seedProject("Basic Hair Styling", "free", "Michael Chen")
	svc := NewService(repo)

	byType, err := svc.ListProjects(context.Background(), ListFilters{Type: "free"})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Basic Hair Styling", byType[0].Name)

	byMentor, err := svc.ListProjects(context.Background(), ListFilters{Query: "  sarah "})
	require.NoError(t, err)
	require.Len(t, byMentor, 1)
	assert.Equal(t, "Professional Makeup Mastery", byMentor[0].Name)
}

func TestSetProjectStatus(t *testing.T) {
	repo := newMockRepository()
	seeded := repo.seedProject("Basic Hair Styling", "free", "Michael Chen")
	svc := NewService(repo)

	require.NoError(t, svc.SetProjectStatus(context.Background(), seeded.ID, "inactive"))

	inactive, err := svc.ListProjects(context.Background(), ListFilters{Status: "inactive"})
	require.NoError(t, err)
	require.Len(t, inactive, 1)

	err = svc.SetProjectStatus(context.Background(), 999, "inactive")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteProject(t *testing.T) {
	repo := newMockRepository()
	seeded := repo.seedProject("Basic Hair Styling", "free", "Michael Chen")
	svc := NewService(repo)

	require.NoError(t, svc.DeleteProject(context.Background(), seeded.ID))
	require.ErrorIs(t, svc.DeleteProject(context.Background(), seeded.ID), shared.ErrNotFound)
}

func TestExportProjectsCSV(t *testing.T) {
	repo := newMockRepository()
	repo.seedProject("Professional Makeup Mastery", "paid", "Sarah Johnson")
	svc := NewService(repo)

	data, err := svc.ExportCSV(context.Background(), ListFilters{})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,description,type,mentor,trainings,students,status", lines[0])
	assert.Contains(t, lines[1], "Professional Makeup Mastery")
	assert.Contains(t, lines[1], "paid")
}
