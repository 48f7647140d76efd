package users

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumiere-institute/lumiere/internal/shared"
)

type mockRepository struct {
	users  map[int64]*User
	roles  map[int64]string
	hashes map[int64]string
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:  make(map[int64]*User),
		roles:  map[int64]string{1: "Admin", 3: "Student"},
		hashes: make(map[int64]string),
		nextID: 1,
	}
}

func (m *mockRepository) ListUsers(ctx context.Context, filters ListFilters) ([]User, error) {
	var out []User
	for _, u := range m.users {
		if filters.Query != "" && !strings.Contains(strings.ToLower(u.Name+u.Email), strings.ToLower(filters.Query)) {
			continue
		}
		if filters.RoleID > 0 && u.RoleID != filters.RoleID {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockRepository) CreateUser(ctx context.Context, email, name, passwordHash string, roleID int64) (*User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return nil, shared.ErrDuplicate
		}
	}
	user := &User{ID: m.nextID, Email: email, Name: name, RoleID: roleID, RoleName: m.roles[roleID], IsActive: true}
	m.users[user.ID] = user
	m.hashes[user.ID] = passwordHash
	m.nextID++
	return user, nil
}

func (m *mockRepository) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockRepository) RoleExists(ctx context.Context, roleID int64) (bool, error) {
	_, ok := m.roles[roleID]
	return ok, nil
}

var _ RepositoryPort = (*mockRepository)(nil)

func TestCreateUser(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	user, err := svc.CreateUser(context.Background(), CreateUserParams{
		Email:    "  Amira@Lumiere.Test ",
		Name:     "Amira Haddad",
		Password: "sup3rsecret",
		RoleID:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, "amira@lumiere.test", user.Email, "email is lowercased and trimmed")
	assert.Equal(t, "Student", user.RoleName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.hashes[user.ID]), []byte("sup3rsecret")))
}

func TestCreateUserUnknownRole(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.CreateUser(context.Background(), CreateUserParams{
		Email:    "amira@lumiere.test",
		Name:     "Amira",
		Password: "sup3rsecret",
		RoleID:   99,
	})
	assert.ErrorIs(t, err, shared.ErrRoleNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	params := CreateUserParams{Email: "amira@lumiere.test", Name: "Amira", Password: "sup3rsecret", RoleID: 3}
	_, err := svc.CreateUser(context.Background(), params)
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), params)
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestDeleteUser(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	user, err := svc.CreateUser(context.Background(), CreateUserParams{Email: "a@lumiere.test", Name: "A", Password: "sup3rsecret", RoleID: 3})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), user.ID), shared.ErrNotFound)
}

func TestListUsersFilters(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.CreateUser(context.Background(), CreateUserParams{Email: "amira@lumiere.test", Name: "Amira", Password: "sup3rsecret", RoleID: 3})
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), CreateUserParams{Email: "root@lumiere.test", Name: "Root", Password: "sup3rsecret", RoleID: 1})
	require.NoError(t, err)

	users, err := svc.ListUsers(context.Background(), ListFilters{Query: "amira"})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	users, err = svc.ListUsers(context.Background(), ListFilters{RoleID: 1})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "Root", users[0].Name)
}
