package users

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumiere-institute/lumiere/internal/shared"
)

// Service handles user administration logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListUsers returns accounts matching the filters.
func (s *Service) ListUsers(ctx context.Context, filters ListFilters) ([]User, error) {
	filters.Query = strings.TrimSpace(filters.Query)
	return s.repo.ListUsers(ctx, filters)
}

// CreateUser hashes the password and inserts the account. The role reference
// is validated so a dangling role id never reaches the store.
func (s *Service) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	ok, err := s.repo.RoleExists(ctx, params.RoleID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrRoleNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, strings.ToLower(strings.TrimSpace(params.Email)), strings.TrimSpace(params.Name), string(hash), params.RoleID)
}

// DeleteUser removes an account. Role user counts are derived by join, so no
// explicit counter maintenance is needed here.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}
