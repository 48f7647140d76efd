package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumiere-institute/lumiere/internal/shared"
	"github.com/lumiere-institute/lumiere/internal/token"
)

// Service wraps authentication business rules.
type Service struct {
	repo  Repository
	codec *token.Codec
}

// NewService constructs a new Service.
func NewService(repo Repository, codec *token.Codec) *Service {
	return &Service{repo: repo, codec: codec}
}

// Authenticate validates email/password credentials. Unknown accounts,
// wrong passwords, and deactivated accounts are indistinguishable.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a session token for the account.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	raw, err := s.codec.Issue(token.Identity{
		ID:     user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.RoleName,
		Avatar: user.AvatarURL,
	})
	if err != nil {
		return "", nil, err
	}
	return raw, user, nil
}

// CreateInitialAdmin bootstraps the first administrator account. Once any
// user holds the Admin role the endpoint refuses with ErrDuplicate.
func (s *Service) CreateInitialAdmin(ctx context.Context, email, name, password string) (*User, error) {
	count, err := s.repo.CountUsersWithRole(ctx, shared.AdminRoleName)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, shared.ErrDuplicate
	}
	roleID, err := s.repo.FindRoleIDByName(ctx, shared.AdminRoleName)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, email, name, string(hash), roleID)
}
