package users

import "context"

// RepositoryPort defines data access methods for user administration.
type RepositoryPort interface {
	ListUsers(ctx context.Context, filters ListFilters) ([]User, error)
	CreateUser(ctx context.Context, email, name, passwordHash string, roleID int64) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
	RoleExists(ctx context.Context, roleID int64) (bool, error)
}
