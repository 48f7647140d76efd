package rbac

import "context"

// Repository defines persistence operations for the role store.
type Repository interface {
	ListRoles(ctx context.Context) ([]Role, error)
	GetRole(ctx context.Context, id int64) (*Role, error)
	GetRoleByName(ctx context.Context, name string) (*Role, error)
	CreateRole(ctx context.Context, name, description string, permissions []string) (*Role, error)
	UpdateRole(ctx context.Context, id int64, name, description string, permissions []string) (*Role, error)
	DeleteRole(ctx context.Context, id int64) error
	GetRolePermissions(ctx context.Context, id int64) ([]string, error)
	GetRolePermissionsByName(ctx context.Context, name string) ([]string, error)
}
