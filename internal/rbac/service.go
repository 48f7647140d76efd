package rbac

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lumiere-institute/lumiere/internal/shared"
)

// Service orchestrates role store operations and enforces the invariants the
// repository cannot: permission ids must come from the registry, role names
// are unique case-insensitively, and the Admin role is protected.
type Service struct {
	repo     Repository
	registry *Registry
	cache    *PermissionCache
}

// NewService constructs a Service.
func NewService(repo Repository, registry *Registry, cache *PermissionCache) *Service {
	return &Service{repo: repo, registry: registry, cache: cache}
}

// Registry exposes the permission catalog.
func (s *Service) Registry() *Registry {
	return s.registry
}

// ListRoles returns all roles in creation order.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.repo.ListRoles(ctx)
}

// GetRole fetches a role by id.
func (s *Service) GetRole(ctx context.Context, id int64) (*Role, error) {
	return s.repo.GetRole(ctx, id)
}

// CreateRole inserts a new role. The permission set is validated against the
// registry and duplicates collapse. A new role starts with zero users.
func (s *Service) CreateRole(ctx context.Context, name, description string, permissionIDs []string) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: role name required", shared.ErrInvalidInput)
	}
	perms, err := s.normalizePermissions(permissionIDs)
	if err != nil {
		return nil, err
	}
	if existing, err := s.repo.GetRoleByName(ctx, name); err == nil && existing != nil {
		return nil, shared.ErrDuplicateRole
	} else if err != nil && !errors.Is(err, shared.ErrRoleNotFound) {
		return nil, err
	}
	return s.repo.CreateRole(ctx, name, strings.TrimSpace(description), perms)
}

// UpdateRole applies a partial update. For the protected Admin role a rename
// is refused, as is a permission update that would leave the set empty.
func (s *Service) UpdateRole(ctx context.Context, id int64, params UpdateRoleParams) (*Role, error) {
	existing, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}

	name := existing.Name
	if params.Name != nil {
		name = strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: role name required", shared.ErrInvalidInput)
		}
	}
	description := existing.Description
	if params.Description != nil {
		description = strings.TrimSpace(*params.Description)
	}
	perms := existing.Permissions
	if params.Permissions != nil {
		perms, err = s.normalizePermissions(params.Permissions)
		if err != nil {
			return nil, err
		}
	}

	if isProtected(existing.Name) {
		if !strings.EqualFold(name, existing.Name) {
			return nil, shared.ErrProtectedRole
		}
		if len(perms) == 0 {
			return nil, shared.ErrProtectedRole
		}
	}

	if !strings.EqualFold(name, existing.Name) {
		if other, err := s.repo.GetRoleByName(ctx, name); err == nil && other != nil && other.ID != id {
			return nil, shared.ErrDuplicateRole
		} else if err != nil && !errors.Is(err, shared.ErrRoleNotFound) {
			return nil, err
		}
	}

	updated, err := s.repo.UpdateRole(ctx, id, name, description, perms)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, existing.Name, updated.Name)
	return updated, nil
}

// DeleteRole removes a role. Deleting the Admin role always fails with
// ErrProtectedRole regardless of caller or prior state.
func (s *Service) DeleteRole(ctx context.Context, id int64) error {
	existing, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return err
	}
	if isProtected(existing.Name) {
		return shared.ErrProtectedRole
	}
	if err := s.repo.DeleteRole(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, existing.Name)
	return nil
}

// GetPermissionsForRole resolves a role's permission set to catalog entries.
func (s *Service) GetPermissionsForRole(ctx context.Context, id int64) ([]Permission, error) {
	ids, err := s.repo.GetRolePermissions(ctx, id)
	if err != nil {
		return nil, err
	}
	perms := make([]Permission, 0, len(ids))
	for _, pid := range ids {
		if p, ok := s.registry.Get(pid); ok {
			perms = append(perms, p)
		}
	}
	return perms, nil
}

// PermissionsForRoleName returns the permission ids for a role name, serving
// the authorization hot path through the cache.
func (s *Service) PermissionsForRoleName(ctx context.Context, roleName string) ([]string, error) {
	if perms, ok := s.cache.Get(ctx, roleName); ok {
		return perms, nil
	}
	perms, err := s.repo.GetRolePermissionsByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, roleName, perms)
	return perms, nil
}

func (s *Service) normalizePermissions(ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(strings.ToLower(id))
		if id == "" {
			continue
		}
		if !s.registry.Exists(id) {
			return nil, fmt.Errorf("%w: %s", shared.ErrInvalidPermission, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func isProtected(roleName string) bool {
	return strings.EqualFold(roleName, shared.AdminRoleName)
}
