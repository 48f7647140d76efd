package rbac

import "github.com/lumiere-institute/lumiere/internal/shared"

// Registry is the fixed permission catalog. It is assembled once at startup
// and never mutated, so it is safe to share without locking.
type Registry struct {
	ordered []Permission
	byID    map[string]Permission
}

// NewRegistry returns the platform permission catalog.
func NewRegistry() *Registry {
	catalog := []Permission{
		{ID: shared.PermCreate, Name: "Create", Description: "Create new records"},
		{ID: shared.PermRead, Name: "Read", Description: "View records"},
		{ID: shared.PermUpdate, Name: "Update", Description: "Edit existing records"},
		{ID: shared.PermDelete, Name: "Delete", Description: "Remove records"},
		{ID: shared.PermManageUsers, Name: "Manage Users", Description: "User management"},
		{ID: shared.PermManageCourses, Name: "Manage Courses", Description: "Course management"},
		{ID: shared.PermViewStudents, Name: "View Students", Description: "Access student data"},
		{ID: shared.PermUpdateProfile, Name: "Update Profile", Description: "Edit own profile"},
	}
	byID := make(map[string]Permission, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}
	return &Registry{ordered: catalog, byID: byID}
}

// List returns the catalog in stable declaration order.
func (r *Registry) List() []Permission {
	out := make([]Permission, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Exists reports whether the permission id is part of the catalog.
func (r *Registry) Exists(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Get returns the catalog entry for id.
func (r *Registry) Get(id string) (Permission, bool) {
	p, ok := r.byID[id]
	return p, ok
}
