package rbac

import "time"

// Permission represents an atomic capability from the fixed catalog.
type Permission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Role represents an administrator-defined bundle of permissions.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	UserCount   int       `json:"user_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateRoleParams carries a partial role update. Nil fields are left
// unchanged; a non-nil Permissions slice replaces the whole set.
type UpdateRoleParams struct {
	Name        *string
	Description *string
	Permissions []string
}
