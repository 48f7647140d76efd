package users

import "time"

// User represents an account row for administration.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	RoleID    int64     `json:"role_id"`
	RoleName  string    `json:"role"`
	AvatarURL string    `json:"avatar,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListFilters narrows a user listing.
type ListFilters struct {
	Query  string
	RoleID int64
}

// CreateUserParams carries a new account request.
type CreateUserParams struct {
	Email    string
	Name     string
	Password string
	RoleID   int64
}
