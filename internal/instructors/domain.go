package instructors

import "time"

// Instructor represents a member of the teaching staff.
type Instructor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Specialty string    `json:"specialty"`
	Bio       string    `json:"bio,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInstructorParams carries a new staff record.
type CreateInstructorParams struct {
	Name      string
	Email     string
	Specialty string
	Bio       string
}
