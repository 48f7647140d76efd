package students

import "time"

// Status values for an enrollment record.
const (
	StatusEnrolled  = "enrolled"
	StatusCompleted = "completed"
	StatusDropped   = "dropped"
)

// Student represents an enrolled learner.
type Student struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	CourseID   int64     `json:"course_id"`
	CourseName string    `json:"course"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// ListFilters narrows a student listing. Page and PerPage of zero disable
// pagination; the CSV export always reads the full filtered set.
type ListFilters struct {
	Query    string
	Status   string
	CourseID int64
	Page     int
	PerPage  int
}

// CreateStudentParams carries a new enrollment.
type CreateStudentParams struct {
	Name     string
	Email    string
	Phone    string
	CourseID int64
}
