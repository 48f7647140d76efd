package trainings

import "time"

// Training represents a scheduled training program delivered to a cohort.
type Training struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	CourseID     int64     `json:"course_id"`
	CourseTitle  string    `json:"course"`
	ProjectID    int64     `json:"project_id,omitempty"`
	InstructorID int64     `json:"instructor_id"`
	Instructor   string    `json:"instructor"`
	StartsOn     time.Time `json:"starts_on"`
	EndsOn       time.Time `json:"ends_on"`
	Capacity     int       `json:"capacity"`
	ModuleCount  int       `json:"module_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Module is one ordered unit of a training program.
type Module struct {
	ID         int64  `json:"id"`
	TrainingID int64  `json:"training_id"`
	Position   int    `json:"position"`
	Title      string `json:"title"`
	Summary    string `json:"summary,omitempty"`
	Hours      int    `json:"hours"`
}

// ListFilters narrows a training listing.
type ListFilters struct {
	Query        string
	CourseID     int64
	ProjectID    int64
	InstructorID int64
	Upcoming     bool
}

// CreateTrainingParams carries a new training program. A zero ProjectID
// leaves the training outside any project.
type CreateTrainingParams struct {
	Title        string
	Description  string
	CourseID     int64
	ProjectID    int64
	InstructorID int64
	StartsOn     time.Time
	EndsOn       time.Time
	Capacity     int
}

// CreateModuleParams carries a new module for a training.
type CreateModuleParams struct {
	TrainingID int64
	Title      string
	Summary    string
	Hours      int
}
