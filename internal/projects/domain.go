package projects

import "time"

// Project is a training program offering: a bundle of trainings run by a
// mentor, offered free or paid. Trainings and students counts are derived
// from the linked trainings, never stored.
type Project struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	Type           string    `json:"type"`
	MentorName     string    `json:"mentor_name"`
	MentorAddress  string    `json:"mentor_address,omitempty"`
	TrainingsCount int       `json:"trainings_count"`
	StudentsCount  int       `json:"students_count"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListFilters narrows a project listing. Query matches the project name or
// the mentor name.
type ListFilters struct {
	Query  string
	Type   string
	Status string
}

// CreateProjectParams carries a new project. New projects start active.
type CreateProjectParams struct {
	Name          string
	Description   string
	ImageURL      string
	Type          string
	MentorName    string
	MentorAddress string
}
