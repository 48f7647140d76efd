package courses

import "time"

// Category groups courses on the marketing site and in the admin area.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CourseCount int    `json:"course_count"`
}

// Course represents a published or draft training course.
type Course struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	CategoryID    int64     `json:"category_id"`
	CategoryName  string    `json:"category"`
	Price         int64     `json:"price_cents"`
	DurationWeeks int       `json:"duration_weeks"`
	Level         string    `json:"level"`
	IsPublished   bool      `json:"is_published"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListFilters narrows a course listing.
type ListFilters struct {
	Query      string
	CategoryID int64
	Level      string
	Published  *bool
}

// CreateCourseParams carries a new course.
type CreateCourseParams struct {
	Title         string
	Description   string
	CategoryID    int64
	Price         int64
	DurationWeeks int
	Level         string
}
