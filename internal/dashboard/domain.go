package dashboard

import "time"

// Stats is the aggregate snapshot shown on the admin landing page.
type Stats struct {
	TotalStudents     int64     `json:"total_students"`
	ActiveStudents    int64     `json:"active_students"`
	PublishedCourses  int64     `json:"published_courses"`
	UpcomingTrainings int64     `json:"upcoming_trainings"`
	TotalInstructors  int64     `json:"total_instructors"`
	RevenueCents      int64     `json:"revenue_cents"`
	GeneratedAt       time.Time `json:"generated_at"`
}
