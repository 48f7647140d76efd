package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lumiere-institute/lumiere/internal/auth"
	"github.com/lumiere-institute/lumiere/internal/courses"
	"github.com/lumiere-institute/lumiere/internal/dashboard"
	"github.com/lumiere-institute/lumiere/internal/instructors"
	"github.com/lumiere-institute/lumiere/internal/observability"
	"github.com/lumiere-institute/lumiere/internal/projects"
	"github.com/lumiere-institute/lumiere/internal/rbac"
	"github.com/lumiere-institute/lumiere/internal/students"
	"github.com/lumiere-institute/lumiere/internal/trainings"
	"github.com/lumiere-institute/lumiere/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	AuthHandler        *auth.Handler
	RolesHandler       *rbac.Handler
	PermissionsHandler *rbac.PermissionsHandler
	UsersHandler       *users.Handler
	StudentsHandler    *students.Handler
	InstructorsHandler *instructors.Handler
	CoursesHandler     *courses.Handler
	TrainingsHandler   *trainings.Handler
	ProjectsHandler    *projects.Handler
	DashboardHandler   *dashboard.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		if params.RolesHandler != nil {
			r.Route("/roles", params.RolesHandler.MountRoutes)
		}
		if params.PermissionsHandler != nil {
			r.Route("/permissions", params.PermissionsHandler.MountRoutes)
		}
		if params.UsersHandler != nil {
			r.Route("/users", params.UsersHandler.MountRoutes)
		}
		if params.StudentsHandler != nil {
			r.Route("/students", params.StudentsHandler.MountRoutes)
		}
		if params.InstructorsHandler != nil {
			r.Route("/instructors", params.InstructorsHandler.MountRoutes)
		}
		if params.CoursesHandler != nil {
			r.Route("/courses", params.CoursesHandler.MountRoutes)
		}
		if params.TrainingsHandler != nil {
			r.Route("/trainings", params.TrainingsHandler.MountRoutes)
		}
		if params.ProjectsHandler != nil {
			r.Route("/projects", params.ProjectsHandler.MountRoutes)
		}
		if params.DashboardHandler != nil {
			r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		}
	})

	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	return r
}
