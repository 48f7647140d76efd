package students

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lumiere-institute/lumiere/internal/platform/httpx"
	"github.com/lumiere-institute/lumiere/internal/rbac"
	"github.com/lumiere-institute/lumiere/internal/shared"
)

// Handler manages student enrollment endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	rbac      rbac.Middleware
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, rbac: rbac, validator: validator.New()}
}

// MountRoutes registers student routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequirePermission(shared.PermViewStudents))
		r.Get("/", h.listStudents)
		r.Get("/export", h.exportStudents)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequirePermission(shared.PermCreate))
		r.Post("/", h.createStudent)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequirePermission(shared.PermDelete))
		r.Delete("/{studentID}", h.deleteStudent)
	})
}

type createStudentRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"max=32"`
	CourseID int64  `json:"course_id" validate:"required,gt=0"`
}

func (h *Handler) filters(r *http.Request) ListFilters {
	filters := ListFilters{
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("course_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.CourseID = id
		}
	}
	return filters
}

func (h *Handler) listStudents(w http.ResponseWriter, r *http.Request) {
	filters := h.filters(r)
	filters.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filters.PerPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	if filters.PerPage <= 0 || filters.PerPage > 100 {
		filters.PerPage = 20
	}

	students, pagination, err := h.service.ListStudents(r.Context(), filters)
	if err != nil {
		h.logger.Error("list students", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"students": students, "pagination": pagination})
}

func (h *Handler) exportStudents(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportCSV(r.Context(), h.filters(r))
	if err != nil {
		h.logger.Error("export students", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="students.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) createStudent(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	student, err := h.service.CreateStudent(r.Context(), CreateStudentParams{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		CourseID: req.CourseID,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, student)
}

func (h *Handler) deleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "studentID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Student ID", "student id must be an integer")
		return
	}
	if err := h.service.DeleteStudent(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
