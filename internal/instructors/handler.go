package instructors

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

// Handler manages instructor endpoints.
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

// MountRoutes registers instructor routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequirePermission(shared.PermRead))
		r.Get("/", h.listInstructors)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequirePermission(shared.PermManageUsers))
		r.Post("/", h.createInstructor)
		r.Delete("/{instructorID}", h.deleteInstructor)
	})
}

type createInstructorRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=128"`
	Email     string `json:"email" validate:"required,email"`
	Specialty string `json:"specialty" validate:"required,max=128"`
	Bio       string `json:"bio" validate:"max=2048"`
}

func (h *Handler) listInstructors(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.service.ListInstructors(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("list instructors", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"instructors": instructors})
}

func (h *Handler) createInstructor(w http.ResponseWriter, r *http.Request) {
	var req createInstructorRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	instructor, err := h.service.CreateInstructor(r.Context(), CreateInstructorParams{
		Name:      req.Name,
		Email:     req.Email,
		Specialty: req.Specialty,
		Bio:       req.Bio,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, instructor)
}

func (h *Handler) deleteInstructor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "instructorID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Instructor ID", "instructor id must be an integer")
		return
	}
	if err := h.service.DeleteInstructor(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
