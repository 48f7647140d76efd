package courses

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

// Handler manages course catalog endpoints.
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

// MountRoutes registers course and category routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequirePermission(shared.PermRead))
		r.Get("/", h.listCourses)
		r.Get("/categories", h.listCategories)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequirePermission(shared.PermManageCourses))
		r.Post("/", h.createCourse)
		r.Delete("/{courseID}", h.deleteCourse)
		r.Put("/{courseID}/publish", h.publishCourse)
		r.Post("/categories", h.createCategory)
		r.Delete("/categories/{categoryID}", h.deleteCategory)
	})
}

type createCourseRequest struct {
	Title         string `json:"title" validate:"required,min=2,max=160"`
	Description   string `json:"description" validate:"max=4096"`
	CategoryID    int64  `json:"category_id" validate:"required,gt=0"`
	Price         int64  `json:"price_cents" validate:"gte=0"`
	DurationWeeks int    `json:"duration_weeks" validate:"required,gt=0,lte=104"`
	Level         string `json:"level" validate:"required,oneof=beginner intermediate advanced"`
}

type publishCourseRequest struct {
	Published bool `json:"published"`
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=96"`
	Description string `json:"description" validate:"max=1024"`
}

func (h *Handler) listCourses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{
		Query: q.Get("q"),
		Level: q.Get("level"),
	}
	if raw := q.Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Category", "category_id must be an integer")
			return
		}
		filters.CategoryID = id
	}
	if raw := q.Get("published"); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", "published must be a boolean")
			return
		}
		filters.Published = &published
	}
	list, err := h.service.ListCourses(r.Context(), filters)
	if err != nil {
		h.logger.Error("list courses", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"courses": list})
}

func (h *Handler) createCourse(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	course, err := h.service.CreateCourse(r.Context(), CreateCourseParams{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Price:         req.Price,
		DurationWeeks: req.DurationWeeks,
		Level:         req.Level,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, course)
}

func (h *Handler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Course ID", "course id must be an integer")
		return
	}
	if err := h.service.DeleteCourse(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) publishCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Course ID", "course id must be an integer")
		return
	}
	var req publishCourseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	if err := h.service.PublishCourse(r.Context(), id, req.Published); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("list categories", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"categories": list})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	category, err := h.service.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Category ID", "category id must be an integer")
		return
	}
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
