package trainings

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lumiere-institute/lumiere/internal/platform/httpx"
	"github.com/lumiere-institute/lumiere/internal/rbac"
	"github.com/lumiere-institute/lumiere/internal/shared"
)

// Handler manages training program endpoints.
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

// MountRoutes registers training routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequirePermission(shared.PermRead))
		r.Get("/", h.listTrainings)
		r.Get("/{trainingID}", h.getTraining)
		r.Get("/{trainingID}/modules", h.listModules)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequirePermission(shared.PermManageCourses))
		r.Post("/", h.createTraining)
		r.Delete("/{trainingID}", h.deleteTraining)
		r.Post("/{trainingID}/modules", h.addModule)
		r.Delete("/{trainingID}/modules/{moduleID}", h.removeModule)
	})
}

type createTrainingRequest struct {
	Title        string    `json:"title" validate:"required,min=2,max=160"`
	Description  string    `json:"description" validate:"max=4096"`
	CourseID     int64     `json:"course_id" validate:"required,gt=0"`
	ProjectID    int64     `json:"project_id" validate:"gte=0"`
	InstructorID int64     `json:"instructor_id" validate:"required,gt=0"`
	StartsOn     time.Time `json:"starts_on" validate:"required"`
	EndsOn       time.Time `json:"ends_on" validate:"required"`
	Capacity     int       `json:"capacity" validate:"required,gt=0,lte=500"`
}

type createModuleRequest struct {
	Title   string `json:"title" validate:"required,min=2,max=160"`
	Summary string `json:"summary" validate:"max=2048"`
	Hours   int    `json:"hours" validate:"required,gt=0,lte=200"`
}

func (h *Handler) listTrainings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{
		Query:    q.Get("q"),
		Upcoming: q.Get("upcoming") == "true",
	}
	if raw := q.Get("course_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", "course_id must be an integer")
			return
		}
		filters.CourseID = id
	}
	if raw := q.Get("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", "project_id must be an integer")
			return
		}
		filters.ProjectID = id
	}
	if raw := q.Get("instructor_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", "instructor_id must be an integer")
			return
		}
		filters.InstructorID = id
	}
	list, err := h.service.ListTrainings(r.Context(), filters)
	if err != nil {
		h.logger.Error("list trainings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"trainings": list})
}

func (h *Handler) getTraining(w http.ResponseWriter, r *http.Request) {
	id, ok := h.trainingID(w, r)
	if !ok {
		return
	}
	training, err := h.service.GetTraining(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, training)
}

func (h *Handler) createTraining(w http.ResponseWriter, r *http.Request) {
	var req createTrainingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	training, err := h.service.CreateTraining(r.Context(), CreateTrainingParams{
		Title:        req.Title,
		Description:  req.Description,
		CourseID:     req.CourseID,
		ProjectID:    req.ProjectID,
		InstructorID: req.InstructorID,
		StartsOn:     req.StartsOn,
		EndsOn:       req.EndsOn,
		Capacity:     req.Capacity,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, training)
}

func (h *Handler) deleteTraining(w http.ResponseWriter, r *http.Request) {
	id, ok := h.trainingID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteTraining(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listModules(w http.ResponseWriter, r *http.Request) {
	id, ok := h.trainingID(w, r)
	if !ok {
		return
	}
	modules, err := h.service.ListModules(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"modules": modules})
}

func (h *Handler) addModule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.trainingID(w, r)
	if !ok {
		return
	}
	var req createModuleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	module, err := h.service.AddModule(r.Context(), CreateModuleParams{
		TrainingID: id,
		Title:      req.Title,
		Summary:    req.Summary,
		Hours:      req.Hours,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, module)
}

func (h *Handler) removeModule(w http.ResponseWriter, r *http.Request) {
	trainingID, ok := h.trainingID(w, r)
	if !ok {
		return
	}
	moduleID, err := strconv.ParseInt(chi.URLParam(r, "moduleID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Module ID", "module id must be an integer")
		return
	}
	if err := h.service.RemoveModule(r.Context(), trainingID, moduleID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) trainingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "trainingID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Training ID", "training id must be an integer")
		return 0, false
	}
	return id, true
}
