package projects

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

// Handler manages project offering endpoints.
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

// MountRoutes registers project routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequirePermission(shared.PermRead))
		r.Get("/", h.listProjects)
		r.Get("/export", h.exportProjects)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequirePermission(shared.PermManageCourses))
		r.Post("/", h.createProject)
		r.Delete("/{projectID}", h.deleteProject)
		r.Put("/{projectID}/status", h.setProjectStatus)
	})
}

type createProjectRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=160"`
	Description   string `json:"description" validate:"max=4096"`
	ImageURL      string `json:"image_url" validate:"omitempty,url,max=512"`
	Type          string `json:"type" validate:"required,oneof=free paid"`
	MentorName    string `json:"mentor_name" validate:"required,min=2,max=128"`
	MentorAddress string `json:"mentor_address" validate:"max=256"`
}

type setProjectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

func (h *Handler) filters(r *http.Request) ListFilters {
	return ListFilters{
		Query:  r.URL.Query().Get("q"),
		Type:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
	}
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListProjects(r.Context(), h.filters(r))
	if err != nil {
		h.logger.Error("list projects", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"projects": list})
}

func (h *Handler) exportProjects(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportCSV(r.Context(), h.filters(r))
	if err != nil {
		h.logger.Error("export projects", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="projects.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	project, err := h.service.CreateProject(r.Context(), CreateProjectParams{
		Name:          req.Name,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Type:          req.Type,
		MentorName:    req.MentorName,
		MentorAddress: req.MentorAddress,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, project)
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.projectID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteProject(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setProjectStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.projectID(w, r)
	if !ok {
		return
	}
	var req setProjectStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.SetProjectStatus(r.Context(), id, req.Status); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) projectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Project ID", "project id must be an integer")
		return 0, false
	}
	return id, true
}
