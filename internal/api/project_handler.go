package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aadi101204/Task-Manager-Api/internal/api/middleware"
	"github.com/aadi101204/Task-Manager-Api/internal/api/shared"
	"github.com/aadi101204/Task-Manager-Api/internal/domain"
	"github.com/aadi101204/Task-Manager-Api/internal/service"
	"github.com/aadi101204/Task-Manager-Api/internal/store"
)

// ProjectHandler handles project endpoints. All routes require
// authentication; the caller only ever sees their own projects.
type ProjectHandler struct {
	projectService service.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler with the given dependencies.
func NewProjectHandler(projectService service.ProjectService, logger *slog.Logger) *ProjectHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger.With(slog.String("component", "project_handler")),
	}
}

// callerID extracts the authenticated user or writes a 401.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
	}
	return userID, ok
}

// pathID parses a UUID path parameter or writes a 404. An unparseable id
// cannot name any resource, so it is reported the same as a missing one.
func pathID(w http.ResponseWriter, r *http.Request, param string, notFound error) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		RespondWithMappedError(w, r, notFound)
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /projects/.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		RespondWithMappedError(w, r, domain.ErrEmptyProjectTitle)
		return
	}

	project, err := h.projectService.Create(r.Context(), caller, req.Title, req.Description)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewProjectResponse(project))
}

// List handles GET /projects/.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	projects, err := h.projectService.List(r.Context(), caller)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for _, project := range projects {
		resp = append(resp, NewProjectResponse(project))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Get handles GET /projects/{project_id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "project_id", store.ErrProjectNotFound)
	if !ok {
		return
	}

	project, err := h.projectService.Get(r.Context(), caller, projectID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewProjectResponse(project))
}

// Update handles PATCH /projects/{project_id}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "project_id", store.ErrProjectNotFound)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	project, err := h.projectService.Update(r.Context(), caller, projectID, service.ProjectUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewProjectResponse(project))
}

// Delete handles DELETE /projects/{project_id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "project_id", store.ErrProjectNotFound)
	if !ok {
		return
	}

	if err := h.projectService.Delete(r.Context(), caller, projectID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
