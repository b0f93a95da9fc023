package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/aadi101204/Task-Manager-Api/internal/api/shared"
	"github.com/aadi101204/Task-Manager-Api/internal/domain"
	"github.com/aadi101204/Task-Manager-Api/internal/service"
	"github.com/aadi101204/Task-Manager-Api/internal/store"
)

// TaskHandler handles task endpoints. All routes require authentication;
// reachability is always through a project owned by the caller.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// parseStatus validates an optional status value from a request.
func parseStatus(raw *string) (*domain.TaskStatus, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	status := domain.TaskStatus(*raw)
	if !status.IsValid() {
		return nil, domain.ErrInvalidTaskStatus
	}
	return &status, nil
}

// parsePriority validates an optional priority value from a request.
func parsePriority(raw *string) (*domain.TaskPriority, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	priority := domain.TaskPriority(*raw)
	if !priority.IsValid() {
		return nil, domain.ErrInvalidTaskPriority
	}
	return &priority, nil
}

// Create handles POST /tasks/.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		RespondWithMappedError(w, r, domain.ErrEmptyTaskTitle)
		return
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	priority, err := parsePriority(req.Priority)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	create := service.TaskCreate{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      status,
		Priority:    priority,
	}
	if req.AssignedUserID != nil {
		create.AssignedUserID = uuid.NullUUID{UUID: *req.AssignedUserID, Valid: true}
	}

	task, err := h.taskService.Create(r.Context(), caller, create)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// List handles GET /tasks/ with optional query filters status, priority,
// due_date (ISO date), project_id, sort_by, skip, and limit.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	filter, err := parseTaskFilter(r)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	tasks, err := h.taskService.List(r.Context(), caller, filter)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, NewTaskResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// parseTaskFilter builds a store.TaskFilter from list query parameters.
func parseTaskFilter(r *http.Request) (store.TaskFilter, error) {
	var filter store.TaskFilter
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status, err := parseStatus(&raw)
		if err != nil {
			return filter, err
		}
		filter.Status = status
	}

	if raw := q.Get("priority"); raw != "" {
		priority, err := parsePriority(&raw)
		if err != nil {
			return filter, err
		}
		filter.Priority = priority
	}

	if raw := q.Get("project_id"); raw != "" {
		projectID, err := uuid.Parse(raw)
		if err != nil {
			return filter, domain.NewValidationError("project_id", "must be a valid id", domain.ErrInvalidID)
		}
		filter.ProjectID = &projectID
	}

	if raw := q.Get("due_date"); raw != "" {
		due, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, domain.NewValidationError(
				"due_date", "must be an ISO date (YYYY-MM-DD)", domain.ErrValidation)
		}
		filter.DueOn = &due
	}

	if raw := q.Get("sort_by"); raw != "" {
		if raw != store.TaskSortPriority && raw != store.TaskSortDueDate {
			return filter, domain.NewValidationError(
				"sort_by", "must be one of: priority, due_date", domain.ErrValidation)
		}
		filter.SortBy = raw
	}

	if raw := q.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return filter, domain.NewValidationError(
				"skip", "must be a non-negative integer", domain.ErrValidation)
		}
		filter.Offset = skip
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, domain.NewValidationError(
				"limit", "must be a non-negative integer", domain.ErrValidation)
		}
		filter.Limit = limit
	}

	return filter, nil
}

// Get handles GET /tasks/{task_id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "task_id", store.ErrTaskNotFound)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), caller, taskID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Update handles PATCH /tasks/{task_id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "task_id", store.ErrTaskNotFound)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	priority, err := parsePriority(req.Priority)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	update := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      status,
		Priority:    priority,
	}

	// assigned_user_id distinguishes absent (leave unchanged) from an
	// explicit null (unassign), so it arrives as raw JSON.
	if len(req.AssignedUserID) > 0 {
		assignee, err := parseAssignee(req.AssignedUserID)
		if err != nil {
			RespondWithMappedError(w, r, err)
			return
		}
		update.AssignedUserID = assignee
	}

	task, err := h.taskService.Update(r.Context(), caller, taskID, update)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// parseAssignee decodes an assigned_user_id value that is either a JSON
// null or a UUID string.
func parseAssignee(raw json.RawMessage) (*uuid.NullUUID, error) {
	var assignee uuid.NullUUID

	var idStr *string
	if err := json.Unmarshal(raw, &idStr); err != nil {
		return nil, domain.NewValidationError(
			"assigned_user_id", "must be a valid id or null", domain.ErrInvalidID)
	}
	if idStr != nil {
		id, err := uuid.Parse(*idStr)
		if err != nil {
			return nil, domain.NewValidationError(
				"assigned_user_id", "must be a valid id or null", domain.ErrInvalidID)
		}
		assignee = uuid.NullUUID{UUID: id, Valid: true}
	}

	return &assignee, nil
}

// Delete handles DELETE /tasks/{task_id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "task_id", store.ErrTaskNotFound)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), caller, taskID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
