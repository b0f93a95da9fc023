package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aadi101204/Task-Manager-Api/internal/domain"
	"github.com/aadi101204/Task-Manager-Api/internal/notify"
	"github.com/aadi101204/Task-Manager-Api/internal/platform/logger"
	"github.com/aadi101204/Task-Manager-Api/internal/store"
)

// TaskCreate carries the fields for creating a task. Optional fields left
// nil (or invalid, for the assignee) take their defaults.
type TaskCreate struct {
	ProjectID      uuid.UUID
	Title          string
	Description    *string
	DueDate        *time.Time
	Status         *domain.TaskStatus
	Priority       *domain.TaskPriority
	AssignedUserID uuid.NullUUID
}

// TaskUpdate describes a partial update to a task. Nil fields are left
// unchanged. For AssignedUserID, a non-nil pointer with Valid=false
// explicitly unassigns the task.
type TaskUpdate struct {
	Title          *string
	Description    *string
	DueDate        *time.Time
	Status         *domain.TaskStatus
	Priority       *domain.TaskPriority
	AssignedUserID *uuid.NullUUID
}

// TaskService provides task operations scoped to the calling user. A task
// is reachable only through a project owned by the caller; anything else
// is reported as not found.
type TaskService interface {
	// Create creates a new task inside a project owned by the caller.
	// Returns store.ErrProjectNotFound if the project does not exist or is
	// owned by another user, and ErrAssigneeNotFound if the assignee does
	// not exist. When an assignee is set, an "assigned" notification is
	// enqueued after the task is persisted.
	Create(ctx context.Context, callerID uuid.UUID, create TaskCreate) (*domain.Task, error)

	// List retrieves tasks whose project is owned by the caller, narrowed
	// and paginated by the filter.
	List(ctx context.Context, callerID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)

	// Get retrieves a task reachable by the caller.
	// Returns store.ErrTaskNotFound otherwise.
	Get(ctx context.Context, callerID, taskID uuid.UUID) (*domain.Task, error)

	// Update applies a partial update to a task reachable by the caller.
	// A status change with an assignee set enqueues a "status changed"
	// notification; an assignee change to a non-null user enqueues an
	// "assigned" notification.
	Update(ctx context.Context, callerID, taskID uuid.UUID, update TaskUpdate) (*domain.Task, error)

	// Delete removes a task reachable by the caller. No notification.
	Delete(ctx context.Context, callerID, taskID uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	db           *sql.DB
	taskStore    store.TaskStore
	projectStore store.ProjectStore
	userStore    store.UserStore
	enqueuer     notify.Enqueuer
	logger       *slog.Logger
	runInTx      func(ctx context.Context, fn store.TxFn) error // Injectable for testing
}

var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	db *sql.DB,
	taskStore store.TaskStore,
	projectStore store.ProjectStore,
	userStore store.UserStore,
	enqueuer notify.Enqueuer,
	logger *slog.Logger,
) (TaskService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if projectStore == nil {
		return nil, domain.NewValidationError("projectStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if enqueuer == nil {
		return nil, domain.NewValidationError("enqueuer", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &taskServiceImpl{
		db:           db,
		taskStore:    taskStore,
		projectStore: projectStore,
		userStore:    userStore,
		enqueuer:     enqueuer,
		logger:       logger.With(slog.String("component", "task_service")),
	}
	s.runInTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s, nil
}

// resolveOwnedProject asserts the project exists and is owned by the
// caller. Missing and foreign projects are both store.ErrProjectNotFound.
func resolveOwnedProject(
	ctx context.Context,
	projects store.ProjectStore,
	callerID, projectID uuid.UUID,
) (*domain.Project, error) {
	project, err := projects.GetByID(ctx, projectID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrProjectNotFound
		}
		return nil, NewServiceError("task", "resolve_project", "failed to retrieve project", err)
	}
	if project.OwnerID != callerID {
		return nil, store.ErrProjectNotFound
	}
	return project, nil
}

// resolveOwnedTask asserts the task exists and its project is owned by
// the caller. Missing and unreachable tasks are both store.ErrTaskNotFound.
func resolveOwnedTask(
	ctx context.Context,
	tasks store.TaskStore,
	projects store.ProjectStore,
	callerID, taskID uuid.UUID,
) (*domain.Task, error) {
	task, err := tasks.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrTaskNotFound
		}
		return nil, NewServiceError("task", "resolve_task", "failed to retrieve task", err)
	}

	if _, err := resolveOwnedProject(ctx, projects, callerID, task.ProjectID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// resolveAssignee fetches the user a task is being assigned to.
// Returns ErrAssigneeNotFound if the user does not exist.
func resolveAssignee(
	ctx context.Context,
	users store.UserStore,
	assigneeID uuid.UUID,
) (*domain.User, error) {
	assignee, err := users.GetByID(ctx, assigneeID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrAssigneeNotFound
		}
		return nil, NewServiceError("task", "resolve_assignee", "failed to retrieve assignee", err)
	}
	return assignee, nil
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	callerID uuid.UUID,
	create TaskCreate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := resolveOwnedProject(ctx, s.projectStore, callerID, create.ProjectID); err != nil {
		return nil, err
	}

	var assignee *domain.User
	if create.AssignedUserID.Valid {
		var err error
		assignee, err = resolveAssignee(ctx, s.userStore, create.AssignedUserID.UUID)
		if err != nil {
			return nil, err
		}
	}

	task, err := domain.NewTask(create.ProjectID, create.Title)
	if err != nil {
		return nil, err
	}
	task.Description = create.Description
	task.DueDate = create.DueDate
	task.AssignedUserID = create.AssignedUserID
	if create.Status != nil {
		task.Status = *create.Status
	}
	if create.Priority != nil {
		task.Priority = *create.Priority
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			"project_id", create.ProjectID,
			"error", err)
		return nil, NewServiceError("task", "create", "failed to save task", err)
	}

	log.Info("task created",
		"task_id", task.ID,
		"project_id", task.ProjectID,
		"assigned", task.AssignedUserID.Valid)

	if assignee != nil {
		s.enqueue(ctx, notify.TaskAssignedMessage(assignee.Email, task))
	}

	return task, nil
}

// List implements TaskService.List.
func (s *taskServiceImpl) List(
	ctx context.Context,
	callerID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListForOwner(ctx, callerID, filter)
	if err != nil {
		return nil, NewServiceError("task", "list", "failed to list tasks", err)
	}
	return tasks, nil
}

// Get implements TaskService.Get.
func (s *taskServiceImpl) Get(ctx context.Context, callerID, taskID uuid.UUID) (*domain.Task, error) {
	return resolveOwnedTask(ctx, s.taskStore, s.projectStore, callerID, taskID)
}

// taskChanges is the change set computed once per update and consulted by
// both notification decisions, so the before/after comparison cannot
// drift between them.
type taskChanges struct {
	statusChanged   bool
	assigneeChanged bool
	newAssignee     *domain.User
}

// Update implements TaskService.Update. The resolve-apply-persist
// sequence runs in a single transaction; notifications are enqueued only
// after it commits.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	callerID, taskID uuid.UUID,
	update TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		task    *domain.Task
		changes taskChanges
	)

	err := s.runInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.taskStore.WithTx(tx)
		txProjects := s.projectStore.WithTx(tx)
		txUsers := s.userStore.WithTx(tx)

		var err error
		task, err = resolveOwnedTask(ctx, txTasks, txProjects, callerID, taskID)
		if err != nil {
			return err
		}

		oldStatus := task.Status
		oldAssignee := task.AssignedUserID

		if update.AssignedUserID != nil && update.AssignedUserID.Valid {
			changes.newAssignee, err = resolveAssignee(ctx, txUsers, update.AssignedUserID.UUID)
			if err != nil {
				return err
			}
		}

		if update.Title != nil {
			task.Title = *update.Title
		}
		if update.Description != nil {
			task.Description = update.Description
		}
		if update.DueDate != nil {
			task.DueDate = update.DueDate
		}
		if update.Status != nil {
			task.Status = *update.Status
		}
		if update.Priority != nil {
			task.Priority = *update.Priority
		}
		if update.AssignedUserID != nil {
			task.AssignedUserID = *update.AssignedUserID
		}

		if err := task.Validate(); err != nil {
			return err
		}

		changes.statusChanged = task.Status != oldStatus
		changes.assigneeChanged = task.AssignedUserID != oldAssignee

		task.UpdatedAt = time.Now().UTC()
		if err := txTasks.Update(ctx, task); err != nil {
			if store.IsNotFoundError(err) {
				return store.ErrTaskNotFound
			}
			return NewServiceError("task", "update", "failed to save task", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notifications go out only for committed changes, and only to an
	// assignee that exists after the update.
	if changes.statusChanged && task.AssignedUserID.Valid {
		recipient := changes.newAssignee
		if recipient == nil || recipient.ID != task.AssignedUserID.UUID {
			recipient, err = s.userStore.GetByID(ctx, task.AssignedUserID.UUID)
			if err != nil {
				log.Error("failed to resolve assignee for status notification",
					"task_id", task.ID,
					"error", err)
				recipient = nil
			}
		}
		if recipient != nil {
			s.enqueue(ctx, notify.TaskStatusChangedMessage(recipient.Email, task))
		}
	}

	if changes.assigneeChanged && changes.newAssignee != nil {
		s.enqueue(ctx, notify.TaskAssignedMessage(changes.newAssignee.Email, task))
	}

	log.Info("task updated",
		"task_id", task.ID,
		"status_changed", changes.statusChanged,
		"assignee_changed", changes.assigneeChanged)

	return task, nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, callerID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := resolveOwnedTask(ctx, s.taskStore, s.projectStore, callerID, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrTaskNotFound
		}
		log.Error("failed to delete task", "task_id", taskID, "error", err)
		return NewServiceError("task", "delete", "failed to delete task", err)
	}

	log.Info("task deleted", "task_id", taskID)
	return nil
}

// enqueue hands a message to the dispatcher. Queue errors never surface
// to the caller; delivery is fire-and-forget.
func (s *taskServiceImpl) enqueue(ctx context.Context, msg notify.Message) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.enqueuer.Enqueue(ctx, msg); err != nil {
		log.Error("failed to enqueue notification",
			"message_id", msg.ID,
			"subject", msg.Subject,
			"error", err)
		return
	}

	log.Debug("notification enqueued",
		"message_id", msg.ID,
		"subject", msg.Subject)
}
