package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aadi101204/Task-Manager-Api/internal/domain"
	"github.com/aadi101204/Task-Manager-Api/internal/platform/logger"
	"github.com/aadi101204/Task-Manager-Api/internal/store"
	"github.com/google/uuid"
)

// defaultTaskPageSize caps listings when the caller does not specify a
// limit.
const defaultTaskPageSize = 10

const taskColumns = `t.id, t.title, t.description, t.due_date, t.status, t.priority,
		t.project_id, t.assigned_user_id, t.created_at, t.updated_at`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. If logger is nil, a default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the project or assignee does not exist
// (foreign key violation).
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks
			(id, title, description, due_date, status, priority, project_id, assigned_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		task.Priority,
		task.ProjectID,
		task.AssignedUserID,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()),
				slog.String("constraint", ConstraintName(err)),
				slog.String("project_id", task.ProjectID.String()))
			return fmt.Errorf("%w: referenced entity not found (%s)",
				store.ErrInvalidEntity, ConstraintName(err))
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("project_id", task.ProjectID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		WHERE t.id = $1
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	return task, nil
}

// ListForOwner implements store.TaskStore.ListForOwner
// It joins through projects so that only tasks reachable from the owner's
// projects are visible, then applies the filter's narrowing, ordering, and
// pagination. Returns an empty slice when nothing matches.
func (s *PostgresTaskStore) ListForOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE p.owner_id = $1`)

	args := []any{ownerID}

	appendCond := func(cond string, arg any) {
		args = append(args, arg)
		fmt.Fprintf(&sb, " AND %s = $%d", cond, len(args))
	}

	if filter.Status != nil {
		appendCond("t.status", *filter.Status)
	}
	if filter.Priority != nil {
		appendCond("t.priority", *filter.Priority)
	}
	if filter.ProjectID != nil {
		appendCond("t.project_id", *filter.ProjectID)
	}
	if filter.DueOn != nil {
		// Date-only comparison in UTC: a timestamp matches when it falls
		// anywhere on the requested calendar day.
		args = append(args, filter.DueOn.UTC().Format("2006-01-02"))
		fmt.Fprintf(&sb, " AND (t.due_date AT TIME ZONE 'UTC')::date = $%d::date", len(args))
	}

	switch filter.SortBy {
	case store.TaskSortPriority:
		sb.WriteString(" ORDER BY t.priority, t.created_at")
	case store.TaskSortDueDate:
		sb.WriteString(" ORDER BY t.due_date, t.created_at")
	default:
		sb.WriteString(" ORDER BY t.created_at")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultTaskPageSize
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	args = append(args, offset)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		log.Error("failed to query tasks for owner",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}

	tasks, err := collectTasks(rows, log)
	if err != nil {
		return nil, err
	}

	log.Debug("listed tasks for owner",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// ListOverdueForAssignee implements store.TaskStore.ListOverdueForAssignee
func (s *PostgresTaskStore) ListOverdueForAssignee(
	ctx context.Context,
	assigneeID uuid.UUID,
	now time.Time,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		WHERE t.assigned_user_id = $1
		  AND t.status <> $2
		  AND t.due_date < $3
		ORDER BY t.due_date
	`

	rows, err := s.db.QueryContext(ctx, query, assigneeID, domain.TaskStatusCompleted, now.UTC())
	if err != nil {
		log.Error("failed to query overdue tasks",
			slog.String("error", err.Error()),
			slog.String("assignee_id", assigneeID.String()))
		return nil, err
	}

	return collectTasks(rows, log)
}

// Update implements store.TaskStore.Update
// Returns store.ErrTaskNotFound if the task does not exist. The project
// column is deliberately not part of the statement: a task cannot move
// between projects.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, status = $4,
		    priority = $5, assigned_user_id = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		task.Priority,
		task.AssignedUserID,
		task.UpdatedAt,
		task.ID,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task update",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
			return fmt.Errorf("%w: referenced entity not found (%s)",
				store.ErrInvalidEntity, ConstraintName(err))
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		log.Debug("task not found for update", slog.String("task_id", task.ID.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		log.Debug("task not found for delete", slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully", slog.String("task_id", id.String()))
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for task scanning.
type scanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row in taskColumns order.
func scanTask(row scanner) (*domain.Task, error) {
	var task domain.Task
	var description sql.NullString
	var dueDate sql.NullTime
	var status, priority string

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&dueDate,
		&status,
		&priority,
		&task.ProjectID,
		&task.AssignedUserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}
	if dueDate.Valid {
		due := dueDate.Time.UTC()
		task.DueDate = &due
	}
	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)

	return &task, nil
}

// collectTasks drains rows into a slice, always closing rows.
func collectTasks(rows *sql.Rows, log *slog.Logger) ([]*domain.Task, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return tasks, nil
}
