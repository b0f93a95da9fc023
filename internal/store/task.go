package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/aadi101204/Task-Manager-Api/internal/domain"
	"github.com/google/uuid"
)

// Task list sort keys accepted by TaskFilter.SortBy.
const (
	TaskSortPriority = "priority"
	TaskSortDueDate  = "due_date"
)

// TaskFilter narrows and orders task listings. Nil fields are ignored.
type TaskFilter struct {
	// Status filters on exact status equality.
	Status *domain.TaskStatus

	// Priority filters on exact priority equality.
	Priority *domain.TaskPriority

	// ProjectID restricts the listing to a single project.
	ProjectID *uuid.UUID

	// DueOn matches tasks whose due date falls on the given calendar day
	// (UTC, date-only comparison).
	DueOn *time.Time

	// SortBy orders ascending by TaskSortPriority or TaskSortDueDate.
	// Empty means the store's natural order (creation time).
	SortBy string

	// Offset and Limit paginate the result. A non-positive Limit falls
	// back to the default page size of 10.
	Offset int
	Limit  int
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListForOwner retrieves tasks whose project is owned by the given
	// user, narrowed and paginated by the filter.
	ListForOwner(ctx context.Context, ownerID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)

	// ListOverdueForAssignee retrieves tasks assigned to the given user
	// with a due date strictly before now and a status other than
	// completed.
	ListOverdueForAssignee(ctx context.Context, assigneeID uuid.UUID, now time.Time) ([]*domain.Task, error)

	// Update persists changes to an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) TaskStore
}
