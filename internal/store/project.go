package store

import (
	"context"
	"database/sql"

	"github.com/aadi101204/Task-Manager-Api/internal/domain"
	"github.com/google/uuid"
)

// ProjectStore defines the interface for project data persistence.
// Ownership checks are performed by the service layer; stores resolve
// entities by ID only.
type ProjectStore interface {
	// Create saves a new project to the store.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID retrieves a project by its unique ID.
	// Returns ErrProjectNotFound if the project does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)

	// ListByOwner retrieves all projects owned by the given user, ordered
	// by creation time.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Project, error)

	// Update persists changes to an existing project.
	// Returns ErrProjectNotFound if the project does not exist.
	Update(ctx context.Context, project *domain.Project) error

	// Delete removes a project by its ID. Child tasks are removed by
	// cascade. Returns ErrProjectNotFound if the project does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ProjectStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ProjectStore
}
