package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aadi101204/Task-Manager-Api/internal/domain"
	"github.com/aadi101204/Task-Manager-Api/internal/platform/logger"
	"github.com/aadi101204/Task-Manager-Api/internal/store"
)

// ProjectUpdate describes a partial update to a project. Nil fields are
// left unchanged.
type ProjectUpdate struct {
	Title       *string
	Description *string
}

// ProjectService provides project operations scoped to the calling user.
// Every lookup is guarded by ownership; a project owned by someone else is
// reported as not found, never as forbidden.
type ProjectService interface {
	// Create creates a new project owned by the given user.
	Create(ctx context.Context, ownerID uuid.UUID, title string, description *string) (*domain.Project, error)

	// List retrieves all projects owned by the given user.
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Project, error)

	// Get retrieves a project owned by the given user.
	// Returns store.ErrProjectNotFound if the project does not exist or is
	// owned by another user.
	Get(ctx context.Context, ownerID, projectID uuid.UUID) (*domain.Project, error)

	// Update applies a partial update to a project owned by the given user.
	Update(ctx context.Context, ownerID, projectID uuid.UUID, update ProjectUpdate) (*domain.Project, error)

	// Delete removes a project owned by the given user. Child tasks are
	// removed by cascade.
	Delete(ctx context.Context, ownerID, projectID uuid.UUID) error
}

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	projectStore store.ProjectStore
	logger       *slog.Logger
}

var _ ProjectService = (*projectServiceImpl)(nil)

// NewProjectService creates a new ProjectService.
// It returns an error if any of the required dependencies are nil.
func NewProjectService(projectStore store.ProjectStore, logger *slog.Logger) (ProjectService, error) {
	if projectStore == nil {
		return nil, domain.NewValidationError("projectStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &projectServiceImpl{
		projectStore: projectStore,
		logger:       logger.With(slog.String("component", "project_service")),
	}, nil
}

// getOwned resolves a project and asserts ownership. Both a missing
// project and a foreign owner come back as store.ErrProjectNotFound.
func (s *projectServiceImpl) getOwned(
	ctx context.Context,
	ownerID, projectID uuid.UUID,
) (*domain.Project, error) {
	project, err := s.projectStore.GetByID(ctx, projectID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrProjectNotFound
		}
		return nil, NewServiceError("project", "get", "failed to retrieve project", err)
	}
	if project.OwnerID != ownerID {
		return nil, store.ErrProjectNotFound
	}
	return project, nil
}

// Create implements ProjectService.Create.
func (s *projectServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	title string,
	description *string,
) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	project, err := domain.NewProject(ownerID, title, description)
	if err != nil {
		return nil, err
	}

	if err := s.projectStore.Create(ctx, project); err != nil {
		log.Error("failed to create project", "owner_id", ownerID, "error", err)
		return nil, NewServiceError("project", "create", "failed to save project", err)
	}

	log.Info("project created", "project_id", project.ID, "owner_id", ownerID)
	return project, nil
}

// List implements ProjectService.List.
func (s *projectServiceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Project, error) {
	projects, err := s.projectStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewServiceError("project", "list", "failed to list projects", err)
	}
	return projects, nil
}

// Get implements ProjectService.Get.
func (s *projectServiceImpl) Get(
	ctx context.Context,
	ownerID, projectID uuid.UUID,
) (*domain.Project, error) {
	return s.getOwned(ctx, ownerID, projectID)
}

// Update implements ProjectService.Update.
func (s *projectServiceImpl) Update(
	ctx context.Context,
	ownerID, projectID uuid.UUID,
	update ProjectUpdate,
) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	project, err := s.getOwned(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		project.Title = *update.Title
	}
	if update.Description != nil {
		project.Description = update.Description
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	if err := s.projectStore.Update(ctx, project); err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrProjectNotFound
		}
		log.Error("failed to update project", "project_id", projectID, "error", err)
		return nil, NewServiceError("project", "update", "failed to save project", err)
	}

	log.Info("project updated", "project_id", projectID)
	return project, nil
}

// Delete implements ProjectService.Delete.
func (s *projectServiceImpl) Delete(ctx context.Context, ownerID, projectID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.getOwned(ctx, ownerID, projectID); err != nil {
		return err
	}

	if err := s.projectStore.Delete(ctx, projectID); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrProjectNotFound
		}
		log.Error("failed to delete project", "project_id", projectID, "error", err)
		return NewServiceError("project", "delete", "failed to delete project", err)
	}

	log.Info("project deleted", "project_id", projectID)
	return nil
}
