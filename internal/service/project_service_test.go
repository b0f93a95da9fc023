package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aadi101204/Task-Manager-Api/internal/domain"
	"github.com/aadi101204/Task-Manager-Api/internal/store"
)

func newProjectService(t *testing.T, projects *mockProjectStore) ProjectService {
	t.Helper()
	svc, err := NewProjectService(projects, slog.Default())
	require.NoError(t, err)
	return svc
}

func TestProjectCreate(t *testing.T) {
	t.Parallel()
	projects := newMockProjectStore()
	svc := newProjectService(t, projects)
	ownerID := uuid.New()

	desc := "Quarterly planning"
	project, err := svc.Create(context.Background(), ownerID, "Roadmap", &desc)
	require.NoError(t, err)

	assert.Equal(t, ownerID, project.OwnerID)
	assert.Equal(t, "Roadmap", project.Title)
	require.NotNil(t, project.Description)
	assert.Equal(t, desc, *project.Description)
	assert.NotEqual(t, uuid.Nil, project.ID)
}

func TestProjectCreateEmptyTitle(t *testing.T) {
	t.Parallel()
	svc := newProjectService(t, newMockProjectStore())

	_, err := svc.Create(context.Background(), uuid.New(), "", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProjectGetOwnershipCollapse(t *testing.T) {
	t.Parallel()
	projects := newMockProjectStore()
	svc := newProjectService(t, projects)
	ownerID := uuid.New()

	project, err := svc.Create(context.Background(), ownerID, "Roadmap", nil)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), ownerID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)

	// Another user cannot tell this project apart from a missing one.
	_, err = svc.Get(context.Background(), uuid.New(), project.ID)
	assert.ErrorIs(t, err, store.ErrProjectNotFound)

	_, err = svc.Get(context.Background(), ownerID, uuid.New())
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestProjectListScopedToOwner(t *testing.T) {
	t.Parallel()
	projects := newMockProjectStore()
	svc := newProjectService(t, projects)
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.Create(context.Background(), alice, "A1", nil)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), alice, "A2", nil)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), bob, "B1", nil)
	require.NoError(t, err)

	got, err := svc.List(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProjectUpdate(t *testing.T) {
	t.Parallel()
	projects := newMockProjectStore()
	svc := newProjectService(t, projects)
	ownerID := uuid.New()

	project, err := svc.Create(context.Background(), ownerID, "Roadmap", nil)
	require.NoError(t, err)

	title := "Roadmap 2026"
	desc := "Updated scope"
	updated, err := svc.Update(context.Background(), ownerID, project.ID, ProjectUpdate{
		Title:       &title,
		Description: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)

	// Partial update leaves untouched fields alone.
	other := "Only the description"
	updated, err = svc.Update(context.Background(), ownerID, project.ID, ProjectUpdate{
		Description: &other,
	})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
}

func TestProjectUpdateForeignOwner(t *testing.T) {
	t.Parallel()
	projects := newMockProjectStore()
	svc := newProjectService(t, projects)
	ownerID := uuid.New()

	project, err := svc.Create(context.Background(), ownerID, "Roadmap", nil)
	require.NoError(t, err)

	title := "hijacked"
	_, err = svc.Update(context.Background(), uuid.New(), project.ID, ProjectUpdate{Title: &title})
	assert.ErrorIs(t, err, store.ErrProjectNotFound)

	got, err := svc.Get(context.Background(), ownerID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", got.Title)
}

func TestProjectDelete(t *testing.T) {
	t.Parallel()
	projects := newMockProjectStore()
	svc := newProjectService(t, projects)
	ownerID := uuid.New()

	project, err := svc.Create(context.Background(), ownerID, "Roadmap", nil)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), uuid.New(), project.ID)
	assert.ErrorIs(t, err, store.ErrProjectNotFound)

	require.NoError(t, svc.Delete(context.Background(), ownerID, project.ID))

	err = svc.Delete(context.Background(), ownerID, project.ID)
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}
