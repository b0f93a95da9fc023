package service

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aadi101204/Task-Manager-Api/internal/domain"
	"github.com/aadi101204/Task-Manager-Api/internal/store"
)

// taskFixture bundles the stores, queue, and entities most task service
// tests need: an owner with one project, a second user, and a stranger.
type taskFixture struct {
	svc      *taskServiceImpl
	users    *mockUserStore
	projects *mockProjectStore
	tasks    *mockTaskStore
	queue    *mockEnqueuer

	owner    *domain.User
	assignee *domain.User
	stranger *domain.User
	project  *domain.Project
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()

	owner, err := domain.NewUser("owner", "owner@example.com")
	require.NoError(t, err)
	assignee, err := domain.NewUser("worker", "worker@example.com")
	require.NoError(t, err)
	stranger, err := domain.NewUser("stranger", "stranger@example.com")
	require.NoError(t, err)

	project, err := domain.NewProject(owner.ID, "Main project", nil)
	require.NoError(t, err)

	f := &taskFixture{
		users:    newMockUserStore(owner, assignee, stranger),
		projects: newMockProjectStore(project),
		tasks:    newMockTaskStore(),
		queue:    &mockEnqueuer{},
		owner:    owner,
		assignee: assignee,
		stranger: stranger,
		project:  project,
	}

	f.svc = &taskServiceImpl{
		taskStore:    f.tasks,
		projectStore: f.projects,
		userStore:    f.users,
		enqueuer:     f.queue,
		logger:       slog.Default(),
	}
	// The mocks are not transactional; run the callback directly.
	f.svc.runInTx = func(ctx context.Context, fn store.TxFn) error {
		return fn(ctx, nil)
	}

	return f
}

func (f *taskFixture) createTask(t *testing.T, create TaskCreate) *domain.Task {
	t.Helper()
	task, err := f.svc.Create(context.Background(), f.owner.ID, create)
	require.NoError(t, err)
	return task
}

func statusPtr(s domain.TaskStatus) *domain.TaskStatus       { return &s }
func priorityPtr(p domain.TaskPriority) *domain.TaskPriority { return &p }
func strPtr(s string) *string                                { return &s }

func TestTaskCreateDefaults(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task := f.createTask(t, TaskCreate{ProjectID: f.project.ID, Title: "T1"})

	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
	assert.False(t, task.AssignedUserID.Valid)
	assert.Empty(t, f.queue.messages, "unassigned create must not notify")
}

func TestTaskCreateUnknownProject(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	_, err := f.svc.Create(context.Background(), f.owner.ID, TaskCreate{
		ProjectID: uuid.New(),
		Title:     "T1",
	})
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestTaskCreateForeignProject(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	// The stranger cannot create tasks in the owner's project, and the
	// error must not reveal that the project exists.
	_, err := f.svc.Create(context.Background(), f.stranger.ID, TaskCreate{
		ProjectID: f.project.ID,
		Title:     "T1",
	})
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestTaskCreateWithAssigneeNotifies(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task := f.createTask(t, TaskCreate{
		ProjectID:      f.project.ID,
		Title:          "Review PR",
		AssignedUserID: uuid.NullUUID{UUID: f.assignee.ID, Valid: true},
	})

	require.Len(t, f.queue.messages, 1)
	msg := f.queue.messages[0]
	assert.Equal(t, f.assignee.Email, msg.Recipient)
	assert.Equal(t, "New Task Assigned: Review PR", msg.Subject)
	assert.Contains(t, msg.Body, task.ID.String())
}

func TestTaskCreateUnknownAssigneeNeverPersists(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	_, err := f.svc.Create(context.Background(), f.owner.ID, TaskCreate{
		ProjectID:      f.project.ID,
		Title:          "T1",
		AssignedUserID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
	})

	assert.ErrorIs(t, err, ErrAssigneeNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, f.tasks.tasks, "task must not be persisted")
	assert.Empty(t, f.queue.messages)
}

func TestTaskCreateInvalidStatus(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	bad := domain.TaskStatus("archived")
	_, err := f.svc.Create(context.Background(), f.owner.ID, TaskCreate{
		ProjectID: f.project.ID,
		Title:     "T1",
		Status:    &bad,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
}

func TestTaskGetOwnershipCollapse(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task := f.createTask(t, TaskCreate{ProjectID: f.project.ID, Title: "T1"})

	got, err := f.svc.Get(context.Background(), f.owner.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	_, err = f.svc.Get(context.Background(), f.stranger.ID, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskUpdateStatusChangeWithAssigneeNotifiesOnce(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task := f.createTask(t, TaskCreate{
		ProjectID:      f.project.ID,
		Title:          "T1",
		AssignedUserID: uuid.NullUUID{UUID: f.assignee.ID, Valid: true},
	})
	f.queue.messages = nil // discard the creation notification

	updated, err := f.svc.Update(context.Background(), f.owner.ID, task.ID, TaskUpdate{
		Status: statusPtr(domain.TaskStatusInProgress),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, updated.Status)

	require.Len(t, f.queue.messages, 1)
	msg := f.queue.messages[0]
	assert.Equal(t, f.assignee.Email, msg.Recipient)
	assert.True(t, strings.HasPrefix(msg.Subject, "Task Status Updated:"), msg.Subject)
	assert.Contains(t, msg.Body, "in_progress")
}

func TestTaskUpdateStatusChangeWithoutAssigneeIsSilent(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task := f.createTask(t, TaskCreate{ProjectID: f.project.ID, Title: "T1"})

	_, err := f.svc.Update(context.Background(), f.owner.ID, task.ID, TaskUpdate{
		Status: statusPtr(domain.TaskStatusCompleted),
	})
	require.NoError(t, err)
	assert.Empty(t, f.queue.messages)
}

func TestTaskUpdateNonStatusFieldsNotifyNothing(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task := f.createTask(t, TaskCreate{
		ProjectID:      f.project.ID,
		Title:          "T1",
		AssignedUserID: uuid.NullUUID{UUID: f.assignee.ID, Valid: true},
	})
	f.queue.messages = nil

	due := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	updated, err := f.svc.Update(context.Background(), f.owner.ID, task.ID, TaskUpdate{
		Title:    strPtr("Renamed"),
		Priority: priorityPtr(domain.TaskPriorityHigh),
		DueDate:  &due,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, domain.TaskPriorityHigh, updated.Priority)
	assert.Empty(t, f.queue.messages,
		"updating fields other than status or assignee must not notify")
}

func TestTaskUpdateAssigneeChangeNotifiesNewAssignee(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task := f.createTask(t, TaskCreate{ProjectID: f.project.ID, Title: "T1"})

	newAssignee := uuid.NullUUID{UUID: f.assignee.ID, Valid: true}
	_, err := f.svc.Update(context.Background(), f.owner.ID, task.ID, TaskUpdate{
		AssignedUserID: &newAssignee,
	})
	require.NoError(t, err)

	require.Len(t, f.queue.messages, 1)
	msg := f.queue.messages[0]
	assert.Equal(t, f.assignee.Email, msg.Recipient)
	assert.True(t, strings.HasPrefix(msg.Subject, "New Task Assigned:"), msg.Subject)
}

func TestTaskUpdateUnassignNotifiesNothing(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task := f.createTask(t, TaskCreate{
		ProjectID:      f.project.ID,
		Title:          "T1",
		AssignedUserID: uuid.NullUUID{UUID: f.assignee.ID, Valid: true},
	})
	f.queue.messages = nil

	unassigned := uuid.NullUUID{}
	updated, err := f.svc.Update(context.Background(), f.owner.ID, task.ID, TaskUpdate{
		AssignedUserID: &unassigned,
	})
	require.NoError(t, err)

	assert.False(t, updated.AssignedUserID.Valid)
	assert.Empty(t, f.queue.messages, "unassigning must not notify anyone")
}

func TestTaskUpdateStatusAndAssigneeTogether(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task := f.createTask(t, TaskCreate{ProjectID: f.project.ID, Title: "T1"})

	newAssignee := uuid.NullUUID{UUID: f.assignee.ID, Valid: true}
	_, err := f.svc.Update(context.Background(), f.owner.ID, task.ID, TaskUpdate{
		Status:         statusPtr(domain.TaskStatusInProgress),
		AssignedUserID: &newAssignee,
	})
	require.NoError(t, err)

	// One status-changed for the (new) assignee plus one assigned.
	require.Len(t, f.queue.messages, 2)
	subjects := []string{f.queue.messages[0].Subject, f.queue.messages[1].Subject}
	assert.True(t, strings.HasPrefix(subjects[0], "Task Status Updated:"), subjects[0])
	assert.True(t, strings.HasPrefix(subjects[1], "New Task Assigned:"), subjects[1])
}

func TestTaskUpdateUnknownAssignee(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task := f.createTask(t, TaskCreate{ProjectID: f.project.ID, Title: "T1"})

	ghost := uuid.NullUUID{UUID: uuid.New(), Valid: true}
	_, err := f.svc.Update(context.Background(), f.owner.ID, task.ID, TaskUpdate{
		AssignedUserID: &ghost,
	})
	assert.ErrorIs(t, err, ErrAssigneeNotFound)

	// The task is unchanged.
	stored, err := f.tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.False(t, stored.AssignedUserID.Valid)
}

func TestTaskUpdateForeignCaller(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task := f.createTask(t, TaskCreate{ProjectID: f.project.ID, Title: "T1"})

	_, err := f.svc.Update(context.Background(), f.stranger.ID, task.ID, TaskUpdate{
		Title: strPtr("hijacked"),
	})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskDelete(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task := f.createTask(t, TaskCreate{
		ProjectID:      f.project.ID,
		Title:          "T1",
		AssignedUserID: uuid.NullUUID{UUID: f.assignee.ID, Valid: true},
	})
	f.queue.messages = nil

	require.NoError(t, f.svc.Delete(context.Background(), f.owner.ID, task.ID))
	assert.Empty(t, f.queue.messages, "delete must not notify")

	err := f.svc.Delete(context.Background(), f.owner.ID, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskDeleteForeignCaller(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task := f.createTask(t, TaskCreate{ProjectID: f.project.ID, Title: "T1"})

	err := f.svc.Delete(context.Background(), f.stranger.ID, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, err = f.tasks.GetByID(context.Background(), task.ID)
	assert.NoError(t, err, "task must survive a foreign delete attempt")
}

func TestTaskEnqueueFailureDoesNotFailUpdate(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)
	f.queue.enqueueErr = store.ErrTransactionFailed // any error will do

	task := f.createTask(t, TaskCreate{
		ProjectID:      f.project.ID,
		Title:          "T1",
		AssignedUserID: uuid.NullUUID{UUID: f.assignee.ID, Valid: true},
	})

	_, err := f.svc.Update(context.Background(), f.owner.ID, task.ID, TaskUpdate{
		Status: statusPtr(domain.TaskStatusCompleted),
	})
	assert.NoError(t, err, "notification failures are fire-and-forget")
}
