package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/aadi101204/Task-Manager-Api/internal/domain"
	"github.com/aadi101204/Task-Manager-Api/internal/notify"
	"github.com/aadi101204/Task-Manager-Api/internal/store"
)

// mockUserStore is an in-memory store.UserStore.
type mockUserStore struct {
	users     map[uuid.UUID]*domain.User
	createErr error
}

func newMockUserStore(users ...*domain.User) *mockUserStore {
	m := &mockUserStore{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func (m *mockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }

// mockProjectStore is an in-memory store.ProjectStore.
type mockProjectStore struct {
	projects map[uuid.UUID]*domain.Project
}

func newMockProjectStore(projects ...*domain.Project) *mockProjectStore {
	m := &mockProjectStore{projects: make(map[uuid.UUID]*domain.Project)}
	for _, p := range projects {
		m.projects[p.ID] = p
	}
	return m
}

func (m *mockProjectStore) Create(ctx context.Context, project *domain.Project) error {
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if project, ok := m.projects[id]; ok {
		return project, nil
	}
	return nil, store.ErrProjectNotFound
}

func (m *mockProjectStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Project, error) {
	var projects []*domain.Project
	for _, project := range m.projects {
		if project.OwnerID == ownerID {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

func (m *mockProjectStore) Update(ctx context.Context, project *domain.Project) error {
	if _, ok := m.projects[project.ID]; !ok {
		return store.ErrProjectNotFound
	}
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.projects[id]; !ok {
		return store.ErrProjectNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *mockProjectStore) WithTx(tx *sql.Tx) store.ProjectStore { return m }

// mockTaskStore is an in-memory store.TaskStore.
type mockTaskStore struct {
	tasks     map[uuid.UUID]*domain.Task
	createErr error
}

func newMockTaskStore(tasks ...*domain.Task) *mockTaskStore {
	m := &mockTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
	for _, task := range tasks {
		m.tasks[task.ID] = task
	}
	return m
}

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if task, ok := m.tasks[id]; ok {
		clone := *task
		return &clone, nil
	}
	return nil, store.ErrTaskNotFound
}

func (m *mockTaskStore) ListForOwner(ctx context.Context, ownerID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for _, task := range m.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (m *mockTaskStore) ListOverdueForAssignee(ctx context.Context, assigneeID uuid.UUID, now time.Time) ([]*domain.Task, error) {
	return nil, nil
}

func (m *mockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	clone := *task
	m.tasks[task.ID] = &clone
	return nil
}

func (m *mockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return m }

// mockEnqueuer records enqueued messages.
type mockEnqueuer struct {
	messages   []notify.Message
	enqueueErr error
}

func (m *mockEnqueuer) Enqueue(ctx context.Context, msg notify.Message) error {
	if m.enqueueErr != nil {
		return m.enqueueErr
	}
	m.messages = append(m.messages, msg)
	return nil
}

// mockHasher is a trivial reversible PasswordHasher for tests.
type mockHasher struct{}

func (mockHasher) Hash(ctx context.Context, password string) (string, error) {
	return "hashed:" + password, nil
}

func (mockHasher) Compare(ctx context.Context, hash, password string) error {
	if hash != "hashed:"+password {
		return ErrInvalidCredentials
	}
	return nil
}
