package api

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aadi101204/Task-Manager-Api/internal/api/shared"
	"github.com/aadi101204/Task-Manager-Api/internal/domain"
	"github.com/aadi101204/Task-Manager-Api/internal/service"
	"github.com/aadi101204/Task-Manager-Api/internal/store"
)

// Function-field mocks for the service interfaces. Only the fields a test
// sets are expected to be called.

type mockUserService struct {
	registerFn     func(ctx context.Context, username, email, password string) (*domain.User, error)
	authenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	listFn         func(ctx context.Context) ([]*domain.User, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return m.registerFn(ctx, username, email, password)
}

func (m *mockUserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return m.authenticateFn(ctx, username, password)
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserService) List(ctx context.Context) ([]*domain.User, error) {
	return m.listFn(ctx)
}

func (m *mockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockProjectService struct {
	createFn func(ctx context.Context, ownerID uuid.UUID, title string, description *string) (*domain.Project, error)
	listFn   func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Project, error)
	getFn    func(ctx context.Context, ownerID, projectID uuid.UUID) (*domain.Project, error)
	updateFn func(ctx context.Context, ownerID, projectID uuid.UUID, update service.ProjectUpdate) (*domain.Project, error)
	deleteFn func(ctx context.Context, ownerID, projectID uuid.UUID) error
}

func (m *mockProjectService) Create(ctx context.Context, ownerID uuid.UUID, title string, description *string) (*domain.Project, error) {
	return m.createFn(ctx, ownerID, title, description)
}

func (m *mockProjectService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Project, error) {
	return m.listFn(ctx, ownerID)
}

func (m *mockProjectService) Get(ctx context.Context, ownerID, projectID uuid.UUID) (*domain.Project, error) {
	return m.getFn(ctx, ownerID, projectID)
}

func (m *mockProjectService) Update(ctx context.Context, ownerID, projectID uuid.UUID, update service.ProjectUpdate) (*domain.Project, error) {
	return m.updateFn(ctx, ownerID, projectID, update)
}

func (m *mockProjectService) Delete(ctx context.Context, ownerID, projectID uuid.UUID) error {
	return m.deleteFn(ctx, ownerID, projectID)
}

type mockTaskService struct {
	createFn func(ctx context.Context, callerID uuid.UUID, create service.TaskCreate) (*domain.Task, error)
	listFn   func(ctx context.Context, callerID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)
	getFn    func(ctx context.Context, callerID, taskID uuid.UUID) (*domain.Task, error)
	updateFn func(ctx context.Context, callerID, taskID uuid.UUID, update service.TaskUpdate) (*domain.Task, error)
	deleteFn func(ctx context.Context, callerID, taskID uuid.UUID) error
}

func (m *mockTaskService) Create(ctx context.Context, callerID uuid.UUID, create service.TaskCreate) (*domain.Task, error) {
	return m.createFn(ctx, callerID, create)
}

func (m *mockTaskService) List(ctx context.Context, callerID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
	return m.listFn(ctx, callerID, filter)
}

func (m *mockTaskService) Get(ctx context.Context, callerID, taskID uuid.UUID) (*domain.Task, error) {
	return m.getFn(ctx, callerID, taskID)
}

func (m *mockTaskService) Update(ctx context.Context, callerID, taskID uuid.UUID, update service.TaskUpdate) (*domain.Task, error) {
	return m.updateFn(ctx, callerID, taskID, update)
}

func (m *mockTaskService) Delete(ctx context.Context, callerID, taskID uuid.UUID) error {
	return m.deleteFn(ctx, callerID, taskID)
}

// authed attaches an authenticated user ID to the request context the way
// the auth middleware does.
func authed(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

// withURLParam attaches a chi route parameter to the request context so
// handlers can be exercised without a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// do runs a handler against a request and captures the response.
func do(handler http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}
