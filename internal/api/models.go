package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/aadi101204/Task-Manager-Api/internal/domain"
)

// RegisterRequest represents the payload for user registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// TokenResponse represents the response for a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse represents a user in API responses. The password hash is
// never included.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse converts a domain user to its API representation.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// CreateProjectRequest represents the payload for creating a project.
type CreateProjectRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description"`
}

// UpdateProjectRequest represents a partial project update. Absent fields
// are left unchanged.
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProjectResponse converts a domain project to its API representation.
func NewProjectResponse(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// CreateTaskRequest represents the payload for creating a task. Status
// and priority fall back to their defaults when omitted.
type CreateTaskRequest struct {
	Title          string     `json:"title" validate:"required,max=200"`
	Description    *string    `json:"description"`
	DueDate        *time.Time `json:"due_date"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	ProjectID      uuid.UUID  `json:"project_id" validate:"required"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id"`
}

// UpdateTaskRequest represents a partial task update. Absent fields are
// left unchanged; an explicit null assigned_user_id unassigns the task.
type UpdateTaskRequest struct {
	Title          *string         `json:"title"`
	Description    *string         `json:"description"`
	DueDate        *time.Time      `json:"due_date"`
	Status         *string         `json:"status"`
	Priority       *string         `json:"priority"`
	AssignedUserID json.RawMessage `json:"assigned_user_id"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	DueDate        *time.Time `json:"due_date"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	ProjectID      uuid.UUID  `json:"project_id"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewTaskResponse converts a domain task to its API representation.
func NewTaskResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.AssignedUserID.Valid {
		id := task.AssignedUserID.UUID
		resp.AssignedUserID = &id
	}
	return resp
}
