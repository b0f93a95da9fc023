package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common project validation errors.
var (
	ErrEmptyProjectID    = errors.New("project ID cannot be empty")
	ErrEmptyProjectTitle = errors.New("project title cannot be empty")
	ErrEmptyProjectOwner = errors.New("project owner cannot be empty")
)

// Project is a container for tasks, owned by exactly one user. The owner
// is fixed at creation time; ownership is the sole authorization model for
// everything reachable through the project.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProject creates a new Project owned by the given user.
// Returns an error if validation fails.
func NewProject(ownerID uuid.UUID, title string, description *string) (*Project, error) {
	now := time.Now().UTC()
	project := &Project{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	return project, nil
}

// Validate checks if the Project has valid data.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProjectID
	}
	if p.Title == "" {
		return ErrEmptyProjectTitle
	}
	if p.OwnerID == uuid.Nil {
		return ErrEmptyProjectOwner
	}
	return nil
}
