package service

import (
	"errors"
	"fmt"

	"github.com/aadi101204/Task-Manager-Api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is; the API layer maps them to HTTP
// status codes.
var (
	// ErrInvalidCredentials indicates a failed authentication attempt.
	// Deliberately indistinguishable between unknown username and wrong
	// password. API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAssigneeNotFound indicates a task referenced a non-existent user
	// as its assignee. It belongs to the not-found family so the API layer
	// maps it to HTTP 404, matching the treatment of any other missing
	// resource.
	ErrAssigneeNotFound = fmt.Errorf("assigned user does not exist: %w", store.ErrNotFound)
)

// ServiceError wraps an unexpected failure within a service operation,
// carrying the operation name for log correlation.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
