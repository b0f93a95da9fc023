package api

import (
	"errors"
	"net/http"

	"github.com/aadi101204/Task-Manager-Api/internal/api/shared"
	"github.com/aadi101204/Task-Manager-Api/internal/domain"
	"github.com/aadi101204/Task-Manager-Api/internal/service"
	"github.com/aadi101204/Task-Manager-Api/internal/service/auth"
	"github.com/aadi101204/Task-Manager-Api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors. A resource owned by another user is reported the
	// same way as an absent one.
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Duplicate registration surfaces as a generic client error rather
	// than 409, matching the public contract.
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusBadRequest

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	// Not found errors
	case errors.Is(err, service.ErrAssigneeNotFound):
		return "Assigned user not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrProjectNotFound):
		return "Project not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Duplicate registration
	case errors.Is(err, store.ErrUsernameExists),
		errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrDuplicate):
		return "Email or username already registered"

	// Bad request errors carry their own human-readable reason when they
	// come from domain validation.
	case isDomainValidationError(err):
		return err.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// isDomainValidationError reports whether err is one of the domain
// entity validation sentinels. These are safe to echo back verbatim.
func isDomainValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrEmptyUsername,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrEmptyProjectTitle,
		domain.ErrEmptyTaskTitle,
		domain.ErrEmptyTaskProject,
		domain.ErrInvalidTaskStatus,
		domain.ErrInvalidTaskPriority,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// RespondWithMappedError maps err to a status code and safe message and
// writes the response, logging the original error.
func RespondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
