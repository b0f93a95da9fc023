package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aadi101204/Task-Manager-Api/internal/domain"
	"github.com/aadi101204/Task-Manager-Api/internal/platform/logger"
	"github.com/aadi101204/Task-Manager-Api/internal/service/auth"
	"github.com/aadi101204/Task-Manager-Api/internal/store"
)

// UserService provides user account operations.
type UserService interface {
	// Register creates a new user account with a hashed password.
	// Returns store.ErrUsernameExists or store.ErrEmailExists when the
	// username or email is already taken.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// Authenticate verifies a username/password pair and returns the
	// matching user. Returns ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// List retrieves all users.
	List(ctx context.Context) ([]*domain.User, error)

	// Delete removes a user and, by cascade, their projects, those
	// projects' tasks, and their task assignments.
	Delete(ctx context.Context, id uuid.UUID) error
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	logger    *slog.Logger
}

var _ UserService = (*userServiceImpl)(nil)

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register.
func (s *userServiceImpl) Register(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, email)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(ctx, password)
	if err != nil {
		log.Error("failed to hash password during registration", "error", err)
		return nil, NewServiceError("user", "register", "failed to hash password", err)
	}
	user.HashedPassword = hashed

	if err := s.userStore.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("registration rejected, duplicate username or email",
				"username", username)
			return nil, err
		}
		log.Error("failed to create user", "error", err)
		return nil, NewServiceError("user", "register", "failed to save user", err)
	}

	log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate implements UserService.Authenticate. Lookup failure and
// password mismatch both come back as ErrInvalidCredentials so the
// response never reveals whether the username exists.
func (s *userServiceImpl) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("authentication failed, unknown username")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for authentication", "error", err)
		return nil, NewServiceError("user", "authenticate", "failed to look up user", err)
	}

	if err := s.hasher.Compare(ctx, user.HashedPassword, password); err != nil {
		log.Debug("authentication failed, password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	log.Info("user authenticated", "user_id", user.ID)
	return user, nil
}

// GetByID implements UserService.GetByID.
func (s *userServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrUserNotFound
		}
		return nil, NewServiceError("user", "get", "failed to retrieve user", err)
	}
	return user, nil
}

// List implements UserService.List.
func (s *userServiceImpl) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, NewServiceError("user", "list", "failed to list users", err)
	}
	return users, nil
}

// Delete implements UserService.Delete.
func (s *userServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.userStore.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrUserNotFound
		}
		log.Error("failed to delete user", "user_id", id, "error", err)
		return NewServiceError("user", "delete", "failed to delete user", err)
	}

	log.Info("user deleted", "user_id", id)
	return nil
}
