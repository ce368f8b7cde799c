package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/service/auth"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/internal/telemetry"
)

// UserService provides registration and lookup of users.
type UserService interface {
	// Register creates a user with a hashed password. It fails with
	// ErrDuplicateUsername when the username is taken and ErrInvalidInput
	// when the username or password is unacceptable.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// FindByUsername retrieves a user by exact username.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	// VerifyPassword reports whether password matches the user's stored hash.
	// A nil user never matches, but still costs one hash comparison.
	VerifyPassword(user *domain.User, password string) bool
}

type userService struct {
	users     store.UserStore
	hasher    auth.PasswordHasher
	telemetry telemetry.Sink
	logger    *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

var _ UserService = (*userService)(nil)

// NewUserService creates a new UserService.
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	sink telemetry.Sink,
	logger *slog.Logger,
) UserService {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		users:     users,
		hasher:    hasher,
		telemetry: sink,
		logger:    logger.With("component", "user_service"),
	}
}

// Register implements UserService.
func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if err := domain.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err, "username", username)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user, err := domain.NewUser(username, hashed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("attempted to register existing username", "username", username)
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUsername, username)
		}
		s.logger.Error("failed to save user", "error", err, "username", username)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	s.telemetry.Message(ctx,
		fmt.Sprintf("New user registered: %s", user.Username),
		telemetry.LevelInfo,
		map[string]any{"user_id": user.ID})

	return user, nil
}

// FindByUsername implements UserService.
func (s *userService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user by username", "error", err, "username", username)
		}
		return nil, fmt.Errorf("failed to retrieve user by username: %w", err)
	}
	return user, nil
}

// FindByID implements UserService.
func (s *userService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", id)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// VerifyPassword implements UserService.
func (s *userService) VerifyPassword(user *domain.User, password string) bool {
	if user == nil {
		_ = s.hasher.Compare(s.unknownUserHash(), password)
		return false
	}
	return s.hasher.Compare(user.HashedPassword, password) == nil
}

// unknownUserHash returns a hash made with the configured hasher, so
// comparing against it costs the same as comparing against a real user's.
func (s *userService) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("taskdeck-unknown-user")
		if err != nil {
			s.logger.Error("failed to prepare comparison hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
