package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/service/auth"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/internal/telemetry"
)

// AuthService turns credentials into sessions and sessions back into users.
type AuthService interface {
	// Login verifies credentials and issues a session. Unknown usernames and
	// wrong passwords both fail with ErrInvalidCredentials; the cause is
	// wrapped for diagnostics.
	Login(ctx context.Context, username, password string) (*auth.Session, error)

	// Logout revokes the session.
	Logout(ctx context.Context, session *auth.Session)

	// CurrentUser resolves a session token. An empty, invalid, expired or
	// revoked token resolves to an anonymous caller: nil user, nil error.
	CurrentUser(ctx context.Context, token string) (*domain.User, *auth.Session, error)
}

type authService struct {
	users     UserService
	sessions  auth.SessionManager
	telemetry telemetry.Sink
	logger    *slog.Logger
}

var _ AuthService = (*authService)(nil)

// NewAuthService creates a new AuthService.
func NewAuthService(
	users UserService,
	sessions auth.SessionManager,
	sink telemetry.Sink,
	logger *slog.Logger,
) AuthService {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		users:     users,
		sessions:  sessions,
		telemetry: sink,
		logger:    logger.With("component", "auth_service"),
	}
}

// Login implements AuthService.
func (s *authService) Login(ctx context.Context, username, password string) (*auth.Session, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Pay for a hash comparison anyway so unknown usernames take as
			// long as wrong passwords.
			s.users.VerifyPassword(nil, password)
			return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if !s.users.VerifyPassword(user, password) {
		s.logger.Debug("password mismatch", "user_id", user.ID)
		return nil, fmt.Errorf("%w: password mismatch for user %d", ErrInvalidCredentials, user.ID)
	}

	session, err := s.sessions.Issue(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	s.telemetry.SetUser(ctx, telemetry.User{ID: user.ID, Username: user.Username})
	s.telemetry.Breadcrumb(ctx, telemetry.Breadcrumb{
		Category: "auth",
		Message:  fmt.Sprintf("User logged in: %s", user.Username),
		Level:    telemetry.LevelInfo,
	})
	s.logger.Info("user logged in", "user_id", user.ID, "session_id", session.ID)

	return session, nil
}

// Logout implements AuthService.
func (s *authService) Logout(ctx context.Context, session *auth.Session) {
	if session == nil {
		return
	}
	s.telemetry.Breadcrumb(ctx, telemetry.Breadcrumb{
		Category: "auth",
		Message:  fmt.Sprintf("User logged out: %s", session.Username),
		Level:    telemetry.LevelInfo,
	})
	s.sessions.Revoke(ctx, session)
	s.logger.Info("user logged out", "user_id", session.UserID, "session_id", session.ID)
}

// CurrentUser implements AuthService.
func (s *authService) CurrentUser(ctx context.Context, token string) (*domain.User, *auth.Session, error) {
	if token == "" {
		return nil, nil, nil
	}

	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		s.logger.Debug("session rejected, treating caller as anonymous", "error", err)
		return nil, nil, nil
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// The user behind a valid token no longer exists in this store,
			// e.g. after a restart with the memory driver.
			return nil, nil, nil
		}
		return nil, nil, err
	}

	if !session.Matches(user) {
		// The ID now belongs to a different account, e.g. a memory store
		// rebuilt after a restart with the same signing secret.
		s.logger.Warn("session does not match the stored user, treating caller as anonymous",
			"user_id", session.UserID,
			"session_id", session.ID)
		return nil, nil, nil
	}

	return user, session, nil
}
