package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskdeck/internal/config"
	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/platform/logger"
)

// Session is an authenticated browser session. Token is the signed value
// stored in the session cookie.
//
// UserCreatedAt pins the session to one account: IDs and usernames can be
// reused by a store that was rebuilt, creation times are not.
type Session struct {
	ID            string
	UserID        int64
	Username      string
	UserCreatedAt time.Time
	IssuedAt      time.Time
	ExpiresAt     time.Time
	Token         string
}

// Matches reports whether user is the account the session was issued to.
func (s *Session) Matches(user *domain.User) bool {
	return s != nil && user != nil &&
		user.ID == s.UserID &&
		user.Username == s.Username &&
		user.CreatedAt.UnixMicro() == s.UserCreatedAt.UnixMicro()
}

// SessionManager issues, validates and revokes session tokens.
type SessionManager interface {
	// Issue creates a signed session for the given user.
	Issue(ctx context.Context, user *domain.User) (*Session, error)

	// Validate parses a token and returns its session. Revoked sessions
	// fail with ErrRevokedSession.
	Validate(ctx context.Context, token string) (*Session, error)

	// Revoke ends a session before it expires.
	Revoke(ctx context.Context, session *Session)
}

type sessionClaims struct {
	UserID     int64  `json:"uid"`
	Username   string `json:"name"`
	Registered int64  `json:"reg"` // user creation time, Unix microseconds
	jwt.RegisteredClaims
}

// hmacSessionManager signs sessions with HMAC-SHA256 and keeps revoked
// session IDs in memory until their tokens would have expired anyway.
type hmacSessionManager struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time
	clockSkew  time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time
}

var _ SessionManager = (*hmacSessionManager)(nil)

// NewSessionManager creates a SessionManager from the auth configuration.
func NewSessionManager(cfg config.AuthConfig) (SessionManager, error) {
	return newSessionManager(cfg, time.Now)
}

func newSessionManager(cfg config.AuthConfig, now func() time.Time) (*hmacSessionManager, error) {
	if len(cfg.SessionSecret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 characters")
	}
	if cfg.SessionLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("session lifetime must be positive, got %d minutes", cfg.SessionLifetimeMinutes)
	}
	return &hmacSessionManager{
		signingKey: []byte(cfg.SessionSecret),
		lifetime:   time.Duration(cfg.SessionLifetimeMinutes) * time.Minute,
		timeFunc:   now,
		clockSkew:  time.Minute,
		revoked:    make(map[string]time.Time),
	}, nil
}

// Issue implements SessionManager.
func (m *hmacSessionManager) Issue(ctx context.Context, user *domain.User) (*Session, error) {
	if user == nil || user.ID <= 0 {
		return nil, fmt.Errorf("cannot issue a session without a stored user")
	}
	now := m.timeFunc()
	claims := sessionClaims{
		UserID:     user.ID,
		Username:   user.Username,
		Registered: user.CreatedAt.UnixMicro(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign session token",
			"error", err,
			"user_id", user.ID)
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &Session{
		ID:            claims.ID,
		UserID:        user.ID,
		Username:      user.Username,
		UserCreatedAt: time.UnixMicro(claims.Registered),
		IssuedAt:      claims.IssuedAt.Time,
		ExpiresAt:     claims.ExpiresAt.Time,
		Token:         signed,
	}, nil
}

// Validate implements SessionManager.
func (m *hmacSessionManager) Validate(ctx context.Context, tokenString string) (*Session, error) {
	log := logger.FromContext(ctx)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := m.timeFunc()
	token, err := jwt.ParseWithClaims(
		tokenString,
		&sessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(m.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug("session validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		}
		log.Debug("session validation failed",
			"error", err,
			"error_type", fmt.Sprintf("%T", err))
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.ID == "" || claims.UserID <= 0 {
		log.Debug("session validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	if m.isRevoked(claims.ID) {
		log.Debug("session validation failed: revoked", "session_id", claims.ID)
		return nil, ErrRevokedSession
	}

	session := &Session{
		ID:            claims.ID,
		UserID:        claims.UserID,
		Username:      claims.Username,
		UserCreatedAt: time.UnixMicro(claims.Registered),
		ExpiresAt:     claims.ExpiresAt.Time,
		Token:         tokenString,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return session, nil
}

// Revoke implements SessionManager.
func (m *hmacSessionManager) Revoke(_ context.Context, session *Session) {
	if session == nil || session.ID == "" {
		return
	}
	now := m.timeFunc()

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, expiry := range m.revoked {
		if now.After(expiry.Add(m.clockSkew)) {
			delete(m.revoked, id)
		}
	}
	m.revoked[session.ID] = session.ExpiresAt
}

func (m *hmacSessionManager) isRevoked(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok
}

func (m *hmacSessionManager) revokedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.revoked)
}
