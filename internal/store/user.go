package store

import (
	"context"

	"github.com/phrazzld/taskdeck/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and assigns its ID (the next integer after the
	// highest existing ID). The username comparison is case-sensitive.
	// Returns ErrUsernameExists if the username is already taken, in which
	// case the store is left unchanged.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by exact username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Count returns the number of stored users.
	Count(ctx context.Context) (int, error)
}
