package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxUsernameLength is the longest accepted username, in bytes.
	MaxUsernameLength = 64

	// MaxPasswordLength is bcrypt's practical input limit, in bytes.
	MaxPasswordLength = 72
)

// User represents a registered user of the application.
// ID is zero until the user has been stored.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new, not yet stored User. The caller hashes the password;
// NewUser never sees the plaintext.
func NewUser(username, hashedPassword string) (*User, error) {
	user := &User{
		Username:       username,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if err := ValidateUsername(u.Username); err != nil {
		return err
	}
	if u.HashedPassword == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyHashedPassword)
	}
	return nil
}

// ValidateUsername checks that a username is non-blank and within
// MaxUsernameLength. Usernames are case-sensitive and are not normalised.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyUsername)
	}
	if len(username) > MaxUsernameLength {
		return fmt.Errorf("%w: %w", ErrValidation, ErrUsernameTooLong)
	}
	return nil
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyPassword)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: %w", ErrValidation, ErrPasswordTooLong)
	}
	return nil
}
