package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyUsername is returned when a username is empty or whitespace.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrUsernameTooLong is returned when a username exceeds MaxUsernameLength.
	ErrUsernameTooLong = errors.New("username is too long")

	// ErrEmptyPassword is returned when a password is empty.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordTooLong is returned when a password exceeds bcrypt's input limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes long")

	// ErrEmptyHashedPassword is returned when a stored user has no password hash.
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")

	// ErrEmptyTitle is returned when a task title is empty or whitespace.
	ErrEmptyTitle = errors.New("task title cannot be empty")

	// ErrInvalidOwner is returned when a task has no owner.
	ErrInvalidOwner = errors.New("task owner is invalid")
)
