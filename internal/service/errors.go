package service

import "errors"

// Sentinel errors for expected failures. Callers check them with errors.Is;
// the underlying cause, when there is one, is wrapped alongside.
var (
	// ErrDuplicateUsername indicates registration with a username that is taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	// Both cases return this error.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidTitle indicates an empty or whitespace-only task title.
	ErrInvalidTitle = errors.New("task title cannot be empty")

	// ErrTaskNotFound indicates the requested task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrForbidden indicates the requester does not own the resource.
	ErrForbidden = errors.New("task is owned by another user")

	// ErrInvalidInput indicates malformed registration input.
	ErrInvalidInput = errors.New("invalid input")
)
