package domain

import (
	"fmt"
	"strings"
	"time"
)

// Task is a to-do item owned by a single user. Completed is the only field
// that changes after creation.
type Task struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTask creates a new, not yet stored, incomplete Task.
func NewTask(ownerID int64, title string) (*Task, error) {
	task := &Task{
		OwnerID:   ownerID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.OwnerID <= 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidOwner)
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTitle)
	}
	return nil
}

// OwnedBy reports whether userID owns the task.
func (t *Task) OwnedBy(userID int64) bool {
	return t.OwnerID == userID
}
