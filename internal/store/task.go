package store

import (
	"context"

	"github.com/phrazzld/taskdeck/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Tasks are never deleted.
type TaskStore interface {
	// Create saves a new task and assigns its ID (the next integer after the
	// highest existing task ID, across all owners).
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ListByOwner returns the owner's tasks in creation order. The result is
	// empty, not nil, when the owner has no tasks.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error)

	// Toggle atomically flips the completion flag of a task and returns the
	// updated task. Ownership is checked by the caller.
	// Returns ErrTaskNotFound if the task does not exist.
	Toggle(ctx context.Context, id int64) (*domain.Task, error)

	// Count returns the number of stored tasks.
	Count(ctx context.Context) (int, error)
}
