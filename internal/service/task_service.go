package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/internal/telemetry"
)

// TaskService manages users' to-do items.
type TaskService interface {
	// Create adds an incomplete task for ownerID. It fails with
	// ErrInvalidTitle for a blank title and store.ErrUserNotFound when the
	// owner does not exist.
	Create(ctx context.Context, ownerID int64, title string) (*domain.Task, error)

	// ListByOwner returns the owner's tasks in creation order.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error)

	// FindByID retrieves a task, failing with ErrTaskNotFound.
	FindByID(ctx context.Context, taskID int64) (*domain.Task, error)

	// Toggle flips the completion flag of a task owned by requesterID.
	// It fails with ErrTaskNotFound or ErrForbidden, leaving the task unchanged.
	Toggle(ctx context.Context, taskID, requesterID int64) (*domain.Task, error)
}

type taskService struct {
	tasks     store.TaskStore
	users     store.UserStore
	telemetry telemetry.Sink
	logger    *slog.Logger
}

var _ TaskService = (*taskService)(nil)

// NewTaskService creates a new TaskService. users is consulted to check that
// a task's owner exists.
func NewTaskService(
	tasks store.TaskStore,
	users store.UserStore,
	sink telemetry.Sink,
	logger *slog.Logger,
) TaskService {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &taskService{
		tasks:     tasks,
		users:     users,
		telemetry: sink,
		logger:    logger.With("component", "task_service"),
	}
}

// Create implements TaskService.
func (s *taskService) Create(ctx context.Context, ownerID int64, title string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidTitle
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("failed to resolve task owner %d: %w", ownerID, err)
	}

	task, err := domain.NewTask(ownerID, title)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTitle, err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error("failed to save task", "error", err, "owner_id", ownerID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Debug("task created", "task_id", task.ID, "owner_id", ownerID)
	s.telemetry.Breadcrumb(ctx, telemetry.Breadcrumb{
		Category: "task",
		Message:  fmt.Sprintf("Task created: %s", task.Title),
		Level:    telemetry.LevelInfo,
	})

	return task, nil
}

// ListByOwner implements TaskService.
func (s *taskService) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err, "owner_id", ownerID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// FindByID implements TaskService.
func (s *taskService) FindByID(ctx context.Context, taskID int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, fmt.Errorf("%w: task %d", ErrTaskNotFound, taskID)
		}
		s.logger.Error("failed to retrieve task", "error", err, "task_id", taskID)
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}
	return task, nil
}

// Toggle implements TaskService.
func (s *taskService) Toggle(ctx context.Context, taskID, requesterID int64) (*domain.Task, error) {
	task, err := s.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !task.OwnedBy(requesterID) {
		s.logger.Warn("toggle refused for non-owner",
			"task_id", taskID,
			"owner_id", task.OwnerID,
			"requester_id", requesterID)
		return nil, fmt.Errorf("%w: task %d", ErrForbidden, taskID)
	}

	updated, err := s.tasks.Toggle(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, fmt.Errorf("%w: task %d", ErrTaskNotFound, taskID)
		}
		s.logger.Error("failed to toggle task", "error", err, "task_id", taskID)
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	s.telemetry.Breadcrumb(ctx, telemetry.Breadcrumb{
		Category: "task",
		Message:  fmt.Sprintf("Task %d toggled to %t", updated.ID, updated.Completed),
		Level:    telemetry.LevelInfo,
		Data:     map[string]any{"task_id": updated.ID, "completed": updated.Completed},
	})

	return updated, nil
}
