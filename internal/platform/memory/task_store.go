package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/store"
)

// TaskStore implements store.TaskStore. Tasks are kept in creation order.
type TaskStore struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{}
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	for i := range s.tasks {
		maxID = max(maxID, s.tasks[i].ID)
	}

	task.ID = maxID + 1
	s.tasks = append(s.tasks, *task)
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, store.ErrTaskNotFound
	}
	t := s.tasks[i]
	return &t, nil
}

// ListByOwner implements store.TaskStore.ListByOwner
func (s *TaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Task, 0)
	for i := range s.tasks {
		if s.tasks[i].OwnerID == ownerID {
			t := s.tasks[i]
			result = append(result, &t)
		}
	}
	return result, nil
}

// Toggle implements store.TaskStore.Toggle
func (s *TaskStore) Toggle(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, store.ErrTaskNotFound
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	t := s.tasks[i]
	return &t, nil
}

// Count implements store.TaskStore.Count
func (s *TaskStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks), nil
}

// indexOf must be called with s.mu held.
func (s *TaskStore) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
