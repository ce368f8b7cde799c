package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/store"
)

const taskColumns = `id, owner_id, title, completed, created_at`

// TaskStore implements store.TaskStore using SQLite.
type TaskStore struct {
	db store.DBTX
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a new SQLite task store. The connection is owned by the caller.
func NewTaskStore(db store.DBTX) *TaskStore {
	return &TaskStore{db: db}
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO tasks (owner_id, title, completed, created_at) VALUES (?, ?, ?, ?)
		 RETURNING id`,
		task.OwnerID, task.Title, task.Completed, task.CreatedAt,
	).Scan(&task.ID)
	if err != nil {
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row, "get")
}

// ListByOwner implements store.TaskStore.ListByOwner
func (s *TaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Completed, &t.CreatedAt); err != nil {
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "iteration failed", err)
	}
	return tasks, nil
}

// Toggle implements store.TaskStore.Toggle
func (s *TaskStore) Toggle(ctx context.Context, id int64) (*domain.Task, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE tasks SET completed = NOT completed WHERE id = ?`, id)
	if err != nil {
		return nil, store.NewStoreError("task", "toggle", "update failed", MapError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, store.NewStoreError("task", "toggle", "rows affected unavailable", err)
	}
	if affected == 0 {
		return nil, store.ErrTaskNotFound
	}
	return s.GetByID(ctx, id)
}

// Count implements store.TaskStore.Count
func (s *TaskStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		return 0, store.NewStoreError("task", "count", "query failed", MapError(err))
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner, operation string) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Completed, &t.CreatedAt); err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", operation, "query failed", mapped)
	}
	return &t, nil
}
