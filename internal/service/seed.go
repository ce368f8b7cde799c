package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdeck/internal/service/auth"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/internal/telemetry"
)

// SeedUser is a demo account created by Seed.
type SeedUser struct {
	Username string
	Password string
}

// SeedTask is a demo task created by Seed. Owner refers to a SeedUser by username.
type SeedTask struct {
	Owner     string
	Title     string
	Completed bool
}

// DefaultSeedUsers are the demo accounts installed on an empty store.
var DefaultSeedUsers = []SeedUser{
	{Username: "alice", Password: "test123"},
	{Username: "bob", Password: "test123"},
	{Username: "admin", Password: "admin123"},
}

// DefaultSeedTasks are the demo tasks installed on an empty store.
var DefaultSeedTasks = []SeedTask{
	{Owner: "alice", Title: "Alice's first task"},
	{Owner: "alice", Title: "Alice's second task", Completed: true},
	{Owner: "bob", Title: "Bob's task"},
	{Owner: "admin", Title: "Administrative task"},
}

// Seeder installs demo data into empty stores.
type Seeder struct {
	stores    store.Stores
	runTx     store.TxRunner
	hasher    auth.PasswordHasher
	telemetry telemetry.Sink
	logger    *slog.Logger
}

// NewSeeder creates a Seeder. Writes go through runTx so a failed seed
// leaves nothing behind on transactional stores; a nil runTx writes to
// stores directly.
func NewSeeder(
	stores store.Stores,
	runTx store.TxRunner,
	hasher auth.PasswordHasher,
	sink telemetry.Sink,
	logger *slog.Logger,
) *Seeder {
	if runTx == nil {
		runTx = store.DirectRunner(stores)
	}
	if sink == nil {
		sink = telemetry.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		stores:    stores,
		runTx:     runTx,
		hasher:    hasher,
		telemetry: sink,
		logger:    logger.With("component", "seeder"),
	}
}

// Seed installs users and tasks when the user store is empty. It reports
// whether anything was written. Telemetry is sent once the data is committed.
func (s *Seeder) Seed(ctx context.Context, users []SeedUser, tasks []SeedTask) (bool, error) {
	count, err := s.stores.Users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		s.logger.Debug("store already populated, skipping seed", "user_count", count)
		return false, nil
	}

	err = s.runTx(ctx, func(ctx context.Context, stores store.Stores) error {
		// Seed data is announced by the seeder itself, not per operation.
		userSvc := NewUserService(stores.Users, s.hasher, telemetry.Nop{}, s.logger)
		taskSvc := NewTaskService(stores.Tasks, stores.Users, telemetry.Nop{}, s.logger)
		return seed(ctx, userSvc, taskSvc, users, tasks)
	})
	if err != nil {
		return false, err
	}

	for _, u := range users {
		s.telemetry.Message(ctx,
			fmt.Sprintf("Test user created: %s", u.Username),
			telemetry.LevelInfo, nil)
	}
	if len(tasks) > 0 {
		s.telemetry.Message(ctx,
			fmt.Sprintf("Test tasks created: %d tasks", len(tasks)),
			telemetry.LevelInfo, nil)
	}

	s.logger.Info("seeded demo data", "users", len(users), "tasks", len(tasks))
	return true, nil
}

func seed(ctx context.Context, users UserService, tasks TaskService, seedUsers []SeedUser, seedTasks []SeedTask) error {
	ids := make(map[string]int64, len(seedUsers))
	for _, u := range seedUsers {
		created, err := users.Register(ctx, u.Username, u.Password)
		if err != nil {
			return fmt.Errorf("failed to seed user %q: %w", u.Username, err)
		}
		ids[u.Username] = created.ID
	}

	for _, t := range seedTasks {
		ownerID, ok := ids[t.Owner]
		if !ok {
			return fmt.Errorf("seed task %q references unknown user %q", t.Title, t.Owner)
		}
		created, err := tasks.Create(ctx, ownerID, t.Title)
		if err != nil {
			return fmt.Errorf("failed to seed task %q: %w", t.Title, err)
		}
		if t.Completed {
			if _, err := tasks.Toggle(ctx, created.ID, ownerID); err != nil {
				return fmt.Errorf("failed to complete seed task %q: %w", t.Title, err)
			}
		}
	}
	return nil
}
