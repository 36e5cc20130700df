// Package app opens the configured store and wires the services over it.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskdesk/taskdesk-go/internal/repository"
	"github.com/taskdesk/taskdesk-go/internal/service"
)

// DriverMemory keeps everything in process memory.
const DriverMemory = "memory"

// App holds the services sharing one store.
type App struct {
	Store       repository.Store
	Sessions    *service.SessionService
	Tasks       *service.TaskService
	Preferences *service.PreferenceService

	close func() error
}

// Open connects to the store named by driver and dsn, builds the services
// and clears tasks left mid-deletion by a previous run.
func Open(ctx context.Context, driver, dsn string, opts service.Options) (*App, error) {
	var store repository.Store
	closer := func() error { return nil }

	switch driver {
	case DriverMemory:
		store = repository.NewMemoryStore()
	case repository.DriverSQLite, repository.DriverMySQL:
		db, err := repository.NewDB(driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("opening %s store: %w", driver, err)
		}
		sqlStore, err := repository.NewSQLStore(ctx, db, driver)
		if err != nil {
			db.Close()
			return nil, err
		}
		store, closer = sqlStore, sqlStore.Close
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	a := New(store, opts)
	a.close = closer

	if _, err := a.Tasks.PurgeStale(ctx); err != nil {
		slog.Warn("purging stale tasks failed", "error", err)
	}
	return a, nil
}

// New wires the services over an existing store.
func New(store repository.Store, opts service.Options) *App {
	return &App{
		Store: store,
		Sessions: service.NewSessionService(
			repository.NewUserRepository(store),
			repository.NewSessionRepository(store),
			opts,
		),
		Tasks:       service.NewTaskService(repository.NewTaskRepository(store), opts),
		Preferences: service.NewPreferenceService(repository.NewPreferenceRepository(store)),
		close:       func() error { return nil },
	}
}

// Close releases the store.
func (a *App) Close() error {
	return a.close()
}
