// Package taskboard wires the task and theme stores over the slot storage
// and exposes them to the TUI and CLI commands.
package taskboard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskboard/internal/core/config"
	"github.com/colonyops/taskboard/internal/core/kv"
	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/data/db"
	"github.com/colonyops/taskboard/internal/data/stores"
)

// App is the central entry point for all taskboard operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Tasks  *TaskStore
	Theme  *ThemeStore
	Config *config.Config
	KV     kv.KV
	DB     *db.DB // nil when running on the in-memory store
}

// NewApp constructs an App over an already opened slot store.
func NewApp(cfg *config.Config, store kv.KV, database *db.DB, opts ...TaskStoreOption) *App {
	base := []TaskStoreOption{
		WithSeed(cfg.ShouldSeed()),
		WithLogger(logging.Component("tasks")),
	}
	return &App{
		Tasks:  NewTaskStore(store, append(base, opts...)...),
		Theme:  NewThemeStore(store, logging.Component("theme")),
		Config: cfg,
		KV:     store,
		DB:     database,
	}
}

// Open builds the App for cfg: it opens the slot storage and loads the task
// list.
func Open(ctx context.Context, cfg *config.Config, opts ...TaskStoreOption) (*App, error) {
	store, database, err := OpenStorage(cfg, logging.Component("storage"))
	if err != nil {
		return nil, err
	}

	app := NewApp(cfg, store, database, opts...)
	if err := app.Tasks.Load(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// Close releases the database, if any.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// OpenStorage returns the slot store selected by cfg.DataDir. A corrupted
// database file is moved aside once and recreated empty.
func OpenStorage(cfg *config.Config, log zerolog.Logger) (kv.KV, *db.DB, error) {
	if cfg.DataDir == config.MemoryDataDir {
		return stores.NewMemoryKV(), nil, nil
	}

	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err != nil && stores.IsCorruptionError(err) {
		backup, recoverErr := stores.RecoverFromCorruption(cfg.DataDir)
		if recoverErr != nil {
			return nil, nil, fmt.Errorf("recover database: %w", recoverErr)
		}
		log.Warn().Err(err).Str("backup", backup).Msg("database was corrupted, starting fresh")
		database, err = db.Open(cfg.DataDir, opts)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	return stores.NewKVStore(database), database, nil
}
