// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/taskpad/internal/domain"
	"github.com/runoshun/taskpad/internal/infra/config"
	"github.com/runoshun/taskpad/internal/infra/crypto"
	"github.com/runoshun/taskpad/internal/infra/export"
	"github.com/runoshun/taskpad/internal/infra/gitstore"
	"github.com/runoshun/taskpad/internal/infra/jsonstore"
	"github.com/runoshun/taskpad/internal/infra/logging"
	"github.com/runoshun/taskpad/internal/infra/memstore"
	"github.com/runoshun/taskpad/internal/infra/persist"
	"github.com/runoshun/taskpad/internal/usecase"
)

const logCategory = "app"

// Options controls how New builds a Container.
type Options struct {
	WorkDir    string // Directory searched for .taskpad.toml; also the base for relative paths
	ConfigFile string // Explicit config file; replaces global and local files
	DataDir    string // Overrides the XDG data directory
	Ephemeral  bool   // Use an in-memory store regardless of config
}

// Paths holds the resolved filesystem locations.
type Paths struct {
	WorkDir   string // Working directory
	DataDir   string // Base directory for data and logs
	StorePath string // JSON store file (json backend only)
	LogDir    string // Log directory (empty disables logging)
	Backend   string // Backend actually in use
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Core state shared by every use case in the session
	Store *domain.TaskStore

	// Ports (interfaces bound to implementations)
	KV           domain.KVStore
	Persister    domain.TaskPersister
	Exporter     domain.TaskExporter
	Clock        domain.Clock
	Logger       domain.Logger
	ConfigLoader domain.ConfigLoader

	// Pointer fields
	ConfigManager *config.Manager
	AppConfig     *domain.Config
	fileLogger    *logging.Logger

	// Configuration
	Paths Paths
}

// New creates a Container: it loads config, opens the configured backend,
// and restores the task store from it.
func New(opts Options) (*Container, error) {
	if opts.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		opts.WorkDir = wd
	}

	var loader *config.Loader
	if opts.ConfigFile != "" {
		loader = config.NewFileLoader(opts.ConfigFile)
	} else {
		loader = config.NewLoader(opts.WorkDir)
	}
	appConfig, err := loader.Load()
	if err != nil {
		return nil, err
	}

	paths := resolvePaths(opts, appConfig)
	fileLogger := logging.New(paths.LogDir, logging.ParseLevel(appConfig.Log.Level))
	for _, w := range appConfig.Warnings {
		fileLogger.Warn("config", w)
	}

	kv, err := openBackend(paths, appConfig)
	if err != nil {
		_ = fileLogger.Close()
		return nil, err
	}

	c := NewWithDeps(appConfig, kv, domain.RealClock{}, fileLogger)
	c.ConfigLoader = loader
	c.ConfigManager = config.NewManager(opts.WorkDir)
	c.fileLogger = fileLogger
	c.Paths = paths
	fileLogger.Debug(logCategory, fmt.Sprintf("backend=%s tasks=%d", paths.Backend, c.Store.Len()))
	return c, nil
}

// NewWithDeps creates a Container around an existing KV store.
// The task store is restored from kv. This is useful for testing.
func NewWithDeps(appConfig *domain.Config, kv domain.KVStore, clock domain.Clock, logger domain.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	if clock == nil {
		clock = domain.RealClock{}
	}

	persister := persist.New(kv, logger)
	// The persisted counter is advisory; RestoreTaskStore recomputes it.
	tasks, _ := persister.Load()
	store, dropped := domain.RestoreTaskStore(tasks)
	for _, t := range dropped {
		logger.Warn(logCategory, fmt.Sprintf("dropped task with invalid or duplicate id #%d %q", t.ID, t.Text))
	}

	return &Container{
		Store:     store,
		KV:        kv,
		Persister: persister,
		Exporter:  export.New(),
		Clock:     clock,
		Logger:    logger,
		AppConfig: appConfig,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.fileLogger != nil {
		return c.fileLogger.Close()
	}
	return nil
}

func resolvePaths(opts Options, cfg *domain.Config) Paths {
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = defaultDataDir()
	}

	p := Paths{
		WorkDir: opts.WorkDir,
		DataDir: dataDir,
		Backend: cfg.Store.Backend,
	}
	if opts.Ephemeral {
		p.Backend = domain.BackendMemory
	}

	p.StorePath = cfg.Store.Path
	if p.StorePath == "" && dataDir != "" {
		p.StorePath = domain.StorePath(dataDir)
	}
	p.StorePath = resolveRelative(opts.WorkDir, p.StorePath)

	p.LogDir = cfg.Log.Dir
	if p.LogDir == "" && dataDir != "" {
		p.LogDir = filepath.Join(dataDir, "logs")
	}
	p.LogDir = resolveRelative(opts.WorkDir, p.LogDir)

	return p
}

// defaultDataDir returns $XDG_DATA_HOME/taskpad or ~/.local/share/taskpad.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return domain.DataDir(dataHome)
}

func resolveRelative(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// openBackend creates the configured KV store, wrapped for encryption when
// a key is configured.
func openBackend(paths Paths, cfg *domain.Config) (domain.KVStore, error) {
	var kv domain.KVStore
	switch paths.Backend {
	case domain.BackendJSON, "":
		if paths.StorePath == "" {
			return nil, errors.New("json backend: no store path (set [store] path)")
		}
		kv = jsonstore.New(paths.StorePath)
	case domain.BackendGit:
		store, err := gitstore.New(resolveRelative(paths.WorkDir, cfg.Store.Repo), cfg.Store.Namespace)
		if err != nil {
			return nil, fmt.Errorf("git backend: %w", err)
		}
		kv = store
	case domain.BackendMemory:
		kv = memstore.New()
	default:
		return nil, fmt.Errorf("%q: %w", paths.Backend, domain.ErrUnknownBackend)
	}

	if cfg.Store.EncryptionKey != "" {
		enc, err := crypto.NewStore(kv, cfg.Store.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("store encryption: %w", err)
		}
		kv = enc
	}
	return kv, nil
}

// UseCase factory methods

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Store, c.Persister, c.Logger)
}

// ToggleTaskUseCase returns a new ToggleTask use case.
func (c *Container) ToggleTaskUseCase() *usecase.ToggleTask {
	return usecase.NewToggleTask(c.Store, c.Persister, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store, c.Persister, c.Logger)
}

// ClearCompletedUseCase returns a new ClearCompleted use case.
func (c *Container) ClearCompletedUseCase() *usecase.ClearCompleted {
	return usecase.NewClearCompleted(c.Store, c.Persister, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store)
}

// ShowStatsUseCase returns a new ShowStats use case.
func (c *Container) ShowStatsUseCase() *usecase.ShowStats {
	return usecase.NewShowStats(c.Store)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Store, c.Exporter, c.Clock)
}
