// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkondo/taskping/internal/domain"
	"github.com/mkondo/taskping/internal/infra/channel"
	"github.com/mkondo/taskping/internal/infra/config"
	"github.com/mkondo/taskping/internal/infra/extract"
	"github.com/mkondo/taskping/internal/infra/jsonstore"
	"github.com/mkondo/taskping/internal/infra/logging"
	"github.com/mkondo/taskping/internal/infra/notify"
	"github.com/mkondo/taskping/internal/infra/sqlstore"
	"github.com/mkondo/taskping/internal/infra/transcribe"
	"github.com/mkondo/taskping/internal/sched"
	"github.com/mkondo/taskping/internal/usecase"
	"github.com/mkondo/taskping/pkg/messages"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use
// cases.
type Container struct {
	Tasks       domain.TaskRepository
	Clock       domain.Clock
	Extractor   domain.Extractor
	Transcriber domain.Transcriber
	Notifier    domain.Notifier
	Logger      *logging.Logger
	Catalog     *messages.Catalog
	Config      *domain.Config
	Location    *time.Location
	DataDir     string

	closers []func() error
}

// DataDir resolves the data directory: $TASKPING_DATA_DIR or
// ~/.taskping.
func DataDir() (string, error) {
	if dir := os.Getenv("TASKPING_DATA_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".taskping"), nil
}

// New creates a new Container, loading configuration and opening the
// configured store backend.
func New() (*Container, error) {
	dataDir, err := DataDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.NewLoader(dataDir).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, filepath.Join(dataDir, "taskping.log"))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	catalog, err := messages.NewCatalog(cfg.Notify.Language)
	if err != nil {
		return nil, fmt.Errorf("load message catalog: %w", err)
	}

	c := &Container{
		Clock:     domain.RealClock{},
		Extractor: extract.New(),
		Logger:    logger,
		Catalog:   catalog,
		Config:    cfg,
		Location:  loc,
		DataDir:   dataDir,
	}

	if err := c.openStore(); err != nil {
		return nil, err
	}
	c.buildNotifier()
	if cfg.Transcriber.URL != "" {
		c.Transcriber = transcribe.New(cfg.Transcriber.URL)
	}

	return c, nil
}

// NewWithDeps creates a Container from explicit dependencies. Tests use
// this to inject mocks.
func NewWithDeps(cfg *domain.Config, tasks domain.TaskRepository, clock domain.Clock, logger *logging.Logger) *Container {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.UTC
	}
	catalog, err := messages.NewCatalog(cfg.Notify.Language)
	if err != nil {
		catalog, _ = messages.NewCatalog("en")
	}
	return &Container{
		Tasks:     tasks,
		Clock:     clock,
		Extractor: extract.New(),
		Notifier:  notify.NewConsole(os.Stdout),
		Logger:    logger,
		Catalog:   catalog,
		Config:    cfg,
		Location:  loc,
	}
}

func (c *Container) openStore() error {
	switch c.Config.Store.Backend {
	case "sql":
		store, err := sqlstore.Connect(c.Config.Store.DSN, c.Clock)
		if err != nil {
			return err
		}
		c.Tasks = store
		c.closers = append(c.closers, store.Close)
	default:
		store := jsonstore.New(c.Config.Store.Path, c.Clock, c.Logger)
		if err := store.Open(); err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		c.Tasks = store
		c.closers = append(c.closers, store.Close)
	}
	return nil
}

func (c *Container) buildNotifier() {
	switch c.Config.Notify.Backend {
	case "webhook":
		c.Notifier = notify.NewWebhook(c.Config.Notify.WebhookURL)
	default:
		c.Notifier = notify.NewConsole(os.Stdout)
	}
}

// Close releases the store and flushes logs.
func (c *Container) Close() error {
	var lastErr error
	for _, fn := range c.closers {
		if err := fn(); err != nil {
			lastErr = err
		}
	}
	_ = c.Logger.Sync()
	return lastErr
}

// AddTaskUseCase creates an AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Tasks, c.Extractor, c.Clock, c.Location, c.Logger)
}

// ImportTasksUseCase creates an ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.Tasks, c.Logger)
}

// ListTasksUseCase creates a ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks, c.Clock, c.Location)
}

// NextTaskUseCase creates a NextTask use case.
func (c *Container) NextTaskUseCase() *usecase.NextTask {
	return usecase.NewNextTask(c.Tasks)
}

// CompleteTaskUseCase creates a CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Tasks, c.Logger)
}

// SnoozeTaskUseCase creates a SnoozeTask use case.
func (c *Container) SnoozeTaskUseCase() *usecase.SnoozeTask {
	return usecase.NewSnoozeTask(c.Tasks, c.Logger)
}

// DeleteTaskUseCase creates a DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks, c.Logger)
}

// Scheduler builds the reminder/digest scheduler.
func (c *Container) Scheduler() *sched.Scheduler {
	remind := usecase.NewRemindScan(c.Tasks, c.Notifier, c.Clock, c.Catalog, c.Logger)
	digest := usecase.NewDigestScan(c.Tasks, c.Notifier, c.Clock, c.Location, c.Catalog, c.Logger)
	return sched.New(remind, digest, c.Clock, c.Location, c.Config.Cadence(), c.Config.Remind.DigestHour, c.Config.Remind.DigestMinute, c.Logger)
}

// ChannelServer builds the HTTP command channel, or nil when no listen
// address is configured.
func (c *Container) ChannelServer() *channel.Server {
	if c.Config.Channel.Listen == "" {
		return nil
	}
	ops := channel.Operations{
		Add:      c.AddTaskUseCase(),
		List:     c.ListTasksUseCase(),
		Next:     c.NextTaskUseCase(),
		Complete: c.CompleteTaskUseCase(),
		Snooze:   c.SnoozeTaskUseCase(),
		Delete:   c.DeleteTaskUseCase(),
	}
	return channel.NewServer(ops, c.Transcriber, c.Catalog, c.Location, []byte(c.Config.Channel.JWTSecret))
}
