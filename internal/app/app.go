package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"

	"github.com/dori/workbridge/internal/api"
	"github.com/dori/workbridge/internal/db"
	"github.com/dori/workbridge/internal/notify"
	"github.com/dori/workbridge/internal/session"
)

// App holds the application state and dependencies
type App struct {
	Config   *Config
	DB       *db.DB
	Sessions *session.Store
	Client   *api.Client
	Notifier *notify.Notifier
	Log      *logrus.Logger
	DataDir  string

	lockFile *flock.Flock
	logFile  io.Closer
}

// New creates the application for the interactive client. Only one
// instance may run per data directory.
func New(cfg *Config) (*App, error) {
	return open(cfg, true)
}

// NewUnlocked creates the application for one-shot commands, which may run
// alongside the interactive client.
func NewUnlocked(cfg *Config) (*App, error) {
	return open(cfg, false)
}

func open(cfg *Config, lock bool) (*App, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   cfg,
		DataDir:  cfg.DataDir,
		Notifier: notify.NewNotifier(cfg.DesktopNotify),
	}

	if lock {
		if err := app.acquireLock(); err != nil {
			return nil, err
		}
	}

	log, logFile, err := newLogger(cfg)
	if err != nil {
		app.releaseLock()
		return nil, err
	}
	app.Log = log
	app.logFile = logFile

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database
	app.Sessions = session.NewStore(database)

	app.Client = api.New(api.Config{
		BaseURL:  cfg.APIURL,
		Timeout:  cfg.HTTPTimeout,
		PageSize: cfg.PageSize,
		Logger:   log,
	}, app.Sessions)

	log.WithFields(logrus.Fields{
		"api":      cfg.APIURL,
		"data_dir": cfg.DataDir,
		"locked":   lock,
	}).Info("started")

	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "workbridge.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of workbridge is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
