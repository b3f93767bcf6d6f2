package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"filesort/internal/api"
	"filesort/internal/config"
	"filesort/internal/logging"
	"filesort/internal/organizer"
	"filesort/internal/pathlock"
)

// Daemon owns the process-wide lock registry and serves organize requests.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	locks   *pathlock.Registry
	org     *organizer.Organizer
	svc     *api.Service
	api     *apiServer
	logPath string

	lockPath string
	lock     *flock.Flock

	running   atomic.Bool
	startedAt atomic.Pointer[time.Time]
	requests  atomic.Int64
	cancel    context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	Bind         string
	LockFilePath string
	LogPath      string
	StartedAt    time.Time
	Workers      int
	LockEntries  int
	IdleLocks    int
	Requests     int64
}

// New constructs a daemon. logPath is reported in status output only.
func New(cfg *config.Config, logger *slog.Logger, logPath string) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	locks := organizer.NewLockRegistry(cfg)
	org := organizer.NewFromConfig(cfg, locks, logger)
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		locks:    locks,
		org:      org,
		svc:      api.NewService(org),
		logPath:  logPath,
		lockPath: cfg.LockPath(),
		lock:     flock.New(cfg.LockPath()),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the instance lock and begins serving the API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if err := os.MkdirAll(d.cfg.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("ensure log directory: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another filesort daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.api.start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return err
	}
	d.cancel = cancel

	now := time.Now()
	d.startedAt.Store(&now)
	d.running.Store(true)
	d.logger.Info("filesort daemon started",
		logging.String("lock", d.lockPath),
		logging.String("bind", d.api.address()),
		logging.Int("workers", d.org.Workers()),
	)
	return nil
}

// Stop stops serving and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release daemon lock", "lock_release_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the lock file manually if the next start fails"),
		)
	}
	d.running.Store(false)
	d.logger.Info("filesort daemon stopped", logging.Int64("requests", d.requests.Load()))
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// Addr returns the bound listener address once started.
func (d *Daemon) Addr() string {
	return d.api.address()
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		Bind:         d.api.address(),
		LockFilePath: d.lockPath,
		LogPath:      d.logPath,
		Workers:      d.org.Workers(),
		LockEntries:  d.locks.Len(),
		IdleLocks:    d.locks.Idle(),
		Requests:     d.requests.Load(),
	}
	if started := d.startedAt.Load(); started != nil {
		status.StartedAt = *started
	}
	return status
}
