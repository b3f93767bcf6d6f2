package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"filesort/internal/config"
	"filesort/internal/daemon"
	"filesort/internal/logging"
	"filesort/internal/preflight"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel string
	Bind     string
}

// Run starts the filesort daemon and blocks until the context is canceled or
// the process receives SIGINT or SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	effective := *cfg
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		effective.Logging.Level = level
	}
	if bind := strings.TrimSpace(opts.Bind); bind != "" {
		effective.API.Bind = bind
	}
	cfg = &effective
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runID := uuid.NewString()
	logPath := logging.RunLogPath(cfg.Paths.LogDir, time.Now())

	logger, err := logging.NewFromConfig(cfg, logPath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logging.WithRunID(logger, runID)

	if err := logging.PointCurrentLog(cfg.Paths.LogDir, logPath); err != nil {
		logging.WarnWithContext(logger, "current log link not updated", "log_link_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, logging.CurrentLogName+" points at an older run"),
		)
	}
	if pruned := logging.PruneRunLogs(logger, cfg.Paths.LogDir, cfg.Logging.RetentionDays, logPath); len(pruned) > 0 {
		logger.Info("old run logs pruned", logging.Int("count", len(pruned)))
	}
	logPreflight(logger, preflight.RunAll(cfg))

	pidPath := filepath.Join(cfg.Paths.LogDir, "filesortd.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	d, err := daemon.New(cfg, logger, logPath)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Start(signalCtx); err != nil {
		logging.ErrorWithContext(logger, "daemon start failed", "daemon_start_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check api.bind and that no other filesortd is running"),
			logging.String(logging.FieldImpact, "no organize requests will be served"),
		)
		return err
	}

	<-signalCtx.Done()
	logger.Info("filesort daemon shutting down")
	return nil
}

func logPreflight(logger *slog.Logger, results []preflight.Result) {
	for _, result := range results {
		if result.Passed {
			logger.Debug("preflight check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail),
			)
			continue
		}
		logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldErrorHint, "fix permissions on the listed directory"),
			logging.String(logging.FieldImpact, "log files may not be written"),
		)
	}
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
