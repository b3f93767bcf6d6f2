package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"filesort/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	// Level is debug, info, warn, or error. Anything else means info.
	Level string
	// Format is console or json.
	Format string
	// Outputs lists destinations: "stdout", "stderr", or file paths opened
	// for append. Empty means stderr.
	Outputs []string
	// Development adds file:line to every record.
	Development bool

	// Writer, when set, receives all output and Outputs is ignored.
	Writer io.Writer
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	handler, err := newHandler(opts)
	if err != nil {
		return nil, err
	}
	return slog.New(newSinkHandler("", handler)), nil
}

func newHandler(opts Options) (slog.Handler, error) {
	level := parseLevel(opts.Level)
	w := opts.Writer
	if w == nil {
		var err error
		if w, err = openOutputs(opts.Outputs); err != nil {
			return nil, err
		}
	}
	addSource := opts.Development || level <= slog.LevelDebug

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		return newConsoleHandler(w, level, addSource), nil
	case "json":
		return newJSONHandler(w, level, addSource), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromConfig builds the daemon logger: stderr in the configured format,
// plus JSON records appended to runLog when it is set.
func NewFromConfig(cfg *config.Config, runLog string) (*slog.Logger, error) {
	opts := Options{Level: "info"}
	if cfg != nil {
		opts.Level, opts.Format = cfg.Logging.Level, cfg.Logging.Format
	}
	console, err := newHandler(opts)
	if err != nil {
		return nil, err
	}
	if runLog = strings.TrimSpace(runLog); runLog == "" {
		return slog.New(newSinkHandler("", console)), nil
	}

	file, err := openOutputs([]string{runLog})
	if err != nil {
		return nil, err
	}
	return slog.New(newSinkHandler("", console, newJSONHandler(file, parseLevel(opts.Level), false))), nil
}

// parseLevel maps a configured level name onto a slog level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openOutputs(targets []string) (io.Writer, error) {
	var writers []io.Writer
	seen := make(map[string]bool, len(targets))
	for _, target := range targets {
		target = strings.TrimSpace(target)
		if target == "" || seen[target] {
			continue
		}
		seen[target] = true

		switch target {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return nil, fmt.Errorf("create log directory for %s: %w", target, err)
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
			if err != nil {
				return nil, fmt.Errorf("open log file %s: %w", target, err)
			}
			writers = append(writers, f)
		}
	}
	switch len(writers) {
	case 0:
		return os.Stderr, nil
	case 1:
		return writers[0], nil
	default:
		return io.MultiWriter(writers...), nil
	}
}
