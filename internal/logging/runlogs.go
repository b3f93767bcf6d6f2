package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// CurrentLogName is the link in the log directory that points at the
	// newest daemon run log.
	CurrentLogName = "filesort.log"

	runLogPrefix   = "filesort-"
	runLogSuffix   = ".log"
	runStampLayout = "20060102T150405.000Z"
)

// RunLogPath names the log file for a daemon run started at started.
func RunLogPath(dir string, started time.Time) string {
	return filepath.Join(dir, runLogPrefix+started.UTC().Format(runStampLayout)+runLogSuffix)
}

// runLogStarted reports when the run that wrote name began. Names that do not
// carry a parsable stamp report ok=false.
func runLogStarted(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, runLogPrefix) || !strings.HasSuffix(name, runLogSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, runLogPrefix), runLogSuffix)
	started, err := time.Parse(runStampLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return started, true
}

// PointCurrentLog replaces dir/filesort.log with a link to target. A hard link
// is used where symlinks are not permitted.
func PointCurrentLog(dir, target string) error {
	if dir == "" || target == "" {
		return nil
	}
	current := filepath.Join(dir, CurrentLogName)
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing log pointer: %w", err)
	}
	if err := os.Symlink(target, current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}

// PruneRunLogs deletes daemon run logs in dir that are older than
// retentionDays and returns the removed names. Age comes from the stamp in the
// file name, falling back to the modification time. keep and the current-log
// link are never removed. retentionDays <= 0 disables pruning.
func PruneRunLogs(logger *slog.Logger, dir string, retentionDays int, keep string) []string {
	if retentionDays <= 0 || strings.TrimSpace(dir) == "" {
		return nil
	}
	if logger == nil {
		logger = NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("run log listing failed", String("dir", dir), Error(err))
		}
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	keep = filepath.Clean(keep)
	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if name == CurrentLogName || !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, name)
		if path == keep {
			continue
		}
		started, ok := runLogStarted(name)
		if !ok {
			if !strings.HasPrefix(name, runLogPrefix) || !strings.HasSuffix(name, runLogSuffix) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			started = info.ModTime()
		}
		if !started.Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			WarnWithContext(logger, "run log not pruned", "log_prune_failed",
				Path(path),
				Error(err),
				String(FieldErrorHint, "check permissions on the log directory"),
				String(FieldImpact, "old logs keep using disk space"),
			)
			continue
		}
		removed = append(removed, name)
		logger.Debug("run log pruned", Path(path), String("started", started.UTC().Format(time.RFC3339)))
	}
	return removed
}
