package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"filesort/internal/category"
	"filesort/internal/fileutil"
	"filesort/internal/logging"
	"filesort/internal/services"
	"filesort/internal/textutil"
)

const (
	// maxMoveAttempts bounds re-resolution when a destination appears between
	// resolving and renaming.
	maxMoveAttempts = 16
	maxCandidates   = 1 << 16
)

func (o *Organizer) organizeFile(ctx context.Context, root string, src sourceFile) FileOutcome {
	cat := category.Classify(src.name)
	logger := logging.WithContext(ctx, o.logger).With(
		logging.Path(src.name),
		logging.Category(cat.String()),
	)
	outcome := FileOutcome{Name: src.name, Category: cat, Size: src.size}

	targetDir := filepath.Join(root, cat.String())
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return o.failed(logger, outcome, services.Wrap(ioMarker(err), "organize", "create category directory", cat.String(), err))
	}

	res := &resolution{
		hash:   o.hash,
		logger: logger,
		source: src.path,
		size:   src.size,
		base:   filepath.Join(targetDir, textutil.SanitizeFileName(src.name)),
	}

	for attempt := 1; attempt <= maxMoveAttempts; attempt++ {
		dest, duplicate, err := res.destination()
		if err != nil {
			return o.settle(logger, outcome, err)
		}
		if duplicate {
			outcome.Status = StatusDuplicate
			outcome.Destination = dest
			logger.Info("duplicate skipped",
				logging.String("existing", dest),
				logging.String(logging.FieldEventType, "duplicate_skipped"),
			)
			return outcome
		}

		if o.beforeMove != nil {
			o.beforeMove(src.path, dest)
		}

		err = o.moveLocked(ctx, src.path, dest)
		if err == nil {
			outcome.Status = StatusMoved
			outcome.Destination = dest
			logger.Debug("file moved", logging.String("destination", dest), logging.Int("attempt", attempt))
			return outcome
		}
		if errors.Is(err, fs.ErrExist) {
			logger.Debug("destination appeared; re-resolving", logging.String("destination", dest))
			continue
		}
		return o.settle(logger, outcome, err)
	}

	return o.failed(logger, outcome, services.Wrap(
		services.ErrIO,
		"organize",
		"move",
		fmt.Sprintf("destination kept changing after %d attempts", maxMoveAttempts),
		nil,
	))
}

// moveLocked renames source to dest while holding the source path lock. The
// source is re-checked under the lock so a file taken by a concurrent call is
// reported as vanished instead of failing.
func (o *Organizer) moveLocked(ctx context.Context, source, dest string) error {
	release, err := o.locks.Acquire(ctx, source)
	if err != nil {
		return err
	}
	defer release()

	if _, err := os.Lstat(source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrVanished, "organize", "recheck source", "source no longer exists", nil)
		}
		return services.Wrap(ioMarker(err), "organize", "recheck source", "", err)
	}

	if err := fileutil.RenameNoReplace(source, dest); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return err
		}
		if errors.Is(err, fs.ErrNotExist) {
			if _, statErr := os.Lstat(source); errors.Is(statErr, fs.ErrNotExist) {
				return services.Wrap(services.ErrVanished, "organize", "rename", "source no longer exists", nil)
			}
		}
		return services.Wrap(ioMarker(err), "organize", "rename", filepath.Base(dest), err)
	}
	return nil
}

// settle maps a terminal per-file error onto the outcome.
func (o *Organizer) settle(logger *slog.Logger, outcome FileOutcome, err error) FileOutcome {
	switch {
	case errors.Is(err, services.ErrVanished):
		outcome.Status = StatusVanished
		logger.Info("file vanished before move", logging.String(logging.FieldEventType, "file_vanished"))
		return outcome
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome.Status = StatusCanceled
		outcome.Err = err
		return outcome
	default:
		return o.failed(logger, outcome, err)
	}
}

func (o *Organizer) failed(logger *slog.Logger, outcome FileOutcome, err error) FileOutcome {
	outcome.Status = StatusFailed
	outcome.Err = err
	logging.WarnWithContext(logger, "file not organized", "file_failed",
		logging.Error(err),
		logging.String("error_kind", string(services.KindOf(err))),
		logging.String(logging.FieldImpact, "file left in place"),
	)
	return outcome
}

func ioMarker(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return services.ErrPermission
	}
	return services.ErrIO
}

// resolution walks destination candidates for one source file. The source is
// hashed at most once, and only when a same-sized file occupies a candidate.
type resolution struct {
	hash   func(path string) (fileutil.Digest, error)
	logger *slog.Logger
	source string
	size   int64
	base   string
	next   int

	digest fileutil.Digest
	hashed bool
}

// destination returns the first free candidate starting at the current
// position, or the candidate holding identical content with duplicate set.
// The walk position is kept so a retry resumes at the candidate that was
// just taken.
func (r *resolution) destination() (string, bool, error) {
	for ; r.next < maxCandidates; r.next++ {
		if r.hashed && !r.digest.Known() {
			return r.uniquify()
		}

		candidate := fileutil.CandidatePath(r.base, r.next)
		info, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, false, nil
		}
		if err != nil {
			return "", false, services.Wrap(ioMarker(err), "organize", "check destination", filepath.Base(candidate), err)
		}
		if !info.Mode().IsRegular() || info.Size() != r.size {
			continue
		}

		if !r.hashed {
			digest, err := r.hash(r.source)
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, services.Wrap(services.ErrVanished, "organize", "hash source", "source no longer exists", nil)
			}
			if err != nil {
				r.logger.Warn("source unreadable; moving under a unique name",
					logging.String("candidate", candidate),
					logging.Error(err),
					logging.String(logging.FieldEventType, "source_hash_failed"),
				)
				digest = fileutil.Digest{}
			}
			r.digest, r.hashed = digest, true
			if !digest.Known() {
				continue
			}
		}

		existing, err := r.hash(candidate)
		if err != nil {
			r.logger.Debug("existing file unreadable; treating as different",
				logging.String("candidate", candidate),
				logging.Error(err),
			)
			continue
		}
		if r.digest.Equal(existing) {
			return candidate, true, nil
		}
	}
	return "", false, services.Wrap(services.ErrIO, "organize", "resolve destination",
		fmt.Sprintf("no free name among %d candidates", maxCandidates), nil)
}

// uniquify returns the next absent name from the current position. No
// candidate can match an unknown source digest.
func (r *resolution) uniquify() (string, bool, error) {
	candidate, n, err := fileutil.Uniquify(r.base, r.next, maxCandidates)
	r.next = n
	if err != nil {
		return "", false, services.Wrap(ioMarker(err), "organize", "resolve destination", filepath.Base(r.base), err)
	}
	return candidate, false, nil
}
