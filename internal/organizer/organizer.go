package organizer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"filesort/internal/category"
	"filesort/internal/config"
	"filesort/internal/fileutil"
	"filesort/internal/logging"
	"filesort/internal/pathlock"
	"filesort/internal/preflight"
	"filesort/internal/services"
)

// Options tunes an Organizer. Zero values select defaults.
type Options struct {
	// Workers bounds how many files one call processes in parallel.
	Workers int
	// HashChunkSize is the read size used when comparing contents.
	HashChunkSize int
	// Now supplies the completion timestamp.
	Now func() time.Time
}

// Organizer moves files into category folders. It is safe for concurrent use;
// all coordination goes through the shared lock registry.
type Organizer struct {
	locks    *pathlock.Registry
	hash     func(path string) (fileutil.Digest, error)
	logger   *slog.Logger
	workers  int
	now      func() time.Time
	validate func(string) error

	// beforeMove runs after a destination is resolved and before the source
	// lock is taken.
	beforeMove func(source, dest string)
}

// New constructs an organizer around the provided lock registry. A nil
// registry gets a private one with default settings.
func New(locks *pathlock.Registry, logger *slog.Logger, opts Options) *Organizer {
	if locks == nil {
		locks = pathlock.New(pathlock.Options{MaxIdle: -1})
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Organizer{
		locks:    locks,
		hash:     fileutil.NewHasher(opts.HashChunkSize).Hash,
		logger:   logging.NewComponentLogger(logger, "organizer"),
		workers:  workers,
		now:      now,
		validate: preflight.ValidateDirectory,
	}
}

// NewFromConfig constructs an organizer using configured tuning.
func NewFromConfig(cfg *config.Config, locks *pathlock.Registry, logger *slog.Logger) *Organizer {
	if cfg == nil {
		return New(locks, logger, Options{})
	}
	return New(locks, logger, Options{
		Workers:       cfg.Organizer.Workers,
		HashChunkSize: cfg.HashChunkBytes(),
	})
}

// NewLockRegistry builds the process-wide lock registry from config.
func NewLockRegistry(cfg *config.Config) *pathlock.Registry {
	if cfg == nil {
		return pathlock.New(pathlock.Options{MaxIdle: -1})
	}
	return pathlock.New(pathlock.Options{
		Timeout: cfg.LockTimeout(),
		MaxIdle: cfg.Organizer.LockRegistryMaxIdle,
	})
}

// Workers returns the configured per-call parallelism.
func (o *Organizer) Workers() int {
	return o.workers
}

type sourceFile struct {
	name string
	path string
	size int64
}

// Organize sorts the regular files directly inside dir. It never panics on
// filesystem conditions and always returns a populated Result.
func (o *Organizer) Organize(ctx context.Context, dir string) Result {
	requestID, ok := services.RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
		ctx = services.WithRequestID(ctx, requestID)
	}
	ctx = services.WithDirectory(ctx, dir)
	logger := logging.WithContext(ctx, o.logger)

	finish := func(result Result) Result {
		result.RequestID = requestID
		result.Timestamp = o.now()
		return result
	}

	if err := o.validate(dir); err != nil {
		logging.WarnWithContext(logger, "directory rejected", "directory_rejected",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the directory exists and is writable by this user"),
			logging.String(logging.FieldImpact, "no files were moved"),
		)
		return finish(failedResult("Permission error: " + preflight.Describe(err)))
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return finish(failedResult("Critical error: " + err.Error()))
	}

	files, err := enumerate(root)
	if err != nil {
		logging.ErrorWithContext(logger, "directory enumeration failed", "enumerate_failed",
			logging.Error(services.Wrap(services.ErrCritical, "organize", "enumerate", root, err)),
		)
		return finish(failedResult("Critical error: " + err.Error()))
	}

	logger.Info("organize started", logging.Int("files", len(files)), logging.Int("workers", o.workers))
	started := time.Now()

	result := finish(summarize(o.processAll(ctx, root, files)))

	logger.Info("organize finished",
		logging.Int("moved", result.Moved),
		logging.Int("duplicates", result.Duplicates),
		logging.Int("vanished", result.Vanished),
		logging.Int("errors", result.ErrorCount()),
		logging.Duration("elapsed", time.Since(started)),
		logging.String(logging.FieldEventType, "organize_finished"),
	)
	return result
}

// enumerate lists direct children that resolve to regular files. Symlinks
// are followed for the type check; anything else is skipped silently, as are
// markers left by a concurrent directory validation.
func enumerate(root string) ([]sourceFile, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	files := make([]sourceFile, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), preflight.MarkerPrefix) {
			continue
		}
		path := filepath.Join(root, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, sourceFile{name: entry.Name(), path: path, size: info.Size()})
	}
	return files, nil
}

// processAll runs every file and stores its outcome at the file's enumeration
// index so error ordering does not depend on scheduling.
func (o *Organizer) processAll(ctx context.Context, root string, files []sourceFile) []FileOutcome {
	outcomes := make([]FileOutcome, len(files))
	run := func(i int) {
		if err := ctx.Err(); err != nil {
			outcomes[i] = FileOutcome{
				Name:     files[i].name,
				Category: category.Classify(files[i].name),
				Size:     files[i].size,
				Status:   StatusCanceled,
				Err:      err,
			}
			return
		}
		outcomes[i] = o.organizeFile(ctx, root, files[i])
	}

	if o.workers <= 1 || len(files) < 2 {
		for i := range files {
			run(i)
		}
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(o.workers)
	for i := range files {
		g.Go(func() error {
			run(i)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}
