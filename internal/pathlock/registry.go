package pathlock

import (
	"container/list"
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"filesort/internal/services"
)

const (
	// DefaultTimeout bounds how long Acquire waits for a contended path.
	DefaultTimeout = 5 * time.Second
	// DefaultMaxIdle caps the number of unheld entries retained.
	DefaultMaxIdle = 4096
)

// Options configures a Registry.
type Options struct {
	// Timeout is the per-acquisition wait bound. Zero selects DefaultTimeout.
	Timeout time.Duration
	// MaxIdle caps idle entries kept for reuse. Zero disables the cap; a
	// negative value selects DefaultMaxIdle.
	MaxIdle int
}

type entry struct {
	key  string
	sem  chan struct{}
	refs int
	idle *list.Element
}

// Registry maps normalized paths to mutual-exclusion locks.
type Registry struct {
	timeout time.Duration
	maxIdle int

	mu      sync.Mutex
	entries map[string]*entry
	lru     *list.List
}

// New constructs a registry.
func New(opts Options) *Registry {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxIdle := opts.MaxIdle
	if maxIdle < 0 {
		maxIdle = DefaultMaxIdle
	}
	return &Registry{
		timeout: timeout,
		maxIdle: maxIdle,
		entries: make(map[string]*entry),
		lru:     list.New(),
	}
}

// Timeout returns the acquisition wait bound.
func (r *Registry) Timeout() time.Duration {
	return r.timeout
}

// Normalize returns the registry key for path.
func Normalize(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// Acquire blocks until the lock for path is held, the timeout elapses, or ctx
// is done. The returned release function is idempotent. Two spellings of the
// same path ("a/../b" and "b") share one lock.
func (r *Registry) Acquire(ctx context.Context, path string) (func(), error) {
	key, err := Normalize(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "lock", "normalize path", "Invalid lock path", err)
	}

	e := r.ref(key)

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case e.sem <- struct{}{}:
	case <-timer.C:
		r.unref(e)
		return nil, services.Wrap(
			services.ErrLockTimeout,
			"lock",
			"acquire",
			fmt.Sprintf("Timed out after %s waiting for %s", r.timeout, key),
			nil,
		)
	case <-ctx.Done():
		r.unref(e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			r.unref(e)
		})
	}, nil
}

// Len returns the number of tracked entries, held or idle.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Idle returns the number of entries nobody holds or awaits.
func (r *Registry) Idle() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lru.Len()
}

func (r *Registry) ref(key string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		e = &entry{key: key, sem: make(chan struct{}, 1)}
		r.entries[key] = e
	}
	if e.idle != nil {
		r.lru.Remove(e.idle)
		e.idle = nil
	}
	e.refs++
	return e
}

func (r *Registry) unref(e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.refs--
	if e.refs > 0 {
		return
	}
	e.idle = r.lru.PushFront(e)
	r.evictLocked()
}

func (r *Registry) evictLocked() {
	if r.maxIdle == 0 {
		return
	}
	for r.lru.Len() > r.maxIdle {
		oldest := r.lru.Back()
		victim := oldest.Value.(*entry)
		r.lru.Remove(oldest)
		victim.idle = nil
		delete(r.entries, victim.key)
	}
}
