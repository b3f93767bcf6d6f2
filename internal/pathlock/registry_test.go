package pathlock_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"filesort/internal/pathlock"
	"filesort/internal/services"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAcquireRelease(t *testing.T) {
	reg := pathlock.New(pathlock.Options{})
	path := filepath.Join(t.TempDir(), "a.txt")

	release, err := reg.Acquire(context.Background(), path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if reg.Idle() != 0 {
		t.Fatalf("held entry counted as idle")
	}
	release()
	release()

	if reg.Len() != 1 || reg.Idle() != 1 {
		t.Fatalf("Len=%d Idle=%d, want 1/1", reg.Len(), reg.Idle())
	}

	again, err := reg.Acquire(context.Background(), path)
	if err != nil {
		t.Fatalf("re-acquire: %v", err)
	}
	again()
}

func TestAcquireMutualExclusion(t *testing.T) {
	reg := pathlock.New(pathlock.Options{Timeout: 10 * time.Second})
	path := filepath.Join(t.TempDir(), "shared")

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := reg.Acquire(context.Background(), path)
			if err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Fatalf("observed %d concurrent holders", maxInside)
	}
}

func TestEquivalentSpellingsShareLock(t *testing.T) {
	reg := pathlock.New(pathlock.Options{Timeout: 50 * time.Millisecond})
	dir := t.TempDir()

	release, err := reg.Acquire(context.Background(), filepath.Join(dir, "b.txt"))
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer release()

	alias := dir + string(filepath.Separator) + "x" + string(filepath.Separator) + ".." + string(filepath.Separator) + "b.txt"
	if _, err := reg.Acquire(context.Background(), alias); !errors.Is(err, services.ErrLockTimeout) {
		t.Fatalf("alias should wait on the held lock, got %v", err)
	}
}

func TestDifferentPathsDoNotBlock(t *testing.T) {
	reg := pathlock.New(pathlock.Options{Timeout: 50 * time.Millisecond})
	dir := t.TempDir()

	first, err := reg.Acquire(context.Background(), filepath.Join(dir, "one"))
	if err != nil {
		t.Fatalf("Acquire one: %v", err)
	}
	defer first()

	second, err := reg.Acquire(context.Background(), filepath.Join(dir, "two"))
	if err != nil {
		t.Fatalf("Acquire two: %v", err)
	}
	second()
}

func TestAcquireTimeout(t *testing.T) {
	reg := pathlock.New(pathlock.Options{Timeout: 30 * time.Millisecond})
	path := filepath.Join(t.TempDir(), "busy")

	release, err := reg.Acquire(context.Background(), path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer release()

	start := time.Now()
	_, err = reg.Acquire(context.Background(), path)
	if !errors.Is(err, services.ErrLockTimeout) {
		t.Fatalf("expected ErrLockTimeout, got %v", err)
	}
	if services.KindOf(err) != services.KindLockTimeout {
		t.Fatalf("KindOf = %q", services.KindOf(err))
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("returned after %s, before the timeout", elapsed)
	}
}

func TestAcquireHonoursContext(t *testing.T) {
	reg := pathlock.New(pathlock.Options{Timeout: time.Minute})
	path := filepath.Join(t.TempDir(), "busy")

	release, err := reg.Acquire(context.Background(), path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := reg.Acquire(ctx, path)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Acquire did not observe cancellation")
	}
}

func TestAcquireRejectsEmptyPath(t *testing.T) {
	reg := pathlock.New(pathlock.Options{})
	if _, err := reg.Acquire(context.Background(), ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestIdleEntriesAreEvicted(t *testing.T) {
	reg := pathlock.New(pathlock.Options{MaxIdle: 3})
	dir := t.TempDir()

	for i := 0; i < 10; i++ {
		release, err := reg.Acquire(context.Background(), filepath.Join(dir, fmt.Sprintf("f%d", i)))
		if err != nil {
			t.Fatalf("Acquire: %v", err)
		}
		release()
	}
	if reg.Len() != 3 || reg.Idle() != 3 {
		t.Fatalf("Len=%d Idle=%d, want 3/3", reg.Len(), reg.Idle())
	}
}

func TestHeldEntriesSurviveEviction(t *testing.T) {
	reg := pathlock.New(pathlock.Options{MaxIdle: 1, Timeout: 20 * time.Millisecond})
	dir := t.TempDir()
	held := filepath.Join(dir, "held")

	release, err := reg.Acquire(context.Background(), held)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer release()

	for i := 0; i < 5; i++ {
		r, err := reg.Acquire(context.Background(), filepath.Join(dir, fmt.Sprintf("other%d", i)))
		if err != nil {
			t.Fatalf("Acquire: %v", err)
		}
		r()
	}

	if _, err := reg.Acquire(context.Background(), held); !errors.Is(err, services.ErrLockTimeout) {
		t.Fatalf("held lock was lost: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len=%d, want held entry plus one idle", reg.Len())
	}
}

func TestNormalize(t *testing.T) {
	got, err := pathlock.Normalize("/tmp/a/../b//c.txt")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != filepath.Clean("/tmp/b/c.txt") {
		t.Fatalf("Normalize = %q", got)
	}
	if _, err := pathlock.Normalize(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
