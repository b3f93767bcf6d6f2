package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"filesort/internal/logging"
)

func TestRunLogPathStampsUTC(t *testing.T) {
	started := time.Date(2026, 7, 8, 9, 10, 11, 120_000_000, time.FixedZone("x", 3600))
	got := logging.RunLogPath("/var/log/filesort", started)
	if want := "/var/log/filesort/filesort-20260708T081011.120Z.log"; got != filepath.FromSlash(want) {
		t.Fatalf("RunLogPath = %q, want %q", got, want)
	}
}

func TestPruneRunLogsUsesNameStamp(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	old := logging.RunLogPath(dir, now.AddDate(0, 0, -30))
	recent := logging.RunLogPath(dir, now.AddDate(0, 0, -1))
	current := logging.RunLogPath(dir, now.AddDate(0, 0, -40))
	notes := filepath.Join(dir, "notes.log")
	for _, p := range []string{old, recent, current, notes} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Every run log has a fresh mtime; only the name stamp marks old as
	// expired. notes.log is stale by mtime but is not a run log.
	past := now.AddDate(0, 0, -60)
	if err := os.Chtimes(notes, past, past); err != nil {
		t.Fatal(err)
	}

	removed := logging.PruneRunLogs(logging.NewNop(), dir, 7, current)

	if len(removed) != 1 || removed[0] != filepath.Base(old) {
		t.Fatalf("removed = %v", removed)
	}
	for _, p := range []string{recent, current, notes} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s kept: %v", filepath.Base(p), err)
		}
	}
}

func TestPruneRunLogsFallsBackToModTime(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "filesort-manual.log")
	fresh := filepath.Join(dir, "filesort-other.log")
	for _, p := range []string{stale, fresh} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().AddDate(0, 0, -10)
	if err := os.Chtimes(stale, past, past); err != nil {
		t.Fatal(err)
	}

	removed := logging.PruneRunLogs(nil, dir, 7, "")

	if len(removed) != 1 || removed[0] != "filesort-manual.log" {
		t.Fatalf("removed = %v", removed)
	}
}

func TestPruneRunLogsKeepsPointerAndHonoursDisable(t *testing.T) {
	dir := t.TempDir()
	old := logging.RunLogPath(dir, time.Now().AddDate(-1, 0, 0))
	if err := os.WriteFile(old, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := logging.PointCurrentLog(dir, old); err != nil {
		t.Fatalf("PointCurrentLog: %v", err)
	}

	if removed := logging.PruneRunLogs(nil, dir, 0, ""); len(removed) != 0 {
		t.Fatalf("retention 0 removed %v", removed)
	}
	removed := logging.PruneRunLogs(nil, dir, 7, "")
	if len(removed) != 1 || strings.Contains(removed[0], logging.CurrentLogName) {
		t.Fatalf("removed = %v", removed)
	}
	if _, err := os.Lstat(filepath.Join(dir, logging.CurrentLogName)); err != nil {
		t.Fatalf("pointer removed: %v", err)
	}
}

func TestPointCurrentLogReplacesOld(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "filesort-a.log")
	second := filepath.Join(dir, "filesort-b.log")
	for p, content := range map[string]string{first: "a", second: "b"} {
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := logging.PointCurrentLog(dir, first); err != nil {
		t.Fatalf("first pointer: %v", err)
	}
	if err := logging.PointCurrentLog(dir, second); err != nil {
		t.Fatalf("second pointer: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, logging.CurrentLogName))
	if err != nil {
		t.Fatalf("read pointer: %v", err)
	}
	if string(data) != "b" {
		t.Fatalf("pointer resolves to %q, want b", data)
	}
	if err := logging.PointCurrentLog("", second); err != nil {
		t.Fatalf("empty dir should be a no-op: %v", err)
	}
}
