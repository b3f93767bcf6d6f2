package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filesort/internal/api"
	"filesort/internal/daemon"
	"filesort/internal/services"
	"filesort/internal/testsupport"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FILESORT_API_TOKEN", "")
	t.Chdir(home)
	return home
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestOrganizeCommandPrintsTable(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	testsupport.WriteContent(t, dir, "photo.jpg", "jpeg")
	testsupport.WriteContent(t, dir, "report.pdf", "pdf")

	out, _, err := execute(t, "organize", dir)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	for _, want := range []string{"photo.jpg", "Images", "Moved", "Moved 2 files", "2 moved"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "Documents", "report.pdf")); err != nil {
		t.Fatalf("report not moved: %v", err)
	}
}

func TestOrganizeCommandJSON(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	testsupport.WriteContent(t, dir, "clip.mp4", "video")

	out, _, err := execute(t, "organize", "--json", "--workers", "2", dir)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	var report api.OrganizeReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if !report.Success || report.FilesMoved != 1 || report.Directory != dir {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Files) != 1 || report.Files[0].Category != "Video" {
		t.Fatalf("unexpected files: %+v", report.Files)
	}
}

func TestOrganizeCommandEmptyDirectorySucceeds(t *testing.T) {
	isolateHome(t)
	out, _, err := execute(t, "organize", t.TempDir())
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	if !strings.Contains(out, "Moved 0 files") {
		t.Fatalf("output = %q", out)
	}
}

func TestOrganizeCommandMissingDirectoryFails(t *testing.T) {
	isolateHome(t)
	missing := filepath.Join(t.TempDir(), "missing")
	out, _, err := execute(t, "organize", missing)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Permission error") {
		t.Fatalf("error = %v", err)
	}
	if !strings.Contains(out, "Permission error") {
		t.Fatalf("output = %q", out)
	}
}

func TestOrganizeCommandRejectsBadWorkers(t *testing.T) {
	isolateHome(t)
	if _, _, err := execute(t, "organize", "--workers=-3", t.TempDir()); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCategoriesCommand(t *testing.T) {
	isolateHome(t)
	out, _, err := execute(t, "categories")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	for _, want := range []string{"Images", ".jpg", "3D_Models", "Others", "(anything else)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	out, _, err = execute(t, "categories", "--json")
	if err != nil {
		t.Fatalf("categories --json: %v", err)
	}
	var resp api.CategoriesResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Categories) != 9 {
		t.Fatalf("categories = %d, want 9", len(resp.Categories))
	}
}

func TestCategoriesCommandSelectsFolders(t *testing.T) {
	out, _, err := execute(t, "categories", "scripts", "--json")
	if err != nil {
		t.Fatalf("categories scripts: %v", err)
	}
	var resp api.CategoriesResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Categories) != 1 || resp.Categories[0].Name != "Scripts" {
		t.Fatalf("unexpected categories %+v", resp.Categories)
	}

	if _, _, err := execute(t, "categories", "Pictures"); err == nil || !strings.Contains(err.Error(), "unknown category") {
		t.Fatalf("expected unknown category error, got %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	home := isolateHome(t)
	target := filepath.Join(home, "conf", "filesort.toml")

	out, _, err := execute(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("output = %q", out)
	}
	if _, _, err := execute(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, _, err := execute(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	out, _, err = execute(t, "--config", target, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") || !strings.Contains(out, target) {
		t.Fatalf("output = %q", out)
	}
}

func TestConfigValidateRejectsUnknownKeys(t *testing.T) {
	home := isolateHome(t)
	path := testsupport.WriteContent(t, home, "bad.toml", "[organizer]\nbogus = 1\n")
	if _, _, err := execute(t, "--config", path, "config", "validate"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFormatCount(t *testing.T) {
	if got := formatCount(1234567); got != "1,234,567" {
		t.Fatalf("formatCount = %q", got)
	}
	if got := statusLabel("duplicate"); got != "Duplicate" {
		t.Fatalf("statusLabel = %q", got)
	}
}

func TestRemoteOrganizeAndStatus(t *testing.T) {
	home := isolateHome(t)
	cfg := testsupport.NewConfig(t)
	d, err := daemon.New(cfg, nil, "")
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	configPath := testsupport.WriteContent(t, home, "remote.toml", fmt.Sprintf(
		"[paths]\nlog_dir = %q\n\n[api]\nbind = %q\n", filepath.Join(home, "logs"), d.Addr()))

	dir := t.TempDir()
	testsupport.WriteContent(t, dir, "model.stl", "solid")
	out, _, err := execute(t, "--config", configPath, "organize", "--remote", "--json", dir)
	if err != nil {
		t.Fatalf("remote organize: %v", err)
	}
	var report api.OrganizeReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if report.FilesMoved != 1 || report.Files[0].Category != "3D_Models" {
		t.Fatalf("unexpected report: %+v", report)
	}

	out, _, err = execute(t, "--config", configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, d.Addr()) || !strings.Contains(out, "yes") {
		t.Fatalf("status output:\n%s", out)
	}
}

func TestStatusWithoutDaemon(t *testing.T) {
	home := isolateHome(t)
	configPath := testsupport.WriteContent(t, home, "remote.toml", "[api]\nbind = \"127.0.0.1:1\"\n")
	_, _, err := execute(t, "--config", configPath, "status")
	if err == nil || !strings.Contains(err.Error(), "not reachable") {
		t.Fatalf("expected unreachable error, got %v", err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   int
		stderr string
	}{
		{"success", nil, exitOK, ""},
		{"interrupted", fmt.Errorf("organize: %w", context.Canceled), exitInterrupted, ""},
		{"invalid", services.Wrap(services.ErrValidation, "request", "", "directory is required", nil), exitInvalidArgs, "directory is required"},
		{"failure", fmt.Errorf("organize /x: Moved 0 files with 1 errors"), exitFailure, "filesort: organize /x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if got := exitCode(&stderr, tc.err); got != tc.want {
				t.Fatalf("exitCode = %d, want %d", got, tc.want)
			}
			if tc.stderr == "" && stderr.Len() != 0 {
				t.Fatalf("unexpected stderr %q", stderr.String())
			}
			if !strings.Contains(stderr.String(), tc.stderr) {
				t.Fatalf("stderr %q missing %q", stderr.String(), tc.stderr)
			}
		})
	}
}
