package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"filesort/internal/client"
	"filesort/internal/daemon"
	"filesort/internal/testsupport"
)

func startDaemon(t *testing.T, opts ...testsupport.ConfigOption) *daemon.Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	d, err := daemon.New(cfg, nil, "")
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(d.Stop)
	return d
}

func TestNewEmptyBind(t *testing.T) {
	c, err := client.New("  ", "")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if c != nil {
		t.Fatal("expected nil client for empty bind")
	}
	if _, err := c.Status(context.Background()); !client.IsAPIUnavailable(err) {
		t.Fatalf("nil client error = %v", err)
	}
}

func TestClientAgainstDaemon(t *testing.T) {
	d := startDaemon(t, testsupport.WithAPIToken("tok"))
	c, err := client.New(d.Addr(), "tok")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	status, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Running || status.PID != os.Getpid() {
		t.Fatalf("unexpected status: %+v", status)
	}

	cats, err := c.Categories(ctx)
	if err != nil || len(cats.Categories) != 9 {
		t.Fatalf("Categories = %+v, %v", cats, err)
	}

	dir := t.TempDir()
	testsupport.WriteContent(t, dir, "a.zip", "zip")
	report, err := c.Organize(ctx, dir)
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	if !report.Success || report.FilesMoved != 1 || len(report.Files) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if _, err := os.Stat(filepath.Join(dir, "Archives", "a.zip")); err != nil {
		t.Fatalf("archive not moved: %v", err)
	}

	v, err := c.ValidateDirectory(ctx, dir)
	if err != nil || !v.Valid {
		t.Fatalf("ValidateDirectory = %+v, %v", v, err)
	}
}

func TestOrganizeFailureReturnsReport(t *testing.T) {
	d := startDaemon(t)
	c, _ := client.New("http://"+d.Addr(), "")

	report, err := c.Organize(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	if report.Success || report.Message == "" {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestBadRequestAndAuthErrors(t *testing.T) {
	d := startDaemon(t, testsupport.WithAPIToken("tok"))

	c, _ := client.New(d.Addr(), "tok")
	_, err := c.Organize(context.Background(), "   ")
	var statusErr *client.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadRequest || statusErr.Message == "" {
		t.Fatalf("blank directory error = %v", err)
	}

	anon, _ := client.New(d.Addr(), "")
	_, err = anon.Status(context.Background())
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusUnauthorized {
		t.Fatalf("unauthorized error = %v", err)
	}
	if client.IsAPIUnavailable(err) {
		t.Fatal("status errors are not unavailability")
	}
}

func TestUnavailableDaemon(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.Listener.Addr().String()
	srv.Close()

	c, _ := client.New(addr, "")
	_, err := c.Status(context.Background())
	if !client.IsAPIUnavailable(err) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}
