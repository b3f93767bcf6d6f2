package services_test

import (
	"context"
	"testing"

	"filesort/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithDirectory(ctx, "/srv/inbox")
	ctx = services.WithRequestID(ctx, "req-123")

	if dir, ok := services.DirectoryFromContext(ctx); !ok || dir != "/srv/inbox" {
		t.Fatalf("unexpected directory: %v %v", dir, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithDirectory(ctx, "")
	ctx = services.WithRequestID(ctx, "")
	if _, ok := services.DirectoryFromContext(ctx); ok {
		t.Fatal("expected no directory value")
	}
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id value")
	}
}

type foreignKey string

func TestForeignKeysDoNotCollide(t *testing.T) {
	ctx := context.WithValue(context.Background(), foreignKey("request_id"), "spoofed")
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatalf("foreign key leaked request id %q", rid)
	}

	outer := services.WithRequestID(services.WithRequestID(context.Background(), "first"), "second")
	if rid, _ := services.RequestIDFromContext(outer); rid != "second" {
		t.Fatalf("innermost value should win, got %q", rid)
	}
}
