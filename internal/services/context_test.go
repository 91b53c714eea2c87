package services_test

import (
	"context"
	"testing"

	"mkvbatch/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSessionID(ctx, "sess-123")
	ctx = services.WithFile(ctx, "/media/a.mkv")

	if id, ok := services.SessionIDFromContext(ctx); !ok || id != "sess-123" {
		t.Fatalf("unexpected session id: %v %v", id, ok)
	}
	if file, ok := services.FileFromContext(ctx); !ok || file != "/media/a.mkv" {
		t.Fatalf("unexpected file: %v %v", file, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSessionID(ctx, "")
	ctx = services.WithFile(ctx, "")
	if _, ok := services.SessionIDFromContext(ctx); ok {
		t.Fatal("expected no session id")
	}
	if _, ok := services.FileFromContext(ctx); ok {
		t.Fatal("expected no file value")
	}
}
