package backend

import (
	"context"
	"testing"

	"github.com/vinogum/telegram-bot/internal/config"
)

func TestBuildMemoryBackend(t *testing.T) {
	cfg := &config.Config{DataBackend: config.BackendMemory}

	result, err := Build(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Repository == nil {
		t.Fatal("repository should be set")
	}
	if result.Publisher != nil {
		t.Fatal("publisher should be nil without AMQP_URL")
	}
	if err := result.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestBuildUnsupportedBackend(t *testing.T) {
	cfg := &config.Config{DataBackend: "redis"}
	if _, err := Build(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}
