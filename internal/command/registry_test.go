package command

import (
	"context"
	"errors"
	"testing"

	"github.com/vinogum/telegram-bot/internal/core"
	"github.com/vinogum/telegram-bot/internal/storage/memory"
)

func TestNewRegistryValidatesBinding(t *testing.T) {
	handlers := NewHandlers(memory.New(), nil, nil).Map()

	if _, err := NewRegistry(AllowedCommands, handlers, nil); err != nil {
		t.Fatalf("full binding should validate, got %v", err)
	}

	// A name without a handler must fail before any command is processed.
	_, err := NewRegistry(append(AllowedCommands, "export"), handlers, nil)
	if !errors.Is(err, core.ErrUnknownCommand) {
		t.Fatalf("err = %v, want ErrUnknownCommand", err)
	}

	// A nil handler is as bad as a missing one.
	broken := map[string]HandlerFunc{"start": nil}
	if _, err := NewRegistry([]string{"start"}, broken, nil); !errors.Is(err, core.ErrUnknownCommand) {
		t.Fatalf("err = %v, want ErrUnknownCommand", err)
	}
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	registry, err := NewRegistry(AllowedCommands, NewHandlers(memory.New(), nil, nil).Map(), nil)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	t.Run("allowed command routes", func(t *testing.T) {
		reply, ok := registry.Dispatch(ctx, req(1, "help"))
		if !ok || reply != HelpText {
			t.Fatalf("reply = %q, ok = %v", reply, ok)
		}
	})

	t.Run("unknown command is dropped", func(t *testing.T) {
		reply, ok := registry.Dispatch(ctx, req(1, "dance"))
		if ok || reply != "" {
			t.Fatalf("unknown command should be dropped, got %q, ok=%v", reply, ok)
		}
	})
}

func TestDispatchConvertsInfrastructureErrors(t *testing.T) {
	failing := map[string]HandlerFunc{
		"balance": func(ctx context.Context, req Request) (string, error) {
			return "", errors.New("connection reset")
		},
	}
	registry, err := NewRegistry([]string{"balance"}, failing, nil)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	reply, ok := registry.Dispatch(context.Background(), req(1, "balance"))
	if !ok || reply != replyFailure {
		t.Fatalf("reply = %q, ok = %v, want generic failure reply", reply, ok)
	}
}
