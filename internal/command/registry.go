package command

import (
	"context"
	"fmt"

	"github.com/vinogum/telegram-bot/internal/core"
	"github.com/vinogum/telegram-bot/internal/log"
)

// AllowedCommands is the closed set of command names the bot accepts. The
// registrar refuses to start unless every name resolves to a handler.
var AllowedCommands = []string{
	"start",
	"help",
	"income",
	"expense",
	"balance",
	"report",
	"delete",
	"update",
}

// Registry routes incoming commands to their handlers. Binding is validated
// exhaustively at construction; an allow-listed name without a handler is a
// deployment error, never a per-message one.
type Registry struct {
	handlers map[string]HandlerFunc
	logger   *log.Logger
}

func NewRegistry(allowed []string, handlers map[string]HandlerFunc, logger *log.Logger) (*Registry, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentCommand)
	}

	bound := make(map[string]HandlerFunc, len(allowed))
	for _, name := range allowed {
		handler, ok := handlers[name]
		if !ok || handler == nil {
			return nil, fmt.Errorf("no handler for command %q: %w", name, core.ErrUnknownCommand)
		}
		bound[name] = handler
	}

	return &Registry{handlers: bound, logger: logger}, nil
}

// Dispatch routes a request to its handler and returns the reply. Commands
// outside the allow-list are dropped silently (ok=false, nothing to send);
// infrastructure failures become a generic failure reply and are logged.
func (r *Registry) Dispatch(ctx context.Context, req Request) (reply string, ok bool) {
	handler, found := r.handlers[req.Command]
	if !found {
		r.logger.DebugContext(ctx, "Dropping unrecognized command",
			log.FieldCommand, req.Command,
			log.FieldChatID, req.ChatID)
		return "", false
	}

	reply, err := handler(ctx, req)
	if err != nil {
		r.logger.ErrorContext(ctx, "Command failed",
			log.FieldCommand, req.Command,
			log.FieldChatID, req.ChatID,
			log.FieldError, err)
		return replyFailure, true
	}
	return reply, true
}
