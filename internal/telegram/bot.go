// Package telegram is the chat transport: it long-polls for updates, hands
// command messages to the dispatcher and sends the plain-text reply back.
// Everything with a contract lives behind it in internal/command.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/vinogum/telegram-bot/internal/command"
	"github.com/vinogum/telegram-bot/internal/log"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	registry *command.Registry
	logger   *log.Logger
}

func New(token string, registry *command.Registry, logger *log.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentTelegram)
	}

	logger.Info("Bot authorized", log.FieldUsername, api.Self.UserName)

	return &Bot{
		api:      api,
		registry: registry,
		logger:   logger,
	}, nil
}

// Run polls for updates until the context is canceled. Updates are handled
// one at a time, so commands within a chat are processed in order.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{"message"}

	updates := b.api.GetUpdatesChan(u)
	b.logger.InfoContext(ctx, "Polling for updates", log.FieldOperation, log.OpStartup)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.InfoContext(ctx, "Polling stopped", log.FieldOperation, log.OpShutdown)
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	// Plain chatter, edits and media are not commands; ignore them.
	if msg == nil || !msg.IsCommand() {
		return
	}

	var username string
	if msg.From != nil {
		username = msg.From.UserName
	}

	req := command.Request{
		ChatID:   msg.Chat.ID,
		Username: username,
		// Command() strips the leading slash and any @botname mention
		// appended in group chats.
		Command: msg.Command(),
		Args:    strings.Fields(msg.CommandArguments()),
	}

	logger := b.logger.With(
		log.FieldTraceID, uuid.NewString(),
		log.FieldChatID, req.ChatID,
		log.FieldCommand, req.Command,
	)

	started := time.Now()
	reply, ok := b.registry.Dispatch(ctx, req)
	if !ok {
		return
	}

	if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
		logger.ErrorContext(ctx, "Failed to send reply", log.FieldError, err)
		return
	}

	logger.InfoContext(ctx, "Command handled",
		log.FieldDuration, time.Since(started).Milliseconds())
}
