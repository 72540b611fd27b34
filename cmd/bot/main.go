package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/vinogum/telegram-bot/internal/backend"
	"github.com/vinogum/telegram-bot/internal/command"
	"github.com/vinogum/telegram-bot/internal/config"
	"github.com/vinogum/telegram-bot/internal/log"
	"github.com/vinogum/telegram-bot/internal/telegram"
)

func main() {
	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentBot,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := backend.Build(ctx, cfg, logger.WithComponent(log.ComponentStorage))
	if err != nil {
		logger.Error("Failed to initialize storage backend",
			log.FieldBackend, cfg.DataBackend,
			log.FieldError, err)
		os.Exit(1)
	}
	defer result.Close()

	handlers := command.NewHandlers(result.Repository, result.Publisher,
		logger.WithComponent(log.ComponentCommand))

	// Every allowed command must bind to a handler; a gap here is a
	// deployment error and the bot must not start.
	registry, err := command.NewRegistry(command.AllowedCommands, handlers.Map(),
		logger.WithComponent(log.ComponentCommand))
	if err != nil {
		logger.Error("Command registration failed", log.FieldError, err)
		os.Exit(1)
	}

	bot, err := telegram.New(cfg.BotToken, registry,
		logger.WithComponent(log.ComponentTelegram))
	if err != nil {
		logger.Error("Failed to initialize bot", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Bot starting",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.DataBackend)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Bot stopped gracefully", log.FieldOperation, log.OpShutdown)
}
