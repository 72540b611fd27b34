// Package backend assembles the storage repository and the optional events
// publisher from configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/vinogum/telegram-bot/internal/config"
	"github.com/vinogum/telegram-bot/internal/events"
	"github.com/vinogum/telegram-bot/internal/log"
	"github.com/vinogum/telegram-bot/internal/storage"
	"github.com/vinogum/telegram-bot/internal/storage/memory"
	"github.com/vinogum/telegram-bot/internal/storage/postgres"
)

// Result holds everything the bot needs from the storage side. Publisher is
// nil when AMQP is not configured; callers treat nil as a no-op.
type Result struct {
	Repository storage.Repository
	Publisher  *events.Publisher
}

// Close releases the repository and the publisher, keeping the first error.
func (r *Result) Close() error {
	var first error
	if r.Publisher != nil {
		if err := r.Publisher.Close(); err != nil {
			first = err
		}
	}
	if r.Repository != nil {
		if err := r.Repository.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Build selects the repository for cfg.DataBackend and attaches the events
// publisher when an AMQP URL is configured. A broker that is down does not
// stop the bot; publishing is an optional side channel.
func Build(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentStorage)
	}

	var (
		repo storage.Repository
		err  error
	)
	switch cfg.DataBackend {
	case config.BackendSQLite:
		repo, err = storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite repository: %w", err)
		}
	case config.BackendPostgres:
		repo, err = postgres.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres repository: %w", err)
		}
	case config.BackendMemory:
		repo = memory.New()
	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}

	logger.Info("Storage backend ready", log.FieldBackend, cfg.DataBackend)

	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Events publisher unavailable, continuing without it",
				log.FieldError, err)
			publisher = nil
		} else {
			logger.Info("Events publisher ready",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	return &Result{Repository: repo, Publisher: publisher}, nil
}
