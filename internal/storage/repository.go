// Package storage defines the ledger repository contract and its SQLite
// implementation. Alternative backends live in subpackages (postgres,
// memory) and must satisfy the same contract, including chat scoping:
// a transaction owned by another chat is never visible.
package storage

import (
	"context"
	"time"

	"github.com/vinogum/telegram-bot/internal/core"
)

// Repository is the persistence boundary of the ledger.
//
// All lookups that take a chat ID are scoped to that chat; FindByID,
// DeleteByID and UpdateTransaction return core.ErrNotFound for IDs owned by
// a different chat. Sum methods return 0 cents when no rows match.
type Repository interface {
	// GetOrCreateChat returns the chat row for chatID, creating it on first
	// contact. The username is stored at creation and not refreshed after.
	GetOrCreateChat(ctx context.Context, chatID int64, username string) (core.Chat, error)

	// CreateTransaction inserts a row and returns it with ID and CreatedAt
	// assigned by the store.
	CreateTransaction(ctx context.Context, chatID int64, amount core.Money, kind core.Kind, note string) (core.Transaction, error)

	// SumByKind returns the total cents of all transactions of one kind.
	SumByKind(ctx context.Context, chatID int64, kind core.Kind) (int64, error)

	// Balance returns income minus expense in cents; may be negative.
	Balance(ctx context.Context, chatID int64) (int64, error)

	// FindByID returns the transaction or core.ErrNotFound.
	FindByID(ctx context.Context, chatID, id int64) (core.Transaction, error)

	// DeleteByID removes the transaction or returns core.ErrNotFound.
	DeleteByID(ctx context.Context, chatID, id int64) error

	// UpdateTransaction applies the non-nil patch fields and returns the
	// updated row. ID and CreatedAt never change.
	UpdateTransaction(ctx context.Context, chatID, id int64, patch core.TransactionPatch) (core.Transaction, error)

	// FindByChatAndRange returns transactions with start <= created_at <= end
	// in creation order.
	FindByChatAndRange(ctx context.Context, chatID int64, start, end time.Time) ([]core.Transaction, error)

	Close() error
}
