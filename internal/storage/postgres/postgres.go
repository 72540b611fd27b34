// Package postgres implements the storage.Repository contract on a
// PostgreSQL connection pool. Selected with DATA_BACKEND=postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vinogum/telegram-bot/internal/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS chats (
    chat_id  BIGINT PRIMARY KEY,
    username TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS transactions (
    id           BIGSERIAL PRIMARY KEY,
    chat_id      BIGINT NOT NULL REFERENCES chats (chat_id) ON DELETE CASCADE,
    amount_cents BIGINT NOT NULL CHECK (amount_cents > 0),
    kind         TEXT   NOT NULL CHECK (kind IN ('income', 'expense')),
    note         TEXT   NOT NULL DEFAULT '',
    created_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_chat_kind
    ON transactions (chat_id, kind);
CREATE INDEX IF NOT EXISTS idx_transactions_chat_created
    ON transactions (chat_id, created_at);
`

// Repository implements storage.Repository over pgxpool.
type Repository struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	config.MaxConns = 10
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) GetOrCreateChat(ctx context.Context, chatID int64, username string) (core.Chat, error) {
	var chat core.Chat
	err := r.pool.QueryRow(ctx,
		"SELECT chat_id, username FROM chats WHERE chat_id = $1", chatID,
	).Scan(&chat.ChatID, &chat.Username)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return core.Chat{}, fmt.Errorf("select chat: %w", err)
	}

	if _, err := r.pool.Exec(ctx,
		"INSERT INTO chats (chat_id, username) VALUES ($1, $2) ON CONFLICT (chat_id) DO NOTHING",
		chatID, username,
	); err != nil {
		return core.Chat{}, fmt.Errorf("insert chat: %w", err)
	}

	slog.InfoContext(ctx, "Chat registered", "chat_id", chatID, "username", username)
	return core.Chat{ChatID: chatID, Username: username}, nil
}

func (r *Repository) CreateTransaction(ctx context.Context, chatID int64, amount core.Money, kind core.Kind, note string) (core.Transaction, error) {
	tx := core.Transaction{
		ChatID: chatID,
		Amount: amount,
		Kind:   kind,
		Note:   note,
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO transactions (chat_id, amount_cents, kind, note, created_at)
		 VALUES ($1, $2, $3, $4, now())
		 RETURNING id, created_at`,
		chatID, amount.Cents, string(kind), note,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"chat_id", chatID,
		"kind", string(kind),
		"amount_cents", amount.Cents)

	return tx, nil
}

func (r *Repository) SumByKind(ctx context.Context, chatID int64, kind core.Kind) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM transactions
		 WHERE chat_id = $1 AND kind = $2`,
		chatID, string(kind),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum by kind: %w", err)
	}
	return total, nil
}

func (r *Repository) Balance(ctx context.Context, chatID int64) (int64, error) {
	var balance int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(CASE WHEN kind = 'income' THEN amount_cents ELSE -amount_cents END), 0)
		 FROM transactions WHERE chat_id = $1`,
		chatID,
	).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("sum balance: %w", err)
	}
	return balance, nil
}

func (r *Repository) FindByID(ctx context.Context, chatID, id int64) (core.Transaction, error) {
	var (
		tx   core.Transaction
		kind string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, chat_id, amount_cents, kind, note, created_at
		 FROM transactions WHERE id = $1 AND chat_id = $2`,
		id, chatID,
	).Scan(&tx.ID, &tx.ChatID, &tx.Amount.Cents, &kind, &tx.Note, &tx.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("select transaction: %w", err)
	}
	tx.Kind = core.Kind(kind)
	return tx, nil
}

func (r *Repository) DeleteByID(ctx context.Context, chatID, id int64) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM transactions WHERE id = $1 AND chat_id = $2", id, chatID,
	)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id, "chat_id", chatID)
	return nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, chatID, id int64, patch core.TransactionPatch) (core.Transaction, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, chatID, id)
	}
	if err := patch.Validate(); err != nil {
		return core.Transaction{}, err
	}

	var (
		sets []string
		args []any
	)
	if patch.Amount != nil {
		args = append(args, patch.Amount.Cents)
		sets = append(sets, fmt.Sprintf("amount_cents = $%d", len(args)))
	}
	if patch.Kind != nil {
		args = append(args, string(*patch.Kind))
		sets = append(sets, fmt.Sprintf("kind = $%d", len(args)))
	}
	if patch.Note != nil {
		args = append(args, *patch.Note)
		sets = append(sets, fmt.Sprintf("note = $%d", len(args)))
	}
	args = append(args, id, chatID)

	query := fmt.Sprintf(
		`UPDATE transactions SET %s WHERE id = $%d AND chat_id = $%d
		 RETURNING id, chat_id, amount_cents, kind, note, created_at`,
		strings.Join(sets, ", "), len(args)-1, len(args),
	)

	var (
		tx   core.Transaction
		kind string
	)
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&tx.ID, &tx.ChatID, &tx.Amount.Cents, &kind, &tx.Note, &tx.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	tx.Kind = core.Kind(kind)

	slog.InfoContext(ctx, "Transaction updated", "id", id, "chat_id", chatID)
	return tx, nil
}

func (r *Repository) FindByChatAndRange(ctx context.Context, chatID int64, start, end time.Time) ([]core.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, chat_id, amount_cents, kind, note, created_at
		 FROM transactions
		 WHERE chat_id = $1 AND created_at >= $2 AND created_at <= $3
		 ORDER BY id`,
		chatID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("select transactions by range: %w", err)
	}
	defer rows.Close()

	var result []core.Transaction
	for rows.Next() {
		var (
			tx   core.Transaction
			kind string
		)
		if err := rows.Scan(&tx.ID, &tx.ChatID, &tx.Amount.Cents, &kind, &tx.Note, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Kind = core.Kind(kind)
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return result, nil
}
