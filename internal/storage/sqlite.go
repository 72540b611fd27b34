package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vinogum/telegram-bot/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements Repository on an embedded SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) GetOrCreateChat(ctx context.Context, chatID int64, username string) (core.Chat, error) {
	var chat core.Chat
	err := r.db.QueryRowContext(ctx,
		"SELECT chat_id, username FROM chats WHERE chat_id = ?", chatID,
	).Scan(&chat.ChatID, &chat.Username)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return core.Chat{}, fmt.Errorf("select chat: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO chats (chat_id, username) VALUES (?, ?)", chatID, username,
	); err != nil {
		return core.Chat{}, fmt.Errorf("insert chat: %w", err)
	}

	slog.InfoContext(ctx, "Chat registered", "chat_id", chatID, "username", username)
	return core.Chat{ChatID: chatID, Username: username}, nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, chatID int64, amount core.Money, kind core.Kind, note string) (core.Transaction, error) {
	createdAt := time.Now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (chat_id, amount_cents, kind, note, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		chatID, amount.Cents, string(kind), note, createdAt,
	)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"chat_id", chatID,
		"kind", string(kind),
		"amount_cents", amount.Cents)

	return core.Transaction{
		ID:        id,
		ChatID:    chatID,
		Amount:    amount,
		Kind:      kind,
		Note:      note,
		CreatedAt: createdAt,
	}, nil
}

func (r *SQLiteRepository) SumByKind(ctx context.Context, chatID int64, kind core.Kind) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM transactions
		 WHERE chat_id = ? AND kind = ?`,
		chatID, string(kind),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum by kind: %w", err)
	}
	return total, nil
}

func (r *SQLiteRepository) Balance(ctx context.Context, chatID int64) (int64, error) {
	income, err := r.SumByKind(ctx, chatID, core.Income)
	if err != nil {
		return 0, err
	}
	expense, err := r.SumByKind(ctx, chatID, core.Expense)
	if err != nil {
		return 0, err
	}
	return income - expense, nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, chatID, id int64) (core.Transaction, error) {
	var (
		tx   core.Transaction
		kind string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, chat_id, amount_cents, kind, note, created_at
		 FROM transactions WHERE id = ? AND chat_id = ?`,
		id, chatID,
	).Scan(&tx.ID, &tx.ChatID, &tx.Amount.Cents, &kind, &tx.Note, &tx.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("select transaction: %w", err)
	}
	tx.Kind = core.Kind(kind)
	return tx, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, chatID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND chat_id = ?", id, chatID,
	)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id, "chat_id", chatID)
	return nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, chatID, id int64, patch core.TransactionPatch) (core.Transaction, error) {
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
		sets = append(sets, "amount_cents = ?")
		args = append(args, patch.Amount.Cents)
	}
	if patch.Kind != nil {
		sets = append(sets, "kind = ?")
		args = append(args, string(*patch.Kind))
	}
	if patch.Note != nil {
		sets = append(sets, "note = ?")
		args = append(args, *patch.Note)
	}
	args = append(args, id, chatID)

	query := "UPDATE transactions SET " + strings.Join(sets, ", ") +
		" WHERE id = ? AND chat_id = ?"
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.Transaction{}, core.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction updated", "id", id, "chat_id", chatID)
	return r.FindByID(ctx, chatID, id)
}

func (r *SQLiteRepository) FindByChatAndRange(ctx context.Context, chatID int64, start, end time.Time) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, chat_id, amount_cents, kind, note, created_at
		 FROM transactions
		 WHERE chat_id = ? AND created_at >= ? AND created_at <= ?
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
