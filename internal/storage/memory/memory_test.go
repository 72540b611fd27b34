package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vinogum/telegram-bot/internal/core"
)

func TestGetOrCreateChat(t *testing.T) {
	s := New()
	ctx := context.Background()

	chat, err := s.GetOrCreateChat(ctx, 42, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chat.ChatID != 42 || chat.Username != "alice" {
		t.Fatalf("unexpected chat: %+v", chat)
	}

	// Second call returns the stored row; username is not refreshed.
	again, err := s.GetOrCreateChat(ctx, 42, "renamed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Username != "alice" {
		t.Fatalf("username should not change, got %q", again.Username)
	}
}

func TestBalance(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateTransaction(ctx, 42, core.Money{Cents: 10000}, core.Income, ""); err != nil {
		t.Fatalf("create income: %v", err)
	}
	balance, err := s.Balance(ctx, 42)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 10000 {
		t.Fatalf("balance = %d, want 10000", balance)
	}

	if _, err := s.CreateTransaction(ctx, 42, core.Money{Cents: 3000}, core.Expense, "coffee"); err != nil {
		t.Fatalf("create expense: %v", err)
	}
	balance, err = s.Balance(ctx, 42)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 7000 {
		t.Fatalf("balance = %d, want 7000", balance)
	}

	// Other chats stay at zero.
	other, err := s.Balance(ctx, 99)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if other != 0 {
		t.Fatalf("other chat balance = %d, want 0", other)
	}
}

func TestChatScoping(t *testing.T) {
	s := New()
	ctx := context.Background()

	tx, err := s.CreateTransaction(ctx, 1, core.Money{Cents: 500}, core.Expense, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.FindByID(ctx, 2, tx.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("cross-chat find should be ErrNotFound, got %v", err)
	}
	if err := s.DeleteByID(ctx, 2, tx.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("cross-chat delete should be ErrNotFound, got %v", err)
	}
	// The row is still there for its owner.
	if _, err := s.FindByID(ctx, 1, tx.ID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
}

func TestUpdateTransaction(t *testing.T) {
	s := New()
	ctx := context.Background()

	tx, err := s.CreateTransaction(ctx, 1, core.Money{Cents: 10000}, core.Income, "salary")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	created := tx.CreatedAt

	amount := core.Money{Cents: 5000}
	kind := core.Expense
	note := "groceries"
	updated, err := s.UpdateTransaction(ctx, 1, tx.ID, core.TransactionPatch{
		Amount: &amount, Kind: &kind, Note: &note,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount.Cents != 5000 || updated.Kind != core.Expense || updated.Note != "groceries" {
		t.Fatalf("unexpected row after update: %+v", updated)
	}
	if updated.ID != tx.ID || !updated.CreatedAt.Equal(created) {
		t.Fatal("id and created_at must be immutable")
	}

	// Note-only patch leaves amount and kind alone.
	note2 := "rent"
	updated, err = s.UpdateTransaction(ctx, 1, tx.ID, core.TransactionPatch{Note: &note2})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount.Cents != 5000 || updated.Kind != core.Expense || updated.Note != "rent" {
		t.Fatalf("partial update touched too much: %+v", updated)
	}
}

func TestFindByChatAndRange(t *testing.T) {
	s := New()
	ctx := context.Background()

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	s.Now = func() time.Time { return now }

	first, _ := s.CreateTransaction(ctx, 1, core.Money{Cents: 100}, core.Income, "")
	s.Now = func() time.Time { return now.Add(time.Hour) }
	second, _ := s.CreateTransaction(ctx, 1, core.Money{Cents: 200}, core.Expense, "")
	s.Now = func() time.Time { return now.Add(48 * time.Hour) }
	if _, err := s.CreateTransaction(ctx, 1, core.Money{Cents: 300}, core.Expense, "out of range"); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.FindByChatAndRange(ctx, 1, now, now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("range query: %v", err)
	}
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("unexpected rows: %+v", got)
	}
}
