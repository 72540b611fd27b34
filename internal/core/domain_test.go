package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestKindSignAndTitle(t *testing.T) {
	if Income.Sign() != "+" || Expense.Sign() != "-" {
		t.Fatalf("sign convention broken: %q %q", Income.Sign(), Expense.Sign())
	}
	if Income.Title() != "Income" || Expense.Title() != "Expense" {
		t.Fatalf("title broken: %q %q", Income.Title(), Expense.Title())
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ChatID:    42,
		Amount:    Money{Cents: 10000},
		Kind:      Income,
		CreatedAt: time.Now(),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		mut  func(tx *Transaction)
	}{
		{"zero chat", func(tx *Transaction) { tx.ChatID = 0 }},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }},
		{"bad kind", func(tx *Transaction) { tx.Kind = "transfer" }},
		{"long note", func(tx *Transaction) { tx.Note = strings.Repeat("x", NoteMaxLen+1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := good
			tc.mut(&tx)
			if err := tx.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTransactionPatchValidate(t *testing.T) {
	amount := Money{Cents: 5000}
	kind := Expense
	note := "groceries"

	full := TransactionPatch{Amount: &amount, Kind: &kind, Note: &note}
	if err := full.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if full.IsEmpty() {
		t.Fatal("patch with fields should not be empty")
	}
	if !(TransactionPatch{}).IsEmpty() {
		t.Fatal("zero patch should be empty")
	}

	bad := Money{Cents: 0}
	if err := (TransactionPatch{Amount: &bad}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	long := strings.Repeat("x", NoteMaxLen+1)
	if err := (TransactionPatch{Note: &long}).Validate(); !errors.Is(err, ErrNoteTooLong) {
		t.Fatalf("expected ErrNoteTooLong, got %v", err)
	}
}
