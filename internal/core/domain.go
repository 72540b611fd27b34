package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// NoteMaxLen bounds the free-text note attached to a transaction.
const NoteMaxLen = 255

type (
	// Kind tells whether a transaction adds to or subtracts from the balance.
	Kind string

	// Chat identifies one conversation. Username is display-only and may be
	// empty; ChatID is the primary key.
	Chat struct {
		ChatID   int64
		Username string
	}

	// Transaction is a single money movement. Amount is always positive;
	// the sign is derived from Kind at render time and never stored.
	Transaction struct {
		ID        int64
		ChatID    int64
		Amount    Money
		Kind      Kind
		Note      string
		CreatedAt time.Time
	}

	// TransactionPatch carries the fields an update command may change.
	// Nil fields are left untouched; ID and CreatedAt are immutable.
	TransactionPatch struct {
		Amount *Money
		Kind   *Kind
		Note   *string
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidID       = errors.New("invalid id")
	ErrUnknownInterval = errors.New("unknown interval")
	ErrMissingArgs     = errors.New("missing arguments")
	ErrNotFound        = errors.New("transaction not found")
	ErrNoTransactions  = errors.New("no transactions")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrNoteTooLong     = errors.New("note too long")
)

// Sign returns the rendering prefix for the kind: "+" for income,
// "-" for expense.
func (k Kind) Sign() string {
	if k == Income {
		return "+"
	}
	return "-"
}

// Title returns the kind capitalized for replies ("Income", "Expense").
func (k Kind) Title() string {
	if len(k) == 0 {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (c Chat) Validate() error {
	if c.ChatID <= 0 {
		return errors.New("chat id must be positive")
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.ChatID <= 0 {
		return errors.New("chat id must be positive")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Kind.Valid() {
		return errors.New("invalid transaction kind")
	}
	if len(t.Note) > NoteMaxLen {
		return ErrNoteTooLong
	}
	return nil
}

// IsEmpty reports whether the patch would change nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.Amount == nil && p.Kind == nil && p.Note == nil
}

func (p TransactionPatch) Validate() error {
	if p.Amount != nil {
		if err := p.Amount.Validate(); err != nil {
			return err
		}
	}
	if p.Kind != nil && !p.Kind.Valid() {
		return errors.New("invalid transaction kind")
	}
	if p.Note != nil && len(*p.Note) > NoteMaxLen {
		return ErrNoteTooLong
	}
	return nil
}
