// Package command implements the chat command engine: argument parsers,
// the allow-list registrar, the per-command handlers and the plain-text
// reply rendering.
package command

import (
	"strings"

	"github.com/vinogum/telegram-bot/internal/core"
)

// AddPayload is the parsed form of an income/expense command. Query is set
// when the command came with no arguments, meaning the caller should report
// the running total for that kind instead of creating a row.
type AddPayload struct {
	Query  bool
	Amount core.Money
	Note   string
}

// DeletePayload is the parsed form of a delete command.
type DeletePayload struct {
	TransactionID int64
}

// UpdatePayload is the parsed form of an update command. The patch holds
// only the fields the user supplied.
type UpdatePayload struct {
	TransactionID int64
	Patch         core.TransactionPatch
}

// ReportPayload is the parsed form of a report command.
type ReportPayload struct {
	Interval core.Interval
}

// ParseAdd parses income/expense arguments: first token is the amount, the
// rest joined with single spaces become the note. No arguments at all is
// query mode, not an error.
func ParseAdd(args []string) (AddPayload, error) {
	if len(args) == 0 {
		return AddPayload{Query: true}, nil
	}
	amount, err := core.ParseAmount(args[0])
	if err != nil {
		return AddPayload{}, err
	}
	return AddPayload{Amount: amount, Note: joinNote(args[1:])}, nil
}

// ParseDelete requires exactly one token: the transaction ID.
func ParseDelete(args []string) (DeletePayload, error) {
	if len(args) != 1 {
		return DeletePayload{}, core.ErrMissingArgs
	}
	id, err := core.ParseID(args[0])
	if err != nil {
		return DeletePayload{}, err
	}
	return DeletePayload{TransactionID: id}, nil
}

// ParseUpdate requires an ID plus at least one more token. When the second
// token starts with "+" or "-" it is a signed amount: the sign selects the
// kind and the magnitude goes through the amount parser; remaining tokens
// become the note. Otherwise everything after the ID is the note and amount
// and kind stay unset.
func ParseUpdate(args []string) (UpdatePayload, error) {
	if len(args) < 2 {
		return UpdatePayload{}, core.ErrMissingArgs
	}
	id, err := core.ParseID(args[0])
	if err != nil {
		return UpdatePayload{}, err
	}

	payload := UpdatePayload{TransactionID: id}

	plus := strings.HasPrefix(args[1], "+")
	minus := strings.HasPrefix(args[1], "-")
	if plus || minus {
		amount, err := core.ParseAmount(args[1][1:])
		if err != nil {
			return UpdatePayload{}, err
		}
		kind := core.Expense
		if plus {
			kind = core.Income
		}
		payload.Patch.Amount = &amount
		payload.Patch.Kind = &kind
		if len(args) >= 3 {
			note := joinNote(args[2:])
			payload.Patch.Note = &note
		}
	} else {
		note := joinNote(args[1:])
		payload.Patch.Note = &note
	}

	return payload, nil
}

// ParseReport requires exactly one token naming a known interval.
func ParseReport(args []string) (ReportPayload, error) {
	if len(args) != 1 {
		return ReportPayload{}, core.ErrMissingArgs
	}
	interval, err := core.ParseInterval(args[0])
	if err != nil {
		return ReportPayload{}, err
	}
	return ReportPayload{Interval: interval}, nil
}

func joinNote(tokens []string) string {
	return strings.Join(tokens, " ")
}
