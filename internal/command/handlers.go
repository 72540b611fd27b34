package command

import (
	"context"
	"errors"
	"time"

	"github.com/vinogum/telegram-bot/internal/core"
	"github.com/vinogum/telegram-bot/internal/events"
	"github.com/vinogum/telegram-bot/internal/log"
	"github.com/vinogum/telegram-bot/internal/storage"
)

// Request is one incoming command invocation as the transport delivers it.
type Request struct {
	ChatID   int64
	Username string
	Command  string
	Args     []string
}

// HandlerFunc runs one command to completion and returns the reply text.
// A returned error is an infrastructure failure (storage, broker); user
// mistakes are answered through the reply text and are not errors.
type HandlerFunc func(ctx context.Context, req Request) (string, error)

// Handlers owns the command implementations. Every handler follows the same
// pipeline: parse the arguments, hit the repository, publish a best-effort
// event, render the reply.
type Handlers struct {
	repo      storage.Repository
	publisher *events.Publisher
	logger    *log.Logger

	// now feeds the interval resolver; tests pin it.
	now func() time.Time
}

func NewHandlers(repo storage.Repository, publisher *events.Publisher, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentCommand)
	}
	return &Handlers{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Map binds every allowed command name to its handler. The registrar
// validates this map against the allow-list at startup.
func (h *Handlers) Map() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"start":   h.Start,
		"help":    h.Help,
		"income":  h.Income,
		"expense": h.Expense,
		"balance": h.Balance,
		"report":  h.Report,
		"delete":  h.Delete,
		"update":  h.Update,
	}
}

func (h *Handlers) Start(ctx context.Context, req Request) (string, error) {
	return StartText, nil
}

func (h *Handlers) Help(ctx context.Context, req Request) (string, error) {
	return HelpText, nil
}

func (h *Handlers) Income(ctx context.Context, req Request) (string, error) {
	return h.addOrTotal(ctx, req, core.Income)
}

func (h *Handlers) Expense(ctx context.Context, req Request) (string, error) {
	return h.addOrTotal(ctx, req, core.Expense)
}

// addOrTotal implements the income/expense command pair: without arguments
// it reports the running total for the kind, with arguments it records a
// new transaction.
func (h *Handlers) addOrTotal(ctx context.Context, req Request, kind core.Kind) (string, error) {
	payload, err := ParseAdd(req.Args)
	if err != nil {
		return replyIncorrectAmount, nil
	}

	if payload.Query {
		total, err := h.repo.SumByKind(ctx, req.ChatID, kind)
		if err != nil {
			return "", err
		}
		return formatTotal(kind, total), nil
	}

	if len(payload.Note) > core.NoteMaxLen {
		return replyNoteTooLong, nil
	}

	if _, err := h.repo.GetOrCreateChat(ctx, req.ChatID, req.Username); err != nil {
		return "", err
	}
	tx, err := h.repo.CreateTransaction(ctx, req.ChatID, payload.Amount, kind, payload.Note)
	if err != nil {
		return "", err
	}

	h.publish(ctx, events.ActionCreated, tx)
	return formatAdded(kind, payload.Amount), nil
}

func (h *Handlers) Balance(ctx context.Context, req Request) (string, error) {
	balance, err := h.repo.Balance(ctx, req.ChatID)
	if err != nil {
		return "", err
	}
	return formatBalance(balance), nil
}

func (h *Handlers) Delete(ctx context.Context, req Request) (string, error) {
	payload, err := ParseDelete(req.Args)
	switch {
	case errors.Is(err, core.ErrMissingArgs):
		return replyDeleteArgs, nil
	case errors.Is(err, core.ErrInvalidID):
		return replyInvalidID, nil
	case err != nil:
		return "", err
	}

	// Fetch first so the event carries what was removed.
	tx, err := h.repo.FindByID(ctx, req.ChatID, payload.TransactionID)
	if errors.Is(err, core.ErrNotFound) {
		return replyNoSuchTransaction, nil
	}
	if err != nil {
		return "", err
	}

	if err := h.repo.DeleteByID(ctx, req.ChatID, payload.TransactionID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return replyNoSuchTransaction, nil
		}
		return "", err
	}

	h.publish(ctx, events.ActionDeleted, tx)
	return formatDeleted(payload.TransactionID), nil
}

func (h *Handlers) Update(ctx context.Context, req Request) (string, error) {
	payload, err := ParseUpdate(req.Args)
	switch {
	case errors.Is(err, core.ErrMissingArgs):
		return replyUpdateArgs, nil
	case errors.Is(err, core.ErrInvalidID):
		return replyInvalidID, nil
	case errors.Is(err, core.ErrInvalidAmount):
		return replyInvalidAmount, nil
	case err != nil:
		return "", err
	}

	tx, err := h.repo.UpdateTransaction(ctx, req.ChatID, payload.TransactionID, payload.Patch)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return replyNotFound, nil
	case errors.Is(err, core.ErrNoteTooLong):
		return replyNoteTooLong, nil
	case err != nil:
		return "", err
	}

	h.publish(ctx, events.ActionUpdated, tx)
	return formatUpdated(payload.TransactionID), nil
}

func (h *Handlers) Report(ctx context.Context, req Request) (string, error) {
	payload, err := ParseReport(req.Args)
	switch {
	case errors.Is(err, core.ErrMissingArgs):
		return replyReportArgs, nil
	case errors.Is(err, core.ErrUnknownInterval):
		return replyInvalidInterval, nil
	case err != nil:
		return "", err
	}

	start, end, err := payload.Interval.Resolve(h.now())
	if err != nil {
		return replyInvalidInterval, nil
	}

	transactions, err := h.repo.FindByChatAndRange(ctx, req.ChatID, start, end)
	if err != nil {
		return "", err
	}
	if len(transactions) == 0 {
		// Empty result is a user-facing condition, not a failure.
		return replyNoTransactions, nil
	}

	return formatReport(transactions), nil
}

// publish emits a ledger event; failures are logged and never surface to
// the chat, the transaction is already committed.
func (h *Handlers) publish(ctx context.Context, action string, tx core.Transaction) {
	event := events.NewLedgerEvent(action, tx.ChatID, tx.ID, string(tx.Kind), tx.Amount.Cents)
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish ledger event",
			log.FieldOperation, action,
			log.FieldTransaction, tx.ID,
			log.FieldChatID, tx.ChatID,
			log.FieldError, err)
	}
}
