package events

import (
	"encoding/json"
	"time"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// LedgerEvent notifies downstream consumers (exporters, audit) that a
// transaction changed. Amount is in cents; for deletions it is the amount
// the removed row carried.
type LedgerEvent struct {
	Action        string    `json:"action"`
	ChatID        int64     `json:"chat_id"`
	TransactionID int64     `json:"transaction_id"`
	Kind          string    `json:"kind"`
	AmountCents   int64     `json:"amount_cents"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewLedgerEvent stamps the event with the current time.
func NewLedgerEvent(action string, chatID, transactionID int64, kind string, amountCents int64) *LedgerEvent {
	return &LedgerEvent{
		Action:        action,
		ChatID:        chatID,
		TransactionID: transactionID,
		Kind:          kind,
		AmountCents:   amountCents,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON creates an event from JSON bytes
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
