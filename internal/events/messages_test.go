package events

import (
	"context"
	"testing"
	"time"
)

func TestLedgerEventRoundTrip(t *testing.T) {
	event := NewLedgerEvent(ActionCreated, 42, 7, "income", 10000)
	if event.Timestamp.IsZero() {
		t.Fatal("timestamp should be stamped")
	}

	body, err := event.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := LedgerEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Action != ActionCreated || got.ChatID != 42 || got.TransactionID != 7 ||
		got.Kind != "income" || got.AmountCents != 10000 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLedgerEventFromJSONInvalid(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestNilPublisherIsNoop(t *testing.T) {
	var p *Publisher
	if err := p.Publish(context.Background(), NewLedgerEvent(ActionDeleted, 1, 2, "expense", 300)); err != nil {
		t.Fatalf("nil publisher should be a no-op, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("nil publisher close should be a no-op, got %v", err)
	}
}

func TestNewLedgerEventTimestampMonotonic(t *testing.T) {
	before := time.Now()
	event := NewLedgerEvent(ActionUpdated, 1, 1, "income", 1)
	if event.Timestamp.Before(before.Add(-time.Second)) {
		t.Fatalf("timestamp too old: %v", event.Timestamp)
	}
}
