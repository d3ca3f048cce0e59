package amqp

import (
	"testing"
	"time"

	"flowcash/internal/core"
)

func TestUpsertMessageRoundTrip(t *testing.T) {
	tx := core.Transaction{
		ID:          "tx-1",
		Description: "Consultoria",
		Amount:      core.Money{Cents: 250000},
		Type:        core.Income,
		Date:        time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	msg := NewUpsertMessage("user-1", tx)
	if err := msg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	decoded, err := TransactionMessageFromJSON(body)
	if err != nil {
		t.Fatalf("TransactionMessageFromJSON() error = %v", err)
	}
	if decoded.Op != OpUpsert || decoded.UserID != "user-1" {
		t.Errorf("envelope mismatch: %+v", decoded)
	}

	got := decoded.Transaction.CoreTransaction()
	if got.ID != tx.ID || got.Amount.Cents != tx.Amount.Cents || got.Type != tx.Type {
		t.Errorf("payload mismatch: got %+v, want %+v", got, tx)
	}
	if !got.Date.Equal(tx.Date) {
		t.Errorf("date = %v, want %v", got.Date, tx.Date)
	}
}

func TestDeleteMessage(t *testing.T) {
	msg := NewDeleteMessage("user-1", "tx-9")
	if err := msg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if msg.Transaction != nil {
		t.Error("delete message must not carry a payload")
	}
}

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name string
		msg  TransactionMessage
	}{
		{"missing user", TransactionMessage{Op: OpDelete, TransactionID: "tx-1"}},
		{"upsert without payload", TransactionMessage{Op: OpUpsert, UserID: "u"}},
		{"delete without id", TransactionMessage{Op: OpDelete, UserID: "u"}},
		{"unknown op", TransactionMessage{Op: "replace", UserID: "u"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.msg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
