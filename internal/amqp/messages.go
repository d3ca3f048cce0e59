package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"flowcash/internal/core"
)

// Op tags what the mirror should do with the carried transaction.
type Op string

const (
	OpUpsert Op = "upsert"
	OpDelete Op = "delete"
)

// TransactionMessage is the wire format for mirror sync. Upserts carry the
// full transaction so the worker never has to read the primary store;
// deletes carry only the ID.
type TransactionMessage struct {
	Op            Op                  `json:"op"`
	UserID        string              `json:"user_id"`
	Transaction   *TransactionPayload `json:"transaction,omitempty"`
	TransactionID string              `json:"transaction_id,omitempty"`
	Timestamp     time.Time           `json:"timestamp"`
}

// TransactionPayload mirrors core.Transaction with explicit JSON tags.
type TransactionPayload struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
}

// NewUpsertMessage builds a sync message for a saved transaction.
func NewUpsertMessage(userID string, tx core.Transaction) *TransactionMessage {
	return &TransactionMessage{
		Op:     OpUpsert,
		UserID: userID,
		Transaction: &TransactionPayload{
			ID:          tx.ID,
			Description: tx.Description,
			AmountCents: tx.Amount.Cents,
			Type:        string(tx.Type),
			Date:        tx.Date,
		},
		Timestamp: time.Now(),
	}
}

// NewDeleteMessage builds a sync message for a removed transaction.
func NewDeleteMessage(userID, txID string) *TransactionMessage {
	return &TransactionMessage{
		Op:            OpDelete,
		UserID:        userID,
		TransactionID: txID,
		Timestamp:     time.Now(),
	}
}

// CoreTransaction converts the payload back to the domain type.
func (p *TransactionPayload) CoreTransaction() core.Transaction {
	return core.Transaction{
		ID:          p.ID,
		Description: p.Description,
		Amount:      core.Money{Cents: p.AmountCents},
		Type:        core.TxType(p.Type),
		Date:        p.Date,
	}
}

// Validate checks the envelope is internally consistent.
func (m *TransactionMessage) Validate() error {
	if m.UserID == "" {
		return fmt.Errorf("message missing user_id")
	}
	switch m.Op {
	case OpUpsert:
		if m.Transaction == nil {
			return fmt.Errorf("upsert message missing transaction")
		}
	case OpDelete:
		if m.TransactionID == "" {
			return fmt.Errorf("delete message missing transaction_id")
		}
	default:
		return fmt.Errorf("unknown op %q", m.Op)
	}
	return nil
}

// ToJSON converts the message to JSON bytes.
func (m *TransactionMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionMessageFromJSON creates a message from JSON bytes.
func TransactionMessageFromJSON(data []byte) (*TransactionMessage, error) {
	var msg TransactionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
