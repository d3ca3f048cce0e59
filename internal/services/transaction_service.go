package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"flowcash/internal/amqp"
	"flowcash/internal/core"
	"flowcash/internal/ledger"
	applog "flowcash/internal/log"

	"github.com/google/uuid"
)

// SyncPublisher pushes mirror sync messages. *amqp.Client satisfies it; a
// nil publisher disables mirroring.
type SyncPublisher interface {
	Publish(ctx context.Context, msg *amqp.TransactionMessage) error
}

// TransactionService orchestrates writes across the local store and the
// mirror queue. The local store is authoritative: writes land there first
// and the response never waits on the mirror. A failed publish is logged
// and the local write stands.
type TransactionService struct {
	store     ledger.TransactionStore
	publisher SyncPublisher
}

func NewTransactionService(store ledger.TransactionStore, publisher SyncPublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
	}
}

// Create validates and saves a transaction, then queues the mirror upsert.
// A missing ID gets a fresh one; the stored transaction is returned.
func (s *TransactionService) Create(ctx context.Context, userID string, tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.store.SaveTransaction(ctx, userID, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publish(ctx, amqp.NewUpsertMessage(userID, tx)); err != nil {
		fields := applog.NewFields().
			WithUser(userID).
			WithTransaction(tx.ID, string(tx.Type), tx.Amount.Cents).
			WithError(err)
		slog.ErrorContext(ctx, "Failed to publish sync message", fields.ToSlice()...)
	}

	return tx, nil
}

// Delete removes a transaction locally, then queues the mirror delete.
func (s *TransactionService) Delete(ctx context.Context, userID, txID string) error {
	if err := s.store.DeleteTransaction(ctx, userID, txID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := s.publish(ctx, amqp.NewDeleteMessage(userID, txID)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			applog.FieldTxID, txID,
			applog.FieldUserID, userID,
			applog.FieldError, err)
	}

	return nil
}

// List returns every transaction the user has, unfiltered.
func (s *TransactionService) List(ctx context.Context, userID string) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, userID)
}

// View loads the user's transactions and applies the requested window,
// returning the ordered slice and its totals.
func (s *TransactionService) View(ctx context.Context, userID string, v core.View, now time.Time) ([]core.Transaction, core.Summary, error) {
	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, core.Summary{}, fmt.Errorf("list transactions: %w", err)
	}

	visible, summary := core.Display(txs, v, now)
	return visible, summary, nil
}

func (s *TransactionService) publish(ctx context.Context, msg *amqp.TransactionMessage) error {
	if s.publisher == nil {
		return nil
	}
	return s.publisher.Publish(ctx, msg)
}
