package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"flowcash/internal/amqp"
	"flowcash/internal/core"
	"flowcash/internal/ledger/memory"
)

type capturingPublisher struct {
	msgs []*amqp.TransactionMessage
	err  error
}

func (p *capturingPublisher) Publish(_ context.Context, msg *amqp.TransactionMessage) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

func validTx() core.Transaction {
	return core.Transaction{
		Description: "Hospedagem",
		Amount:      core.Money{Cents: 12900},
		Type:        core.Expense,
		Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateAssignsIDAndPublishes(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewTransactionService(memory.New(), pub)
	ctx := context.Background()

	saved, err := svc.Create(ctx, "user-1", validTx())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if saved.ID == "" {
		t.Error("expected generated transaction ID")
	}

	if len(pub.msgs) != 1 {
		t.Fatalf("expected 1 published message, got %d", len(pub.msgs))
	}
	msg := pub.msgs[0]
	if msg.Op != amqp.OpUpsert || msg.UserID != "user-1" {
		t.Errorf("unexpected envelope: %+v", msg)
	}
	if msg.Transaction.ID != saved.ID {
		t.Errorf("payload id = %q, want %q", msg.Transaction.ID, saved.ID)
	}

	got, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 stored transaction, got %d", len(got))
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewTransactionService(memory.New(), pub)

	tx := validTx()
	tx.Amount = core.Money{Cents: 0}
	if _, err := svc.Create(context.Background(), "user-1", tx); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("Create() error = %v, want ErrInvalidAmount", err)
	}
	if len(pub.msgs) != 0 {
		t.Error("invalid transaction must not publish")
	}
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("broker down")}
	svc := NewTransactionService(memory.New(), pub)
	ctx := context.Background()

	saved, err := svc.Create(ctx, "user-1", validTx())
	if err != nil {
		t.Fatalf("Create() error = %v, want nil despite publish failure", err)
	}

	// Local write is authoritative; the mirror catches up later.
	got, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != saved.ID {
		t.Errorf("expected locally saved transaction, got %+v", got)
	}
}

func TestCreateWithoutPublisher(t *testing.T) {
	svc := NewTransactionService(memory.New(), nil)

	if _, err := svc.Create(context.Background(), "user-1", validTx()); err != nil {
		t.Fatalf("Create() without publisher error = %v", err)
	}
}

func TestDeletePublishesDelete(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewTransactionService(memory.New(), pub)
	ctx := context.Background()

	saved, err := svc.Create(ctx, "user-1", validTx())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, "user-1", saved.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	last := pub.msgs[len(pub.msgs)-1]
	if last.Op != amqp.OpDelete || last.TransactionID != saved.ID {
		t.Errorf("unexpected delete message: %+v", last)
	}

	got, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list after delete, got %d", len(got))
	}
}

func TestViewFiltersAndSummarizes(t *testing.T) {
	svc := NewTransactionService(memory.New(), nil)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seed := []core.Transaction{
		{Description: "Salário", Amount: core.Money{Cents: 500000}, Type: core.Income, Date: now.Add(-2 * time.Hour)},
		{Description: "Mercado", Amount: core.Money{Cents: 30000}, Type: core.Expense, Date: now.Add(-1 * time.Hour)},
		{Description: "Antiga", Amount: core.Money{Cents: 99900}, Type: core.Expense, Date: now.AddDate(0, -2, 0)},
	}
	for _, tx := range seed {
		if _, err := svc.Create(ctx, "user-1", tx); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	visible, summary, err := svc.View(ctx, "user-1", core.View{Range: core.RangeToday}, now)
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible transactions, got %d", len(visible))
	}
	// Newest first.
	if visible[0].Description != "Mercado" {
		t.Errorf("first = %q, want Mercado", visible[0].Description)
	}
	if summary.TotalIncome.Cents != 500000 || summary.TotalExpense.Cents != 30000 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.NetBalance.Cents != 470000 {
		t.Errorf("net = %d, want 470000", summary.NetBalance.Cents)
	}
	if !summary.HasData {
		t.Error("expected HasData")
	}
}
