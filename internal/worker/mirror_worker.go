package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"flowcash/internal/amqp"
	applog "flowcash/internal/log"
	"flowcash/internal/mirror"

	"github.com/cenkalti/backoff/v4"
)

// MirrorWorker drains the sync queue into the spreadsheet mirror. Each
// message is retried with exponential backoff before it is handed back to
// the broker for requeue.
type MirrorWorker struct {
	client *amqp.Client
	mirror mirror.Mirror

	maxElapsed time.Duration
}

func NewMirrorWorker(client *amqp.Client, m mirror.Mirror) *MirrorWorker {
	return &MirrorWorker{
		client:     client,
		mirror:     m,
		maxElapsed: 2 * time.Minute,
	}
}

// SetRetryWindow overrides how long a single message is retried before it
// is handed back to the broker for requeue.
func (w *MirrorWorker) SetRetryWindow(d time.Duration) {
	if d > 0 {
		w.maxElapsed = d
	}
}

// Run consumes messages until ctx is cancelled.
func (w *MirrorWorker) Run(ctx context.Context) error {
	return w.client.Consume(ctx, func(msg *amqp.TransactionMessage) error {
		return w.handle(ctx, msg)
	})
}

func (w *MirrorWorker) handle(ctx context.Context, msg *amqp.TransactionMessage) error {
	op := func() error {
		switch msg.Op {
		case amqp.OpUpsert:
			return w.mirror.Upsert(ctx, msg.UserID, msg.Transaction.CoreTransaction())
		case amqp.OpDelete:
			return w.mirror.Delete(ctx, msg.UserID, msg.TransactionID)
		default:
			// Unknown ops are permanent failures, no point retrying.
			return backoff.Permanent(fmt.Errorf("unknown op %q", msg.Op))
		}
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = w.maxElapsed

	err := backoff.RetryNotify(op, backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			slog.WarnContext(ctx, "Mirror write failed, retrying",
				applog.FieldError, err,
				applog.FieldUserID, msg.UserID,
				"op", string(msg.Op),
				"retry_in", next.String())
		})
	if err != nil {
		return fmt.Errorf("mirror %s: %w", msg.Op, err)
	}

	slog.InfoContext(ctx, "Mirror write applied",
		applog.FieldUserID, msg.UserID,
		"op", string(msg.Op))

	return nil
}
