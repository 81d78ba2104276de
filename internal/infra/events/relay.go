package events

import (
	"context"
	"log/slog"
	"time"

	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/clock"
	"warehouse-booking/internal/pkg/config"
	"warehouse-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=relay.go -destination=../../../tests/mock/events/relay.go -package=eventsmock

const maxRetryDelay = 5 * time.Minute

type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// OutboxStore is implemented by *repository.OutboxRepository.
type OutboxStore interface {
	ClaimBatch(ctx context.Context, tx sqlstore.DBTX, now time.Time, limit int32) ([]sqlstore.OutboxEvent, error)
	MarkSent(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID, sentAt time.Time) error
	MarkRetry(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID, lastErr string, runAt time.Time, maxAttempts int32) error
}

type Publisher interface {
	Publish(ctx context.Context, events []sqlstore.OutboxEvent) []error
}

type RelayResult struct {
	Sent   int
	Failed int
}

// Relay moves queued outbox rows to the broker. Claimed rows stay locked
// until the batch transaction ends, so several relays can run side by side.
type Relay struct {
	db        TxBeginner
	outbox    OutboxStore
	publisher Publisher
	clock     clock.Clock
	cfg       config.EventsConfig
}

func NewRelay(db TxBeginner, outbox OutboxStore, publisher Publisher, clk clock.Clock, cfg config.EventsConfig) *Relay {
	return &Relay{
		db:        db,
		outbox:    outbox,
		publisher: publisher,
		clock:     clk,
		cfg:       cfg,
	}
}

// Run drains the outbox every PollInterval until ctx is done.
func (r *Relay) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "outbox relay started",
		"poll_interval", r.cfg.PollInterval,
		"batch_size", r.cfg.BatchSize)

	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		r.drain(ctx)

		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "outbox relay stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// drain keeps relaying full batches so a backlog clears without waiting for ticks.
func (r *Relay) drain(ctx context.Context) {
	for ctx.Err() == nil {
		res, err := r.RunOnce(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "outbox relay batch failed", "error", err.Error())
			return
		}
		if res.Sent+res.Failed < int(r.cfg.BatchSize) {
			return
		}
	}
}

// RunOnce relays a single batch.
func (r *Relay) RunOnce(ctx context.Context) (RelayResult, error) {
	var res RelayResult
	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		now := r.clock.Now()
		batch, err := r.outbox.ClaimBatch(ctx, tx, now, r.cfg.BatchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		results := r.publisher.Publish(ctx, batch)
		for i, ev := range batch {
			if results[i] == nil {
				if err := r.outbox.MarkSent(ctx, tx, ev.ID, now); err != nil {
					return err
				}
				res.Sent++
				continue
			}

			res.Failed++
			slog.WarnContext(ctx, "failed to publish outbox event",
				"event_id", ev.ID,
				"event_type", ev.EventType,
				"attempts", ev.Attempts+1,
				"error", results[i].Error())
			runAt := now.Add(retryDelay(ev.Attempts))
			if err := r.outbox.MarkRetry(ctx, tx, ev.ID, results[i].Error(), runAt, r.cfg.MaxRetries); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return RelayResult{}, errs.Wrap(err, "outbox relay batch")
	}
	if res.Sent > 0 || res.Failed > 0 {
		slog.InfoContext(ctx, "outbox batch relayed", "sent", res.Sent, "failed", res.Failed)
	}
	return res, nil
}

// retryDelay doubles from one second per previous attempt, capped.
func retryDelay(attempts int32) time.Duration {
	if attempts > 16 {
		return maxRetryDelay
	}
	d := time.Second << attempts
	if d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}
