package repository

import (
	"context"
	"time"

	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/pgconv"
	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OutboxWriteQueries interface {
	CreateOutboxEvent(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreateOutboxEventParams) error
	ClaimQueuedOutboxEvents(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ClaimQueuedOutboxEventsParams) ([]sqlstore.OutboxEvent, error)
	MarkOutboxEventSent(ctx context.Context, db sqlstore.DBTX, arg sqlstore.MarkOutboxEventSentParams) error
	MarkOutboxEventRetry(ctx context.Context, db sqlstore.DBTX, arg sqlstore.MarkOutboxEventRetryParams) error
}

type OutboxRepository struct {
	queries OutboxWriteQueries
	db      sqlstore.DBTX
}

func NewOutboxRepository(queries OutboxWriteQueries, db sqlstore.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, tx sqlstore.DBTX, msg shared.OutboxMessage) error {
	params := sqlstore.CreateOutboxEventParams{
		AggregateID: msg.AggregateID,
		Topic:       msg.Topic,
		EventType:   msg.EventType,
		Payload:     msg.Payload,
		RunAt:       pgconv.TimeToPgtype(msg.RunAt),
	}

	if err := r.queries.CreateOutboxEvent(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}
	return nil
}

// ClaimBatch locks up to limit due events for the lifetime of tx.
func (r *OutboxRepository) ClaimBatch(ctx context.Context, tx sqlstore.DBTX, now time.Time, limit int32) ([]sqlstore.OutboxEvent, error) {
	events, err := r.queries.ClaimQueuedOutboxEvents(ctx, tx, sqlstore.ClaimQueuedOutboxEventsParams{
		Now:   pgconv.TimeToPgtype(now),
		Limit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim outbox events", err)
	}
	return events, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID, sentAt time.Time) error {
	err := r.queries.MarkOutboxEventSent(ctx, tx, sqlstore.MarkOutboxEventSentParams{
		ID:     id,
		SentAt: pgconv.TimeToPgtype(sentAt),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox event sent", err)
	}
	return nil
}

// MarkRetry records a failed publish. The event is parked as failed once
// maxAttempts is reached.
func (r *OutboxRepository) MarkRetry(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID, lastErr string, runAt time.Time, maxAttempts int32) error {
	err := r.queries.MarkOutboxEventRetry(ctx, tx, sqlstore.MarkOutboxEventRetryParams{
		ID:          id,
		LastError:   pgtype.Text{String: lastErr, Valid: true},
		RunAt:       pgconv.TimeToPgtype(runAt),
		MaxAttempts: maxAttempts,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to reschedule outbox event", err)
	}
	return nil
}
