package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createOutboxEvent = `
INSERT INTO outbox_events (aggregate_id, topic, event_type, payload, status, run_at)
VALUES ($1, $2, $3, $4, 'queued', $5)
`

type CreateOutboxEventParams struct {
	AggregateID uuid.UUID
	Topic       string
	EventType   string
	Payload     []byte
	RunAt       pgtype.Timestamptz
}

func (q *Queries) CreateOutboxEvent(ctx context.Context, db DBTX, arg CreateOutboxEventParams) error {
	_, err := db.Exec(ctx, createOutboxEvent, arg.AggregateID, arg.Topic, arg.EventType, arg.Payload, arg.RunAt)
	return err
}

// Rows stay locked until the claiming transaction ends, so parallel relays skip them.
const claimQueuedOutboxEvents = `
SELECT id, aggregate_id, topic, event_type, payload, status, attempts, last_error, run_at, created_at, sent_at
FROM outbox_events
WHERE status = 'queued' AND run_at <= $1
ORDER BY created_at, id
LIMIT $2
FOR UPDATE SKIP LOCKED
`

type ClaimQueuedOutboxEventsParams struct {
	Now   pgtype.Timestamptz
	Limit int32
}

func (q *Queries) ClaimQueuedOutboxEvents(ctx context.Context, db DBTX, arg ClaimQueuedOutboxEventsParams) ([]OutboxEvent, error) {
	rows, err := db.Query(ctx, claimQueuedOutboxEvents, arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OutboxEvent
	for rows.Next() {
		var i OutboxEvent
		if err := rows.Scan(
			&i.ID,
			&i.AggregateID,
			&i.Topic,
			&i.EventType,
			&i.Payload,
			&i.Status,
			&i.Attempts,
			&i.LastError,
			&i.RunAt,
			&i.CreatedAt,
			&i.SentAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markOutboxEventSent = `
UPDATE outbox_events SET status = 'sent', attempts = attempts + 1, sent_at = $2, last_error = NULL
WHERE id = $1
`

type MarkOutboxEventSentParams struct {
	ID     uuid.UUID
	SentAt pgtype.Timestamptz
}

func (q *Queries) MarkOutboxEventSent(ctx context.Context, db DBTX, arg MarkOutboxEventSentParams) error {
	_, err := db.Exec(ctx, markOutboxEventSent, arg.ID, arg.SentAt)
	return err
}

const markOutboxEventRetry = `
UPDATE outbox_events
SET attempts = attempts + 1,
    last_error = $2,
    run_at = $3,
    status = CASE WHEN attempts + 1 >= $4 THEN 'failed' ELSE 'queued' END
WHERE id = $1
`

type MarkOutboxEventRetryParams struct {
	ID          uuid.UUID
	LastError   pgtype.Text
	RunAt       pgtype.Timestamptz
	MaxAttempts int32
}

func (q *Queries) MarkOutboxEventRetry(ctx context.Context, db DBTX, arg MarkOutboxEventRetryParams) error {
	_, err := db.Exec(ctx, markOutboxEventRetry, arg.ID, arg.LastError, arg.RunAt, arg.MaxAttempts)
	return err
}
