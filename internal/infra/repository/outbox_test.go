//go:build unit

package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/repository"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutboxQueries struct {
	err     error
	created []sqlstore.CreateOutboxEventParams
	claim   sqlstore.ClaimQueuedOutboxEventsParams
	events  []sqlstore.OutboxEvent
	sent    []sqlstore.MarkOutboxEventSentParams
	retries []sqlstore.MarkOutboxEventRetryParams
}

func (f *fakeOutboxQueries) CreateOutboxEvent(_ context.Context, _ sqlstore.DBTX, arg sqlstore.CreateOutboxEventParams) error {
	f.created = append(f.created, arg)
	return f.err
}

func (f *fakeOutboxQueries) ClaimQueuedOutboxEvents(_ context.Context, _ sqlstore.DBTX, arg sqlstore.ClaimQueuedOutboxEventsParams) ([]sqlstore.OutboxEvent, error) {
	f.claim = arg
	return f.events, f.err
}

func (f *fakeOutboxQueries) MarkOutboxEventSent(_ context.Context, _ sqlstore.DBTX, arg sqlstore.MarkOutboxEventSentParams) error {
	f.sent = append(f.sent, arg)
	return f.err
}

func (f *fakeOutboxQueries) MarkOutboxEventRetry(_ context.Context, _ sqlstore.DBTX, arg sqlstore.MarkOutboxEventRetryParams) error {
	f.retries = append(f.retries, arg)
	return f.err
}

func TestOutboxRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success: Enqueue keeps the message intact", func(t *testing.T) {
		q := &fakeOutboxQueries{}
		repo := repository.NewOutboxRepository(q, &mockDBTX{})
		msg := shared.OutboxMessage{
			AggregateID: uuid.New(),
			Topic:       "reservations",
			EventType:   "reservation.created",
			Payload:     json.RawMessage(`{"type":"reservation.created"}`),
			RunAt:       now,
		}

		require.NoError(t, repo.Enqueue(ctx, &mockDBTX{}, msg))

		require.Len(t, q.created, 1)
		got := q.created[0]
		assert.Equal(t, msg.AggregateID, got.AggregateID)
		assert.Equal(t, "reservations", got.Topic)
		assert.Equal(t, "reservation.created", got.EventType)
		assert.JSONEq(t, string(msg.Payload), string(got.Payload))
		assert.True(t, now.Equal(got.RunAt.Time))
	})

	t.Run("success: ClaimBatch passes the limit", func(t *testing.T) {
		q := &fakeOutboxQueries{events: []sqlstore.OutboxEvent{{ID: uuid.New()}, {ID: uuid.New()}}}
		repo := repository.NewOutboxRepository(q, &mockDBTX{})

		events, err := repo.ClaimBatch(ctx, &mockDBTX{}, now, 25)

		require.NoError(t, err)
		assert.Len(t, events, 2)
		assert.Equal(t, int32(25), q.claim.Limit)
		assert.True(t, now.Equal(q.claim.Now.Time))
	})

	t.Run("success: MarkRetry records the error and attempt cap", func(t *testing.T) {
		q := &fakeOutboxQueries{}
		repo := repository.NewOutboxRepository(q, &mockDBTX{})
		id := uuid.New()

		require.NoError(t, repo.MarkRetry(ctx, &mockDBTX{}, id, "broker down", now.Add(time.Minute), 5))

		require.Len(t, q.retries, 1)
		assert.Equal(t, id, q.retries[0].ID)
		assert.Equal(t, "broker down", q.retries[0].LastError.String)
		assert.Equal(t, int32(5), q.retries[0].MaxAttempts)
	})

	t.Run("error: failures are DB_FAILURE", func(t *testing.T) {
		q := &fakeOutboxQueries{err: errors.New("database connection error")}
		repo := repository.NewOutboxRepository(q, &mockDBTX{})

		err := repo.MarkSent(ctx, &mockDBTX{}, uuid.New(), now)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
