//go:build unit

package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse-booking/internal/infra/events"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/clock"
	"warehouse-booking/internal/pkg/config"
	eventsmock "warehouse-booking/tests/mock/events"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeTx records how the batch transaction ended. Only Commit and Rollback
// are reached by the relay; everything else panics through the nil embed.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if f.committed {
		return pgx.ErrTxClosed
	}
	f.rolledBack = true
	return nil
}

type relayFixture struct {
	db        *eventsmock.MockTxBeginner
	outbox    *eventsmock.MockOutboxStore
	publisher *eventsmock.MockPublisher
	tx        *fakeTx
	relay     *events.Relay
	now       time.Time
}

func newRelayFixture(t *testing.T) *relayFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &relayFixture{
		db:        eventsmock.NewMockTxBeginner(ctrl),
		outbox:    eventsmock.NewMockOutboxStore(ctrl),
		publisher: eventsmock.NewMockPublisher(ctrl),
		tx:        &fakeTx{},
		now:       time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC),
	}
	cfg := config.EventsConfig{BatchSize: 10, MaxRetries: 5, PollInterval: time.Second}
	f.relay = events.NewRelay(f.db, f.outbox, f.publisher, clock.NewMockClock(f.now), cfg)
	f.db.EXPECT().BeginTx(gomock.Any(), pgx.TxOptions{IsoLevel: pgx.ReadCommitted}).Return(f.tx, nil)
	return f
}

func TestRelay_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("success: published events are marked sent", func(t *testing.T) {
		f := newRelayFixture(t)
		batch := []sqlstore.OutboxEvent{outboxEvent("reservation.created"), outboxEvent("reservation.confirmed")}
		f.outbox.EXPECT().ClaimBatch(gomock.Any(), f.tx, f.now, int32(10)).Return(batch, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), batch).Return([]error{nil, nil})
		f.outbox.EXPECT().MarkSent(gomock.Any(), f.tx, batch[0].ID, f.now).Return(nil)
		f.outbox.EXPECT().MarkSent(gomock.Any(), f.tx, batch[1].ID, f.now).Return(nil)

		res, err := f.relay.RunOnce(ctx)

		require.NoError(t, err)
		assert.Equal(t, events.RelayResult{Sent: 2}, res)
		assert.True(t, f.tx.committed)
	})

	t.Run("success: failed events back off exponentially", func(t *testing.T) {
		f := newRelayFixture(t)
		ok := outboxEvent("reservation.created")
		failing := outboxEvent("reservation.updated")
		failing.Attempts = 3
		batch := []sqlstore.OutboxEvent{ok, failing}
		f.outbox.EXPECT().ClaimBatch(gomock.Any(), f.tx, f.now, int32(10)).Return(batch, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), batch).Return([]error{nil, errors.New("leader not available")})
		f.outbox.EXPECT().MarkSent(gomock.Any(), f.tx, ok.ID, f.now).Return(nil)
		f.outbox.EXPECT().MarkRetry(gomock.Any(), f.tx, failing.ID, "leader not available", f.now.Add(8*time.Second), int32(5)).Return(nil)

		res, err := f.relay.RunOnce(ctx)

		require.NoError(t, err)
		assert.Equal(t, events.RelayResult{Sent: 1, Failed: 1}, res)
		assert.True(t, f.tx.committed)
	})

	t.Run("success: retry delay is capped", func(t *testing.T) {
		f := newRelayFixture(t)
		stale := outboxEvent("reservation.cancelled")
		stale.Attempts = 30
		f.outbox.EXPECT().ClaimBatch(gomock.Any(), f.tx, f.now, int32(10)).Return([]sqlstore.OutboxEvent{stale}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return([]error{errors.New("timeout")})
		f.outbox.EXPECT().MarkRetry(gomock.Any(), f.tx, stale.ID, "timeout", f.now.Add(5*time.Minute), int32(5)).Return(nil)

		_, err := f.relay.RunOnce(ctx)

		require.NoError(t, err)
	})

	t.Run("success: empty outbox publishes nothing", func(t *testing.T) {
		f := newRelayFixture(t)
		f.outbox.EXPECT().ClaimBatch(gomock.Any(), f.tx, f.now, int32(10)).Return(nil, nil)

		res, err := f.relay.RunOnce(ctx)

		require.NoError(t, err)
		assert.Zero(t, res)
	})

	t.Run("error: bookkeeping failure rolls back the batch", func(t *testing.T) {
		f := newRelayFixture(t)
		ev := outboxEvent("reservation.created")
		f.outbox.EXPECT().ClaimBatch(gomock.Any(), f.tx, f.now, int32(10)).Return([]sqlstore.OutboxEvent{ev}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return([]error{nil})
		f.outbox.EXPECT().MarkSent(gomock.Any(), f.tx, ev.ID, f.now).Return(errors.New("connection reset"))

		res, err := f.relay.RunOnce(ctx)

		require.Error(t, err)
		assert.Zero(t, res)
		assert.True(t, f.tx.rolledBack)
		assert.False(t, f.tx.committed)
	})
}
