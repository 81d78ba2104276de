//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/clock"
	"warehouse-booking/internal/pkg/config"
	"warehouse-booking/internal/usecase/commands"
	"warehouse-booking/internal/usecase/queries"
	"warehouse-booking/internal/usecase/shared"
	queriesmock "warehouse-booking/tests/mock/queries"
	sharedmock "warehouse-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

const testTopic = "reservations"

func date(month time.Month, day int) time.Time {
	return time.Date(2025, month, day, 0, 0, 0, 0, time.UTC)
}

// uowFixture wires a mock unit of work whose transactions run the callback
// against a single mock Tx.
type uowFixture struct {
	uow          *sharedmock.MockUnitOfWork
	tx           *sharedmock.MockTx
	reads        *sharedmock.MockCommandReads
	reservations *sharedmock.MockReservationRepository
	payments     *sharedmock.MockPaymentRepository
	idempotency  *sharedmock.MockIdempotencyRepository
	outbox       *sharedmock.MockOutboxRepository
	queries      *queriesmock.MockReservationQueries
	clock        *clock.MockClock
}

func newUowFixture(ctrl *gomock.Controller) *uowFixture {
	f := &uowFixture{
		uow:          sharedmock.NewMockUnitOfWork(ctrl),
		tx:           sharedmock.NewMockTx(ctrl),
		reads:        sharedmock.NewMockCommandReads(ctrl),
		reservations: sharedmock.NewMockReservationRepository(ctrl),
		payments:     sharedmock.NewMockPaymentRepository(ctrl),
		idempotency:  sharedmock.NewMockIdempotencyRepository(ctrl),
		outbox:       sharedmock.NewMockOutboxRepository(ctrl),
		queries:      queriesmock.NewMockReservationQueries(ctrl),
		clock:        clock.NewMockClock(now),
	}

	f.tx.EXPECT().Reads().Return(f.reads).AnyTimes()
	f.tx.EXPECT().Reservations().Return(f.reservations).AnyTimes()
	f.tx.EXPECT().Payments().Return(f.payments).AnyTimes()
	f.tx.EXPECT().Idempotency().Return(f.idempotency).AnyTimes()
	f.tx.EXPECT().Outbox().Return(f.outbox).AnyTimes()
	f.tx.EXPECT().DB().Return(nil).AnyTimes()
	f.uow.EXPECT().CommandReads().Return(f.reads).AnyTimes()
	return f
}

func (f *uowFixture) runTx(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
	return fn(ctx, f.tx)
}

func (f *uowFixture) expectSerializable() {
	f.uow.EXPECT().WithinSerializable(gomock.Any(), gomock.Any()).DoAndReturn(f.runTx)
}

func (f *uowFixture) expectWithin() {
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(f.runTx)
}

// expectEvent records the outbox messages enqueued through the fixture.
func (f *uowFixture) expectEvent(out *[]shared.OutboxMessage) {
	f.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ sqlstore.DBTX, msg shared.OutboxMessage) error {
			*out = append(*out, msg)
			return nil
		}).AnyTimes()
}

func bookingConfig() config.BookingConfig {
	return config.BookingConfig{SerializableRetries: 3, IdempotencyTTL: 24 * time.Hour, RetryAfter: time.Second}
}

func eventsConfig() config.EventsConfig {
	return config.EventsConfig{Topic: testTopic}
}

func monthlyUnit(unitID uuid.UUID) *shared.UnitSnapshot {
	discount := decimal.NewFromInt(10)
	return &shared.UnitSnapshot{
		ID:           unitID,
		WarehouseID:  uuid.New(),
		UnitNumber:   "A-101",
		SquareMeters: decimal.NewFromInt(20),
		IsAvailable:  true,
		IsActive:     true,
		CreatedAt:    now.Add(-24 * time.Hour),
		Pricing: []shared.PricingRuleSnapshot{
			{ID: uuid.New(), Tier: "monthly", Price: decimal.NewFromInt(500), DiscountPercentage: &discount, IsActive: true, CreatedAt: now.Add(-time.Hour)},
		},
	}
}

func reservationSnapshot(userID, unitID uuid.UUID, status reservation.Status) *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:         uuid.New(),
		UserID:     userID,
		UnitID:     unitID,
		StartAt:    date(3, 1),
		EndAt:      date(4, 15),
		Status:     status.String(),
		TotalPrice: decimal.NewFromInt(900),
		CreatedAt:  now.Add(-time.Hour),
		UpdatedAt:  now.Add(-time.Hour),
	}
}

func viewOf(id uuid.UUID) *queries.ReservationView {
	return &queries.ReservationView{ID: id, TotalPrice: decimal.NewFromInt(900)}
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, pgx.ErrNoRows, infra.KindNotFound)
}

func reservationIDOf(t *testing.T, msg shared.OutboxMessage) string {
	t.Helper()
	var ev commands.ReservationEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &ev))
	return ev.ReservationID.String()
}
