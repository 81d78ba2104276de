package shared

import (
	"context"
	"time"

	"warehouse-booking/internal/domain/payment"
	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/infra/sqlstore"

	"github.com/google/uuid"
)

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow.go -package=sharedmock

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: Serializable transaction for check-then-write admission paths
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlstore.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlstore.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Payments() PaymentRepository
	Idempotency() IdempotencyRepository
	Outbox() OutboxRepository
	Reads() CommandReads
	DB() sqlstore.DBTX
}

type CommandReads interface {
	UnitByID(ctx context.Context, id uuid.UUID) (*UnitSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	// ReservationByIDForUpdate locks the row until the transaction ends.
	ReservationByIDForUpdate(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	HasOverlap(ctx context.Context, unitID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	PaymentByID(ctx context.Context, id uuid.UUID) (*PaymentSnapshot, error)
	PaymentTotals(ctx context.Context, reservationID uuid.UUID) (*PaymentTotals, error)
	DueActiveReservations(ctx context.Context, now time.Time, limit int32) ([]*ReservationSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, tx sqlstore.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	Update(ctx context.Context, tx sqlstore.DBTX, res *reservation.Reservation) error
}

type PaymentRepository interface {
	Create(ctx context.Context, tx sqlstore.DBTX, p *payment.Payment) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx sqlstore.DBTX, p *payment.Payment) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx sqlstore.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx sqlstore.DBTX, key, userID uuid.UUID, resultHash string, reservationID uuid.UUID) error
	ClaimExpiredIdempotencyKey(ctx context.Context, tx sqlstore.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, tx sqlstore.DBTX, msg OutboxMessage) error
}
