package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/readstore"
	"warehouse-booking/internal/infra/repository"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/clock"
	"warehouse-booking/internal/pkg/config"
	"warehouse-booking/internal/pkg/errs"
	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const backoffBase = 100 * time.Millisecond

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool       *pgxpool.Pool
	q          *sqlstore.Queries
	clock      clock.Clock
	maxRetries int
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlstore.Queries, clk clock.Clock, cfg config.BookingConfig) shared.UnitOfWork {
	return &PostgresUoW{
		pool:       pool,
		q:          q,
		clock:      clk,
		maxRetries: cfg.SerializableRetries,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// WithinSerializable runs check-then-write admission. Two transactions that
// read the same calendar and both insert cannot both commit; the loser is
// rerun and then sees the winner's row.
func (u *PostgresUoW) WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlstore.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlstore.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{uow: u, dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; ; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Transient(errs.Mark(err, errTransactionBegin))
		}

		tx := &pgTx{
			dbtx: pgxTx,
			uow:  u,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.WarnContext(ctx, "rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !infra.IsRetryable(err) {
			if errs.Is(err, errTransactionCommit) {
				return errs.Transient(err)
			}
			return err
		}
		if attempt >= u.maxRetries {
			slog.ErrorContext(ctx, "transaction failed after max retries",
				"attempts", attempt+1,
				"error", err.Error())
			return errs.Transient(errs.Mark(err, errMaxRetriesExceeded))
		}

		waitTime := calculateBackoff(attempt, backoffBase)

		slog.WarnContext(ctx, "retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, db sqlstore.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Transient(errs.Mark(err, errTransactionBegin))
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.WarnContext(ctx, "failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked above
	return int64(uval) % n
}

type pgTx struct {
	dbtx sqlstore.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	reservationRepo shared.ReservationRepository
	paymentRepo     shared.PaymentRepository
	idempotencyRepo shared.IdempotencyRepository
	outboxRepo      shared.OutboxRepository
	commandReads    shared.CommandReads
}

func (t *pgTx) DB() sqlstore.DBTX {
	return t.dbtx
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.uow.q, t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Payments() shared.PaymentRepository {
	if t.paymentRepo == nil {
		t.paymentRepo = repository.NewPaymentRepository(t.uow.q, t.dbtx)
	}
	return t.paymentRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.uow.q, t.dbtx)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Outbox() shared.OutboxRepository {
	if t.outboxRepo == nil {
		t.outboxRepo = repository.NewOutboxRepository(t.uow.q, t.dbtx)
	}
	return t.outboxRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{
			uow:  t.uow,
			dbtx: t.dbtx,
		}
	}
	return t.commandReads
}

type commandReads struct {
	uow  *PostgresUoW
	dbtx sqlstore.DBTX

	// Lazy-initialized readstores
	unitStore        *readstore.UnitReadStore
	reservationStore *readstore.ReservationReadStore
	paymentStore     *readstore.PaymentReadStore
	idempotencyStore *readstore.IdempotencyReadStore
}

func (r *commandReads) units() *readstore.UnitReadStore {
	if r.unitStore == nil {
		r.unitStore = readstore.NewUnitReadStore(r.uow.q, r.dbtx)
	}
	return r.unitStore
}

func (r *commandReads) reservations() *readstore.ReservationReadStore {
	if r.reservationStore == nil {
		r.reservationStore = readstore.NewReservationReadStore(r.uow.q, r.dbtx)
	}
	return r.reservationStore
}

func (r *commandReads) payments() *readstore.PaymentReadStore {
	if r.paymentStore == nil {
		r.paymentStore = readstore.NewPaymentReadStore(r.uow.q, r.dbtx)
	}
	return r.paymentStore
}

func (r *commandReads) UnitByID(ctx context.Context, id uuid.UUID) (*shared.UnitSnapshot, error) {
	return r.units().FindSnapshotByID(ctx, id)
}

func (r *commandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	return r.reservations().FindSnapshotByID(ctx, id)
}

func (r *commandReads) ReservationByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	return r.reservations().FindSnapshotByIDForUpdate(ctx, id)
}

func (r *commandReads) HasOverlap(ctx context.Context, unitID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	return r.reservations().HasOverlap(ctx, unitID, start, end, excludeID)
}

func (r *commandReads) DueActiveReservations(ctx context.Context, now time.Time, limit int32) ([]*shared.ReservationSnapshot, error) {
	return r.reservations().FindDueActive(ctx, now, limit)
}

func (r *commandReads) PaymentByID(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	return r.payments().FindSnapshotByID(ctx, id)
}

func (r *commandReads) PaymentTotals(ctx context.Context, reservationID uuid.UUID) (*shared.PaymentTotals, error) {
	return r.payments().Totals(ctx, reservationID)
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	if r.idempotencyStore == nil {
		r.idempotencyStore = readstore.NewIdempotencyReadStore(r.uow.q, r.uow.clock)
	}
	return r.idempotencyStore.Get(ctx, r.dbtx, key, userID)
}
