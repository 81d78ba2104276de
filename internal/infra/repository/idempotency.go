package repository

import (
	"context"
	"time"

	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db sqlstore.DBTX, arg sqlstore.TryInsertIdempotencyKeyParams) (int64, error)
	UpdateIdempotencyKeyCompleted(ctx context.Context, db sqlstore.DBTX, arg sqlstore.UpdateIdempotencyKeyCompletedParams) error
	ClaimExpiredIdempotencyKey(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ClaimExpiredIdempotencyKeyParams) (int64, error)
	DeleteExpiredIdempotencyKeys(ctx context.Context, db sqlstore.DBTX, before pgtype.Timestamptz) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	db      sqlstore.DBTX
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, db sqlstore.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
	}
}

// TryInsert reports whether this call created the key.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx sqlstore.DBTX, key uuid.UUID, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	params := sqlstore.TryInsertIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
	}

	inserted, err := r.queries.TryInsertIdempotencyKey(ctx, tx, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}

	return inserted > 0, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx sqlstore.DBTX, key uuid.UUID, userID uuid.UUID, responseBodyHash string, resultReservationID uuid.UUID) error {
	params := sqlstore.UpdateIdempotencyKeyCompletedParams{
		Key:                 key,
		UserID:              userID,
		ResponseBodyHash:    pgtype.Text{String: responseBodyHash, Valid: true},
		ResultReservationID: pgconv.UUIDToPgtype(resultReservationID),
	}

	err := r.queries.UpdateIdempotencyKeyCompleted(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}

	return nil
}

func (r *IdempotencyRepository) ClaimExpiredIdempotencyKey(ctx context.Context, tx sqlstore.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error) {
	params := sqlstore.ClaimExpiredIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
	}

	claimed, err := r.queries.ClaimExpiredIdempotencyKey(ctx, tx, params)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return claimed, nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, r.db, pgconv.TimeToPgtype(before))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}

	return count, nil
}
