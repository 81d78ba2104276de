package readstore

import (
	"context"

	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/clock"
	"warehouse-booking/internal/pkg/pgconv"
	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=idempotency.go -destination=../../../tests/mock/readstore/idempotency.go -package=readstoremock

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db sqlstore.DBTX, arg sqlstore.GetIdempotencyKeyParams) (sqlstore.IdempotencyKey, error)
}

type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
	clock   clock.Clock
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries, clk clock.Clock) *IdempotencyReadStore {
	return &IdempotencyReadStore{
		queries: queries,
		clock:   clk,
	}
}

// Get treats an expired key as missing.
func (r *IdempotencyReadStore) Get(ctx context.Context, tx sqlstore.DBTX, key uuid.UUID, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	params := sqlstore.GetIdempotencyKeyParams{
		Key:    key,
		UserID: userID,
	}

	row, err := r.queries.GetIdempotencyKey(ctx, tx, params)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	record := &shared.IdempotencyRecord{
		Key:                 row.Key,
		UserID:              row.UserID,
		Status:              row.Status,
		RequestHash:         row.RequestHash,
		ResultReservationID: pgconv.UUIDPtrFromPgtype(row.ResultReservationID),
		ExpiresAt:           pgconv.TimeFromPgtype(row.ExpiresAt),
	}

	if r.clock.Now().After(record.ExpiresAt) {
		return nil, infra.WrapRepoErr("idempotency key expired", nil, infra.KindNotFound)
	}

	return record, nil
}
