//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/repository"
	"warehouse-booking/internal/infra/sqlstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdempotencyQueries struct {
	inserted  int64
	claimed   int64
	deleted   int64
	err       error
	lastTry   sqlstore.TryInsertIdempotencyKeyParams
	lastDone  sqlstore.UpdateIdempotencyKeyCompletedParams
	lastClaim sqlstore.ClaimExpiredIdempotencyKeyParams
	db        sqlstore.DBTX
}

func (f *fakeIdempotencyQueries) TryInsertIdempotencyKey(_ context.Context, db sqlstore.DBTX, arg sqlstore.TryInsertIdempotencyKeyParams) (int64, error) {
	f.db, f.lastTry = db, arg
	return f.inserted, f.err
}

func (f *fakeIdempotencyQueries) UpdateIdempotencyKeyCompleted(_ context.Context, db sqlstore.DBTX, arg sqlstore.UpdateIdempotencyKeyCompletedParams) error {
	f.db, f.lastDone = db, arg
	return f.err
}

func (f *fakeIdempotencyQueries) ClaimExpiredIdempotencyKey(_ context.Context, db sqlstore.DBTX, arg sqlstore.ClaimExpiredIdempotencyKeyParams) (int64, error) {
	f.db, f.lastClaim = db, arg
	return f.claimed, f.err
}

func (f *fakeIdempotencyQueries) DeleteExpiredIdempotencyKeys(_ context.Context, db sqlstore.DBTX, _ pgtype.Timestamptz) (int64, error) {
	f.db = db
	return f.deleted, f.err
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	key, userID := uuid.New(), uuid.New()
	expires := time.Date(2025, 2, 2, 12, 0, 0, 0, time.UTC)

	t.Run("success: TryInsert reports a fresh key", func(t *testing.T) {
		q := &fakeIdempotencyQueries{inserted: 1}
		tx := &mockDBTX{}
		repo := repository.NewIdempotencyRepository(q, &mockDBTX{})

		ok, err := repo.TryInsert(ctx, tx, key, userID, "POST /api/reservations", "hash", expires)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Same(t, tx, q.db)
		assert.Equal(t, "POST /api/reservations", q.lastTry.Endpoint)
		assert.True(t, expires.Equal(q.lastTry.ExpiresAt.Time))
	})

	t.Run("success: TryInsert reports an existing key", func(t *testing.T) {
		q := &fakeIdempotencyQueries{inserted: 0}
		repo := repository.NewIdempotencyRepository(q, &mockDBTX{})

		ok, err := repo.TryInsert(ctx, &mockDBTX{}, key, userID, "POST /api/reservations", "hash", expires)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("success: completion stores the reservation id", func(t *testing.T) {
		q := &fakeIdempotencyQueries{}
		repo := repository.NewIdempotencyRepository(q, &mockDBTX{})
		resID := uuid.New()

		require.NoError(t, repo.UpdateStatusCompleted(ctx, &mockDBTX{}, key, userID, "body-hash", resID))

		assert.True(t, q.lastDone.ResultReservationID.Valid)
		assert.Equal(t, [16]byte(resID), q.lastDone.ResultReservationID.Bytes)
		assert.Equal(t, "body-hash", q.lastDone.ResponseBodyHash.String)
	})

	t.Run("success: claim returns the affected count", func(t *testing.T) {
		q := &fakeIdempotencyQueries{claimed: 1}
		repo := repository.NewIdempotencyRepository(q, &mockDBTX{})

		n, err := repo.ClaimExpiredIdempotencyKey(ctx, &mockDBTX{}, key, userID, "hash", expires)

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, "hash", q.lastClaim.RequestHash)
	})

	t.Run("success: DeleteExpired runs on the pool", func(t *testing.T) {
		q := &fakeIdempotencyQueries{deleted: 4}
		pool := &mockDBTX{}
		repo := repository.NewIdempotencyRepository(q, pool)

		n, err := repo.DeleteExpired(ctx, expires)

		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
		assert.Same(t, pool, q.db)
	})

	t.Run("error: failures are DB_FAILURE", func(t *testing.T) {
		q := &fakeIdempotencyQueries{err: errors.New("database connection error")}
		repo := repository.NewIdempotencyRepository(q, &mockDBTX{})

		_, err := repo.TryInsert(ctx, &mockDBTX{}, key, userID, "POST /api/reservations", "hash", expires)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
