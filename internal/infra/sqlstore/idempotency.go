package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const tryInsertIdempotencyKey = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO NOTHING
`

type TryInsertIdempotencyKeyParams struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Endpoint    string
	RequestHash string
	ExpiresAt   pgtype.Timestamptz
}

// TryInsertIdempotencyKey returns the number of inserted rows; 0 means the key exists.
func (q *Queries) TryInsertIdempotencyKey(ctx context.Context, db DBTX, arg TryInsertIdempotencyKeyParams) (int64, error) {
	result, err := db.Exec(ctx, tryInsertIdempotencyKey, arg.Key, arg.UserID, arg.Endpoint, arg.RequestHash, arg.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getIdempotencyKey = `
SELECT key, user_id, endpoint, request_hash, status, response_body_hash, result_reservation_id, expires_at, created_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2
`

type GetIdempotencyKeyParams struct {
	Key    uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) GetIdempotencyKey(ctx context.Context, db DBTX, arg GetIdempotencyKeyParams) (IdempotencyKey, error) {
	row := db.QueryRow(ctx, getIdempotencyKey, arg.Key, arg.UserID)
	var i IdempotencyKey
	err := row.Scan(
		&i.Key,
		&i.UserID,
		&i.Endpoint,
		&i.RequestHash,
		&i.Status,
		&i.ResponseBodyHash,
		&i.ResultReservationID,
		&i.ExpiresAt,
		&i.CreatedAt,
	)
	return i, err
}

const updateIdempotencyKeyCompleted = `
UPDATE idempotency_keys
SET status = 'completed', response_body_hash = $3, result_reservation_id = $4
WHERE key = $1 AND user_id = $2
`

type UpdateIdempotencyKeyCompletedParams struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	ResponseBodyHash    pgtype.Text
	ResultReservationID pgtype.UUID
}

func (q *Queries) UpdateIdempotencyKeyCompleted(ctx context.Context, db DBTX, arg UpdateIdempotencyKeyCompletedParams) error {
	_, err := db.Exec(ctx, updateIdempotencyKeyCompleted, arg.Key, arg.UserID, arg.ResponseBodyHash, arg.ResultReservationID)
	return err
}

const claimExpiredIdempotencyKey = `
UPDATE idempotency_keys
SET request_hash = $3, status = 'processing', response_body_hash = NULL,
    result_reservation_id = NULL, expires_at = $4
WHERE key = $1 AND user_id = $2 AND expires_at < now()
`

type ClaimExpiredIdempotencyKeyParams struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	RequestHash string
	ExpiresAt   pgtype.Timestamptz
}

func (q *Queries) ClaimExpiredIdempotencyKey(ctx context.Context, db DBTX, arg ClaimExpiredIdempotencyKeyParams) (int64, error) {
	result, err := db.Exec(ctx, claimExpiredIdempotencyKey, arg.Key, arg.UserID, arg.RequestHash, arg.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteExpiredIdempotencyKeys = `DELETE FROM idempotency_keys WHERE expires_at < $1`

func (q *Queries) DeleteExpiredIdempotencyKeys(ctx context.Context, db DBTX, before pgtype.Timestamptz) (int64, error) {
	result, err := db.Exec(ctx, deleteExpiredIdempotencyKeys, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
