package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, user_id, unit_id, start_at, end_at, status, total_price, note, created_at, updated_at`

func scanReservation(row interface{ Scan(dest ...any) error }) (Reservation, error) {
	var i Reservation
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.UnitID,
		&i.StartAt,
		&i.EndAt,
		&i.Status,
		&i.TotalPrice,
		&i.Note,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createReservation = `
INSERT INTO reservations (id, user_id, unit_id, start_at, end_at, status, total_price, note, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id
`

type CreateReservationParams struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	UnitID     uuid.UUID
	StartAt    pgtype.Timestamptz
	EndAt      pgtype.Timestamptz
	Status     string
	TotalPrice pgtype.Numeric
	Note       pgtype.Text
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createReservation,
		arg.ID,
		arg.UserID,
		arg.UnitID,
		arg.StartAt,
		arg.EndAt,
		arg.Status,
		arg.TotalPrice,
		arg.Note,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const updateReservation = `
UPDATE reservations
SET start_at = $2, end_at = $3, status = $4, total_price = $5, note = $6, updated_at = $7
WHERE id = $1
`

type UpdateReservationParams struct {
	ID         uuid.UUID
	StartAt    pgtype.Timestamptz
	EndAt      pgtype.Timestamptz
	Status     string
	TotalPrice pgtype.Numeric
	Note       pgtype.Text
	UpdatedAt  pgtype.Timestamptz
}

func (q *Queries) UpdateReservation(ctx context.Context, db DBTX, arg UpdateReservationParams) (int64, error) {
	result, err := db.Exec(ctx, updateReservation,
		arg.ID,
		arg.StartAt,
		arg.EndAt,
		arg.Status,
		arg.TotalPrice,
		arg.Note,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getReservationByID = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id uuid.UUID) (Reservation, error) {
	return scanReservation(db.QueryRow(ctx, getReservationByID, id))
}

const getReservationByIDForUpdate = getReservationByID + ` FOR UPDATE`

func (q *Queries) GetReservationByIDForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Reservation, error) {
	return scanReservation(db.QueryRow(ctx, getReservationByIDForUpdate, id))
}

// Half-open overlap: existing.start < new.end AND new.start < existing.end.
const existsOverlappingReservation = `
SELECT EXISTS (
    SELECT 1 FROM reservations
    WHERE unit_id = $1
      AND status <> 'cancelled'
      AND start_at < $3
      AND $2 < end_at
      AND ($4::uuid IS NULL OR id <> $4::uuid)
)
`

type ExistsOverlappingReservationParams struct {
	UnitID    uuid.UUID
	StartAt   pgtype.Timestamptz
	EndAt     pgtype.Timestamptz
	ExcludeID pgtype.UUID
}

func (q *Queries) ExistsOverlappingReservation(ctx context.Context, db DBTX, arg ExistsOverlappingReservationParams) (bool, error) {
	row := db.QueryRow(ctx, existsOverlappingReservation, arg.UnitID, arg.StartAt, arg.EndAt, arg.ExcludeID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listDueActiveReservations = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE status = 'active' AND end_at <= $1
ORDER BY end_at, id
LIMIT $2
`

type ListDueActiveReservationsParams struct {
	Now   pgtype.Timestamptz
	Limit int32
}

func (q *Queries) ListDueActiveReservations(ctx context.Context, db DBTX, arg ListDueActiveReservationsParams) ([]Reservation, error) {
	rows, err := db.Query(ctx, listDueActiveReservations, arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Reservation
	for rows.Next() {
		i, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
