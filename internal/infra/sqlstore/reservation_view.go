package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationViewRow struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	UserEmail     string
	UserName      string
	UnitID        uuid.UUID
	UnitNumber    string
	WarehouseID   uuid.UUID
	WarehouseName string
	StartAt       pgtype.Timestamptz
	EndAt         pgtype.Timestamptz
	Status        string
	TotalPrice    pgtype.Numeric
	PaidAmount    pgtype.Numeric
	Note          pgtype.Text
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

const reservationViewSelect = `
SELECT r.id, r.user_id, us.email, us.first_name || ' ' || us.last_name,
       r.unit_id, wu.unit_number, w.id, w.name,
       r.start_at, r.end_at, r.status, r.total_price,
       COALESCE((SELECT SUM(p.amount) FROM payments p
                 WHERE p.reservation_id = r.id AND p.status = 'completed'), 0)::numeric(18,2),
       r.note, r.created_at, r.updated_at
FROM reservations r
JOIN users us ON us.id = r.user_id
JOIN warehouse_units wu ON wu.id = r.unit_id
JOIN warehouses w ON w.id = wu.warehouse_id
`

func scanReservationView(row interface{ Scan(dest ...any) error }) (ReservationViewRow, error) {
	var i ReservationViewRow
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.UserEmail,
		&i.UserName,
		&i.UnitID,
		&i.UnitNumber,
		&i.WarehouseID,
		&i.WarehouseName,
		&i.StartAt,
		&i.EndAt,
		&i.Status,
		&i.TotalPrice,
		&i.PaidAmount,
		&i.Note,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getReservationViewByID = reservationViewSelect + `WHERE r.id = $1`

func (q *Queries) GetReservationViewByID(ctx context.Context, db DBTX, id uuid.UUID) (ReservationViewRow, error) {
	return scanReservationView(db.QueryRow(ctx, getReservationViewByID, id))
}

const listReservationViewsByUserFirstPage = reservationViewSelect + `
WHERE r.user_id = $1
  AND ($2::text IS NULL OR r.status = $2::text)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $3
`

type ListReservationViewsByUserFirstPageParams struct {
	UserID uuid.UUID
	Status pgtype.Text
	Limit  int32
}

func (q *Queries) ListReservationViewsByUserFirstPage(ctx context.Context, db DBTX, arg ListReservationViewsByUserFirstPageParams) ([]ReservationViewRow, error) {
	rows, err := db.Query(ctx, listReservationViewsByUserFirstPage, arg.UserID, arg.Status, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectReservationViews(rows)
}

const listReservationViewsByUserKeyset = reservationViewSelect + `
WHERE r.user_id = $1
  AND ($2::text IS NULL OR r.status = $2::text)
  AND (r.created_at, r.id) < ($3, $4)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $5
`

type ListReservationViewsByUserKeysetParams struct {
	UserID    uuid.UUID
	Status    pgtype.Text
	CreatedAt pgtype.Timestamptz
	ID        uuid.UUID
	Limit     int32
}

func (q *Queries) ListReservationViewsByUserKeyset(ctx context.Context, db DBTX, arg ListReservationViewsByUserKeysetParams) ([]ReservationViewRow, error) {
	rows, err := db.Query(ctx, listReservationViewsByUserKeyset, arg.UserID, arg.Status, arg.CreatedAt, arg.ID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectReservationViews(rows)
}

func collectReservationViews(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}) ([]ReservationViewRow, error) {
	defer rows.Close()
	var items []ReservationViewRow
	for rows.Next() {
		i, err := scanReservationView(rows)
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
