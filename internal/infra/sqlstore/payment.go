package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const paymentColumns = `id, reservation_id, amount, status, method, transaction_id, note, paid_at, created_at, updated_at`

func scanPayment(row interface{ Scan(dest ...any) error }) (Payment, error) {
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.ReservationID,
		&i.Amount,
		&i.Status,
		&i.Method,
		&i.TransactionID,
		&i.Note,
		&i.PaidAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createPayment = `
INSERT INTO payments (id, reservation_id, amount, status, method, transaction_id, note, paid_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id
`

type CreatePaymentParams struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Amount        pgtype.Numeric
	Status        string
	Method        string
	TransactionID pgtype.Text
	Note          pgtype.Text
	PaidAt        pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func (q *Queries) CreatePayment(ctx context.Context, db DBTX, arg CreatePaymentParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createPayment,
		arg.ID,
		arg.ReservationID,
		arg.Amount,
		arg.Status,
		arg.Method,
		arg.TransactionID,
		arg.Note,
		arg.PaidAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

// a completed payment is never rewritten; concurrent completions see 0 rows
const updatePaymentStatus = `
UPDATE payments SET status = $2, paid_at = $3, updated_at = $4
WHERE id = $1 AND status <> 'completed'
`

type UpdatePaymentStatusParams struct {
	ID        uuid.UUID
	Status    string
	PaidAt    pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) UpdatePaymentStatus(ctx context.Context, db DBTX, arg UpdatePaymentStatusParams) (int64, error) {
	result, err := db.Exec(ctx, updatePaymentStatus, arg.ID, arg.Status, arg.PaidAt, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getPaymentByID = `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

func (q *Queries) GetPaymentByID(ctx context.Context, db DBTX, id uuid.UUID) (Payment, error) {
	return scanPayment(db.QueryRow(ctx, getPaymentByID, id))
}

const listPaymentsByReservation = `
SELECT ` + paymentColumns + `
FROM payments
WHERE reservation_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListPaymentsByReservation(ctx context.Context, db DBTX, reservationID uuid.UUID) ([]Payment, error) {
	rows, err := db.Query(ctx, listPaymentsByReservation, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Payment
	for rows.Next() {
		i, err := scanPayment(rows)
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

const sumPaymentsByReservation = `
SELECT
    COALESCE(SUM(amount) FILTER (WHERE status IN ('pending', 'processing', 'completed')), 0)::numeric(18,2),
    COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0)::numeric(18,2)
FROM payments
WHERE reservation_id = $1
`

type SumPaymentsByReservationRow struct {
	Counted   pgtype.Numeric
	Completed pgtype.Numeric
}

func (q *Queries) SumPaymentsByReservation(ctx context.Context, db DBTX, reservationID uuid.UUID) (SumPaymentsByReservationRow, error) {
	row := db.QueryRow(ctx, sumPaymentsByReservation, reservationID)
	var i SumPaymentsByReservationRow
	err := row.Scan(&i.Counted, &i.Completed)
	return i, err
}
