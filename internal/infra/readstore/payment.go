package readstore

import (
	"context"

	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/pgconv"
	"warehouse-booking/internal/usecase/queries"
	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/readstore/payment.go -package=readstoremock

type PaymentReadQueries interface {
	GetPaymentByID(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.Payment, error)
	ListPaymentsByReservation(ctx context.Context, db sqlstore.DBTX, reservationID uuid.UUID) ([]sqlstore.Payment, error)
	SumPaymentsByReservation(ctx context.Context, db sqlstore.DBTX, reservationID uuid.UUID) (sqlstore.SumPaymentsByReservationRow, error)
}

type PaymentReadStore struct {
	queries PaymentReadQueries
	db      sqlstore.DBTX
}

func NewPaymentReadStore(queries PaymentReadQueries, db sqlstore.DBTX) *PaymentReadStore {
	return &PaymentReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentReadStore) FindByReservation(ctx context.Context, reservationID uuid.UUID) ([]*queries.PaymentView, error) {
	rows, err := r.queries.ListPaymentsByReservation(ctx, r.db, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments", err)
	}

	result := make([]*queries.PaymentView, 0, len(rows))
	for _, row := range rows {
		amount, err := pgconv.DecimalFromNumeric(row.Amount)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid payment amount", err)
		}
		result = append(result, &queries.PaymentView{
			ID:            row.ID,
			ReservationID: row.ReservationID,
			Amount:        amount,
			Status:        row.Status,
			Method:        row.Method,
			TransactionID: pgconv.StringPtrFromPgtype(row.TransactionID),
			Note:          pgconv.StringPtrFromPgtype(row.Note),
			PaidAt:        pgconv.TimePtrFromPgtype(row.PaidAt),
			CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return result, nil
}

func (r *PaymentReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	row, err := r.queries.GetPaymentByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by ID", err)
	}

	amount, err := pgconv.DecimalFromNumeric(row.Amount)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid payment amount", err)
	}
	return &shared.PaymentSnapshot{
		ID:            row.ID,
		ReservationID: row.ReservationID,
		Amount:        amount,
		Status:        row.Status,
		Method:        row.Method,
		TransactionID: pgconv.StringPtrFromPgtype(row.TransactionID),
		Note:          pgconv.StringPtrFromPgtype(row.Note),
		PaidAt:        pgconv.TimePtrFromPgtype(row.PaidAt),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func (r *PaymentReadStore) Totals(ctx context.Context, reservationID uuid.UUID) (*shared.PaymentTotals, error) {
	row, err := r.queries.SumPaymentsByReservation(ctx, r.db, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to sum payments", err)
	}

	counted, err := pgconv.DecimalFromNumeric(row.Counted)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid payment sum", err)
	}
	completed, err := pgconv.DecimalFromNumeric(row.Completed)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid payment sum", err)
	}
	return &shared.PaymentTotals{Counted: counted, Completed: completed}, nil
}
