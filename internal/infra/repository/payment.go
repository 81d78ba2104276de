package repository

import (
	"context"

	"warehouse-booking/internal/domain/payment"
	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/repository/converter"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/errs"
	"warehouse-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/repository/payment.go -package=repositorymock

type PaymentWriteQueries interface {
	CreatePayment(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreatePaymentParams) (uuid.UUID, error)
	UpdatePaymentStatus(ctx context.Context, db sqlstore.DBTX, arg sqlstore.UpdatePaymentStatusParams) (int64, error)
}

type PaymentRepository struct {
	queries PaymentWriteQueries
	db      sqlstore.DBTX
}

func NewPaymentRepository(queries PaymentWriteQueries, db sqlstore.DBTX) *PaymentRepository {
	return &PaymentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, tx sqlstore.DBTX, p *payment.Payment) (uuid.UUID, error) {
	id, err := r.queries.CreatePayment(ctx, tx, converter.PaymentToCreateParams(p))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create payment", err)
	}
	return id, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, tx sqlstore.DBTX, p *payment.Payment) error {
	params := sqlstore.UpdatePaymentStatusParams{
		ID:        p.ID(),
		Status:    p.Status().String(),
		PaidAt:    pgconv.TimePtrToPgtype(p.PaidAt()),
		UpdatedAt: pgconv.TimeToPgtype(p.UpdatedAt()),
	}

	affected, err := r.queries.UpdatePaymentStatus(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment status", err)
	}
	// the row was read earlier in the same transaction, so no match means
	// another transaction completed it first
	if affected == 0 {
		return errs.Wrap(payment.ErrAlreadyCompleted, "payment status changed concurrently")
	}
	return nil
}
