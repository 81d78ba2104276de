package converter

import (
	"warehouse-booking/internal/domain/payment"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/pgconv"
)

func PaymentToCreateParams(p *payment.Payment) sqlstore.CreatePaymentParams {
	return sqlstore.CreatePaymentParams{
		ID:            p.ID(),
		ReservationID: p.ReservationID(),
		Amount:        pgconv.DecimalToNumeric(p.Amount()),
		Status:        p.Status().String(),
		Method:        p.Method().String(),
		TransactionID: pgconv.StringPtrToPgtype(p.TransactionID()),
		Note:          pgconv.StringPtrToPgtype(p.Note()),
		PaidAt:        pgconv.TimePtrToPgtype(p.PaidAt()),
		CreatedAt:     pgconv.TimeToPgtype(p.CreatedAt()),
		UpdatedAt:     pgconv.TimeToPgtype(p.UpdatedAt()),
	}
}
