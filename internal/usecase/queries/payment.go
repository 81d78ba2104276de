package queries

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/queries/payment.go -package=queriesmock

type PaymentReadStore interface {
	FindByReservation(ctx context.Context, reservationID uuid.UUID) ([]*PaymentView, error)
}

type PaymentQueries interface {
	// ListByReservation returns the payments of a reservation owned by actorID.
	ListByReservation(ctx context.Context, actorID uuid.UUID, reservationID uuid.UUID) ([]*PaymentView, error)
}

type paymentQueriesImpl struct {
	reservations ReservationQueries
	repo         PaymentReadStore
}

func NewPaymentQueries(reservations ReservationQueries, repo PaymentReadStore) PaymentQueries {
	return &paymentQueriesImpl{
		reservations: reservations,
		repo:         repo,
	}
}

func (q *paymentQueriesImpl) ListByReservation(ctx context.Context, actorID uuid.UUID, reservationID uuid.UUID) ([]*PaymentView, error) {
	if _, err := q.reservations.GetByID(ctx, actorID, reservationID); err != nil {
		return nil, err
	}
	return q.repo.FindByReservation(ctx, reservationID)
}
