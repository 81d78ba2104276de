package commands

import (
	"context"
	"time"

	"warehouse-booking/internal/domain/payment"
	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/pkg/clock"
	"warehouse-booking/internal/pkg/config"
	"warehouse-booking/internal/pkg/errs"
	"warehouse-booking/internal/usecase/queries"
	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/commands/payment.go -package=commandsmock

type RecordPaymentRequest struct {
	Amount        decimal.Decimal
	Method        string
	TransactionID *string
	Note          *string
}

type PaymentCommands interface {
	// RecordPayment adds a pending payment; the first one confirms the reservation.
	RecordPayment(ctx context.Context, reservationID uuid.UUID, req RecordPaymentRequest, userID uuid.UUID) (*queries.PaymentView, error)
	// CompletePayment settles a payment; once settled payments cover the
	// total a confirmed reservation becomes active.
	CompletePayment(ctx context.Context, paymentID uuid.UUID, userID uuid.UUID) (*queries.PaymentView, error)
}

type paymentUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	events eventWriter
}

func NewPaymentUseCase(uow shared.UnitOfWork, clk clock.Clock, events config.EventsConfig) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:    uow,
		clock:  clk,
		events: eventWriter{topic: events.Topic},
	}
}

func (uc *paymentUseCaseImpl) RecordPayment(ctx context.Context, reservationID uuid.UUID, req RecordPaymentRequest, userID uuid.UUID) (*queries.PaymentView, error) {
	if !req.Amount.IsPositive() {
		return nil, errs.Validation(payment.ErrNonPositiveAmount)
	}
	method, err := payment.NewMethod(req.Method)
	if err != nil {
		return nil, errs.Validation(err)
	}

	var created *payment.Payment
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, derr := loadOwnedReservation(ctx, tx, reservationID, userID)
		if derr != nil {
			return derr
		}
		if res.IsTerminal() {
			return ErrReservationTerminal
		}

		totals, derr := tx.Reads().PaymentTotals(ctx, reservationID)
		if derr != nil {
			return derr
		}

		now := uc.clock.Now()
		outstanding := res.Outstanding(totals.Counted)
		p, derr := payment.NewPayment(reservationID, req.Amount, outstanding, method, req.TransactionID, req.Note, now)
		if derr != nil {
			return derr
		}
		if _, derr = tx.Payments().Create(ctx, tx.DB(), p); derr != nil {
			return derr
		}

		confirmed, derr := res.ConfirmPayment(now)
		if derr != nil {
			return derr
		}
		if confirmed {
			if derr = tx.Reservations().Update(ctx, tx.DB(), res); derr != nil {
				return derr
			}
			if derr = uc.events.enqueue(ctx, tx, EventReservationConfirmed, res, now); derr != nil {
				return derr
			}
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return toPaymentView(created), nil
}

func (uc *paymentUseCaseImpl) CompletePayment(ctx context.Context, paymentID uuid.UUID, userID uuid.UUID) (*queries.PaymentView, error) {
	var completed *payment.Payment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().PaymentByID(ctx, paymentID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrPaymentNotFound
			}
			return derr
		}

		res, derr := loadOwnedReservation(ctx, tx, snap.ReservationID, userID)
		if derr != nil {
			if errs.Is(derr, ErrReservationNotFound) {
				return ErrPaymentNotFound
			}
			return derr
		}
		if res.IsTerminal() {
			return ErrReservationTerminal
		}

		p, derr := paymentFromSnapshot(snap)
		if derr != nil {
			return derr
		}

		now := uc.clock.Now()
		if derr = p.Complete(now); derr != nil {
			return derr
		}
		if derr = tx.Payments().UpdateStatus(ctx, tx.DB(), p); derr != nil {
			return derr
		}

		totals, derr := tx.Reads().PaymentTotals(ctx, res.ID())
		if derr != nil {
			return derr
		}
		if derr = uc.advance(ctx, tx, res, totals, now); derr != nil {
			return derr
		}

		completed = p
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return toPaymentView(completed), nil
}

// advance applies the payment-driven transitions. A payment completed on a
// still pending reservation confirms it first.
func (uc *paymentUseCaseImpl) advance(ctx context.Context, tx shared.Tx, res *reservation.Reservation, totals *shared.PaymentTotals, now time.Time) error {
	confirmed, err := res.ConfirmPayment(now)
	if err != nil {
		return err
	}
	if confirmed {
		if err := uc.events.enqueue(ctx, tx, EventReservationConfirmed, res, now); err != nil {
			return err
		}
	}

	activated, err := res.Settle(totals.Completed, now)
	if err != nil {
		return err
	}
	if activated {
		if err := uc.events.enqueue(ctx, tx, EventReservationActivated, res, now); err != nil {
			return err
		}
	}

	if !confirmed && !activated {
		return nil
	}
	return tx.Reservations().Update(ctx, tx.DB(), res)
}

func toPaymentView(p *payment.Payment) *queries.PaymentView {
	return &queries.PaymentView{
		ID:            p.ID(),
		ReservationID: p.ReservationID(),
		Amount:        p.Amount(),
		Status:        p.Status().String(),
		Method:        p.Method().String(),
		TransactionID: p.TransactionID(),
		Note:          p.Note(),
		PaidAt:        p.PaidAt(),
		CreatedAt:     p.CreatedAt(),
	}
}
