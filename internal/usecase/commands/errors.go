package commands

import (
	"warehouse-booking/internal/domain/payment"
	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/pkg/errs"
)

var (
	ErrReservationNotFound   = errs.NotFound(errs.New("reservation not found"))
	ErrUnitNotFound          = errs.NotFound(errs.New("unit not found"))
	ErrPaymentNotFound       = errs.NotFound(errs.New("payment not found"))
	ErrReservationConflict   = errs.Conflict(errs.New("unit is already reserved for the requested period"))
	ErrUnitNotBookable       = errs.Conflict(reservation.ErrUnitNotBookable)
	ErrIdempotencyKeyReused  = errs.Conflict(errs.New("idempotency key was used with a different request"))
	ErrIdempotencyInProgress = errs.Conflict(errs.New("a request with this idempotency key is still in progress"))
	ErrNothingToUpdate       = errs.Validation(errs.New("no fields to update"))
	ErrReservationTerminal   = errs.State(reservation.ErrTerminal)
)

var (
	validationErrors = []error{
		reservation.ErrEndNotAfterStart,
		reservation.ErrStartInPast,
		reservation.ErrNegativePrice,
		reservation.ErrNoteTooLong,
		reservation.ErrInvalidStatus,
		payment.ErrNonPositiveAmount,
		payment.ErrExceedsOutstanding,
		payment.ErrInvalidMethod,
		payment.ErrTransactionIDLong,
		payment.ErrNoteTooLong,
	}
	stateErrors = []error{
		reservation.ErrTerminal,
		reservation.ErrTransitionNotAllowed,
		payment.ErrAlreadyCompleted,
		payment.ErrNotCompletable,
	}
)

// classify attaches a category to errors returned by a unit of work. It runs
// after the transaction has finished so retryable store errors reach the
// retry loop untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errs.KindOf(err) != errs.KindInternal {
		return err
	}

	for _, target := range validationErrors {
		if errs.Is(err, target) {
			return errs.Validation(err)
		}
	}
	for _, target := range stateErrors {
		if errs.Is(err, target) {
			return errs.State(err)
		}
	}
	if errs.Is(err, reservation.ErrUnitNotBookable) {
		return errs.Conflict(err)
	}

	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.NotFound(err)
	case infra.IsKind(err, infra.KindConflict):
		return ErrReservationConflict
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Conflict(err)
	case infra.IsKind(err, infra.KindDBFailure), infra.IsKind(err, infra.KindSerialization):
		return errs.Transient(err)
	}
	return err
}
