package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativePrice        = errors.New("price cannot be negative")
	ErrTerminal             = errors.New("reservation can no longer be modified")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrUnitNotBookable      = errors.New("unit is not available for booking")
)

type Reservation struct {
	id         uuid.UUID
	userID     uuid.UUID
	unitID     uuid.UUID
	period     Period
	status     Status
	totalPrice decimal.Decimal
	note       Note
	createdAt  time.Time
	updatedAt  time.Time
}

// NewReservation creates a pending reservation. The caller is responsible
// for pricing and for checking the unit's calendar.
func NewReservation(
	userID, unitID uuid.UUID,
	period Period,
	totalPrice decimal.Decimal,
	note Note,
	now time.Time,
) (*Reservation, error) {
	if period.StartsBefore(now) {
		return nil, ErrStartInPast
	}
	if totalPrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	return &Reservation{
		id:         uuid.New(),
		userID:     userID,
		unitID:     unitID,
		period:     period,
		status:     StatusPending,
		totalPrice: totalPrice,
		note:       note,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructReservation(
	id, userID, unitID uuid.UUID,
	period Period,
	status Status,
	totalPrice decimal.Decimal,
	note Note,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		userID:     userID,
		unitID:     unitID,
		period:     period,
		status:     status,
		totalPrice: totalPrice,
		note:       note,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) UserID() uuid.UUID           { return r.userID }
func (r *Reservation) UnitID() uuid.UUID           { return r.unitID }
func (r *Reservation) Period() Period              { return r.period }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) TotalPrice() decimal.Decimal { return r.totalPrice }
func (r *Reservation) Note() Note                  { return r.note }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.userID == userID
}

func (r *Reservation) IsTerminal() bool {
	return r.status.IsTerminal()
}

// Reschedule moves the reservation to a new period with a freshly computed price.
// The resulting start must not be in the past, even when only the end moves.
func (r *Reservation) Reschedule(period Period, totalPrice decimal.Decimal, now time.Time) error {
	if r.IsTerminal() {
		return ErrTerminal
	}
	if period.StartsBefore(now) {
		return ErrStartInPast
	}
	if totalPrice.IsNegative() {
		return ErrNegativePrice
	}

	r.period = period
	r.totalPrice = totalPrice
	r.updatedAt = now
	return nil
}

func (r *Reservation) ChangeNote(note Note, now time.Time) error {
	if r.IsTerminal() {
		return ErrTerminal
	}
	r.note = note
	r.updatedAt = now
	return nil
}

// ChangeStatusByOwner applies a status requested by the reservation owner.
// Owners may only cancel; requesting the current status is a no-op.
func (r *Reservation) ChangeStatusByOwner(next Status, now time.Time) error {
	if r.IsTerminal() {
		return ErrTerminal
	}
	if next == r.status {
		return nil
	}
	if next != StatusCancelled {
		return ErrTransitionNotAllowed
	}
	return r.Cancel(now)
}

func (r *Reservation) Cancel(now time.Time) error {
	return r.transition(StatusCancelled, now)
}

// ConfirmPayment moves a pending reservation to confirmed once a payment is
// recorded. Confirmed and active reservations are left unchanged.
func (r *Reservation) ConfirmPayment(now time.Time) (bool, error) {
	switch r.status {
	case StatusPending:
		return true, r.transition(StatusConfirmed, now)
	case StatusConfirmed, StatusActive:
		return false, nil
	default:
		return false, ErrTerminal
	}
}

// Settle activates a confirmed reservation once completed payments cover the total.
func (r *Reservation) Settle(completedPaid decimal.Decimal, now time.Time) (bool, error) {
	if r.status != StatusConfirmed {
		return false, nil
	}
	if completedPaid.LessThan(r.totalPrice) {
		return false, nil
	}
	return true, r.transition(StatusActive, now)
}

func (r *Reservation) Complete(now time.Time) error {
	return r.transition(StatusCompleted, now)
}

// Outstanding is the amount not yet covered by completed payments.
func (r *Reservation) Outstanding(completedPaid decimal.Decimal) decimal.Decimal {
	rest := r.totalPrice.Sub(completedPaid)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

func (r *Reservation) transition(next Status, now time.Time) error {
	if r.IsTerminal() {
		return ErrTerminal
	}
	if !r.status.CanTransitionTo(next) {
		return ErrTransitionNotAllowed
	}
	r.status = next
	r.updatedAt = now
	return nil
}
