package payment

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxTransactionIDLength = 100
	MaxNoteLength          = 500
)

var (
	ErrNonPositiveAmount  = errors.New("payment amount must be greater than zero")
	ErrExceedsOutstanding = errors.New("payment amount exceeds the outstanding balance")
	ErrAlreadyCompleted   = errors.New("payment is already completed")
	ErrNotCompletable     = errors.New("payment cannot be completed from its current status")
	ErrTransactionIDLong  = errors.New("transaction id cannot exceed 100 characters")
	ErrNoteTooLong        = errors.New("payment note cannot exceed 500 characters")
)

type Payment struct {
	id            uuid.UUID
	reservationID uuid.UUID
	amount        decimal.Decimal
	status        Status
	method        Method
	transactionID *string
	note          *string
	paidAt        *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewPayment records a pending payment against a reservation.
// outstanding is the reservation total minus payments already counted.
func NewPayment(
	reservationID uuid.UUID,
	amount, outstanding decimal.Decimal,
	method Method,
	transactionID, note *string,
	now time.Time,
) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if amount.GreaterThan(outstanding) {
		return nil, ErrExceedsOutstanding
	}
	if _, err := NewMethod(string(method)); err != nil {
		return nil, err
	}
	txID, err := trimmed(transactionID, MaxTransactionIDLength, ErrTransactionIDLong)
	if err != nil {
		return nil, err
	}
	n, err := trimmed(note, MaxNoteLength, ErrNoteTooLong)
	if err != nil {
		return nil, err
	}

	return &Payment{
		id:            uuid.New(),
		reservationID: reservationID,
		amount:        amount,
		status:        StatusPending,
		method:        method,
		transactionID: txID,
		note:          n,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructPayment(
	id, reservationID uuid.UUID,
	amount decimal.Decimal,
	status Status,
	method Method,
	transactionID, note *string,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		reservationID: reservationID,
		amount:        amount,
		status:        status,
		method:        method,
		transactionID: transactionID,
		note:          note,
		paidAt:        paidAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Payment) Complete(now time.Time) error {
	switch p.status {
	case StatusCompleted:
		return ErrAlreadyCompleted
	case StatusPending, StatusProcessing:
		p.status = StatusCompleted
		p.paidAt = &now
		p.updatedAt = now
		return nil
	default:
		return ErrNotCompletable
	}
}

func (p *Payment) ID() uuid.UUID            { return p.id }
func (p *Payment) ReservationID() uuid.UUID { return p.reservationID }
func (p *Payment) Amount() decimal.Decimal  { return p.amount }
func (p *Payment) Status() Status           { return p.status }
func (p *Payment) Method() Method           { return p.method }
func (p *Payment) TransactionID() *string   { return p.transactionID }
func (p *Payment) Note() *string            { return p.note }
func (p *Payment) PaidAt() *time.Time       { return p.paidAt }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time     { return p.updatedAt }

func trimmed(v *string, max int, tooLong error) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(s) > max {
		return nil, tooLong
	}
	return &s, nil
}
