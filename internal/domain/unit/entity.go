package unit

import (
	"errors"
	"strings"
	"time"

	"warehouse-booking/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyUnitNumber   = errors.New("unit number cannot be empty")
	ErrUnitNumberTooLong = errors.New("unit number is too long (max 50 characters)")
	ErrNonPositiveArea   = errors.New("square meters must be greater than zero")
)

const MaxUnitNumberLength = 50

type Unit struct {
	id           uuid.UUID
	warehouseID  uuid.UUID
	unitNumber   string
	squareMeters decimal.Decimal
	available    bool
	active       bool
	pricing      []pricing.Rule
	createdAt    time.Time
}

func NewUnit(id, warehouseID uuid.UUID, unitNumber string, squareMeters decimal.Decimal, available, active bool, rules []pricing.Rule) (*Unit, error) {
	number := strings.TrimSpace(unitNumber)
	if number == "" {
		return nil, ErrEmptyUnitNumber
	}
	if len(number) > MaxUnitNumberLength {
		return nil, ErrUnitNumberTooLong
	}
	if !squareMeters.IsPositive() {
		return nil, ErrNonPositiveArea
	}

	return &Unit{
		id:           id,
		warehouseID:  warehouseID,
		unitNumber:   number,
		squareMeters: squareMeters,
		available:    available,
		active:       active,
		pricing:      append([]pricing.Rule(nil), rules...),
	}, nil
}

func ReconstructUnit(
	id, warehouseID uuid.UUID,
	unitNumber string,
	squareMeters decimal.Decimal,
	available, active bool,
	rules []pricing.Rule,
	createdAt time.Time,
) *Unit {
	return &Unit{
		id:           id,
		warehouseID:  warehouseID,
		unitNumber:   unitNumber,
		squareMeters: squareMeters,
		available:    available,
		active:       active,
		pricing:      rules,
		createdAt:    createdAt,
	}
}

// IsBookable reports whether the unit accepts new reservations at all.
// Calendar conflicts are checked separately.
func (u *Unit) IsBookable() bool {
	return u.available && u.active
}

// Quote prices [start, end) with the unit's pricing rules.
func (u *Unit) Quote(start, end time.Time) pricing.Quote {
	return pricing.QuotePeriod(u.pricing, start, end)
}

func (u *Unit) ID() uuid.UUID                 { return u.id }
func (u *Unit) WarehouseID() uuid.UUID        { return u.warehouseID }
func (u *Unit) UnitNumber() string            { return u.unitNumber }
func (u *Unit) SquareMeters() decimal.Decimal { return u.squareMeters }
func (u *Unit) IsAvailable() bool             { return u.available }
func (u *Unit) IsActive() bool                { return u.active }
func (u *Unit) PricingRules() []pricing.Rule  { return u.pricing }
func (u *Unit) CreatedAt() time.Time          { return u.createdAt }
