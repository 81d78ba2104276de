package pricing

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNonPositivePrice   = errors.New("price must be greater than zero")
	ErrDiscountOutOfRange = errors.New("discount percentage must be between 0 and 100")
)

var hundred = decimal.NewFromInt(100)

type Rule struct {
	id        uuid.UUID
	tier      Tier
	price     decimal.Decimal
	discount  *decimal.Decimal
	active    bool
	createdAt time.Time
}

func NewRule(id uuid.UUID, tier Tier, price decimal.Decimal, discount *decimal.Decimal, active bool, createdAt time.Time) (Rule, error) {
	if !tier.IsValid() {
		return Rule{}, ErrInvalidTier
	}
	if !price.IsPositive() {
		return Rule{}, ErrNonPositivePrice
	}
	if discount != nil && (discount.IsNegative() || discount.GreaterThan(hundred)) {
		return Rule{}, ErrDiscountOutOfRange
	}

	var d *decimal.Decimal
	if discount != nil {
		v := *discount
		d = &v
	}

	return Rule{
		id:        id,
		tier:      tier,
		price:     price,
		discount:  d,
		active:    active,
		createdAt: createdAt,
	}, nil
}

func (r Rule) ID() uuid.UUID              { return r.id }
func (r Rule) Tier() Tier                 { return r.tier }
func (r Rule) Price() decimal.Decimal     { return r.price }
func (r Rule) Discount() *decimal.Decimal { return r.discount }
func (r Rule) IsActive() bool             { return r.active }
func (r Rule) CreatedAt() time.Time       { return r.createdAt }

// precedes orders rules of one tier: earliest created first, then lowest id.
func (r Rule) precedes(other Rule) bool {
	if !r.createdAt.Equal(other.createdAt) {
		return r.createdAt.Before(other.createdAt)
	}
	return compareIDs(r.id, other.id) < 0
}

func compareIDs(a, b uuid.UUID) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
