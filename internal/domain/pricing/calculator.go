package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the scale of stored money values.
const MoneyPlaces = 2

type Quote struct {
	Tier            Tier
	RuleID          uuid.UUID
	Units           int64
	UnitPrice       decimal.Decimal
	Base            decimal.Decimal
	DiscountPercent decimal.Decimal
	Total           decimal.Decimal
}

// Applied reports whether any rule priced the period.
func (q Quote) Applied() bool {
	return q.Tier != ""
}

// Calculate returns the total price of [start, end) under the given rules.
func Calculate(rules []Rule, start, end time.Time) decimal.Decimal {
	return QuotePeriod(rules, start, end).Total
}

// QuotePeriod selects the tier for the booked length and prices it.
//
// Tiers are tried from yearly down to hourly. A tier is chosen when the
// length reaches its threshold and at least one active rule exists for it;
// selection stops there. Units are rounded up. When no tier applies the
// quote is zero.
func QuotePeriod(rules []Rule, start, end time.Time) Quote {
	length := end.Sub(start)
	if length <= 0 {
		return Quote{Total: decimal.Zero}
	}

	for _, tier := range tierPriority {
		if length < tier.threshold() {
			continue
		}
		rule, ok := selectRule(rules, tier)
		if !ok {
			continue
		}
		return price(rule, billableUnits(length, tier.Unit()))
	}

	return Quote{Total: decimal.Zero}
}

func price(rule Rule, units int64) Quote {
	base := rule.price.Mul(decimal.NewFromInt(units))
	total := base
	discount := decimal.Zero
	if rule.discount != nil {
		discount = *rule.discount
		total = base.Mul(decimal.NewFromInt(1).Sub(discount.Div(hundred)))
	}

	return Quote{
		Tier:            rule.tier,
		RuleID:          rule.id,
		Units:           units,
		UnitPrice:       rule.price,
		Base:            base,
		DiscountPercent: discount,
		Total:           total.Round(MoneyPlaces),
	}
}

// billableUnits is ceil(length / unit) in integer nanoseconds.
func billableUnits(length, unit time.Duration) int64 {
	n := int64(length / unit)
	if length%unit != 0 {
		n++
	}
	return n
}

func selectRule(rules []Rule, tier Tier) (Rule, bool) {
	var (
		best  Rule
		found bool
	)
	for _, r := range rules {
		if !r.active || r.tier != tier {
			continue
		}
		if !found || r.precedes(best) {
			best = r
			found = true
		}
	}
	return best, found
}
