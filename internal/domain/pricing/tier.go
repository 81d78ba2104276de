package pricing

import (
	"errors"
	"time"
)

var ErrInvalidTier = errors.New("invalid pricing tier")

type Tier string

const (
	TierHourly  Tier = "hourly"
	TierDaily   Tier = "daily"
	TierMonthly Tier = "monthly"
	TierYearly  Tier = "yearly"
)

// Evaluation order for tier selection. Longer tiers win when their threshold is met.
var tierPriority = []Tier{TierYearly, TierMonthly, TierDaily, TierHourly}

func NewTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.IsValid() {
		return "", ErrInvalidTier
	}
	return t, nil
}

func (t Tier) String() string {
	return string(t)
}

func (t Tier) IsValid() bool {
	switch t {
	case TierHourly, TierDaily, TierMonthly, TierYearly:
		return true
	default:
		return false
	}
}

// Unit is the length of one billable unit of the tier. It doubles as the
// minimum booking length for the tier to be considered, except hourly.
func (t Tier) Unit() time.Duration {
	switch t {
	case TierYearly:
		return 365 * 24 * time.Hour
	case TierMonthly:
		return 30 * 24 * time.Hour
	case TierDaily:
		return 24 * time.Hour
	default:
		return time.Hour
	}
}

func (t Tier) threshold() time.Duration {
	if t == TierHourly {
		return 0
	}
	return t.Unit()
}
