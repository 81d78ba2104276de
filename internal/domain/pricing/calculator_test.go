//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"warehouse-booking/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	baseTime = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	day      = 24 * time.Hour
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rule(t *testing.T, tier pricing.Tier, price string, discount string, active bool, createdAt time.Time) pricing.Rule {
	t.Helper()
	var d *decimal.Decimal
	if discount != "" {
		v := dec(discount)
		d = &v
	}
	r, err := pricing.NewRule(uuid.New(), tier, dec(price), d, active, createdAt)
	require.NoError(t, err)
	return r
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.StringFixed(2))
}

func TestCalculate(t *testing.T) {
	t.Run("月額ルールと割引: 45日は2ヶ月分から10%引き", func(t *testing.T) {
		rules := []pricing.Rule{rule(t, pricing.TierMonthly, "500", "10", true, baseTime)}

		q := pricing.QuotePeriod(rules, baseTime, baseTime.Add(45*day))

		assert.Equal(t, pricing.TierMonthly, q.Tier)
		assert.Equal(t, int64(2), q.Units)
		assertMoney(t, "1000", q.Base)
		assertMoney(t, "900.00", q.Total)
		assert.Equal(t, "900.00", q.Total.StringFixed(2))
	})

	t.Run("ちょうど24時間は日額が時間額より優先", func(t *testing.T) {
		rules := []pricing.Rule{
			rule(t, pricing.TierHourly, "10", "", true, baseTime),
			rule(t, pricing.TierDaily, "80", "", true, baseTime),
		}

		total := pricing.Calculate(rules, baseTime, baseTime.Add(day))

		assertMoney(t, "80", total)
	})

	t.Run("時間単位は切り上げ", func(t *testing.T) {
		rules := []pricing.Rule{rule(t, pricing.TierHourly, "10", "", true, baseTime)}

		q := pricing.QuotePeriod(rules, baseTime, baseTime.Add(90*time.Minute))

		assert.Equal(t, int64(2), q.Units)
		assertMoney(t, "20", q.Total)
	})

	t.Run("上位ティアにルールがなければ次のティアを使う", func(t *testing.T) {
		rules := []pricing.Rule{rule(t, pricing.TierMonthly, "500", "", true, baseTime)}

		q := pricing.QuotePeriod(rules, baseTime, baseTime.Add(400*day))

		assert.Equal(t, pricing.TierMonthly, q.Tier)
		assert.Equal(t, int64(14), q.Units)
		assertMoney(t, "7000", q.Total)
	})

	t.Run("年額ティアは8760時間以上で選択", func(t *testing.T) {
		rules := []pricing.Rule{
			rule(t, pricing.TierYearly, "5000", "", true, baseTime),
			rule(t, pricing.TierMonthly, "500", "", true, baseTime),
		}

		assert.Equal(t, pricing.TierYearly, pricing.QuotePeriod(rules, baseTime, baseTime.Add(365*day)).Tier)
		assert.Equal(t, pricing.TierMonthly, pricing.QuotePeriod(rules, baseTime, baseTime.Add(364*day)).Tier)
	})

	t.Run("該当ルールなしは0", func(t *testing.T) {
		rules := []pricing.Rule{rule(t, pricing.TierDaily, "80", "", true, baseTime)}

		q := pricing.QuotePeriod(rules, baseTime, baseTime.Add(23*time.Hour))

		assert.False(t, q.Applied())
		assertMoney(t, "0", q.Total)
		assertMoney(t, "0", pricing.Calculate(nil, baseTime, baseTime.Add(day)))
	})

	t.Run("非アクティブなルールは無視", func(t *testing.T) {
		rules := []pricing.Rule{
			rule(t, pricing.TierDaily, "80", "", false, baseTime),
			rule(t, pricing.TierHourly, "10", "", true, baseTime),
		}

		q := pricing.QuotePeriod(rules, baseTime, baseTime.Add(day))

		assert.Equal(t, pricing.TierHourly, q.Tier)
		assertMoney(t, "240", q.Total)
	})

	t.Run("同一ティアの複数ルールは作成日時が早いものを採用", func(t *testing.T) {
		later := rule(t, pricing.TierDaily, "50", "", true, baseTime.Add(time.Hour))
		earlier := rule(t, pricing.TierDaily, "70", "", true, baseTime)

		q := pricing.QuotePeriod([]pricing.Rule{later, earlier}, baseTime, baseTime.Add(day))

		assert.Equal(t, earlier.ID(), q.RuleID)
		assertMoney(t, "70", q.Total)
	})

	t.Run("作成日時が同じならIDの小さいものを採用", func(t *testing.T) {
		low := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		high := uuid.MustParse("ffffffff-0000-0000-0000-000000000000")
		a, err := pricing.NewRule(high, pricing.TierDaily, dec("50"), nil, true, baseTime)
		require.NoError(t, err)
		b, err := pricing.NewRule(low, pricing.TierDaily, dec("70"), nil, true, baseTime)
		require.NoError(t, err)

		for _, rules := range [][]pricing.Rule{{a, b}, {b, a}} {
			q := pricing.QuotePeriod(rules, baseTime, baseTime.Add(day))
			assert.Equal(t, low, q.RuleID)
		}
	})

	t.Run("割引は端数を最後にだけ丸める", func(t *testing.T) {
		rules := []pricing.Rule{rule(t, pricing.TierHourly, "3.33", "33.33", true, baseTime)}

		// 3 * 3.33 = 9.99; 9.99 * 0.6667 = 6.660333
		total := pricing.Calculate(rules, baseTime, baseTime.Add(3*time.Hour))

		assertMoney(t, "6.66", total)
	})

	t.Run("100%割引は0", func(t *testing.T) {
		rules := []pricing.Rule{rule(t, pricing.TierDaily, "80", "100", true, baseTime)}

		assertMoney(t, "0", pricing.Calculate(rules, baseTime, baseTime.Add(3*day)))
	})
}

func TestCalculate_Properties(t *testing.T) {
	rules := []pricing.Rule{
		rule(t, pricing.TierHourly, "10", "5", true, baseTime),
		rule(t, pricing.TierDaily, "200", "", true, baseTime),
	}

	t.Run("同一ティア内で価格は期間に対して単調非減少", func(t *testing.T) {
		prev := decimal.Zero
		for h := 1; h < 24; h++ {
			total := pricing.Calculate(rules, baseTime, baseTime.Add(time.Duration(h)*time.Hour))
			assert.False(t, total.LessThan(prev), "hour %d: %s < %s", h, total, prev)
			prev = total
		}
		prev = decimal.Zero
		for d := 1; d < 30; d++ {
			total := pricing.Calculate(rules, baseTime, baseTime.Add(time.Duration(d)*day))
			assert.False(t, total.LessThan(prev), "day %d: %s < %s", d, total, prev)
			prev = total
		}
	})

	t.Run("割引後価格は0以上かつ基本価格以下", func(t *testing.T) {
		for h := 1; h < 72; h += 5 {
			q := pricing.QuotePeriod(rules, baseTime, baseTime.Add(time.Duration(h)*time.Hour))
			assert.False(t, q.Total.IsNegative())
			assert.True(t, q.Total.LessThanOrEqual(q.Base), "total %s > base %s", q.Total, q.Base)
		}
	})
}

func TestNewRule(t *testing.T) {
	neg := dec("-1")
	over := dec("100.01")

	cases := []struct {
		name     string
		tier     pricing.Tier
		price    string
		discount *decimal.Decimal
		errIs    error
	}{
		{name: "正常", tier: pricing.TierDaily, price: "80"},
		{name: "価格0はNG", tier: pricing.TierDaily, price: "0", errIs: pricing.ErrNonPositivePrice},
		{name: "負の割引はNG", tier: pricing.TierDaily, price: "80", discount: &neg, errIs: pricing.ErrDiscountOutOfRange},
		{name: "100超の割引はNG", tier: pricing.TierDaily, price: "80", discount: &over, errIs: pricing.ErrDiscountOutOfRange},
		{name: "不明なティアはNG", tier: pricing.Tier("weekly"), price: "80", errIs: pricing.ErrInvalidTier},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := pricing.NewRule(uuid.New(), c.tier, dec(c.price), c.discount, true, baseTime)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
		})
	}
}
