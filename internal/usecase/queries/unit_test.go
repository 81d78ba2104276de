//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/pkg/errs"
	"warehouse-booking/internal/usecase/queries"
	queriesmock "warehouse-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var baseTime = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func pricingRule(tier, price string, discount *string) queries.PricingRuleView {
	rule := queries.PricingRuleView{
		ID:        uuid.New(),
		Tier:      tier,
		Price:     decimal.RequireFromString(price),
		CreatedAt: baseTime.Add(-time.Hour),
	}
	if discount != nil {
		d := decimal.RequireFromString(*discount)
		rule.DiscountPercentage = &d
	}
	return rule
}

func unitView(id uuid.UUID, rules ...queries.PricingRuleView) *queries.UnitView {
	return &queries.UnitView{
		ID:            id,
		WarehouseID:   uuid.New(),
		WarehouseName: "Harbor",
		UnitNumber:    "B-12",
		SquareMeters:  decimal.NewFromInt(15),
		IsAvailable:   true,
		IsActive:      true,
		Pricing:       rules,
		CreatedAt:     baseTime.Add(-24 * time.Hour),
	}
}

func TestUnitQueries_Quote(t *testing.T) {
	ctx := context.Background()
	unitID := uuid.New()
	ten := "10"

	testCases := []struct {
		name       string
		rules      []queries.PricingRuleView
		end        time.Time
		expectTier string
		expectUnit int64
		expectSum  string
	}{
		{
			name:       "success: 45 days on a discounted monthly rule",
			rules:      []queries.PricingRuleView{pricingRule("monthly", "500", &ten)},
			end:        baseTime.AddDate(0, 0, 45),
			expectTier: "monthly",
			expectUnit: 2,
			expectSum:  "900.00",
		},
		{
			name:       "success: exactly one day prefers the daily rule",
			rules:      []queries.PricingRuleView{pricingRule("hourly", "10", nil), pricingRule("daily", "80", nil)},
			end:        baseTime.Add(24 * time.Hour),
			expectTier: "daily",
			expectUnit: 1,
			expectSum:  "80",
		},
		{
			name:       "success: 90 minutes round up to two hours",
			rules:      []queries.PricingRuleView{pricingRule("hourly", "10", nil)},
			end:        baseTime.Add(90 * time.Minute),
			expectTier: "hourly",
			expectUnit: 2,
			expectSum:  "20",
		},
		{
			name:       "success: no applicable rule prices at zero",
			rules:      []queries.PricingRuleView{pricingRule("monthly", "500", nil)},
			end:        baseTime.Add(3 * time.Hour),
			expectTier: "",
			expectUnit: 0,
			expectSum:  "0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockUnitReadStore(ctrl)
			store.EXPECT().FindByID(ctx, unitID).Return(unitView(unitID, tc.rules...), nil)

			quote, err := queries.NewUnitQueries(store).Quote(ctx, unitID, baseTime, tc.end)

			require.NoError(t, err)
			assert.Equal(t, tc.expectTier, quote.Tier)
			assert.Equal(t, tc.expectUnit, quote.Units)
			assert.True(t, decimal.RequireFromString(tc.expectSum).Equal(quote.Total), "expected %s, got %s", tc.expectSum, quote.Total)
			if tc.expectTier == "" {
				assert.Nil(t, quote.RuleID)
			} else {
				assert.NotNil(t, quote.RuleID)
			}
		})
	}

	t.Run("error: inverted window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUnitReadStore(ctrl)

		_, err := queries.NewUnitQueries(store).Quote(ctx, unitID, baseTime, baseTime.Add(-time.Hour))

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("error: unit not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUnitReadStore(ctrl)
		store.EXPECT().FindByID(ctx, unitID).Return(nil, infra.WrapRepoErr("unit not found", pgx.ErrNoRows, infra.KindNotFound))

		_, err := queries.NewUnitQueries(store).Quote(ctx, unitID, baseTime, baseTime.Add(time.Hour))

		assert.True(t, errs.Is(err, queries.ErrUnitNotFound))
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})
}

func TestUnitQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	unitID := uuid.New()

	t.Run("success: returns the stored view", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUnitReadStore(ctrl)
		view := unitView(unitID)
		store.EXPECT().FindByID(ctx, unitID).Return(view, nil)

		got, err := queries.NewUnitQueries(store).GetByID(ctx, unitID)

		require.NoError(t, err)
		assert.Same(t, view, got)
	})

	t.Run("error: store failure passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUnitReadStore(ctrl)
		dbErr := infra.WrapRepoErr("failed to get unit", errors.New("connection reset"))
		store.EXPECT().FindByID(ctx, unitID).Return(nil, dbErr)

		_, err := queries.NewUnitQueries(store).GetByID(ctx, unitID)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
