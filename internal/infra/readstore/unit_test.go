//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"

	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/readstore"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/tests/common/builder"
	readstoremock "warehouse-booking/tests/mock/readstore"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUnitReadStore(t *testing.T) {
	ctx := context.Background()
	hourly := decimal.NewFromInt(10)
	b := builder.NewUnitBuilder().With(func(u *builder.UnitBuilder) {
		u.Pricing = append(u.Pricing, builder.PricingSpec{Tier: "hourly", Price: hourly})
	})
	unit, pricing := b.BuildInfra()

	setup := func(t *testing.T) (*readstoremock.MockUnitReadQueries, *readstore.UnitReadStore, sqlstore.DBTX) {
		ctrl := gomock.NewController(t)
		m := readstoremock.NewMockUnitReadQueries(ctrl)
		db := &mockDBTX{}
		return m, readstore.NewUnitReadStore(m, db), db
	}

	t.Run("success: view carries every active rule", func(t *testing.T) {
		m, store, db := setup(t)
		m.EXPECT().GetUnitByID(ctx, db, b.ID).Return(unit, nil)
		m.EXPECT().ListActivePricingByUnit(ctx, db, b.ID).Return(pricing, nil)

		view, err := store.FindByID(ctx, b.ID)

		require.NoError(t, err)
		assert.Equal(t, b.UnitNumber, view.UnitNumber)
		require.Len(t, view.Pricing, 2)
		assert.Equal(t, "monthly", view.Pricing[0].Tier)
		require.NotNil(t, view.Pricing[0].DiscountPercentage)
		assert.True(t, decimal.NewFromInt(10).Equal(*view.Pricing[0].DiscountPercentage))
		assert.Nil(t, view.Pricing[1].DiscountPercentage)
	})

	t.Run("success: snapshot keeps prices exact", func(t *testing.T) {
		m, store, db := setup(t)
		m.EXPECT().GetUnitByID(ctx, db, b.ID).Return(unit, nil)
		m.EXPECT().ListActivePricingByUnit(ctx, db, b.ID).Return(pricing, nil)

		snap, err := store.FindSnapshotByID(ctx, b.ID)

		require.NoError(t, err)
		require.Len(t, snap.Pricing, 2)
		assert.True(t, decimal.NewFromInt(500).Equal(snap.Pricing[0].Price))
		assert.True(t, hourly.Equal(snap.Pricing[1].Price))
		assert.True(t, snap.Pricing[1].IsActive)
	})

	t.Run("error: unit not found skips pricing", func(t *testing.T) {
		m, store, db := setup(t)
		m.EXPECT().GetUnitByID(ctx, db, b.ID).Return(sqlstore.WarehouseUnit{}, pgx.ErrNoRows)

		_, err := store.FindSnapshotByID(ctx, b.ID)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("error: pricing lookup fails", func(t *testing.T) {
		m, store, db := setup(t)
		m.EXPECT().GetUnitByID(ctx, db, b.ID).Return(unit, nil)
		m.EXPECT().ListActivePricingByUnit(ctx, db, b.ID).Return(nil, errors.New("connection reset"))

		_, err := store.FindByID(ctx, b.ID)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
