//go:build unit || e2e

package builder

import (
	"time"

	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/pgconv"
	"warehouse-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PricingSpec struct {
	Tier     string
	Price    decimal.Decimal
	Discount *decimal.Decimal
}

type UnitBuilder struct {
	ID           uuid.UUID
	WarehouseID  uuid.UUID
	UnitNumber   string
	SquareMeters decimal.Decimal
	IsAvailable  bool
	IsActive     bool
	Pricing      []PricingSpec
	CreatedAt    time.Time
}

// NewUnitBuilder defaults to a bookable unit with a monthly rule of 500.00
// at a 10% discount.
func NewUnitBuilder() *UnitBuilder {
	discount := decimal.NewFromInt(10)
	return &UnitBuilder{
		ID:           uuid.New(),
		WarehouseID:  uuid.New(),
		UnitNumber:   "A-101",
		SquareMeters: decimal.RequireFromString("12.50"),
		IsAvailable:  true,
		IsActive:     true,
		Pricing:      []PricingSpec{{Tier: "monthly", Price: decimal.NewFromInt(500), Discount: &discount}},
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (u *UnitBuilder) With(mutate func(*UnitBuilder)) *UnitBuilder {
	mutate(u)
	return u
}

func (u *UnitBuilder) BuildInfra() (sqlstore.WarehouseUnit, []sqlstore.UnitPricing) {
	unit := sqlstore.WarehouseUnit{
		ID:            u.ID,
		WarehouseID:   u.WarehouseID,
		WarehouseName: "Test Warehouse",
		UnitNumber:    u.UnitNumber,
		SquareMeters:  pgconv.DecimalToNumeric(u.SquareMeters),
		IsAvailable:   u.IsAvailable,
		IsActive:      u.IsActive,
		CreatedAt:     pgconv.TimeToPgtype(u.CreatedAt),
	}
	pricing := make([]sqlstore.UnitPricing, len(u.Pricing))
	for i, p := range u.Pricing {
		pricing[i] = sqlstore.UnitPricing{
			ID:                 uuid.New(),
			UnitID:             u.ID,
			Tier:               p.Tier,
			Price:              pgconv.DecimalToNumeric(p.Price),
			DiscountPercentage: pgconv.DecimalPtrToNumeric(p.Discount),
			IsActive:           true,
			CreatedAt:          pgconv.TimeToPgtype(u.CreatedAt),
		}
	}
	return unit, pricing
}

func (u *UnitBuilder) BuildViewQuery() *queries.UnitView {
	view := &queries.UnitView{
		ID:            u.ID,
		WarehouseID:   u.WarehouseID,
		WarehouseName: "Test Warehouse",
		UnitNumber:    u.UnitNumber,
		SquareMeters:  u.SquareMeters,
		IsAvailable:   u.IsAvailable,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
	}
	for _, p := range u.Pricing {
		view.Pricing = append(view.Pricing, queries.PricingRuleView{
			ID:                 uuid.New(),
			Tier:               p.Tier,
			Price:              p.Price,
			DiscountPercentage: p.Discount,
			CreatedAt:          u.CreatedAt,
		})
	}
	return view
}
