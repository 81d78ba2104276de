package readstore

import (
	"context"

	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/pgconv"
	"warehouse-booking/internal/usecase/queries"
	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=unit.go -destination=../../../tests/mock/readstore/unit.go -package=readstoremock

type UnitReadQueries interface {
	GetUnitByID(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.WarehouseUnit, error)
	ListActivePricingByUnit(ctx context.Context, db sqlstore.DBTX, unitID uuid.UUID) ([]sqlstore.UnitPricing, error)
}

type UnitReadStore struct {
	queries UnitReadQueries
	db      sqlstore.DBTX
}

func NewUnitReadStore(queries UnitReadQueries, db sqlstore.DBTX) *UnitReadStore {
	return &UnitReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UnitReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UnitView, error) {
	row, pricing, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &queries.UnitView{
		ID:            row.ID,
		WarehouseID:   row.WarehouseID,
		WarehouseName: row.WarehouseName,
		UnitNumber:    row.UnitNumber,
		IsAvailable:   row.IsAvailable,
		IsActive:      row.IsActive,
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		Pricing:       make([]queries.PricingRuleView, 0, len(pricing)),
	}
	if view.SquareMeters, err = pgconv.DecimalFromNumeric(row.SquareMeters); err != nil {
		return nil, infra.WrapRepoErr("invalid unit area", err)
	}

	for _, p := range pricing {
		rule := queries.PricingRuleView{
			ID:        p.ID,
			Tier:      p.Tier,
			CreatedAt: pgconv.TimeFromPgtype(p.CreatedAt),
		}
		if rule.Price, err = pgconv.DecimalFromNumeric(p.Price); err != nil {
			return nil, infra.WrapRepoErr("invalid pricing rule price", err)
		}
		if rule.DiscountPercentage, err = pgconv.DecimalPtrFromNumeric(p.DiscountPercentage); err != nil {
			return nil, infra.WrapRepoErr("invalid pricing rule discount", err)
		}
		view.Pricing = append(view.Pricing, rule)
	}

	return view, nil
}

// FindSnapshotByID loads the unit with its active pricing rules for admission.
func (r *UnitReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.UnitSnapshot, error) {
	row, pricing, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.UnitSnapshot{
		ID:          row.ID,
		WarehouseID: row.WarehouseID,
		UnitNumber:  row.UnitNumber,
		IsAvailable: row.IsAvailable,
		IsActive:    row.IsActive,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		Pricing:     make([]shared.PricingRuleSnapshot, 0, len(pricing)),
	}
	if snapshot.SquareMeters, err = pgconv.DecimalFromNumeric(row.SquareMeters); err != nil {
		return nil, infra.WrapRepoErr("invalid unit area", err)
	}

	for _, p := range pricing {
		rule := shared.PricingRuleSnapshot{
			ID:        p.ID,
			Tier:      p.Tier,
			IsActive:  p.IsActive,
			CreatedAt: pgconv.TimeFromPgtype(p.CreatedAt),
		}
		if rule.Price, err = pgconv.DecimalFromNumeric(p.Price); err != nil {
			return nil, infra.WrapRepoErr("invalid pricing rule price", err)
		}
		if rule.DiscountPercentage, err = pgconv.DecimalPtrFromNumeric(p.DiscountPercentage); err != nil {
			return nil, infra.WrapRepoErr("invalid pricing rule discount", err)
		}
		snapshot.Pricing = append(snapshot.Pricing, rule)
	}

	return snapshot, nil
}

func (r *UnitReadStore) load(ctx context.Context, id uuid.UUID) (sqlstore.WarehouseUnit, []sqlstore.UnitPricing, error) {
	row, err := r.queries.GetUnitByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return row, nil, infra.WrapRepoErr("unit not found", err, infra.KindNotFound)
		}
		return row, nil, infra.WrapRepoErr("failed to find unit by ID", err)
	}

	pricing, err := r.queries.ListActivePricingByUnit(ctx, r.db, id)
	if err != nil {
		return row, nil, infra.WrapRepoErr("failed to list unit pricing", err)
	}
	return row, pricing, nil
}
