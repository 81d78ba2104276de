package sqlstore

import (
	"context"

	"github.com/google/uuid"
)

const getUnitByID = `
SELECT u.id, u.warehouse_id, w.name, u.unit_number, u.square_meters,
       u.is_available, u.is_active AND w.is_active, u.created_at
FROM warehouse_units u
JOIN warehouses w ON w.id = u.warehouse_id
WHERE u.id = $1
`

func (q *Queries) GetUnitByID(ctx context.Context, db DBTX, id uuid.UUID) (WarehouseUnit, error) {
	row := db.QueryRow(ctx, getUnitByID, id)
	var i WarehouseUnit
	err := row.Scan(
		&i.ID,
		&i.WarehouseID,
		&i.WarehouseName,
		&i.UnitNumber,
		&i.SquareMeters,
		&i.IsAvailable,
		&i.IsActive,
		&i.CreatedAt,
	)
	return i, err
}

const listActivePricingByUnit = `
SELECT id, unit_id, tier, price, discount_percentage, is_active, created_at
FROM unit_pricing
WHERE unit_id = $1 AND is_active
ORDER BY created_at, id
`

func (q *Queries) ListActivePricingByUnit(ctx context.Context, db DBTX, unitID uuid.UUID) ([]UnitPricing, error) {
	rows, err := db.Query(ctx, listActivePricingByUnit, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []UnitPricing
	for rows.Next() {
		var i UnitPricing
		if err := rows.Scan(
			&i.ID,
			&i.UnitID,
			&i.Tier,
			&i.Price,
			&i.DiscountPercentage,
			&i.IsActive,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
