package response

import (
	"time"

	"warehouse-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type UnitResponse struct {
	ID            uuid.UUID             `json:"id"`
	WarehouseID   uuid.UUID             `json:"warehouse_id"`
	WarehouseName string                `json:"warehouse_name"`
	UnitNumber    string                `json:"unit_number"`
	SquareMeters  string                `json:"square_meters"`
	IsAvailable   bool                  `json:"is_available"`
	IsActive      bool                  `json:"is_active"`
	Pricing       []PricingRuleResponse `json:"pricing"`
	CreatedAt     time.Time             `json:"created_at"`
}

type PricingRuleResponse struct {
	ID                 uuid.UUID `json:"id"`
	Tier               string    `json:"tier"`
	Price              string    `json:"price"`
	DiscountPercentage *string   `json:"discount_percentage,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

type QuoteResponse struct {
	UnitID             uuid.UUID  `json:"unit_id"`
	StartAt            time.Time  `json:"start_at"`
	EndAt              time.Time  `json:"end_at"`
	Tier               string     `json:"tier,omitempty"`
	RuleID             *uuid.UUID `json:"rule_id,omitempty"`
	Units              int64      `json:"units"`
	UnitPrice          string     `json:"unit_price"`
	Base               string     `json:"base"`
	DiscountPercentage string     `json:"discount_percentage"`
	Total              string     `json:"total" example:"900.00"`
}

type AvailabilityResponse struct {
	UnitID    uuid.UUID `json:"unit_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Available bool      `json:"available"`
}

func FromUnitView(v *queries.UnitView) (*UnitResponse, error) {
	resp := UnitResponse{Pricing: []PricingRuleResponse{}}
	if err := mapInto(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromQuoteView(v *queries.QuoteView) (*QuoteResponse, error) {
	var resp QuoteResponse
	if err := mapInto(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func NewAvailabilityResponse(unitID uuid.UUID, start, end time.Time, available bool) *AvailabilityResponse {
	return &AvailabilityResponse{
		UnitID:    unitID,
		StartAt:   start,
		EndAt:     end,
		Available: available,
	}
}
