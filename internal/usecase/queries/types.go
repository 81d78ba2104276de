package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationView represents read-optimized reservation data joined with its
// owner, unit and warehouse
type ReservationView struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	UserEmail     string          `json:"user_email"`
	UserName      string          `json:"user_name"`
	UnitID        uuid.UUID       `json:"unit_id"`
	UnitNumber    string          `json:"unit_number"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	StartAt       time.Time       `json:"start_at"`
	EndAt         time.Time       `json:"end_at"`
	Status        string          `json:"status"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Note          *string         `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ReservationListItem struct {
	ID            uuid.UUID       `json:"id"`
	UnitID        uuid.UUID       `json:"unit_id"`
	UnitNumber    string          `json:"unit_number"`
	WarehouseName string          `json:"warehouse_name"`
	StartAt       time.Time       `json:"start_at"`
	EndAt         time.Time       `json:"end_at"`
	Status        string          `json:"status"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

type UnitView struct {
	ID            uuid.UUID         `json:"id"`
	WarehouseID   uuid.UUID         `json:"warehouse_id"`
	WarehouseName string            `json:"warehouse_name"`
	UnitNumber    string            `json:"unit_number"`
	SquareMeters  decimal.Decimal   `json:"square_meters"`
	IsAvailable   bool              `json:"is_available"`
	IsActive      bool              `json:"is_active"`
	Pricing       []PricingRuleView `json:"pricing"`
	CreatedAt     time.Time         `json:"created_at"`
}

type PricingRuleView struct {
	ID                 uuid.UUID        `json:"id"`
	Tier               string           `json:"tier"`
	Price              decimal.Decimal  `json:"price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

type PaymentView struct {
	ID            uuid.UUID       `json:"id"`
	ReservationID uuid.UUID       `json:"reservation_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	Method        string          `json:"method"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	Note          *string         `json:"note,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// QuoteView is a price calculation for a window without booking it.
// Tier is empty when no active rule applies and Total is zero.
type QuoteView struct {
	UnitID             uuid.UUID       `json:"unit_id"`
	StartAt            time.Time       `json:"start_at"`
	EndAt              time.Time       `json:"end_at"`
	Tier               string          `json:"tier,omitempty"`
	RuleID             *uuid.UUID      `json:"rule_id,omitempty"`
	Units              int64           `json:"units"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Base               decimal.Decimal `json:"base"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Total              decimal.Decimal `json:"total"`
}

type AvailabilityView struct {
	UnitID    uuid.UUID `json:"unit_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Available bool      `json:"available"`
}
