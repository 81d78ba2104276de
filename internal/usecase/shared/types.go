package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)

type UnitSnapshot struct {
	ID           uuid.UUID
	WarehouseID  uuid.UUID
	UnitNumber   string
	SquareMeters decimal.Decimal
	IsAvailable  bool
	IsActive     bool
	CreatedAt    time.Time
	Pricing      []PricingRuleSnapshot
}

type PricingRuleSnapshot struct {
	ID                 uuid.UUID
	Tier               string
	Price              decimal.Decimal
	DiscountPercentage *decimal.Decimal
	IsActive           bool
	CreatedAt          time.Time
}

type ReservationSnapshot struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	UnitID     uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	Status     string
	TotalPrice decimal.Decimal
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type PaymentSnapshot struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Amount        decimal.Decimal
	Status        string
	Method        string
	TransactionID *string
	Note          *string
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentTotals sums a reservation's payments. Counted covers every payment
// that still claims part of the total; Completed only settled ones.
type PaymentTotals struct {
	Counted   decimal.Decimal
	Completed decimal.Decimal
}

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Status              string
	RequestHash         string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}

type OutboxMessage struct {
	AggregateID uuid.UUID
	Topic       string
	EventType   string
	Payload     []byte
	RunAt       time.Time
}
