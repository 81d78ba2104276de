package sqlstore

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Reservation struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	UnitID     uuid.UUID
	StartAt    pgtype.Timestamptz
	EndAt      pgtype.Timestamptz
	Status     string
	TotalPrice pgtype.Numeric
	Note       pgtype.Text
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}

type WarehouseUnit struct {
	ID            uuid.UUID
	WarehouseID   uuid.UUID
	WarehouseName string
	UnitNumber    string
	SquareMeters  pgtype.Numeric
	IsAvailable   bool
	IsActive      bool
	CreatedAt     pgtype.Timestamptz
}

type UnitPricing struct {
	ID                 uuid.UUID
	UnitID             uuid.UUID
	Tier               string
	Price              pgtype.Numeric
	DiscountPercentage pgtype.Numeric
	IsActive           bool
	CreatedAt          pgtype.Timestamptz
}

type Payment struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Amount        pgtype.Numeric
	Status        string
	Method        string
	TransactionID pgtype.Text
	Note          pgtype.Text
	PaidAt        pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type IdempotencyKey struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Endpoint            string
	RequestHash         string
	Status              string
	ResponseBodyHash    pgtype.Text
	ResultReservationID pgtype.UUID
	ExpiresAt           pgtype.Timestamptz
	CreatedAt           pgtype.Timestamptz
}

type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	Topic       string
	EventType   string
	Payload     []byte
	Status      string
	Attempts    int32
	LastError   pgtype.Text
	RunAt       pgtype.Timestamptz
	CreatedAt   pgtype.Timestamptz
	SentAt      pgtype.Timestamptz
}
