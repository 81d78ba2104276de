//go:build unit || e2e

package builder

import (
	"time"

	"warehouse-booking/internal/domain/reservation"
	reqdto "warehouse-booking/internal/handler/dto/request"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/pgconv"
	"warehouse-booking/internal/usecase/queries"
	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationBuilder struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	UnitID     uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	Status     reservation.Status
	TotalPrice decimal.Decimal
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewReservationBuilder defaults to a 45 day pending booking starting
// next week, priced at 900.00.
func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC().Truncate(time.Microsecond)
	start := now.AddDate(0, 0, 7).Truncate(time.Hour)
	return &ReservationBuilder{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		UnitID:     uuid.New(),
		StartAt:    start,
		EndAt:      start.AddDate(0, 0, 45),
		Status:     reservation.StatusPending,
		TotalPrice: decimal.RequireFromString("900.00"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	period, err := reservation.NewPeriod(r.StartAt, r.EndAt)
	if err != nil {
		return nil, err
	}
	var note reservation.Note
	if r.Note != nil {
		if note, err = reservation.NewNote(*r.Note); err != nil {
			return nil, err
		}
	}
	return reservation.ReconstructReservation(r.ID, r.UserID, r.UnitID, period, r.Status, r.TotalPrice, note, r.CreatedAt, r.UpdatedAt), nil
}

func (r *ReservationBuilder) BuildInfra() sqlstore.Reservation {
	return sqlstore.Reservation{
		ID:         r.ID,
		UserID:     r.UserID,
		UnitID:     r.UnitID,
		StartAt:    pgconv.TimeToPgtype(r.StartAt),
		EndAt:      pgconv.TimeToPgtype(r.EndAt),
		Status:     r.Status.String(),
		TotalPrice: pgconv.DecimalToNumeric(r.TotalPrice),
		Note:       pgconv.StringPtrToPgtype(r.Note),
		CreatedAt:  pgconv.TimeToPgtype(r.CreatedAt),
		UpdatedAt:  pgconv.TimeToPgtype(r.UpdatedAt),
	}
}

func (r *ReservationBuilder) BuildViewRow() sqlstore.ReservationViewRow {
	return sqlstore.ReservationViewRow{
		ID:            r.ID,
		UserID:        r.UserID,
		UserEmail:     "customer@example.com",
		UserName:      "Test Customer",
		UnitID:        r.UnitID,
		UnitNumber:    "A-101",
		WarehouseID:   uuid.New(),
		WarehouseName: "Test Warehouse",
		StartAt:       pgconv.TimeToPgtype(r.StartAt),
		EndAt:         pgconv.TimeToPgtype(r.EndAt),
		Status:        r.Status.String(),
		TotalPrice:    pgconv.DecimalToNumeric(r.TotalPrice),
		PaidAmount:    pgconv.DecimalToNumeric(decimal.Zero),
		Note:          pgconv.StringPtrToPgtype(r.Note),
		CreatedAt:     pgconv.TimeToPgtype(r.CreatedAt),
		UpdatedAt:     pgconv.TimeToPgtype(r.UpdatedAt),
	}
}

func (r *ReservationBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:         r.ID,
		UserID:     r.UserID,
		UnitID:     r.UnitID,
		StartAt:    r.StartAt,
		EndAt:      r.EndAt,
		Status:     r.Status.String(),
		TotalPrice: r.TotalPrice,
		Note:       r.Note,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		UnitID:  r.UnitID,
		StartAt: r.StartAt,
		EndAt:   r.EndAt,
		Note:    r.Note,
	}
}

func (r *ReservationBuilder) BuildViewQuery() *queries.ReservationView {
	return &queries.ReservationView{
		ID:            r.ID,
		UserID:        r.UserID,
		UserEmail:     "customer@example.com",
		UserName:      "Test Customer",
		UnitID:        r.UnitID,
		UnitNumber:    "A-101",
		WarehouseID:   uuid.New(),
		WarehouseName: "Test Warehouse",
		StartAt:       r.StartAt,
		EndAt:         r.EndAt,
		Status:        r.Status.String(),
		TotalPrice:    r.TotalPrice,
		PaidAmount:    decimal.Zero,
		Note:          r.Note,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:            r.ID,
		UnitID:        r.UnitID,
		UnitNumber:    "A-101",
		WarehouseName: "Test Warehouse",
		StartAt:       r.StartAt,
		EndAt:         r.EndAt,
		Status:        r.Status.String(),
		TotalPrice:    r.TotalPrice,
		PaidAmount:    decimal.Zero,
		CreatedAt:     r.CreatedAt,
	}
}
