package repository

import (
	"context"

	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/repository/converter"
	"warehouse-booking/internal/infra/sqlstore"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/repository/reservation.go -package=repositorymock

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreateReservationParams) (uuid.UUID, error)
	UpdateReservation(ctx context.Context, db sqlstore.DBTX, arg sqlstore.UpdateReservationParams) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      sqlstore.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db sqlstore.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

// Create inserts a reservation. An overlapping live reservation on the same
// unit surfaces as KindConflict through the exclusion constraint.
func (r *ReservationRepository) Create(ctx context.Context, tx sqlstore.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	params := converter.ReservationToCreateParams(res)

	resultID, err := r.queries.CreateReservation(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return resultID, nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx sqlstore.DBTX, res *reservation.Reservation) error {
	params := converter.ReservationToUpdateParams(res)

	affected, err := r.queries.UpdateReservation(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}

	return nil
}
