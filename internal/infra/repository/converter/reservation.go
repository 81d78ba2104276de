package converter

import (
	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/pgconv"
)

func ReservationToCreateParams(res *reservation.Reservation) sqlstore.CreateReservationParams {
	period := res.Period()
	return sqlstore.CreateReservationParams{
		ID:         res.ID(),
		UserID:     res.UserID(),
		UnitID:     res.UnitID(),
		StartAt:    pgconv.TimeToPgtype(period.Start()),
		EndAt:      pgconv.TimeToPgtype(period.End()),
		Status:     res.Status().String(),
		TotalPrice: pgconv.DecimalToNumeric(res.TotalPrice()),
		Note:       pgconv.StringPtrToPgtype(res.Note().Ptr()),
		CreatedAt:  pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:  pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func ReservationToUpdateParams(res *reservation.Reservation) sqlstore.UpdateReservationParams {
	period := res.Period()
	return sqlstore.UpdateReservationParams{
		ID:         res.ID(),
		StartAt:    pgconv.TimeToPgtype(period.Start()),
		EndAt:      pgconv.TimeToPgtype(period.End()),
		Status:     res.Status().String(),
		TotalPrice: pgconv.DecimalToNumeric(res.TotalPrice()),
		Note:       pgconv.StringPtrToPgtype(res.Note().Ptr()),
		UpdatedAt:  pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}
