package request

import (
	"time"

	"warehouse-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	UnitID  uuid.UUID `json:"unit_id" binding:"required"`
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
	Note    *string   `json:"note,omitempty" binding:"omitempty,max=1000"`
}

func (r CreateReservationRequest) ToCommand() commands.CreateReservationRequest {
	return commands.CreateReservationRequest{
		UnitID:  r.UnitID,
		StartAt: r.StartAt,
		EndAt:   r.EndAt,
		Note:    r.Note,
	}
}

// UpdateReservationRequest is a partial update; omitted fields keep their value.
type UpdateReservationRequest struct {
	StartAt *time.Time `json:"start_at,omitempty"`
	EndAt   *time.Time `json:"end_at,omitempty"`
	Status  *string    `json:"status,omitempty" binding:"omitempty,reservation_status"`
	Note    *string    `json:"note,omitempty" binding:"omitempty,max=1000"`
}

func (r UpdateReservationRequest) ToCommand() commands.UpdateReservationRequest {
	return commands.UpdateReservationRequest{
		StartAt: r.StartAt,
		EndAt:   r.EndAt,
		Status:  r.Status,
		Note:    r.Note,
	}
}

type ListReservationsQuery struct {
	Status *string `form:"status" binding:"omitempty,reservation_status"`
	Limit  int     `form:"limit" binding:"omitempty,min=1"`
	After  string  `form:"after"`
}

// PeriodQuery is the [start, end) window of availability and quote lookups.
type PeriodQuery struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
