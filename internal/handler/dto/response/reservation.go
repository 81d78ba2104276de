package response

import (
	"time"

	"warehouse-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	UserEmail     string    `json:"user_email"`
	UserName      string    `json:"user_name"`
	UnitID        uuid.UUID `json:"unit_id"`
	UnitNumber    string    `json:"unit_number"`
	WarehouseID   uuid.UUID `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Status        string    `json:"status"`
	TotalPrice    string    `json:"total_price" example:"900.00"`
	PaidAmount    string    `json:"paid_amount" example:"0.00"`
	Note          *string   `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ReservationListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	UnitID        uuid.UUID `json:"unit_id"`
	UnitNumber    string    `json:"unit_number"`
	WarehouseName string    `json:"warehouse_name"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Status        string    `json:"status"`
	TotalPrice    string    `json:"total_price"`
	PaidAmount    string    `json:"paid_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReservationListResponse struct {
	Reservations []ReservationListItemResponse `json:"reservations"`
	NextCursor   *string                       `json:"next_cursor,omitempty"`
}

type CancelReservationResponse struct {
	ID        uuid.UUID `json:"id"`
	Cancelled bool      `json:"cancelled"`
}

func FromReservationView(v *queries.ReservationView) (*ReservationResponse, error) {
	var resp ReservationResponse
	if err := mapInto(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromReservationList(items []*queries.ReservationListItem, next *queries.Cursor) (*ReservationListResponse, error) {
	resp := &ReservationListResponse{Reservations: make([]ReservationListItemResponse, 0, len(items))}
	if len(items) == 0 {
		return resp, nil
	}
	if err := mapInto(&resp.Reservations, items); err != nil {
		return nil, err
	}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp, nil
}
