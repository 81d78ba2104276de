package response

import (
	"time"

	"warehouse-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	ID            uuid.UUID  `json:"id"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	Amount        string     `json:"amount"`
	Status        string     `json:"status"`
	Method        string     `json:"method"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	Note          *string    `json:"note,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

func FromPaymentView(v *queries.PaymentView) (*PaymentResponse, error) {
	var resp PaymentResponse
	if err := mapInto(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromPaymentList(items []*queries.PaymentView) (*PaymentListResponse, error) {
	resp := &PaymentListResponse{Payments: make([]PaymentResponse, 0, len(items))}
	if len(items) == 0 {
		return resp, nil
	}
	if err := mapInto(&resp.Payments, items); err != nil {
		return nil, err
	}
	return resp, nil
}
