package commands

import (
	"context"
	"encoding/json"
	"time"

	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/pkg/errs"
	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventReservationCreated   = "reservation.created"
	EventReservationUpdated   = "reservation.updated"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationActivated = "reservation.activated"
	EventReservationCompleted = "reservation.completed"
)

// ReservationEvent is the outbox payload published for every lifecycle change.
type ReservationEvent struct {
	Type          string          `json:"type"`
	ReservationID uuid.UUID       `json:"reservation_id"`
	UserID        uuid.UUID       `json:"user_id"`
	UnitID        uuid.UUID       `json:"unit_id"`
	Status        string          `json:"status"`
	StartAt       time.Time       `json:"start_at"`
	EndAt         time.Time       `json:"end_at"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type eventWriter struct {
	topic string
}

func (w eventWriter) enqueue(ctx context.Context, tx shared.Tx, eventType string, res *reservation.Reservation, now time.Time) error {
	payload, err := json.Marshal(ReservationEvent{
		Type:          eventType,
		ReservationID: res.ID(),
		UserID:        res.UserID(),
		UnitID:        res.UnitID(),
		Status:        res.Status().String(),
		StartAt:       res.Period().Start(),
		EndAt:         res.Period().End(),
		TotalPrice:    res.TotalPrice(),
		OccurredAt:    now,
	})
	if err != nil {
		return errs.Wrap(err, "marshal reservation event")
	}

	return tx.Outbox().Enqueue(ctx, tx.DB(), shared.OutboxMessage{
		AggregateID: res.UnitID(),
		Topic:       w.topic,
		EventType:   eventType,
		Payload:     payload,
		RunAt:       now,
	})
}
