package queries

import (
	"context"
	"log/slog"
	"time"

	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability.go -package=queriesmock

type AvailabilityQueries interface {
	// CheckAvailability reports whether [start, end) can be booked on the
	// unit right now. An empty or inverted window, a missing unit and a
	// disabled unit are all reported as unavailable.
	CheckAvailability(ctx context.Context, unitID uuid.UUID, start, end time.Time) (bool, error)
}

type availabilityQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewAvailabilityQueries(uow shared.UnitOfWork) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow}
}

func (q *availabilityQueriesImpl) CheckAvailability(ctx context.Context, unitID uuid.UUID, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, nil
	}

	result, err := shared.CheckAvailability(ctx, q.uow.CommandReads(), unitID, start, end, nil)
	if err != nil {
		return false, err
	}
	if !result.Available() {
		slog.DebugContext(ctx, "unit not available",
			"unit_id", unitID,
			"unit_missing", result.UnitMissing,
			"not_bookable", result.NotBookable,
			"overlap", result.Overlap)
	}
	return result.Available(), nil
}
