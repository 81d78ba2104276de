package shared

import (
	"context"
	"time"

	"warehouse-booking/internal/infra"

	"github.com/google/uuid"
)

// Availability is the outcome of checking a window against a unit.
type Availability struct {
	Unit        *UnitSnapshot
	UnitMissing bool
	NotBookable bool
	Overlap     bool
}

func (a Availability) Available() bool {
	return !a.UnitMissing && !a.NotBookable && !a.Overlap
}

// CheckAvailability is the one place the unit flags and the calendar are
// consulted. It fails closed: a missing or disabled unit is never available,
// and the overlap scan is skipped for it. excludeID leaves a reservation out
// of the scan when it is being moved.
func CheckAvailability(
	ctx context.Context,
	reads CommandReads,
	unitID uuid.UUID,
	start, end time.Time,
	excludeID *uuid.UUID,
) (Availability, error) {
	unit, err := reads.UnitByID(ctx, unitID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return Availability{UnitMissing: true}, nil
		}
		return Availability{}, err
	}

	result := Availability{Unit: unit}
	if !unit.IsAvailable || !unit.IsActive {
		result.NotBookable = true
		return result, nil
	}

	overlap, err := reads.HasOverlap(ctx, unitID, start, end, excludeID)
	if err != nil {
		return Availability{}, err
	}
	result.Overlap = overlap
	return result, nil
}
