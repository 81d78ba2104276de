package reservation

import (
	"warehouse-booking/internal/domain/unit"
	"warehouse-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{Clock: clock}
}

// CreateReservation builds a pending reservation priced from the unit's rules.
func (f *Factory) CreateReservation(
	unitEntity *unit.Unit,
	userID uuid.UUID,
	period Period,
	note Note,
) (*Reservation, error) {
	if !unitEntity.IsBookable() {
		return nil, ErrUnitNotBookable
	}

	quote := unitEntity.Quote(period.Start(), period.End())

	return NewReservation(
		userID,
		unitEntity.ID(),
		period,
		quote.Total,
		note,
		f.Clock.Now(),
	)
}

// Reschedule moves an existing reservation and reprices it from current rules.
func (f *Factory) Reschedule(res *Reservation, unitEntity *unit.Unit, period Period) error {
	if !period.Start().Equal(res.Period().Start()) || !period.End().Equal(res.Period().End()) {
		if !unitEntity.IsBookable() {
			return ErrUnitNotBookable
		}
	}
	quote := unitEntity.Quote(period.Start(), period.End())
	return res.Reschedule(period, quote.Total, f.Clock.Now())
}
