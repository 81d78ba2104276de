package commands

import (
	"warehouse-booking/internal/domain/payment"
	"warehouse-booking/internal/domain/pricing"
	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/domain/unit"
	"warehouse-booking/internal/pkg/errs"
	"warehouse-booking/internal/usecase/shared"
)

// Snapshots come from our own tables, so a value the domain rejects means
// corrupted data and is reported as an internal error.

func unitFromSnapshot(s *shared.UnitSnapshot) (*unit.Unit, error) {
	rules := make([]pricing.Rule, 0, len(s.Pricing))
	for _, p := range s.Pricing {
		tier, err := pricing.NewTier(p.Tier)
		if err != nil {
			return nil, errs.Wrap(err, "stored pricing rule")
		}
		rule, err := pricing.NewRule(p.ID, tier, p.Price, p.DiscountPercentage, p.IsActive, p.CreatedAt)
		if err != nil {
			return nil, errs.Wrap(err, "stored pricing rule")
		}
		rules = append(rules, rule)
	}
	return unit.ReconstructUnit(s.ID, s.WarehouseID, s.UnitNumber, s.SquareMeters, s.IsAvailable, s.IsActive, rules, s.CreatedAt), nil
}

func reservationFromSnapshot(s *shared.ReservationSnapshot) (*reservation.Reservation, error) {
	period, err := reservation.NewPeriod(s.StartAt, s.EndAt)
	if err != nil {
		return nil, errs.Wrap(err, "stored reservation period")
	}
	status, err := reservation.NewStatus(s.Status)
	if err != nil {
		return nil, errs.Wrap(err, "stored reservation status")
	}
	var note reservation.Note
	if s.Note != nil {
		if note, err = reservation.NewNote(*s.Note); err != nil {
			return nil, errs.Wrap(err, "stored reservation note")
		}
	}
	return reservation.ReconstructReservation(
		s.ID, s.UserID, s.UnitID,
		period, status, s.TotalPrice, note,
		s.CreatedAt, s.UpdatedAt,
	), nil
}

func paymentFromSnapshot(s *shared.PaymentSnapshot) (*payment.Payment, error) {
	status, err := payment.NewStatus(s.Status)
	if err != nil {
		return nil, errs.Wrap(err, "stored payment status")
	}
	method, err := payment.NewMethod(s.Method)
	if err != nil {
		return nil, errs.Wrap(err, "stored payment method")
	}
	return payment.ReconstructPayment(
		s.ID, s.ReservationID, s.Amount, status, method,
		s.TransactionID, s.Note, s.PaidAt,
		s.CreatedAt, s.UpdatedAt,
	), nil
}
