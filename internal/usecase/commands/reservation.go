package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/pkg/clock"
	"warehouse-booking/internal/pkg/config"
	"warehouse-booking/internal/pkg/errs"
	"warehouse-booking/internal/pkg/patch"
	"warehouse-booking/internal/usecase/queries"
	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

const (
	createReservationEndpoint = "POST /api/reservations"
	idempotencyStatusDone     = "completed"
)

type CreateReservationRequest struct {
	UnitID  uuid.UUID
	StartAt time.Time
	EndAt   time.Time
	Note    *string
}

// UpdateReservationRequest carries the fields to change; nil means unchanged.
type UpdateReservationRequest struct {
	StartAt *time.Time
	EndAt   *time.Time
	Status  *string
	Note    *string
}

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, req CreateReservationRequest, userID uuid.UUID, idempotencyKey *uuid.UUID) (*CreateReservationResult, error)
	UpdateReservation(ctx context.Context, reservationID uuid.UUID, req UpdateReservationRequest, userID uuid.UUID) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, reservationID uuid.UUID, userID uuid.UUID) (bool, error)
}

type reservationUseCaseImpl struct {
	uow                shared.UnitOfWork
	factory            *reservation.Factory
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
	events             eventWriter
	idempotencyTTL     time.Duration
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	clk clock.Clock,
	booking config.BookingConfig,
	events config.EventsConfig,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:                uow,
		factory:            factory,
		reservationQueries: reservationQueries,
		clock:              clk,
		events:             eventWriter{topic: events.Topic},
		idempotencyTTL:     booking.IdempotencyTTL,
	}
}

func (uc *reservationUseCaseImpl) CreateReservation(
	ctx context.Context,
	req CreateReservationRequest,
	userID uuid.UUID,
	idempotencyKey *uuid.UUID,
) (*CreateReservationResult, error) {
	period, err := reservation.NewPeriod(req.StartAt, req.EndAt)
	if err != nil {
		return nil, errs.Validation(err)
	}
	if period.StartsBefore(uc.clock.Now()) {
		return nil, errs.Validation(reservation.ErrStartInPast)
	}
	note, err := reservation.NewNote(patch.Coalesce(req.Note, ""))
	if err != nil {
		return nil, errs.Validation(err)
	}

	var requestHash string
	if idempotencyKey != nil {
		requestHash = calculateRequestHash(req)
	}

	var (
		reservationID uuid.UUID
		replayed      bool
	)
	err = uc.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		reservationID, replayed = uuid.Nil, false

		if idempotencyKey != nil {
			previous, derr := uc.claimIdempotencyKey(ctx, tx, *idempotencyKey, userID, requestHash)
			if derr != nil {
				return derr
			}
			if previous != nil {
				reservationID, replayed = *previous, true
				return nil
			}
		}

		res, derr := uc.admit(ctx, tx, req.UnitID, userID, period, note)
		if derr != nil {
			return derr
		}
		if _, derr = tx.Reservations().Create(ctx, tx.DB(), res); derr != nil {
			return derr
		}
		if derr = uc.events.enqueue(ctx, tx, EventReservationCreated, res, res.CreatedAt()); derr != nil {
			return derr
		}
		if idempotencyKey != nil {
			derr = tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), *idempotencyKey, userID, calculateIDHash(res.ID()), res.ID())
			if derr != nil {
				return derr
			}
		}

		reservationID = res.ID()
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	if replayed {
		slog.InfoContext(ctx, "replayed idempotent reservation create",
			"reservation_id", reservationID,
			"idempotency_key", idempotencyKey.String())
	}

	// Read-after-write: Get the complete reservation view from read store
	view, err := uc.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	return &CreateReservationResult{Reservation: view, IsReplayed: replayed}, nil
}

// admit runs the calendar and unit checks and prices a new reservation. It
// must run inside the admission transaction.
func (uc *reservationUseCaseImpl) admit(
	ctx context.Context,
	tx shared.Tx,
	unitID, userID uuid.UUID,
	period reservation.Period,
	note reservation.Note,
) (*reservation.Reservation, error) {
	availability, err := shared.CheckAvailability(ctx, tx.Reads(), unitID, period.Start(), period.End(), nil)
	if err != nil {
		return nil, err
	}
	if err := availabilityError(availability); err != nil {
		return nil, err
	}

	unitEntity, err := unitFromSnapshot(availability.Unit)
	if err != nil {
		return nil, err
	}
	return uc.factory.CreateReservation(unitEntity, userID, period, note)
}

// claimIdempotencyKey records key for this request. It returns the id of the
// reservation an earlier identical request created, or nil when this call
// should proceed.
func (uc *reservationUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	requestHash string,
) (*uuid.UUID, error) {
	expiresAt := uc.clock.Now().Add(uc.idempotencyTTL)

	inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, createReservationEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	record, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, err
		}
		// Expired: the key may be reused for a new request.
		claimed, cerr := tx.Idempotency().ClaimExpiredIdempotencyKey(ctx, tx.DB(), key, userID, requestHash, expiresAt)
		if cerr != nil {
			return nil, cerr
		}
		if claimed == 0 {
			return nil, ErrIdempotencyInProgress
		}
		return nil, nil
	}

	if record.RequestHash != requestHash {
		return nil, ErrIdempotencyKeyReused
	}
	if record.Status != idempotencyStatusDone {
		return nil, ErrIdempotencyInProgress
	}
	if record.ResultReservationID == nil {
		return nil, errs.New("completed idempotency key has no reservation")
	}
	return record.ResultReservationID, nil
}

func (uc *reservationUseCaseImpl) UpdateReservation(
	ctx context.Context,
	reservationID uuid.UUID,
	req UpdateReservationRequest,
	userID uuid.UUID,
) (*queries.ReservationView, error) {
	if !patch.Provided(req.StartAt != nil, req.EndAt != nil, req.Status != nil, req.Note != nil) {
		return nil, ErrNothingToUpdate
	}
	if req.StartAt != nil && req.EndAt != nil {
		if _, err := reservation.NewPeriod(*req.StartAt, *req.EndAt); err != nil {
			return nil, errs.Validation(err)
		}
	}

	var status *reservation.Status
	if req.Status != nil {
		st, err := reservation.NewStatus(*req.Status)
		if err != nil {
			return nil, errs.Validation(err)
		}
		status = &st
	}
	var note *reservation.Note
	if req.Note != nil {
		n, err := reservation.NewNote(*req.Note)
		if err != nil {
			return nil, errs.Validation(err)
		}
		note = &n
	}

	err := uc.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, derr := loadOwnedReservation(ctx, tx, reservationID, userID)
		if derr != nil {
			return derr
		}
		if res.IsTerminal() {
			return ErrReservationTerminal
		}

		now := uc.clock.Now()
		eventType := EventReservationUpdated

		if req.StartAt != nil || req.EndAt != nil {
			start := patch.Coalesce(req.StartAt, res.Period().Start())
			end := patch.Coalesce(req.EndAt, res.Period().End())
			if derr = uc.reschedule(ctx, tx, res, start, end); derr != nil {
				return derr
			}
		}
		if note != nil {
			if derr = res.ChangeNote(*note, now); derr != nil {
				return derr
			}
		}
		if status != nil {
			before := res.Status()
			if derr = res.ChangeStatusByOwner(*status, now); derr != nil {
				return derr
			}
			if res.Status() != before {
				eventType = EventReservationCancelled
			}
		}

		if derr = tx.Reservations().Update(ctx, tx.DB(), res); derr != nil {
			return derr
		}
		return uc.events.enqueue(ctx, tx, eventType, res, now)
	})
	if err != nil {
		return nil, classify(err)
	}

	return uc.reservationQueries.GetByID(ctx, userID, reservationID)
}

// reschedule moves res to [start, end) when the window actually changes,
// checking the calendar without res itself and repricing from current rules.
// A start in the past is rejected whenever dates were supplied.
func (uc *reservationUseCaseImpl) reschedule(ctx context.Context, tx shared.Tx, res *reservation.Reservation, start, end time.Time) error {
	period, err := reservation.NewPeriod(start, end)
	if err != nil {
		return err
	}
	// supplied dates always re-run the past-start rule, even when only the end moves
	if period.StartsBefore(uc.clock.Now()) {
		return reservation.ErrStartInPast
	}
	current := res.Period()
	if period.Start().Equal(current.Start()) && period.End().Equal(current.End()) {
		return nil
	}

	id := res.ID()
	availability, err := shared.CheckAvailability(ctx, tx.Reads(), res.UnitID(), period.Start(), period.End(), &id)
	if err != nil {
		return err
	}
	if err := availabilityError(availability); err != nil {
		return err
	}

	unitEntity, err := unitFromSnapshot(availability.Unit)
	if err != nil {
		return err
	}
	return uc.factory.Reschedule(res, unitEntity, period)
}

func (uc *reservationUseCaseImpl) CancelReservation(ctx context.Context, reservationID uuid.UUID, userID uuid.UUID) (bool, error) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, derr := loadOwnedReservation(ctx, tx, reservationID, userID)
		if derr != nil {
			return derr
		}

		now := uc.clock.Now()
		if derr = res.Cancel(now); derr != nil {
			return derr
		}
		if derr = tx.Reservations().Update(ctx, tx.DB(), res); derr != nil {
			return derr
		}
		return uc.events.enqueue(ctx, tx, EventReservationCancelled, res, now)
	})
	if err != nil {
		return false, classify(err)
	}
	return true, nil
}

// loadOwnedReservation locks the reservation row. Reservations of other
// users are reported as missing.
func loadOwnedReservation(ctx context.Context, tx shared.Tx, reservationID, userID uuid.UUID) (*reservation.Reservation, error) {
	snap, err := tx.Reads().ReservationByIDForUpdate(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if snap.UserID != userID {
		return nil, ErrReservationNotFound
	}
	return reservationFromSnapshot(snap)
}

func availabilityError(a shared.Availability) error {
	switch {
	case a.UnitMissing:
		return ErrUnitNotFound
	case a.NotBookable:
		return ErrUnitNotBookable
	case a.Overlap:
		return ErrReservationConflict
	default:
		return nil
	}
}

func calculateRequestHash(req CreateReservationRequest) string {
	data, _ := json.Marshal(struct {
		UnitID  uuid.UUID `json:"unit_id"`
		StartAt time.Time `json:"start_at"`
		EndAt   time.Time `json:"end_at"`
		Note    *string   `json:"note,omitempty"`
	}{req.UnitID, req.StartAt.UTC(), req.EndAt.UTC(), req.Note})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
