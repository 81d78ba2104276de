package commands

import (
	"context"
	"log/slog"

	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/pkg/clock"
	"warehouse-booking/internal/pkg/config"
	"warehouse-booking/internal/pkg/errs"
	"warehouse-booking/internal/usecase/queries"
	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=completion.go -destination=../../../tests/mock/commands/completion.go -package=commandsmock

type CompleteDueResult struct {
	Completed         int
	Failed            int
	PurgedIdempotency int64
}

type CompletionCommands interface {
	// CompleteReservation moves an active reservation to completed. Admin only.
	CompleteReservation(ctx context.Context, reservationID uuid.UUID) (*queries.ReservationView, error)
	// CompleteDue completes active reservations whose period has ended and
	// purges expired idempotency keys.
	CompleteDue(ctx context.Context) (*CompleteDueResult, error)
}

type completionUseCaseImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
	events             eventWriter
	limit              int32
}

func NewCompletionUseCase(
	uow shared.UnitOfWork,
	reservationQueries queries.ReservationQueries,
	clk clock.Clock,
	events config.EventsConfig,
	batch config.BatchConfig,
) CompletionCommands {
	return &completionUseCaseImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		clock:              clk,
		events:             eventWriter{topic: events.Topic},
		limit:              int32(batch.CompletionLimit),
	}
}

func (uc *completionUseCaseImpl) CompleteReservation(ctx context.Context, reservationID uuid.UUID) (*queries.ReservationView, error) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, derr := uc.complete(ctx, tx, reservationID, false)
		return derr
	})
	if err != nil {
		return nil, classify(err)
	}
	return uc.reservationQueries.GetByIDSystem(ctx, reservationID)
}

func (uc *completionUseCaseImpl) CompleteDue(ctx context.Context) (*CompleteDueResult, error) {
	due, err := uc.uow.CommandReads().DueActiveReservations(ctx, uc.clock.Now(), uc.limit)
	if err != nil {
		return nil, classify(err)
	}

	result := &CompleteDueResult{}
	for _, snap := range due {
		var done bool
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var derr error
			done, derr = uc.complete(ctx, tx, snap.ID, true)
			return derr
		})
		if err != nil {
			result.Failed++
			slog.ErrorContext(ctx, "failed to complete reservation",
				"reservation_id", snap.ID,
				"error", err.Error())
			continue
		}
		if done {
			result.Completed++
		}
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		purged, derr := tx.Idempotency().DeleteExpired(ctx, uc.clock.Now())
		result.PurgedIdempotency = purged
		return derr
	})
	if err != nil {
		return result, classify(err)
	}
	return result, nil
}

// complete locks and completes one reservation. With onlyEnded set, a
// reservation that changed since it was listed is skipped instead of failing.
func (uc *completionUseCaseImpl) complete(ctx context.Context, tx shared.Tx, reservationID uuid.UUID, onlyEnded bool) (bool, error) {
	snap, err := tx.Reads().ReservationByIDForUpdate(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, ErrReservationNotFound
		}
		return false, err
	}
	res, err := reservationFromSnapshot(snap)
	if err != nil {
		return false, err
	}

	now := uc.clock.Now()
	if onlyEnded && (res.Status() != reservation.StatusActive || res.Period().End().After(now)) {
		return false, nil
	}
	if err := res.Complete(now); err != nil {
		if errs.Is(err, reservation.ErrTerminal) {
			return false, ErrReservationTerminal
		}
		return false, err
	}
	if err := tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
		return false, err
	}
	if err := uc.events.enqueue(ctx, tx, EventReservationCompleted, res, now); err != nil {
		return false, err
	}
	return true, nil
}
