//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/errs"
	"warehouse-booking/internal/usecase/commands"
	"warehouse-booking/internal/usecase/queries"
	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationCommandsTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockCtrl *gomock.Controller
	f        *uowFixture
	uc       commands.ReservationCommands
	userID   uuid.UUID
	unitID   uuid.UUID
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.f = newUowFixture(s.mockCtrl)
	s.uc = commands.NewReservationUseCase(
		s.f.uow,
		reservation.NewFactory(s.f.clock),
		s.f.queries,
		s.f.clock,
		bookingConfig(),
		eventsConfig(),
	)
	s.userID = uuid.New()
	s.unitID = uuid.New()
}

func (s *ReservationCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) createRequest() commands.CreateReservationRequest {
	return commands.CreateReservationRequest{UnitID: s.unitID, StartAt: date(3, 1), EndAt: date(4, 15)}
}

// expectAdmission sets up a free calendar on a monthly priced unit and
// captures the inserted reservation.
func (s *ReservationCommandsTestSuite) expectAdmission(created **reservation.Reservation) {
	s.f.reads.EXPECT().UnitByID(gomock.Any(), s.unitID).Return(monthlyUnit(s.unitID), nil)
	s.f.reads.EXPECT().HasOverlap(gomock.Any(), s.unitID, date(3, 1), date(4, 15), gomock.Nil()).Return(false, nil)
	s.f.reservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ sqlstore.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
			*created = res
			return res.ID(), nil
		})
}

// ================================================================================
// CreateReservation
// ================================================================================

func (s *ReservationCommandsTestSuite) TestCreateReservation() {
	s.Run("success: prices the window and enqueues a created event", func() {
		s.SetupTest()
		var created *reservation.Reservation
		var events []shared.OutboxMessage
		s.f.expectSerializable()
		s.expectAdmission(&created)
		s.f.expectEvent(&events)
		s.f.queries.EXPECT().GetByIDSystem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
				return viewOf(id), nil
			})

		result, err := s.uc.CreateReservation(s.ctx, s.createRequest(), s.userID, nil)

		s.Require().NoError(err)
		s.False(result.IsReplayed)
		s.Require().NotNil(created)
		s.Equal(created.ID(), result.Reservation.ID)
		s.True(decimal.RequireFromString("900.00").Equal(created.TotalPrice()), "got %s", created.TotalPrice())
		s.Equal(reservation.StatusPending, created.Status())
		s.Equal(s.userID, created.UserID())

		s.Require().Len(events, 1)
		s.Equal(commands.EventReservationCreated, events[0].EventType)
		s.Equal(s.unitID, events[0].AggregateID)
		s.Equal(testTopic, events[0].Topic)
	})

	s.Run("error: empty window is rejected before any store access", func() {
		s.SetupTest()
		req := s.createRequest()
		req.EndAt = req.StartAt

		result, err := s.uc.CreateReservation(s.ctx, req, s.userID, nil)

		s.Nil(result)
		s.Equal(errs.KindValidation, errs.KindOf(err))
		s.True(errs.Is(err, reservation.ErrEndNotAfterStart))
	})

	s.Run("error: start in the past", func() {
		s.SetupTest()
		req := s.createRequest()
		req.StartAt = now.Add(-time.Hour)

		_, err := s.uc.CreateReservation(s.ctx, req, s.userID, nil)

		s.Equal(errs.KindValidation, errs.KindOf(err))
		s.True(errs.Is(err, reservation.ErrStartInPast))
	})

	s.Run("error: overlapping reservation is a conflict", func() {
		s.SetupTest()
		s.f.expectSerializable()
		s.f.reads.EXPECT().UnitByID(gomock.Any(), s.unitID).Return(monthlyUnit(s.unitID), nil)
		s.f.reads.EXPECT().HasOverlap(gomock.Any(), s.unitID, gomock.Any(), gomock.Any(), gomock.Nil()).Return(true, nil)

		_, err := s.uc.CreateReservation(s.ctx, s.createRequest(), s.userID, nil)

		s.Equal(errs.KindConflict, errs.KindOf(err))
		s.True(errs.Is(err, commands.ErrReservationConflict))
	})

	s.Run("error: exclusion constraint violation maps to a conflict", func() {
		s.SetupTest()
		s.f.expectSerializable()
		s.f.reads.EXPECT().UnitByID(gomock.Any(), s.unitID).Return(monthlyUnit(s.unitID), nil)
		s.f.reads.EXPECT().HasOverlap(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		s.f.reservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("failed to create reservation", &pgconn.PgError{Code: "23P01"}))

		_, err := s.uc.CreateReservation(s.ctx, s.createRequest(), s.userID, nil)

		s.Equal(errs.KindConflict, errs.KindOf(err))
		s.True(errs.Is(err, commands.ErrReservationConflict))
	})

	s.Run("error: missing unit", func() {
		s.SetupTest()
		s.f.expectSerializable()
		s.f.reads.EXPECT().UnitByID(gomock.Any(), s.unitID).Return(nil, notFound("unit not found"))

		_, err := s.uc.CreateReservation(s.ctx, s.createRequest(), s.userID, nil)

		s.Equal(errs.KindNotFound, errs.KindOf(err))
		s.True(errs.Is(err, commands.ErrUnitNotFound))
	})

	s.Run("error: disabled unit is not bookable", func() {
		s.SetupTest()
		unit := monthlyUnit(s.unitID)
		unit.IsAvailable = false
		s.f.expectSerializable()
		s.f.reads.EXPECT().UnitByID(gomock.Any(), s.unitID).Return(unit, nil)

		_, err := s.uc.CreateReservation(s.ctx, s.createRequest(), s.userID, nil)

		s.Equal(errs.KindConflict, errs.KindOf(err))
		s.True(errs.Is(err, commands.ErrUnitNotBookable))
	})

	s.Run("error: exhausted serialization retries are transient", func() {
		s.SetupTest()
		s.f.uow.EXPECT().WithinSerializable(gomock.Any(), gomock.Any()).
			Return(errs.Transient(infra.WrapRepoErr("commit", &pgconn.PgError{Code: "40001"})))

		_, err := s.uc.CreateReservation(s.ctx, s.createRequest(), s.userID, nil)

		s.Equal(errs.KindTransient, errs.KindOf(err))
	})
}

// ================================================================================
// CreateReservation with an idempotency key
// ================================================================================

func (s *ReservationCommandsTestSuite) TestCreateReservationIdempotency() {
	s.Run("success: first use completes the key with the new reservation", func() {
		s.SetupTest()
		key := uuid.New()
		var created *reservation.Reservation
		var events []shared.OutboxMessage
		s.f.expectSerializable()
		s.f.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, s.userID, "POST /api/reservations", gomock.Any(), now.Add(24*time.Hour)).
			Return(true, nil)
		s.expectAdmission(&created)
		s.f.expectEvent(&events)
		s.f.idempotency.EXPECT().UpdateStatusCompleted(gomock.Any(), gomock.Any(), key, s.userID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlstore.DBTX, _, _ uuid.UUID, _ string, id uuid.UUID) error {
				s.Equal(created.ID(), id)
				return nil
			})
		s.f.queries.EXPECT().GetByIDSystem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
				return viewOf(id), nil
			})

		result, err := s.uc.CreateReservation(s.ctx, s.createRequest(), s.userID, &key)

		s.Require().NoError(err)
		s.False(result.IsReplayed)
	})

	s.Run("success: replay returns the stored reservation without admitting again", func() {
		s.SetupTest()
		key := uuid.New()
		storedID := uuid.New()
		var hash string
		s.f.expectSerializable()
		s.f.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, s.userID, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlstore.DBTX, _, _ uuid.UUID, _, h string, _ time.Time) (bool, error) {
				hash = h
				return false, nil
			})
		s.f.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, s.userID).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID) (*shared.IdempotencyRecord, error) {
				return &shared.IdempotencyRecord{Key: key, UserID: s.userID, Status: "completed", RequestHash: hash, ResultReservationID: &storedID}, nil
			})
		s.f.queries.EXPECT().GetByIDSystem(gomock.Any(), storedID).Return(viewOf(storedID), nil)

		result, err := s.uc.CreateReservation(s.ctx, s.createRequest(), s.userID, &key)

		s.Require().NoError(err)
		s.True(result.IsReplayed)
		s.Equal(storedID, result.Reservation.ID)
	})

	s.Run("error: key reused with a different request", func() {
		s.SetupTest()
		key := uuid.New()
		storedID := uuid.New()
		s.f.expectSerializable()
		s.f.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		s.f.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, s.userID).
			Return(&shared.IdempotencyRecord{Status: "completed", RequestHash: "other", ResultReservationID: &storedID}, nil)

		_, err := s.uc.CreateReservation(s.ctx, s.createRequest(), s.userID, &key)

		s.Equal(errs.KindConflict, errs.KindOf(err))
		s.True(errs.Is(err, commands.ErrIdempotencyKeyReused))
	})

	s.Run("error: key still processing", func() {
		s.SetupTest()
		key := uuid.New()
		var hash string
		s.f.expectSerializable()
		s.f.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlstore.DBTX, _, _ uuid.UUID, _, h string, _ time.Time) (bool, error) {
				hash = h
				return false, nil
			})
		s.f.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, s.userID).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID) (*shared.IdempotencyRecord, error) {
				return &shared.IdempotencyRecord{Status: "processing", RequestHash: hash}, nil
			})

		_, err := s.uc.CreateReservation(s.ctx, s.createRequest(), s.userID, &key)

		s.True(errs.Is(err, commands.ErrIdempotencyInProgress))
	})

	s.Run("success: expired key is claimed again", func() {
		s.SetupTest()
		key := uuid.New()
		var created *reservation.Reservation
		var events []shared.OutboxMessage
		s.f.expectSerializable()
		s.f.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		s.f.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, s.userID).Return(nil, notFound("idempotency key not found"))
		s.f.idempotency.EXPECT().ClaimExpiredIdempotencyKey(gomock.Any(), gomock.Any(), key, s.userID, gomock.Any(), gomock.Any()).Return(int64(1), nil)
		s.expectAdmission(&created)
		s.f.expectEvent(&events)
		s.f.idempotency.EXPECT().UpdateStatusCompleted(gomock.Any(), gomock.Any(), key, s.userID, gomock.Any(), gomock.Any()).Return(nil)
		s.f.queries.EXPECT().GetByIDSystem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
				return viewOf(id), nil
			})

		result, err := s.uc.CreateReservation(s.ctx, s.createRequest(), s.userID, &key)

		s.Require().NoError(err)
		s.False(result.IsReplayed)
	})

	s.Run("error: expired key claimed concurrently", func() {
		s.SetupTest()
		key := uuid.New()
		s.f.expectSerializable()
		s.f.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		s.f.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, s.userID).Return(nil, notFound("idempotency key not found"))
		s.f.idempotency.EXPECT().ClaimExpiredIdempotencyKey(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := s.uc.CreateReservation(s.ctx, s.createRequest(), s.userID, &key)

		s.True(errs.Is(err, commands.ErrIdempotencyInProgress))
	})
}

// ================================================================================
// UpdateReservation
// ================================================================================

func (s *ReservationCommandsTestSuite) TestUpdateReservation() {
	s.Run("error: nothing to update", func() {
		s.SetupTest()

		_, err := s.uc.UpdateReservation(s.ctx, uuid.New(), commands.UpdateReservationRequest{}, s.userID)

		s.Equal(errs.KindValidation, errs.KindOf(err))
	})

	s.Run("error: invalid status value", func() {
		s.SetupTest()
		status := "archived"

		_, err := s.uc.UpdateReservation(s.ctx, uuid.New(), commands.UpdateReservationRequest{Status: &status}, s.userID)

		s.Equal(errs.KindValidation, errs.KindOf(err))
	})

	s.Run("error: reservation of another user is not found", func() {
		s.SetupTest()
		snap := reservationSnapshot(uuid.New(), s.unitID, reservation.StatusPending)
		note := "gate code 1234"
		s.f.expectSerializable()
		s.f.reads.EXPECT().ReservationByIDForUpdate(gomock.Any(), snap.ID).Return(snap, nil)

		_, err := s.uc.UpdateReservation(s.ctx, snap.ID, commands.UpdateReservationRequest{Note: &note}, s.userID)

		s.Equal(errs.KindNotFound, errs.KindOf(err))
		s.True(errs.Is(err, commands.ErrReservationNotFound))
	})

	s.Run("error: terminal reservation cannot change", func() {
		s.SetupTest()
		snap := reservationSnapshot(s.userID, s.unitID, reservation.StatusCancelled)
		note := "gate code 1234"
		s.f.expectSerializable()
		s.f.reads.EXPECT().ReservationByIDForUpdate(gomock.Any(), snap.ID).Return(snap, nil)

		_, err := s.uc.UpdateReservation(s.ctx, snap.ID, commands.UpdateReservationRequest{Note: &note}, s.userID)

		s.Equal(errs.KindState, errs.KindOf(err))
	})

	s.Run("success: reschedule excludes itself from the overlap scan and reprices", func() {
		s.SetupTest()
		snap := reservationSnapshot(s.userID, s.unitID, reservation.StatusPending)
		newEnd := date(3, 31)
		var events []shared.OutboxMessage
		s.f.expectSerializable()
		s.f.reads.EXPECT().ReservationByIDForUpdate(gomock.Any(), snap.ID).Return(snap, nil)
		s.f.reads.EXPECT().UnitByID(gomock.Any(), s.unitID).Return(monthlyUnit(s.unitID), nil)
		s.f.reads.EXPECT().HasOverlap(gomock.Any(), s.unitID, date(3, 1), newEnd, &snap.ID).Return(false, nil)
		s.f.reservations.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlstore.DBTX, res *reservation.Reservation) error {
				// 30 days at the discounted monthly rate
				s.True(decimal.NewFromInt(450).Equal(res.TotalPrice()), "got %s", res.TotalPrice())
				s.Equal(newEnd, res.Period().End())
				return nil
			})
		s.f.expectEvent(&events)
		s.f.queries.EXPECT().GetByID(gomock.Any(), s.userID, snap.ID).Return(viewOf(snap.ID), nil)

		view, err := s.uc.UpdateReservation(s.ctx, snap.ID, commands.UpdateReservationRequest{EndAt: &newEnd}, s.userID)

		s.Require().NoError(err)
		s.Equal(snap.ID, view.ID)
		s.Require().Len(events, 1)
		s.Equal(commands.EventReservationUpdated, events[0].EventType)
	})

	s.Run("error: reschedule onto a booked window", func() {
		s.SetupTest()
		snap := reservationSnapshot(s.userID, s.unitID, reservation.StatusConfirmed)
		newEnd := date(5, 1)
		s.f.expectSerializable()
		s.f.reads.EXPECT().ReservationByIDForUpdate(gomock.Any(), snap.ID).Return(snap, nil)
		s.f.reads.EXPECT().UnitByID(gomock.Any(), s.unitID).Return(monthlyUnit(s.unitID), nil)
		s.f.reads.EXPECT().HasOverlap(gomock.Any(), s.unitID, gomock.Any(), gomock.Any(), &snap.ID).Return(true, nil)

		_, err := s.uc.UpdateReservation(s.ctx, snap.ID, commands.UpdateReservationRequest{EndAt: &newEnd}, s.userID)

		s.True(errs.Is(err, commands.ErrReservationConflict))
	})

	s.Run("error: end-only change on a started reservation is rejected", func() {
		s.SetupTest()
		snap := reservationSnapshot(s.userID, s.unitID, reservation.StatusActive)
		snap.StartAt = now.Add(-48 * time.Hour)
		snap.EndAt = now.Add(time.Hour)
		newEnd := date(3, 8)
		s.f.expectSerializable()
		s.f.reads.EXPECT().ReservationByIDForUpdate(gomock.Any(), snap.ID).Return(snap, nil)

		_, err := s.uc.UpdateReservation(s.ctx, snap.ID, commands.UpdateReservationRequest{EndAt: &newEnd}, s.userID)

		s.Equal(errs.KindValidation, errs.KindOf(err))
		s.True(errs.Is(err, reservation.ErrStartInPast))
	})

	s.Run("error: resubmitting the unchanged past start is rejected", func() {
		s.SetupTest()
		snap := reservationSnapshot(s.userID, s.unitID, reservation.StatusActive)
		snap.StartAt = now.Add(-48 * time.Hour)
		snap.EndAt = now.Add(time.Hour)
		start, end := snap.StartAt, snap.EndAt
		s.f.expectSerializable()
		s.f.reads.EXPECT().ReservationByIDForUpdate(gomock.Any(), snap.ID).Return(snap, nil)

		_, err := s.uc.UpdateReservation(s.ctx, snap.ID, commands.UpdateReservationRequest{StartAt: &start, EndAt: &end}, s.userID)

		s.Equal(errs.KindValidation, errs.KindOf(err))
	})

	s.Run("success: owner cancels through a status change", func() {
		s.SetupTest()
		snap := reservationSnapshot(s.userID, s.unitID, reservation.StatusConfirmed)
		status := "cancelled"
		var events []shared.OutboxMessage
		s.f.expectSerializable()
		s.f.reads.EXPECT().ReservationByIDForUpdate(gomock.Any(), snap.ID).Return(snap, nil)
		s.f.reservations.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlstore.DBTX, res *reservation.Reservation) error {
				s.Equal(reservation.StatusCancelled, res.Status())
				return nil
			})
		s.f.expectEvent(&events)
		s.f.queries.EXPECT().GetByID(gomock.Any(), s.userID, snap.ID).Return(viewOf(snap.ID), nil)

		_, err := s.uc.UpdateReservation(s.ctx, snap.ID, commands.UpdateReservationRequest{Status: &status}, s.userID)

		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(commands.EventReservationCancelled, events[0].EventType)
	})

	s.Run("error: owner cannot activate", func() {
		s.SetupTest()
		snap := reservationSnapshot(s.userID, s.unitID, reservation.StatusConfirmed)
		status := "active"
		s.f.expectSerializable()
		s.f.reads.EXPECT().ReservationByIDForUpdate(gomock.Any(), snap.ID).Return(snap, nil)

		_, err := s.uc.UpdateReservation(s.ctx, snap.ID, commands.UpdateReservationRequest{Status: &status}, s.userID)

		s.Equal(errs.KindState, errs.KindOf(err))
		s.True(errs.Is(err, reservation.ErrTransitionNotAllowed))
	})
}

// ================================================================================
// CancelReservation
// ================================================================================

func (s *ReservationCommandsTestSuite) TestCancelReservation() {
	for _, status := range []reservation.Status{reservation.StatusPending, reservation.StatusConfirmed, reservation.StatusActive} {
		s.Run("success: cancels from "+status.String(), func() {
			s.SetupTest()
			snap := reservationSnapshot(s.userID, s.unitID, status)
			var events []shared.OutboxMessage
			s.f.expectWithin()
			s.f.reads.EXPECT().ReservationByIDForUpdate(gomock.Any(), snap.ID).Return(snap, nil)
			s.f.reservations.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			s.f.expectEvent(&events)

			ok, err := s.uc.CancelReservation(s.ctx, snap.ID, s.userID)

			s.Require().NoError(err)
			s.True(ok)
			s.Require().Len(events, 1)
			s.Equal(commands.EventReservationCancelled, events[0].EventType)
		})
	}

	for _, status := range []reservation.Status{reservation.StatusCompleted, reservation.StatusCancelled} {
		s.Run("error: "+status.String()+" is terminal", func() {
			s.SetupTest()
			snap := reservationSnapshot(s.userID, s.unitID, status)
			s.f.expectWithin()
			s.f.reads.EXPECT().ReservationByIDForUpdate(gomock.Any(), snap.ID).Return(snap, nil)

			ok, err := s.uc.CancelReservation(s.ctx, snap.ID, s.userID)

			s.False(ok)
			s.Equal(errs.KindState, errs.KindOf(err))
		})
	}

	s.Run("error: missing reservation", func() {
		s.SetupTest()
		id := uuid.New()
		s.f.expectWithin()
		s.f.reads.EXPECT().ReservationByIDForUpdate(gomock.Any(), id).Return(nil, notFound("reservation not found"))

		_, err := s.uc.CancelReservation(s.ctx, id, s.userID)

		s.True(errs.Is(err, commands.ErrReservationNotFound))
	})

	s.Run("error: store failure is transient", func() {
		s.SetupTest()
		id := uuid.New()
		s.f.expectWithin()
		s.f.reads.EXPECT().ReservationByIDForUpdate(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("failed to lock reservation", errors.New("connection reset")))

		_, err := s.uc.CancelReservation(s.ctx, id, s.userID)

		s.Equal(errs.KindTransient, errs.KindOf(err))
	})
}
