//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/repository"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/pgconv"
	"warehouse-booking/tests/common/builder"
	repositorymock "warehouse-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Create Reservation Tests
// =============================================================================

func TestReservationRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockReservationWriteQueries, *reservation.Reservation, sqlstore.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: reservation created with its period and price",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, res *reservation.Reservation, tx sqlstore.DBTX) {
				mock.EXPECT().CreateReservation(ctx, tx, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ sqlstore.DBTX, arg sqlstore.CreateReservationParams) (uuid.UUID, error) {
						assert.Equal(t, res.ID(), arg.ID)
						assert.Equal(t, res.UnitID(), arg.UnitID)
						assert.True(t, res.Period().Start().Equal(arg.StartAt.Time))
						assert.True(t, res.Period().End().Equal(arg.EndAt.Time))
						assert.Equal(t, "pending", arg.Status)
						total, err := pgconv.DecimalFromNumeric(arg.TotalPrice)
						require.NoError(t, err)
						assert.True(t, decimal.RequireFromString("900").Equal(total))
						return arg.ID, nil
					})
			},
		},
		{
			name: "error: exclusion constraint reports an overlap",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx sqlstore.DBTX) {
				overlap := &pgconn.PgError{Code: "23P01", ConstraintName: "reservations_no_overlap",
					Message: "conflicting key value violates exclusion constraint"}
				mock.EXPECT().CreateReservation(ctx, tx, gomock.Any()).Return(uuid.Nil, overlap)
			},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
		{
			name: "error: serialization failure",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx sqlstore.DBTX) {
				mock.EXPECT().CreateReservation(ctx, tx, gomock.Any()).
					Return(uuid.Nil, &pgconn.PgError{Code: "40001", Message: "could not serialize access"})
			},
			expectedError: true,
			expectKind:    infra.KindSerialization,
		},
		{
			name: "error: unknown unit violates the foreign key",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx sqlstore.DBTX) {
				mock.EXPECT().CreateReservation(ctx, tx, gomock.Any()).
					Return(uuid.Nil, &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})
			},
			expectedError: true,
			expectKind:    infra.KindForeignKeyViolated,
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx sqlstore.DBTX) {
				mock.EXPECT().CreateReservation(ctx, tx, gomock.Any()).Return(uuid.Nil, errors.New("database connection error"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)

			res, err := builder.NewReservationBuilder().BuildDomain()
			require.NoError(t, err)

			tc.setupMock(mockQueries, res, mockDB)

			id, actualError := repo.Create(ctx, mockDB, res)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, actualError)
				assert.Equal(t, uuid.Nil, id)
			} else {
				require.NoError(t, actualError)
				assert.Equal(t, res.ID(), id)
			}
		})
	}
}

// =============================================================================
// Update Reservation Tests
// =============================================================================

func TestReservationRepository_Update(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockReservationWriteQueries, sqlstore.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: reservation updated",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, tx sqlstore.DBTX) {
				mock.EXPECT().UpdateReservation(ctx, tx, gomock.Any()).Return(int64(1), nil)
			},
		},
		{
			name: "error: no row matched",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, tx sqlstore.DBTX) {
				mock.EXPECT().UpdateReservation(ctx, tx, gomock.Any()).Return(int64(0), nil)
			},
			expectedError: true,
			expectKind:    infra.KindNotFound,
		},
		{
			name: "error: reschedule hits the exclusion constraint",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, tx sqlstore.DBTX) {
				mock.EXPECT().UpdateReservation(ctx, tx, gomock.Any()).
					Return(int64(0), &pgconn.PgError{Code: "23P01"})
			},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
		{
			name: "error: deadlock detected",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, tx sqlstore.DBTX) {
				mock.EXPECT().UpdateReservation(ctx, tx, gomock.Any()).
					Return(int64(0), &pgconn.PgError{Code: "40P01"})
			},
			expectedError: true,
			expectKind:    infra.KindSerialization,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)

			res, err := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
				b.Status = reservation.StatusConfirmed
			}).BuildDomain()
			require.NoError(t, err)

			tc.setupMock(mockQueries, mockDB)

			actualError := repo.Update(ctx, mockDB, res)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}
