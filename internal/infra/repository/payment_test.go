//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse-booking/internal/domain/payment"
	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/repository"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/errs"
	"warehouse-booking/internal/pkg/pgconv"
	repositorymock "warehouse-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var paymentNow = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

func newPendingPayment(t *testing.T) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(uuid.New(), decimal.NewFromInt(300), decimal.NewFromInt(900),
		payment.MethodBankTransfer, nil, nil, paymentNow)
	require.NoError(t, err)
	return p
}

func TestPaymentRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success: amount is stored as numeric", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockPaymentWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewPaymentRepository(mockQueries, mockDB)
		p := newPendingPayment(t)

		mockQueries.EXPECT().CreatePayment(ctx, mockDB, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlstore.DBTX, arg sqlstore.CreatePaymentParams) (uuid.UUID, error) {
				amount, err := pgconv.DecimalFromNumeric(arg.Amount)
				require.NoError(t, err)
				assert.True(t, decimal.NewFromInt(300).Equal(amount))
				assert.Equal(t, "pending", arg.Status)
				assert.Equal(t, "bank_transfer", arg.Method)
				assert.False(t, arg.PaidAt.Valid)
				return arg.ID, nil
			})

		id, err := repo.Create(ctx, mockDB, p)

		require.NoError(t, err)
		assert.Equal(t, p.ID(), id)
	})

	t.Run("error: reservation vanished", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockPaymentWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewPaymentRepository(mockQueries, mockDB)

		mockQueries.EXPECT().CreatePayment(ctx, mockDB, gomock.Any()).
			Return(uuid.Nil, &pgconn.PgError{Code: "23503"})

		_, err := repo.Create(ctx, mockDB, newPendingPayment(t))

		assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated))
	})
}

func TestPaymentRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		affected   int64
		dbErr      error
		expectKind infra.RepositoryErrorKind
		expectErr  error
	}{
		{name: "success: settled payment persisted", affected: 1},
		{name: "error: payment completed by another transaction", affected: 0, expectErr: payment.ErrAlreadyCompleted},
		{name: "error: database error occurs", dbErr: errors.New("database connection error"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockPaymentWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewPaymentRepository(mockQueries, mockDB)
			p := newPendingPayment(t)
			require.NoError(t, p.Complete(paymentNow.Add(time.Hour)))

			mockQueries.EXPECT().UpdatePaymentStatus(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ sqlstore.DBTX, arg sqlstore.UpdatePaymentStatusParams) (int64, error) {
					assert.Equal(t, "completed", arg.Status)
					assert.True(t, arg.PaidAt.Valid)
					return tc.affected, tc.dbErr
				})

			err := repo.UpdateStatus(ctx, mockDB, p)

			switch {
			case tc.expectErr != nil:
				assert.True(t, errs.Is(err, tc.expectErr), "got (%v)", err)
				assert.Equal(t, errs.KindInternal, errs.KindOf(err), "categorised by the use case, not the store")
			case tc.expectKind != "":
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
