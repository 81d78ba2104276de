//go:build unit

package pgconv_test

import (
	"testing"

	"warehouse-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalNumeric(t *testing.T) {
	t.Run("success: numeric keeps exact scale", func(t *testing.T) {
		for _, s := range []string{"900.00", "0.01", "1000000", "33.33", "-5.5"} {
			d := decimal.RequireFromString(s)
			got, err := pgconv.DecimalFromNumeric(pgconv.DecimalToNumeric(d))
			require.NoError(t, err)
			assert.True(t, d.Equal(got), "%s != %s", s, got)
		}
	})

	t.Run("error: invalid numeric", func(t *testing.T) {
		_, err := pgconv.DecimalFromNumeric(pgtype.Numeric{})
		require.ErrorIs(t, err, pgconv.ErrInvalidNumeric)

		_, err = pgconv.DecimalFromNumeric(pgtype.Numeric{NaN: true, Valid: true})
		require.ErrorIs(t, err, pgconv.ErrInvalidNumeric)
	})

	t.Run("success: null numeric becomes nil pointer", func(t *testing.T) {
		got, err := pgconv.DecimalPtrFromNumeric(pgtype.Numeric{})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.False(t, pgconv.IsNoRows(assert.AnError))
}
