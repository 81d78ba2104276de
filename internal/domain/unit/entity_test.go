//go:build unit

package unit_test

import (
	"testing"

	"warehouse-booking/internal/domain/unit"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnit(t *testing.T) {
	t.Run("利用可能かつ有効なら予約可能", func(t *testing.T) {
		cases := []struct {
			name      string
			available bool
			active    bool
			bookable  bool
		}{
			{"利用可能・有効", true, true, true},
			{"利用不可", false, true, false},
			{"無効", true, false, false},
			{"利用不可・無効", false, false, false},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				u, err := unit.NewUnit(uuid.New(), uuid.New(), "B-2", decimal.NewFromInt(20), c.available, c.active, nil)
				require.NoError(t, err)
				assert.Equal(t, c.bookable, u.IsBookable())
			})
		}
	})

	t.Run("入力検証", func(t *testing.T) {
		_, err := unit.NewUnit(uuid.New(), uuid.New(), "  ", decimal.NewFromInt(20), true, true, nil)
		require.ErrorIs(t, err, unit.ErrEmptyUnitNumber)

		_, err = unit.NewUnit(uuid.New(), uuid.New(), "C-3", decimal.Zero, true, true, nil)
		require.ErrorIs(t, err, unit.ErrNonPositiveArea)
	})
}
