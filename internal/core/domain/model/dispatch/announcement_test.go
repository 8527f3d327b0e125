package dispatch_test

import (
	"math"
	"testing"

	"courierhub/internal/core/domain/model/dispatch"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnnouncement(t *testing.T) {
	t.Run("should build valid announcement", func(t *testing.T) {
		a, err := dispatch.NewAnnouncement("6890cf51d210ee52276670da", "Pizza Hub", "21, MG Road", 499)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "6890cf51d210ee52276670da", a.OrderID())
		assert.Equal(t, "Pizza Hub", a.RestaurantName())
		assert.Equal(t, "21, MG Road", a.Address())
		assert.InDelta(t, 499.0, a.Amount(), 0.0001)
	})

	t.Run("should allow zero amount", func(t *testing.T) {
		_, err := dispatch.NewAnnouncement("O1", "Pizza Hub", "21, MG Road", 0)
		require.NoError(t, err)
	})

	t.Run("should report every missing field", func(t *testing.T) {
		_, err := dispatch.NewAnnouncement("", "", "", 10)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		for _, field := range []string{"orderId", "restaurantName", "address"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("should reject bad amounts", func(t *testing.T) {
		for _, amount := range []float64{-1, math.NaN(), math.Inf(1)} {
			_, err := dispatch.NewAnnouncement("O1", "Pizza Hub", "21, MG Road", amount)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		var a dispatch.Announcement
		require.ErrorIs(t, a.Validate(), dispatch.ErrAnnouncementIsNotConstructed)
	})
}
