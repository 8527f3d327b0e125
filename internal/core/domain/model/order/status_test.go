package order_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should keep Unknown as zero value", func(t *testing.T) {
		var s order.Status
		assert.Equal(t, order.Unknown, s)
		assert.Error(t, s.Validate())
	})

	t.Run("should list ten valid statuses", func(t *testing.T) {
		all := order.AllStatuses()
		assert.Len(t, all, 10)
		for _, s := range all {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should mark exactly four terminal statuses", func(t *testing.T) {
		terminal := 0
		for _, s := range order.AllStatuses() {
			if s.IsTerminal() {
				terminal++
			}
		}
		assert.Equal(t, 4, terminal)
		assert.ElementsMatch(t, order.TerminalStatuses(),
			[]order.Status{order.Delivered, order.Cancelled, order.Failed, order.Refunded})
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse every wire name", func(t *testing.T) {
		names := []string{
			"placed", "confirmed", "preparing", "ready_for_pickup", "picked_up",
			"out_for_delivery", "delivered", "cancelled", "failed", "refunded",
		}

		for _, name := range names {
			t.Run(name, func(t *testing.T) {
				s, err := order.ParseStatus(name)
				require.NoError(t, err)
				assert.Equal(t, name, s.String())
			})
		}
	})

	t.Run("should reject unrecognized names", func(t *testing.T) {
		for _, name := range []string{"", "Placed", "teleported", "unknown"} {
			t.Run(fmt.Sprintf("%q", name), func(t *testing.T) {
				s, err := order.ParseStatus(name)
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.Equal(t, order.Unknown, s)
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ready_for_pickup", order.ReadyForPickup.String())
	assert.Equal(t, "unknown", order.Unknown.String())
	assert.Equal(t, "unknown", order.Status(99).String())
}

func TestStatus_TextEncoding(t *testing.T) {
	t.Run("should marshal as wire name", func(t *testing.T) {
		data, err := json.Marshal(map[string]order.Status{"status": order.OutForDelivery})
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"out_for_delivery"}`, string(data))
	})

	t.Run("should unmarshal wire name", func(t *testing.T) {
		var payload struct {
			Status order.Status `json:"status"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"status":"picked_up"}`), &payload))
		assert.Equal(t, order.PickedUp, payload.Status)
	})

	t.Run("should refuse to marshal invalid status", func(t *testing.T) {
		_, err := order.Unknown.MarshalText()
		require.Error(t, err)
	})
}

func TestStatus_TransitionTable(t *testing.T) {
	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			name := fmt.Sprintf("%s -> %s", from, to)
			t.Run(name, func(t *testing.T) {
				next, err := from.TransitionTo(to)

				if from.IsTerminal() {
					require.ErrorIs(t, err, errs.ErrInvalidTransition)
					assert.Equal(t, order.Unknown, next)
					return
				}

				require.NoError(t, err)
				assert.Equal(t, to, next)
			})
		}
	}
}

func TestStatus_TransitionToUnrecognized(t *testing.T) {
	t.Run("should reject unknown target from non-terminal status", func(t *testing.T) {
		_, err := order.Placed.TransitionTo(order.Unknown)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "placed -> unknown")
	})

	t.Run("should reject out of table target", func(t *testing.T) {
		err := order.Preparing.ValidateTransition(order.Status(42))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should reject transition from invalid current status", func(t *testing.T) {
		err := order.Unknown.ValidateTransition(order.Placed)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
