package commands

import (
	"context"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"
)

// UpdateLocationCommandHandler stores the courier position on the order.
// Location writes are last-write-wins and are accepted whatever the order's
// status, matching what the courier app reports.
type UpdateLocationCommandHandler struct {
	store OrderWriter
	clock ports.Clock
}

func NewUpdateLocationCommandHandler(store OrderWriter, clock ports.Clock) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		store: store,
		clock: clock,
	}
}

// Handle persists the position and returns the updated order.
// Store errors (NotFound, StoreUnavailable) are returned unchanged.
func (h UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	loc := cmd.Location()

	return h.store.UpdateOrderFields(ctx, cmd.OrderID(), ports.OrderFields{
		DeliveryLocation:   &loc,
		LastLocationUpdate: &now,
	})
}
