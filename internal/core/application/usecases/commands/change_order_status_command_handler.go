package commands

import (
	"context"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies a status change.
//
// The order is loaded first so that the state machine can reject the change
// with the real current status in the error. The write itself is guarded
// again by the store, which refuses to overwrite a terminal status; two
// concurrent closers therefore cannot both succeed.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(store, ports.SystemClock{})
//	cmd, _ := NewChangeOrderStatusCommand("O1", "out_for_delivery")
//	updated, err := handler.Handle(ctx, cmd)
//	if errs.KindOf(err) == errs.KindInvalidTransition {
//	    // order already closed
//	}
type ChangeOrderStatusCommandHandler struct {
	store OrderStore
	clock ports.Clock
}

func NewChangeOrderStatusCommandHandler(store OrderStore, clock ports.Clock) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		store: store,
		clock: clock,
	}
}

// Handle returns the updated order, or:
//   - *errs.ObjectNotFoundError when the order does not exist
//   - *errs.InvalidTransitionError when the status is unrecognized or the order is closed
//   - *errs.StoreUnavailableError when the store failed
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	current, err := h.store.FindOrderByID(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	next, err := order.ParseStatus(cmd.Status())
	if err != nil {
		return nil, errs.NewInvalidTransitionErrorWithCause(current.Status().String(), cmd.Status(), err)
	}

	now := h.clock.Now()
	if err = current.ChangeStatus(next, now); err != nil {
		return nil, err
	}

	return h.store.UpdateOrderFields(ctx, cmd.OrderID(), ports.OrderFields{
		Status:          &next,
		StatusUpdatedAt: &now,
	})
}
