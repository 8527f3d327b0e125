package commands

import (
	"errors"

	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand moves an order to a new lifecycle status.
// The status is kept as received; whether it names a recognized status is
// decided by the handler against the order's current state, so a bad name is
// reported as an invalid transition rather than a malformed request.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID string
	status  string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand requires both a non-empty order id and status.
func NewChangeOrderStatusCommand(orderID, status string) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() string {
	return c.orderID
}

// Status returns the requested status name, e.g. "picked_up".
func (c ChangeOrderStatusCommand) Status() string {
	return c.status
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setStatus(status string) error {
	if status == "" {
		return errs.NewValueIsRequiredError("status")
	}
	c.status = status
	return nil
}
