package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand records a courier's current position for an order.
//
// Example:
//
//	cmd, err := NewUpdateLocationCommand("O1", 12.97, 77.59)
//	if err != nil {
//	    return err // ValueIsRequired or ValueIsOutOfRange
//	}
//	updated, err := handler.Handle(ctx, cmd)
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	orderID  string
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewUpdateLocationCommand validates the order id and the coordinate pair.
func NewUpdateLocationCommand(orderID string, lat, lng float64) (UpdateLocationCommand, error) {
	cmd := UpdateLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLocation(lat, lng),
	); err != nil {
		return UpdateLocationCommand{}, err
	}

	return cmd, nil
}

func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

func (c UpdateLocationCommand) OrderID() string {
	return c.orderID
}

func (c UpdateLocationCommand) Location() kernel.Location {
	return c.location
}

func (c *UpdateLocationCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateLocationCommand) setLocation(lat, lng float64) error {
	loc, err := kernel.NewLocation(lat, lng)
	if err != nil {
		return err
	}
	c.location = loc
	return nil
}
