// Package queries contains read-only operations over order projections.
package queries

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrGetOrderSnapshotQueryIsNotConstructed = errors.New(
	"GetOrderSnapshotQuery must be created via NewGetOrderSnapshotQuery constructor",
)

// GetOrderSnapshotQuery fetches the current state of one order, sent to a
// customer right after it subscribes.
type GetOrderSnapshotQuery struct {
	orderID string
	guard   guard.ConstructorGuard
}

func NewGetOrderSnapshotQuery(orderID string) (GetOrderSnapshotQuery, error) {
	if orderID == "" {
		return GetOrderSnapshotQuery{}, errs.NewValueIsRequiredError("orderId")
	}
	return GetOrderSnapshotQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderSnapshotQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSnapshotQueryIsNotConstructed)
}

func (q GetOrderSnapshotQuery) OrderID() string {
	return q.orderID
}

// GetOrderSnapshotQueryResponse is the order_data payload.
// DeliveryLocation is nil until the courier has reported a position.
type GetOrderSnapshotQueryResponse struct {
	OrderID          string
	Status           order.Status
	DeliveryLocation *kernel.Location
	LastUpdated      time.Time
}
