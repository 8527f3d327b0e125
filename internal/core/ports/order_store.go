// Package ports defines the contracts between the tracking core and the
// systems around it: the durable Order Store, presence bookkeeping, the
// directions provider and the clock. Adapters under internal/adapters/out
// implement them; the core depends only on these interfaces.
package ports

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
)

// OrderFields is a partial update for an order record. Nil fields are left
// untouched.
type OrderFields struct {
	Status             *order.Status
	StatusUpdatedAt    *time.Time
	DeliveryLocation   *kernel.Location
	LastLocationUpdate *time.Time
}

// IsEmpty reports whether the update would not change anything.
func (f OrderFields) IsEmpty() bool {
	return f.Status == nil && f.StatusUpdatedAt == nil &&
		f.DeliveryLocation == nil && f.LastLocationUpdate == nil
}

// OrderStore is the narrow read/write port onto the durable order records
// owned by the rest of the platform.
type OrderStore interface {
	// FindOrderByID returns the order projection.
	//
	// Errors:
	//   - *errs.ObjectNotFoundError when no order has that id
	//   - *errs.StoreUnavailableError when the store failed or timed out
	FindOrderByID(ctx context.Context, id string) (*order.Order, error)

	// UpdateOrderFields applies fields to the order and returns the updated
	// projection. When fields.Status is set, the write is refused atomically
	// if the stored status is already terminal.
	//
	// Errors:
	//   - *errs.ObjectNotFoundError when no order has that id
	//   - *errs.InvalidTransitionError when a status write hits a closed order
	//   - *errs.StoreUnavailableError when the store failed or timed out
	UpdateOrderFields(ctx context.Context, id string, fields OrderFields) (*order.Order, error)
}

// ActiveOrderFinder lists a customer's orders that are not yet closed.
// Implemented by stores that can filter on status.
type ActiveOrderFinder interface {
	FindActiveOrdersByCustomer(ctx context.Context, customerID string) ([]*order.Order, error)
}
