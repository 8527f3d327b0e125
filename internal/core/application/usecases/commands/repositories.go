// Package commands contains the operations couriers use to change an order:
// reporting a position and moving the order through its lifecycle.
// All commands follow the same pattern: a validated command value built by
// its constructor, and a handler that persists through the Order Store and
// returns the updated projection so the caller can broadcast it.
package commands

import (
	"context"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"
)

// Order Store views used by the handlers. Each handler asks for the smallest
// slice of ports.OrderStore it needs.
type (
	// OrderReader loads an order projection.
	OrderReader interface {
		FindOrderByID(ctx context.Context, id string) (*order.Order, error)
	}

	// OrderWriter applies a partial update to an order.
	OrderWriter interface {
		UpdateOrderFields(ctx context.Context, id string, fields ports.OrderFields) (*order.Order, error)
	}

	// OrderStore reads and writes orders.
	OrderStore interface {
		OrderReader
		OrderWriter
	}
)
