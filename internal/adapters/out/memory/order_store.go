// Package memory provides an in-process Order Store used for local runs
// (STORE_DRIVER=memory) and for end-to-end tests of the socket and HTTP
// adapters. It applies the same terminal-status guard as the postgres store.
package memory

import (
	"context"
	"sync"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
)

var (
	_ ports.OrderStore        = (*OrderStore)(nil)
	_ ports.ActiveOrderFinder = (*OrderStore)(nil)
)

type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]order.State
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]order.State)}
}

// Add inserts or replaces an order.
func (s *OrderStore) Add(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID()] = o.State()
	return nil
}

func (s *OrderStore) FindOrderByID(_ context.Context, id string) (*order.Order, error) {
	s.mu.RLock()
	st, ok := s.orders[id]
	s.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}
	return order.RestoreOrder(st)
}

// UpdateOrderFields writes the set fields atomically. A status change on an
// order that is already terminal is refused.
func (s *OrderStore) UpdateOrderFields(_ context.Context, id string, fields ports.OrderFields) (*order.Order, error) {
	if fields.IsEmpty() {
		return nil, errs.NewValueIsRequiredError("fields")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}

	if fields.Status != nil {
		if st.Status.IsTerminal() {
			return nil, errs.NewInvalidTransitionError(st.Status.String(), fields.Status.String())
		}
		st.Status = *fields.Status
	}
	if fields.StatusUpdatedAt != nil {
		st.StatusUpdatedAt = *fields.StatusUpdatedAt
	}
	if fields.DeliveryLocation != nil {
		loc := *fields.DeliveryLocation
		st.DeliveryLocation = &loc
	}
	if fields.LastLocationUpdate != nil {
		at := *fields.LastLocationUpdate
		st.LastLocationUpdate = &at
	}

	updated, err := order.RestoreOrder(st)
	if err != nil {
		return nil, err
	}
	s.orders[id] = st
	return updated, nil
}

func (s *OrderStore) FindActiveOrdersByCustomer(_ context.Context, customerID string) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]*order.Order, 0)
	for _, st := range s.orders {
		if st.CustomerID != customerID || st.Status.IsTerminal() {
			continue
		}
		o, err := order.RestoreOrder(st)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
