package commands_test

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) FindOrderByID(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderStore) UpdateOrderFields(ctx context.Context, id string, fields ports.OrderFields) (*order.Order, error) {
	args := m.Called(ctx, id, fields)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 8, 4, 12, 30, 0, 0, time.UTC)
