package queries

import (
	"errors"

	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var (
	ErrGetOrderRouteQueryIsNotConstructed = errors.New(
		"GetOrderRouteQuery must be created via NewGetOrderRouteQuery constructor",
	)
	// ErrRouteUnavailable wraps failures of the directions provider.
	ErrRouteUnavailable = errors.New("route information unavailable")
)

// GetOrderRouteQuery asks for the remaining distance and duration of an order's trip.
//
// Example:
//
//	query, _ := NewGetOrderRouteQuery("O1")
//	info, err := handler.Handle(ctx, query)
//	fmt.Printf("%.2f km, %.2f min\n", info.DistanceKm, info.DurationMin)
type GetOrderRouteQuery struct {
	orderID string
	guard   guard.ConstructorGuard
}

func NewGetOrderRouteQuery(orderID string) (GetOrderRouteQuery, error) {
	if orderID == "" {
		return GetOrderRouteQuery{}, errs.NewValueIsRequiredError("orderId")
	}
	return GetOrderRouteQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderRouteQueryIsNotConstructed)
}

func (q GetOrderRouteQuery) OrderID() string {
	return q.orderID
}
