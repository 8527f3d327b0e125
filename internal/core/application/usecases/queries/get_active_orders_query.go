package queries

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery lists a customer's orders that are still open, i.e. in
// any of the non-terminal statuses.
type GetActiveOrdersQuery struct {
	customerID string
	guard      guard.ConstructorGuard
}

func NewGetActiveOrdersQuery(customerID string) (GetActiveOrdersQuery, error) {
	if customerID == "" {
		return GetActiveOrdersQuery{}, errs.NewValueIsRequiredError("customerId")
	}
	return GetActiveOrdersQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

func (q GetActiveOrdersQuery) CustomerID() string {
	return q.customerID
}

// GetActiveOrdersQueryResponse is one open order.
type GetActiveOrdersQueryResponse struct {
	OrderID          string
	Status           order.Status
	StatusUpdatedAt  time.Time
	DeliveryLocation *kernel.Location
}
