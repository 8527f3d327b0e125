package queries

import (
	"context"
	"sort"

	"courierhub/internal/core/ports"
)

// GetActiveOrdersQueryHandler lists open orders for a customer, newest status
// change first.
type GetActiveOrdersQueryHandler struct {
	finder ports.ActiveOrderFinder
}

func NewGetActiveOrdersQueryHandler(finder ports.ActiveOrderFinder) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{finder: finder}
}

// Handle never returns a nil slice on success.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.finder.FindActiveOrdersByCustomer(ctx, query.CustomerID())
	if err != nil {
		return nil, err
	}

	result := make([]GetActiveOrdersQueryResponse, 0, len(orders))
	for _, o := range orders {
		if o.Status().IsTerminal() {
			continue
		}

		resp := GetActiveOrdersQueryResponse{
			OrderID:         o.ID(),
			Status:          o.Status(),
			StatusUpdatedAt: o.StatusUpdatedAt(),
		}
		if loc, ok := o.DeliveryLocation(); ok {
			resp.DeliveryLocation = &loc
		}
		result = append(result, resp)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StatusUpdatedAt.After(result[j].StatusUpdatedAt)
	})

	return result, nil
}
