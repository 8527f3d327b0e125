package queries

import (
	"context"

	"courierhub/internal/core/domain/model/order"
)

// OrderReader loads an order projection.
type OrderReader interface {
	FindOrderByID(ctx context.Context, id string) (*order.Order, error)
}

type GetOrderSnapshotQueryHandler struct {
	store OrderReader
}

func NewGetOrderSnapshotQueryHandler(store OrderReader) GetOrderSnapshotQueryHandler {
	return GetOrderSnapshotQueryHandler{store: store}
}

// Handle loads the order. LastUpdated is the last status change, or the last
// location report when the status timestamp was never recorded.
func (h GetOrderSnapshotQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSnapshotQuery,
) (GetOrderSnapshotQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSnapshotQueryResponse{}, err
	}

	o, err := h.store.FindOrderByID(ctx, query.OrderID())
	if err != nil {
		return GetOrderSnapshotQueryResponse{}, err
	}

	resp := GetOrderSnapshotQueryResponse{
		OrderID:     o.ID(),
		Status:      o.Status(),
		LastUpdated: o.StatusUpdatedAt(),
	}
	if loc, ok := o.DeliveryLocation(); ok {
		resp.DeliveryLocation = &loc
	}
	if at, ok := o.LastLocationUpdate(); ok && resp.LastUpdated.IsZero() {
		resp.LastUpdated = at
	}

	return resp, nil
}
