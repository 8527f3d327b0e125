package queries

import (
	"context"
	"fmt"

	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
)

// GetOrderRouteQueryHandler plans the order's remaining trip and resolves each
// leg against the directions provider, one leg at a time in travel order.
type GetOrderRouteQueryHandler struct {
	store    OrderReader
	provider ports.RouteProvider
	planner  services.RoutePlanner
	clock    ports.Clock
}

func NewGetOrderRouteQueryHandler(
	store OrderReader,
	provider ports.RouteProvider,
	clock ports.Clock,
) GetOrderRouteQueryHandler {
	return GetOrderRouteQueryHandler{
		store:    store,
		provider: provider,
		planner:  services.NewRoutePlanner(),
		clock:    clock,
	}
}

// Handle returns the route estimate. Provider failures are wrapped in
// ErrRouteUnavailable; a partial result is never returned.
func (h GetOrderRouteQueryHandler) Handle(ctx context.Context, query GetOrderRouteQuery) (services.RouteInfo, error) {
	if err := query.Validate(); err != nil {
		return services.RouteInfo{}, err
	}

	o, err := h.store.FindOrderByID(ctx, query.OrderID())
	if err != nil {
		return services.RouteInfo{}, err
	}

	segments, err := h.planner.Plan(o)
	if err != nil {
		return services.RouteInfo{}, err
	}

	legs := make([]services.Leg, 0, len(segments))
	for _, s := range segments {
		leg, legErr := h.provider.Leg(ctx, s.From, s.To)
		if legErr != nil {
			return services.RouteInfo{}, fmt.Errorf("%w: %w", ErrRouteUnavailable, legErr)
		}
		legs = append(legs, leg)
	}

	return h.planner.Summarize(legs, h.clock.Now()), nil
}
