package services

import (
	"errors"
	"math"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"
)

// ErrRouteEndpointsMissing is returned when an order lacks the restaurant or
// customer location needed to plan its route.
var ErrRouteEndpointsMissing = errs.NewValueIsRequiredError("restaurant and customer locations")

// Segment is one driving leg to resolve, in travel order.
type Segment struct {
	From kernel.Location
	To   kernel.Location
}

// Leg is a resolved Segment.
type Leg struct {
	DistanceKm  float64
	DurationMin float64
}

// RouteInfo is the total estimate for an order's remaining trip.
type RouteInfo struct {
	DistanceKm    float64
	DurationMin   float64
	LastRefreshed time.Time
}

// RoutePlanner is a domain service that estimates the trip a courier still
// has to make for an order.
//
// Business rules:
//   - The trip always ends with restaurant -> customer
//   - While a courier position is known, the trip starts with courier -> restaurant
//   - Totals are rounded to two decimals (km and minutes)
//
// Example usage:
//
//	planner := services.NewRoutePlanner()
//	segments, err := planner.Plan(o)
//	if err != nil {
//	    return err
//	}
//	legs := make([]services.Leg, 0, len(segments))
//	for _, s := range segments {
//	    leg, err := provider.Leg(ctx, s.From, s.To)
//	    if err != nil {
//	        return err
//	    }
//	    legs = append(legs, leg)
//	}
//	info := planner.Summarize(legs, clock.Now())
type RoutePlanner struct{}

func NewRoutePlanner() RoutePlanner {
	return RoutePlanner{}
}

// Plan returns the segments of the order's remaining trip.
//
// Returns:
//   - one segment (restaurant -> customer) when no courier position is known
//   - two segments (courier -> restaurant, restaurant -> customer) otherwise
//   - ErrRouteEndpointsMissing when either end point is unknown
func (p RoutePlanner) Plan(o *order.Order) ([]Segment, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	restaurant, hasRestaurant := o.RestaurantLocation()
	customer, hasCustomer := o.CustomerLocation()
	if !hasRestaurant || !hasCustomer {
		return nil, ErrRouteEndpointsMissing
	}

	segments := make([]Segment, 0, 2)
	if courier, ok := o.DeliveryLocation(); ok {
		segments = append(segments, Segment{From: courier, To: restaurant})
	}
	segments = append(segments, Segment{From: restaurant, To: customer})

	return segments, nil
}

// Summarize adds up resolved legs.
func (p RoutePlanner) Summarize(legs []Leg, refreshedAt time.Time) RouteInfo {
	var distance, duration float64
	for _, leg := range legs {
		distance += leg.DistanceKm
		duration += leg.DurationMin
	}

	return RouteInfo{
		DistanceKm:    round2(distance),
		DurationMin:   round2(duration),
		LastRefreshed: refreshedAt,
	}
}

// StraightLineLeg estimates a leg from the great-circle distance at the given
// average speed. Used when no directions provider is configured.
func StraightLineLeg(from, to kernel.Location, speedKmh float64) (Leg, error) {
	if speedKmh <= 0 {
		return Leg{}, errs.NewValueIsOutOfRangeError("speedKmh", speedKmh, 0, "+Inf")
	}

	km, err := from.DistanceKm(to)
	if err != nil {
		return Leg{}, errors.Join(errs.NewValueIsInvalidError("segment"), err)
	}

	return Leg{
		DistanceKm:  round2(km),
		DurationMin: round2(km / speedKmh * 60),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
