package ports

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/services"
)

// RouteProvider resolves a single driving leg between two points.
type RouteProvider interface {
	Leg(ctx context.Context, from, to kernel.Location) (services.Leg, error)
}

// Clock supplies the current time. Injected so timestamps are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
