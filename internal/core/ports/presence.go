package ports

import "context"

// PresenceTracker mirrors which customers and couriers currently hold at least
// one live connection, so that other services can check availability without
// talking to this process.
//
// role is "customer" or "courier". Implementations must be safe for concurrent
// use; callers never hold locks while calling them.
type PresenceTracker interface {
	MarkOnline(ctx context.Context, role, id string) error
	MarkOffline(ctx context.Context, role, id string) error
	CountOnline(ctx context.Context, role string) (int64, error)
}

// NopPresence is the PresenceTracker used when no presence backend is configured.
type NopPresence struct{}

func (NopPresence) MarkOnline(context.Context, string, string) error  { return nil }
func (NopPresence) MarkOffline(context.Context, string, string) error { return nil }
func (NopPresence) CountOnline(context.Context, string) (int64, error) {
	return 0, nil
}
