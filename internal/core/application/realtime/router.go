package realtime

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
)

// Topic names a membership set: a customer session, a courier session or an
// order's subscribers.
type Topic string

const (
	customerTopicPrefix = "customer:"
	courierTopicPrefix  = "courier:"
	orderTopicPrefix    = "order:"
)

func CustomerTopic(customerID string) Topic { return Topic(customerTopicPrefix + customerID) }
func CourierTopic(courierID string) Topic   { return Topic(courierTopicPrefix + courierID) }
func OrderTopic(orderID string) Topic       { return Topic(orderTopicPrefix + orderID) }

func (t Topic) IsOrder() bool {
	return strings.HasPrefix(string(t), orderTopicPrefix)
}

// Transport delivers one event to one connection. Send must not block on
// network I/O. It returns errs.ErrConnectionNotFound when the connection is
// already closed, which callers treat as a silent no-op.
type Transport interface {
	Send(id kernel.UUID, ev Event) error
}

// Router keeps topic membership and fans events out over a Transport.
//
// Membership changes and publishes hold the lock only long enough to copy or
// edit a set; events are handed to the transport after the lock is released.
// Empty topics are not removed on Leave: Sweep collects them.
type Router struct {
	mu        sync.RWMutex
	topics    map[Topic]map[kernel.UUID]struct{}
	transport Transport
	logger    *slog.Logger
}

func NewRouter(transport Transport, logger *slog.Logger) *Router {
	return &Router{
		topics:    make(map[Topic]map[kernel.UUID]struct{}),
		transport: transport,
		logger:    logger.With("component", "topic_router"),
	}
}

// Join adds id to topic and returns the member count afterwards.
// Joining twice is harmless.
func (r *Router) Join(topic Topic, id kernel.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.topics[topic]
	if !ok {
		members = make(map[kernel.UUID]struct{})
		r.topics[topic] = members
	}
	members[id] = struct{}{}
	return len(members)
}

// Leave removes id from topic and returns the member count afterwards.
// Leaving a topic the connection is not in is harmless.
func (r *Router) Leave(topic Topic, id kernel.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.topics[topic]
	if !ok {
		return 0
	}
	delete(members, id)
	return len(members)
}

// Members returns the union of the topics' members, each connection once.
func (r *Router) Members(topics ...Topic) []kernel.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[kernel.UUID]struct{})
	ids := make([]kernel.UUID, 0)
	for _, topic := range topics {
		for id := range r.topics[topic] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// Size returns the member count of topic.
func (r *Router) Size(topic Topic) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.topics[topic])
}

// Publish sends ev to every member of the given topics, at most once per
// connection, and returns the number of connections targeted.
func (r *Router) Publish(ev Event, topics ...Topic) int {
	ids := r.Members(topics...)
	r.SendAll(ids, ev)
	return len(ids)
}

// SendAll sends ev to each id. Closed connections are skipped silently; any
// other transport error is logged and skipped.
func (r *Router) SendAll(ids []kernel.UUID, ev Event) {
	for _, id := range ids {
		r.Send(id, ev)
	}
}

// Send delivers ev to a single connection with the same error policy as SendAll.
func (r *Router) Send(id kernel.UUID, ev Event) {
	err := r.transport.Send(id, ev)
	if err == nil || errors.Is(err, errs.ErrConnectionNotFound) {
		return
	}
	r.logger.WarnContext(context.Background(), "Dropping event",
		"connection", id.String(), "event", EventName(ev), "error", err)
}

// Sweep deletes empty topics and returns how many were removed.
func (r *Router) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for topic, members := range r.topics {
		if len(members) == 0 {
			delete(r.topics, topic)
			removed++
		}
	}
	return removed
}

// CountActive returns how many non-empty topics start with prefix.
func (r *Router) CountActive(prefix string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for topic, members := range r.topics {
		if len(members) > 0 && strings.HasPrefix(string(topic), prefix) {
			n++
		}
	}
	return n
}

// Len returns the number of topics, empty ones included.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.topics)
}
