package realtime

import (
	"fmt"
	"sort"
	"sync"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
)

// Role is the identity kind a connection is bound to.
type Role int

const (
	RoleNone Role = iota
	RoleCustomer
	RoleCourier
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleCourier:
		return "courier"
	case RoleNone:
		return "none"
	default:
		return "unknown"
	}
}

// Connection is a point-in-time copy of a registered connection.
type Connection struct {
	ID         kernel.UUID
	Role       Role
	IdentityID string
	Topics     []Topic
}

type connRecord struct {
	role     Role
	identity string
	topics   map[Topic]struct{}
}

// Registry owns every live connection and what it is bound to. It is safe
// for concurrent use; no method blocks on I/O.
type Registry struct {
	mu    sync.RWMutex
	conns map[kernel.UUID]*connRecord
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[kernel.UUID]*connRecord)}
}

// Register creates an unauthenticated connection and returns its id.
func (r *Registry) Register() kernel.UUID {
	id := kernel.NewUUID()

	r.mu.Lock()
	r.conns[id] = &connRecord{topics: make(map[Topic]struct{})}
	r.mu.Unlock()

	return id
}

// Lookup returns a copy of the connection, with topics sorted.
func (r *Registry) Lookup(id kernel.UUID) (Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.conns[id]
	if !ok {
		return Connection{}, false
	}
	return snapshot(id, rec), true
}

// Bind moves an unauthenticated connection to role/identity.
//
// Returns:
//   - (true, nil) on the first successful bind
//   - (false, nil) when the connection is already bound to the same role and identity
//   - errs.ErrAlreadyBound (wrapped) when it is bound to anything else
//   - errs.ErrConnectionNotFound when the connection is gone
func (r *Registry) Bind(id kernel.UUID, role Role, identity string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.conns[id]
	if !ok {
		return false, errs.ErrConnectionNotFound
	}

	switch {
	case rec.role == RoleNone:
		rec.role = role
		rec.identity = identity
		return true, nil
	case rec.role == role && rec.identity == identity:
		return false, nil
	default:
		return false, fmt.Errorf("%w as %s %q", errs.ErrAlreadyBound, rec.role, rec.identity)
	}
}

// Track records that the connection is a member of topic, so Unregister can
// report it. Returns false when the connection is gone.
func (r *Registry) Track(id kernel.UUID, topic Topic) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.conns[id]
	if !ok {
		return false
	}
	rec.topics[topic] = struct{}{}
	return true
}

// Untrack is the inverse of Track.
func (r *Registry) Untrack(id kernel.UUID, topic Topic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.conns[id]; ok {
		delete(rec.topics, topic)
	}
}

// Unregister removes the connection and returns what it was bound to and
// subscribed to. Calling it twice is harmless; the second call reports false.
func (r *Registry) Unregister(id kernel.UUID) (Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.conns[id]
	if !ok {
		return Connection{}, false
	}
	delete(r.conns, id)
	return snapshot(id, rec), true
}

// IDsByRole lists the connections currently bound to role.
func (r *Registry) IDsByRole(role Role) []kernel.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]kernel.UUID, 0)
	for id, rec := range r.conns {
		if rec.role == role {
			ids = append(ids, id)
		}
	}
	return ids
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

func snapshot(id kernel.UUID, rec *connRecord) Connection {
	topics := make([]Topic, 0, len(rec.topics))
	for t := range rec.topics {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i] < topics[j] })

	return Connection{
		ID:         id,
		Role:       rec.role,
		IdentityID: rec.identity,
		Topics:     topics,
	}
}
