package realtime_test

import (
	"context"
	"sync"
	"time"

	"courierhub/internal/core/application/realtime"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 8, 4, 12, 30, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// recordingTransport keeps every event per connection.
type recordingTransport struct {
	mu     sync.Mutex
	events map[kernel.UUID][]realtime.Event
	closed map[kernel.UUID]bool
}

func newRecordingTransport() *recordingTransport {
	return &recordingTransport{
		events: make(map[kernel.UUID][]realtime.Event),
		closed: make(map[kernel.UUID]bool),
	}
}

func (t *recordingTransport) Send(id kernel.UUID, ev realtime.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed[id] {
		return errs.ErrConnectionNotFound
	}
	t.events[id] = append(t.events[id], ev)
	return nil
}

func (t *recordingTransport) close(id kernel.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed[id] = true
}

// take returns and clears the events recorded for id.
func (t *recordingTransport) take(id kernel.UUID) []realtime.Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	evs := t.events[id]
	delete(t.events, id)
	return evs
}

// fakeStore is an in-memory Order Store with the terminal-status guard.
type fakeStore struct {
	mu      sync.Mutex
	orders  map[string]order.State
	failAll error
}

func newFakeStore(orders ...*order.Order) *fakeStore {
	s := &fakeStore{orders: make(map[string]order.State)}
	for _, o := range orders {
		s.orders[o.ID()] = o.State()
	}
	return s
}

func (s *fakeStore) FindOrderByID(_ context.Context, id string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAll != nil {
		return nil, s.failAll
	}
	st, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}
	return order.RestoreOrder(st)
}

func (s *fakeStore) UpdateOrderFields(_ context.Context, id string, f ports.OrderFields) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAll != nil {
		return nil, s.failAll
	}
	st, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}
	if f.Status != nil {
		if st.Status.IsTerminal() {
			return nil, errs.NewInvalidTransitionError(st.Status.String(), f.Status.String())
		}
		st.Status = *f.Status
	}
	if f.StatusUpdatedAt != nil {
		st.StatusUpdatedAt = *f.StatusUpdatedAt
	}
	if f.DeliveryLocation != nil {
		loc := *f.DeliveryLocation
		st.DeliveryLocation = &loc
	}
	if f.LastLocationUpdate != nil {
		at := *f.LastLocationUpdate
		st.LastLocationUpdate = &at
	}
	s.orders[id] = st
	return order.RestoreOrder(st)
}

func (s *fakeStore) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAll = err
}

type MockPresence struct{ mock.Mock }

func (m *MockPresence) MarkOnline(ctx context.Context, role, id string) error {
	return m.Called(ctx, role, id).Error(0)
}

func (m *MockPresence) MarkOffline(ctx context.Context, role, id string) error {
	return m.Called(ctx, role, id).Error(0)
}

func (m *MockPresence) CountOnline(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

// stallingStore commits its first location write and then waits for release
// before returning, like a store whose reply is slow to arrive.
type stallingStore struct {
	*fakeStore
	once      sync.Once
	committed chan struct{}
	release   chan struct{}
}

func newStallingStore(inner *fakeStore) *stallingStore {
	return &stallingStore{
		fakeStore: inner,
		committed: make(chan struct{}),
		release:   make(chan struct{}),
	}
}

func (s *stallingStore) UpdateOrderFields(ctx context.Context, id string, f ports.OrderFields) (*order.Order, error) {
	o, err := s.fakeStore.UpdateOrderFields(ctx, id, f)
	stall := false
	s.once.Do(func() { stall = true })
	if stall {
		close(s.committed)
		<-s.release
	}
	return o, err
}

func (s *fakeStore) location(id string) (kernel.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.orders[id]
	if st.DeliveryLocation == nil {
		return kernel.Location{}, false
	}
	return *st.DeliveryLocation, true
}
