// Package realtime is the live side of order tracking: it binds connections
// to customers and couriers, keeps topic membership, applies courier updates
// through the Order Store and fans the results out to subscribers.
//
// A transport adapter drives it: Connect when a socket opens, Handle for
// every decoded message (sequentially per connection), Disconnect when the
// socket closes. Everything the adapter needs to write back is sent through
// the Transport given to NewDispatcher.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/dispatch"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
)

// Stats are point-in-time counters.
type Stats struct {
	Connections int `json:"connections"`
	Customers   int `json:"customers"`
	Couriers    int `json:"couriers"`
	OrderTopics int `json:"orderTopics"`
}

// Dispatcher is the real-time engine. It is safe for concurrent use by many
// connections; calls for a single connection must be made sequentially.
type Dispatcher struct {
	registry *Registry
	router   *Router
	orders   *orderLocks
	presence ports.PresenceTracker
	clock    ports.Clock
	logger   *slog.Logger

	updateLocationHandler commands.UpdateLocationCommandHandler
	changeStatusHandler   commands.ChangeOrderStatusCommandHandler
	snapshotHandler       queries.GetOrderSnapshotQueryHandler
}

// NewDispatcher wires the engine. presence may be nil, in which case presence
// is not mirrored anywhere.
func NewDispatcher(
	store ports.OrderStore,
	clock ports.Clock,
	transport Transport,
	presence ports.PresenceTracker,
	logger *slog.Logger,
) (*Dispatcher, error) {
	if store == nil {
		return nil, errors.New("order store cannot be nil")
	}
	if clock == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if transport == nil {
		return nil, errors.New("transport cannot be nil")
	}
	if presence == nil {
		presence = ports.NopPresence{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		registry:              NewRegistry(),
		orders:                newOrderLocks(),
		router:                NewRouter(transport, logger),
		presence:              presence,
		clock:                 clock,
		logger:                logger.With("component", "realtime_dispatcher"),
		updateLocationHandler: commands.NewUpdateLocationCommandHandler(store, clock),
		changeStatusHandler:   commands.NewChangeOrderStatusCommandHandler(store, clock),
		snapshotHandler:       queries.NewGetOrderSnapshotQueryHandler(store),
	}, nil
}

// Connect registers a new unauthenticated connection.
func (d *Dispatcher) Connect() kernel.UUID {
	id := d.registry.Register()
	d.logger.Debug("Client connected", "connection", id.String())
	return id
}

// Lookup returns the current state of a connection.
func (d *Dispatcher) Lookup(id kernel.UUID) (Connection, bool) {
	return d.registry.Lookup(id)
}

// Disconnect removes the connection from the registry and from every topic
// it joined. When it was the last connection of its customer or courier, the
// identity is marked offline. Safe to call more than once.
func (d *Dispatcher) Disconnect(ctx context.Context, id kernel.UUID) {
	conn, ok := d.registry.Unregister(id)
	if !ok {
		return
	}

	sessionTopic := identityTopicOf(conn)
	for _, topic := range conn.Topics {
		remaining := d.router.Leave(topic, id)
		if topic == sessionTopic && remaining == 0 {
			d.markPresence(ctx, conn.Role, conn.IdentityID, false)
		}
	}

	d.logger.Debug("Client disconnected",
		"connection", id.String(), "role", conn.Role.String(), "identity", conn.IdentityID)
}

// Handle processes one inbound message. Failures are reported to the
// originating connection as an error event and never affect other
// connections.
func (d *Dispatcher) Handle(ctx context.Context, id kernel.UUID, msg Message) {
	var err error

	switch m := msg.(type) {
	case AuthenticateUser:
		err = d.AuthenticateCustomer(ctx, id, m.UserID)
	case AuthenticatePartner:
		err = d.AuthenticateCourier(ctx, id, m.PartnerID)
	case UpdateLocation:
		err = d.UpdateLocation(ctx, id, m.OrderID, m.Location)
	case UpdateOrderStatus:
		err = d.UpdateStatus(ctx, id, m.OrderID, m.Status)
	case SubscribeToOrder:
		err = d.Subscribe(ctx, id, m.OrderID)
	default:
		err = errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("unsupported message %T", msg))
	}

	if err != nil {
		d.ReportError(ctx, id, MessageName(msg), err)
	}
}

// ReportError sends err to the connection as an error event. op is the wire
// name of the message that failed and selects the client-facing text.
func (d *Dispatcher) ReportError(ctx context.Context, id kernel.UUID, op string, err error) {
	kind := errs.KindOf(err)

	switch kind { //nolint:exhaustive // client mistakes stay at debug
	case errs.KindStoreUnavailable, errs.KindInternal:
		d.logger.ErrorContext(ctx, "Operation failed",
			"connection", id.String(), "operation", op, "kind", string(kind), "error", err)
	default:
		d.logger.DebugContext(ctx, "Operation rejected",
			"connection", id.String(), "operation", op, "kind", string(kind), "error", err)
	}

	d.router.Send(id, ErrorEvent{Message: clientMessage(op, err), Code: kind})
}

// AuthenticateCustomer binds the connection to customerID and joins its
// customer session.
func (d *Dispatcher) AuthenticateCustomer(ctx context.Context, id kernel.UUID, customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	if err := d.bind(ctx, id, RoleCustomer, customerID); err != nil {
		return err
	}

	d.router.Send(id, AuthenticationSuccess{UserID: customerID})
	return nil
}

// AuthenticateCourier binds the connection to courierID and joins its
// courier session. From then on the connection receives announcements.
func (d *Dispatcher) AuthenticateCourier(ctx context.Context, id kernel.UUID, courierID string) error {
	if courierID == "" {
		return errs.NewValueIsRequiredError("partnerId")
	}
	if err := d.bind(ctx, id, RoleCourier, courierID); err != nil {
		return err
	}

	d.router.Send(id, AuthenticationSuccess{PartnerID: courierID})
	return nil
}

// UpdateLocation stores the courier's position for orderID and, once stored,
// sends location_updated to the order's subscribers and to the customer's
// session.
func (d *Dispatcher) UpdateLocation(ctx context.Context, id kernel.UUID, orderID string, loc *Coordinates) error {
	if err := d.requireRole(id, RoleCourier, MessageUpdateLocation); err != nil {
		return err
	}
	if loc == nil {
		return errs.NewValueIsRequiredError("location")
	}

	cmd, err := commands.NewUpdateLocationCommand(orderID, loc.Lat, loc.Lng)
	if err != nil {
		return err
	}

	// held until published so a slower earlier write cannot be announced last
	unlock := d.orders.lock(cmd.OrderID())
	defer unlock()

	updated, err := d.updateLocationHandler.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	at, ok := updated.LastLocationUpdate()
	if !ok {
		at = d.clock.Now()
	}
	d.router.Publish(LocationUpdated{
		OrderID:   updated.ID(),
		Location:  coordinatesOf(cmd.Location()),
		Timestamp: at,
	}, OrderTopic(updated.ID()), CustomerTopic(updated.CustomerID()))

	d.router.Send(id, LocationUpdateSuccess{})
	return nil
}

// UpdateStatus changes the order's status on behalf of a courier.
func (d *Dispatcher) UpdateStatus(ctx context.Context, id kernel.UUID, orderID, status string) error {
	if err := d.requireRole(id, RoleCourier, MessageUpdateOrderStatus); err != nil {
		return err
	}

	if _, err := d.ChangeOrderStatus(ctx, orderID, status); err != nil {
		return err
	}

	d.router.Send(id, StatusUpdateSuccess{})
	return nil
}

// ChangeOrderStatus persists a status change and, once stored, sends
// status_updated to the order's subscribers and to the customer's session.
// It is the entry point for status changes that do not come from a courier
// connection.
func (d *Dispatcher) ChangeOrderStatus(ctx context.Context, orderID, status string) (*order.Order, error) {
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return nil, err
	}

	unlock := d.orders.lock(cmd.OrderID())
	defer unlock()

	updated, err := d.changeStatusHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}

	d.router.Publish(StatusUpdated{
		OrderID:   updated.ID(),
		Status:    updated.Status(),
		Timestamp: updated.StatusUpdatedAt(),
	}, OrderTopic(updated.ID()), CustomerTopic(updated.CustomerID()))

	return updated, nil
}

// Subscribe joins the customer connection to the order's topic and sends it
// the current order state. The topic is joined before the state is read, so
// an update stored in between is delivered as an event rather than lost.
// If the order cannot be read the subscription is undone.
func (d *Dispatcher) Subscribe(ctx context.Context, id kernel.UUID, orderID string) error {
	if err := d.requireRole(id, RoleCustomer, MessageSubscribeToOrder); err != nil {
		return err
	}

	query, err := queries.NewGetOrderSnapshotQuery(orderID)
	if err != nil {
		return err
	}

	topic := OrderTopic(orderID)
	d.router.Join(topic, id)
	if !d.registry.Track(id, topic) {
		// the connection closed after joining; Disconnect has already run
		d.router.Leave(topic, id)
		return errs.ErrConnectionNotFound
	}

	snap, err := d.snapshotHandler.Handle(ctx, query)
	if err != nil {
		d.router.Leave(topic, id)
		d.registry.Untrack(id, topic)
		return err
	}

	data := OrderData{
		OrderID:     snap.OrderID,
		Status:      snap.Status,
		LastUpdated: snap.LastUpdated,
	}
	if snap.DeliveryLocation != nil {
		c := coordinatesOf(*snap.DeliveryLocation)
		data.DeliveryLocation = &c
	}

	d.router.Send(id, data)
	d.router.Send(id, SubscriptionSuccess{OrderID: orderID})
	return nil
}

// AnnounceNewOrder sends the announcement to every courier connection bound
// at call time and returns how many were targeted. Zero is not an error.
func (d *Dispatcher) AnnounceNewOrder(ctx context.Context, a dispatch.Announcement) (int, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}

	ids := d.registry.IDsByRole(RoleCourier)
	d.router.SendAll(ids, NewDeliveryRequest{
		OrderID:        a.OrderID(),
		RestaurantName: a.RestaurantName(),
		Address:        a.Address(),
		Amount:         a.Amount(),
	})

	if len(ids) == 0 {
		d.logger.WarnContext(ctx, "No couriers online for announcement", "order", a.OrderID())
	} else {
		d.logger.InfoContext(ctx, "Announced new order", "order", a.OrderID(), "couriers", len(ids))
	}
	return len(ids), nil
}

// BroadcastStatusUpdate tells the order's subscribers about a status change
// that was already stored elsewhere. Returns the number of connections targeted.
func (d *Dispatcher) BroadcastStatusUpdate(orderID string, status order.Status) int {
	return d.router.Publish(StatusUpdated{
		OrderID:   orderID,
		Status:    status,
		Timestamp: d.clock.Now(),
	}, OrderTopic(orderID))
}

// BroadcastLocationUpdate tells the order's subscribers about a courier
// position that was already stored elsewhere.
func (d *Dispatcher) BroadcastLocationUpdate(orderID string, loc kernel.Location) int {
	return d.router.Publish(LocationUpdated{
		OrderID:   orderID,
		Location:  coordinatesOf(loc),
		Timestamp: d.clock.Now(),
	}, OrderTopic(orderID))
}

// SweepTopics drops topics that no longer have members.
func (d *Dispatcher) SweepTopics() int {
	return d.router.Sweep()
}

// Stats reports live counters. Customers and couriers count identities with
// at least one connection, not connections.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Connections: d.registry.Len(),
		Customers:   d.router.CountActive(customerTopicPrefix),
		Couriers:    d.router.CountActive(courierTopicPrefix),
		OrderTopics: d.router.CountActive(orderTopicPrefix),
	}
}

func (d *Dispatcher) bind(ctx context.Context, id kernel.UUID, role Role, identity string) error {
	changed, err := d.registry.Bind(id, role, identity)
	if err != nil || !changed {
		return err
	}

	topic := identityTopic(role, identity)
	if d.router.Join(topic, id) == 1 {
		d.markPresence(ctx, role, identity, true)
	}
	if !d.registry.Track(id, topic) {
		// the connection closed while binding; undo the join
		if d.router.Leave(topic, id) == 0 {
			d.markPresence(ctx, role, identity, false)
		}
		return errs.ErrConnectionNotFound
	}
	return nil
}

func (d *Dispatcher) requireRole(id kernel.UUID, role Role, op string) error {
	conn, ok := d.registry.Lookup(id)
	if !ok || conn.Role != role {
		return errs.NewAuthRequiredError(op, role.String())
	}
	return nil
}

func (d *Dispatcher) markPresence(ctx context.Context, role Role, identity string, online bool) {
	var err error
	if online {
		err = d.presence.MarkOnline(ctx, role.String(), identity)
	} else {
		err = d.presence.MarkOffline(ctx, role.String(), identity)
	}
	if err != nil {
		d.logger.WarnContext(ctx, "Presence update failed",
			"role", role.String(), "identity", identity, "online", online, "error", err)
	}
}

func identityTopic(role Role, identity string) Topic {
	if role == RoleCourier {
		return CourierTopic(identity)
	}
	return CustomerTopic(identity)
}

func identityTopicOf(conn Connection) Topic {
	if conn.Role == RoleNone {
		return ""
	}
	return identityTopic(conn.Role, conn.IdentityID)
}
