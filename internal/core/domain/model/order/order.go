package order

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the tracking projection of a durable order record: the handful of
// fields the real-time layer reads and writes. The full order (items, payment,
// addresses) lives in the Order Store and is never loaded here.
//
// Order follows these invariants:
//   - id and customerID are non-empty
//   - status is a recognized Status
//   - deliveryLocation, when present, is a valid kernel.Location
//   - once status is terminal it never changes again
type Order struct {
	// id is the Order Store identifier (opaque to this layer)
	id string
	// customerID is the customer who placed the order
	customerID string
	// status is the current lifecycle state
	status Status
	// statusUpdatedAt is when status last changed
	statusUpdatedAt time.Time
	// deliveryLocation is the courier's last reported position (nil until the first report)
	deliveryLocation *kernel.Location
	// lastLocationUpdate is when deliveryLocation was last written
	lastLocationUpdate *time.Time
	// restaurantLocation and customerLocation are route end points, if known
	restaurantLocation *kernel.Location
	customerLocation   *kernel.Location
	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// State is the flat, exported form of an Order used by persistence adapters
// to restore and save the aggregate.
type State struct {
	ID                 string
	CustomerID         string
	Status             Status
	StatusUpdatedAt    time.Time
	DeliveryLocation   *kernel.Location
	LastLocationUpdate *time.Time
	RestaurantLocation *kernel.Location
	CustomerLocation   *kernel.Location
}

// NewOrder creates a freshly placed order.
//
// Example:
//
//	o, err := order.NewOrder("6890cf51d210ee52276670da", "U1", time.Now())
//	// o.Status() == order.Placed, o.DeliveryLocation() reports ok == false
func NewOrder(id, customerID string, placedAt time.Time) (*Order, error) {
	return RestoreOrder(State{
		ID:              id,
		CustomerID:      customerID,
		Status:          Placed,
		StatusUpdatedAt: placedAt,
	})
}

// RestoreOrder rebuilds an Order from persisted state, validating every field.
// Persistence adapters must use it instead of building Order values directly.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setStatus(s.Status),
		validateOptionalLocation(s.DeliveryLocation),
		validateOptionalLocation(s.RestaurantLocation),
		validateOptionalLocation(s.CustomerLocation),
	); err != nil {
		return nil, err
	}

	o.statusUpdatedAt = s.StatusUpdatedAt
	o.deliveryLocation = s.DeliveryLocation
	o.lastLocationUpdate = s.LastLocationUpdate
	o.restaurantLocation = s.RestaurantLocation
	o.customerLocation = s.CustomerLocation

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's identifier.
func (o *Order) ID() string {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() string {
	return o.customerID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// StatusUpdatedAt returns when the status last changed.
func (o *Order) StatusUpdatedAt() time.Time {
	return o.statusUpdatedAt
}

// DeliveryLocation returns the last known courier position for the order.
// ok is false until the first location update has been stored.
func (o *Order) DeliveryLocation() (loc kernel.Location, ok bool) {
	if o.deliveryLocation == nil {
		return kernel.Location{}, false
	}
	return *o.deliveryLocation, true
}

// LastLocationUpdate returns when DeliveryLocation was last written.
func (o *Order) LastLocationUpdate() (time.Time, bool) {
	if o.lastLocationUpdate == nil {
		return time.Time{}, false
	}
	return *o.lastLocationUpdate, true
}

// RestaurantLocation returns the pickup point, if recorded.
func (o *Order) RestaurantLocation() (kernel.Location, bool) {
	if o.restaurantLocation == nil {
		return kernel.Location{}, false
	}
	return *o.restaurantLocation, true
}

// CustomerLocation returns the drop-off point, if recorded.
func (o *Order) CustomerLocation() (kernel.Location, bool) {
	if o.customerLocation == nil {
		return kernel.Location{}, false
	}
	return *o.customerLocation, true
}

// ChangeStatus moves the order to next at the given instant.
//
// Returns:
//   - nil on success; Status() == next and StatusUpdatedAt() == at
//   - *errs.InvalidTransitionError if the order is closed or next is unrecognized;
//     the order is left untouched
func (o *Order) ChangeStatus(next Status, at time.Time) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.statusUpdatedAt = at
	return nil
}

// State returns a copy of the order's fields for persistence.
func (o *Order) State() State {
	return State{
		ID:                 o.id,
		CustomerID:         o.customerID,
		Status:             o.status,
		StatusUpdatedAt:    o.statusUpdatedAt,
		DeliveryLocation:   o.deliveryLocation,
		LastLocationUpdate: o.lastLocationUpdate,
		RestaurantLocation: o.restaurantLocation,
		CustomerLocation:   o.customerLocation,
	}
}

func (o *Order) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func validateOptionalLocation(loc *kernel.Location) error {
	if loc == nil {
		return nil
	}
	return loc.Validate()
}
