// Package dispatch holds the delivery job announcement that is broadcast to
// every online courier when a new order needs a driver.
package dispatch

import (
	"errors"
	"math"

	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrAnnouncementIsNotConstructed = errors.New(
	"Announcement must be created via NewAnnouncement constructor",
)

// Announcement describes a delivery job offered to couriers. It carries only
// what a courier needs to decide: where to pick up and what it pays.
type Announcement struct { //nolint:recvcheck //using for validation
	orderID        string
	restaurantName string
	address        string
	amount         float64

	guard guard.ConstructorGuard
}

// NewAnnouncement validates and builds an Announcement.
// orderID, restaurantName and address are required; amount must be a
// non-negative finite number.
func NewAnnouncement(orderID, restaurantName, address string, amount float64) (Announcement, error) {
	a := Announcement{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setOrderID(orderID),
		a.setRestaurantName(restaurantName),
		a.setAddress(address),
		a.setAmount(amount),
	); err != nil {
		return Announcement{}, err
	}

	return a, nil
}

func (a Announcement) Validate() error {
	return a.guard.Validate(ErrAnnouncementIsNotConstructed)
}

func (a Announcement) OrderID() string        { return a.orderID }
func (a Announcement) RestaurantName() string { return a.restaurantName }
func (a Announcement) Address() string        { return a.address }
func (a Announcement) Amount() float64        { return a.amount }

func (a *Announcement) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	a.orderID = orderID
	return nil
}

func (a *Announcement) setRestaurantName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("restaurantName")
	}
	a.restaurantName = name
	return nil
}

func (a *Announcement) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	a.address = address
	return nil
}

func (a *Announcement) setAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, "+Inf")
	}
	a.amount = amount
	return nil
}
