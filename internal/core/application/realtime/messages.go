package realtime

import (
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"
)

// Inbound event names.
const (
	MessageAuthenticateUser    = "authenticate_user"
	MessageAuthenticatePartner = "authenticate_partner"
	MessageUpdateLocation      = "update_location"
	MessageUpdateOrderStatus   = "update_order_status"
	MessageSubscribeToOrder    = "subscribe_to_order"
)

// Outbound event names.
const (
	EventAuthenticationSuccess = "authentication_success"
	EventError                 = "error"
	EventLocationUpdated       = "location_updated"
	EventStatusUpdated         = "status_updated"
	EventOrderData             = "order_data"
	EventNewDeliveryRequest    = "new_delivery_request"
	EventSubscriptionSuccess   = "subscription_success"
	EventLocationUpdateSuccess = "location_update_success"
	EventStatusUpdateSuccess   = "status_update_success"
)

// Message is a decoded inbound client message. The set of variants is closed.
type Message interface {
	isMessage()
}

type AuthenticateUser struct {
	UserID string `json:"userId"`
}

type AuthenticatePartner struct {
	PartnerID string `json:"partnerId"`
}

// UpdateLocation carries a courier position. Location is nil when the client
// omitted it or sent an incomplete pair.
type UpdateLocation struct {
	OrderID  string       `json:"orderId"`
	Location *Coordinates `json:"location"`
}

type UpdateOrderStatus struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type SubscribeToOrder struct {
	OrderID string `json:"orderId"`
}

func (AuthenticateUser) isMessage()    {}
func (AuthenticatePartner) isMessage() {}
func (UpdateLocation) isMessage()      {}
func (UpdateOrderStatus) isMessage()   {}
func (SubscribeToOrder) isMessage()    {}

// Coordinates is the wire form of a position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func coordinatesOf(loc kernel.Location) Coordinates {
	return Coordinates{Lat: loc.Lat(), Lng: loc.Lng()}
}

// Event is an outbound server message. The set of variants is closed; use
// EventName to get its wire name.
type Event interface {
	isEvent()
}

// AuthenticationSuccess echoes the bound identity; exactly one field is set.
type AuthenticationSuccess struct {
	UserID    string `json:"userId,omitempty"`
	PartnerID string `json:"partnerId,omitempty"`
}

type ErrorEvent struct {
	Message string    `json:"message"`
	Code    errs.Kind `json:"code"`
}

type LocationUpdated struct {
	OrderID   string      `json:"orderId"`
	Location  Coordinates `json:"location"`
	Timestamp time.Time   `json:"timestamp"`
}

type StatusUpdated struct {
	OrderID   string       `json:"orderId"`
	Status    order.Status `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
}

// OrderData is the snapshot sent to a connection right after it subscribes.
type OrderData struct {
	OrderID          string       `json:"orderId"`
	Status           order.Status `json:"status"`
	DeliveryLocation *Coordinates `json:"deliveryLocation"`
	LastUpdated      time.Time    `json:"lastUpdated"`
}

type NewDeliveryRequest struct {
	OrderID        string  `json:"orderId"`
	RestaurantName string  `json:"restaurantName"`
	Address        string  `json:"address"`
	Amount         float64 `json:"amount"`
}

type SubscriptionSuccess struct {
	OrderID string `json:"orderId"`
}

type LocationUpdateSuccess struct{}

type StatusUpdateSuccess struct{}

func (AuthenticationSuccess) isEvent() {}
func (ErrorEvent) isEvent()            {}
func (LocationUpdated) isEvent()       {}
func (StatusUpdated) isEvent()         {}
func (OrderData) isEvent()             {}
func (NewDeliveryRequest) isEvent()    {}
func (SubscriptionSuccess) isEvent()   {}
func (LocationUpdateSuccess) isEvent() {}
func (StatusUpdateSuccess) isEvent()   {}

// EventName returns the wire name of ev, or "" for an unknown variant.
func EventName(ev Event) string {
	switch ev.(type) {
	case AuthenticationSuccess:
		return EventAuthenticationSuccess
	case ErrorEvent:
		return EventError
	case LocationUpdated:
		return EventLocationUpdated
	case StatusUpdated:
		return EventStatusUpdated
	case OrderData:
		return EventOrderData
	case NewDeliveryRequest:
		return EventNewDeliveryRequest
	case SubscriptionSuccess:
		return EventSubscriptionSuccess
	case LocationUpdateSuccess:
		return EventLocationUpdateSuccess
	case StatusUpdateSuccess:
		return EventStatusUpdateSuccess
	default:
		return ""
	}
}

// MessageName returns the wire name of msg, or "" for an unknown variant.
func MessageName(msg Message) string {
	switch msg.(type) {
	case AuthenticateUser:
		return MessageAuthenticateUser
	case AuthenticatePartner:
		return MessageAuthenticatePartner
	case UpdateLocation:
		return MessageUpdateLocation
	case UpdateOrderStatus:
		return MessageUpdateOrderStatus
	case SubscribeToOrder:
		return MessageSubscribeToOrder
	default:
		return ""
	}
}
