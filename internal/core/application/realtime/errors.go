package realtime

import (
	"errors"
	"fmt"

	"courierhub/internal/pkg/errs"
)

// opMessages holds the client-facing texts for one inbound message.
type opMessages struct {
	invalid string
	failed  string
}

var messagesByOp = map[string]opMessages{
	MessageAuthenticateUser:    {invalid: "User ID is required", failed: "Failed to authenticate"},
	MessageAuthenticatePartner: {invalid: "Partner ID is required", failed: "Failed to authenticate"},
	MessageUpdateLocation:      {invalid: "Invalid location data", failed: "Failed to update location"},
	MessageUpdateOrderStatus:   {invalid: "Order ID and status are required", failed: "Failed to update order status"},
	MessageSubscribeToOrder:    {invalid: "Order ID is required", failed: "Failed to subscribe to order"},
}

// clientMessage turns err into the text sent in an error event. Internal
// details (store causes, SQL errors) never reach the client.
func clientMessage(op string, err error) string {
	msgs, known := messagesByOp[op]
	if !known {
		msgs = opMessages{invalid: "Unsupported event", failed: "Request failed"}
	}

	switch errs.KindOf(err) {
	case errs.KindAuthRequired:
		return "Authentication required"
	case errs.KindNotFound:
		return "Order not found"
	case errs.KindInvalidTransition:
		var transition *errs.InvalidTransitionError
		if errors.As(err, &transition) {
			return fmt.Sprintf("Cannot change order status from %s to %s", transition.From, transition.To)
		}
		return "Invalid status transition"
	case errs.KindValidation:
		if errors.Is(err, errs.ErrAlreadyBound) {
			return "Connection is already authenticated as another user"
		}
		return msgs.invalid
	case errs.KindStoreUnavailable, errs.KindInternal:
		return msgs.failed
	default:
		return msgs.failed
	}
}
