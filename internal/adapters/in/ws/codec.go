package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"courierhub/internal/core/application/realtime"
	"courierhub/internal/pkg/errs"
)

var ErrUnknownEvent = errors.New("unknown event")

// frame is the envelope of every socket message in both directions.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type updateLocationData struct {
	OrderID  string `json:"orderId"`
	Location *struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	} `json:"location"`
}

// DecodeMessage parses an inbound frame. The returned name is the frame's
// event name, also when decoding fails, so errors can be reported against it.
func DecodeMessage(raw []byte) (realtime.Message, string, error) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, "", errs.NewValueIsInvalidErrorWithCause("frame", err)
	}
	data := f.Data
	if len(data) == 0 || string(data) == "null" {
		data = json.RawMessage("{}")
	}

	var (
		msg realtime.Message
		err error
	)
	switch f.Event {
	case realtime.MessageAuthenticateUser:
		var m realtime.AuthenticateUser
		err = json.Unmarshal(data, &m)
		msg = m
	case realtime.MessageAuthenticatePartner:
		var m realtime.AuthenticatePartner
		err = json.Unmarshal(data, &m)
		msg = m
	case realtime.MessageUpdateLocation:
		var d updateLocationData
		err = json.Unmarshal(data, &d)
		m := realtime.UpdateLocation{OrderID: d.OrderID}
		if d.Location != nil && d.Location.Lat != nil && d.Location.Lng != nil {
			m.Location = &realtime.Coordinates{Lat: *d.Location.Lat, Lng: *d.Location.Lng}
		}
		msg = m
	case realtime.MessageUpdateOrderStatus:
		var m realtime.UpdateOrderStatus
		err = json.Unmarshal(data, &m)
		msg = m
	case realtime.MessageSubscribeToOrder:
		var m realtime.SubscribeToOrder
		err = json.Unmarshal(data, &m)
		msg = m
	default:
		return nil, f.Event, errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%w: %q", ErrUnknownEvent, f.Event))
	}

	if err != nil {
		return nil, f.Event, errs.NewValueIsInvalidErrorWithCause("data", err)
	}
	return msg, f.Event, nil
}

// EncodeEvent renders ev as an outbound frame.
func EncodeEvent(ev realtime.Event) ([]byte, error) {
	name := realtime.EventName(ev)
	if name == "" {
		return nil, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return json.Marshal(frame{Event: name, Data: data})
}
