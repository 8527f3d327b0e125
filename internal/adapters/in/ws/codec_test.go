package ws_test

import (
	"encoding/json"
	"testing"
	"time"

	"courierhub/internal/adapters/in/ws"
	"courierhub/internal/core/application/realtime"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want realtime.Message
		op   string
	}{
		{
			name: "authenticate user",
			raw:  `{"event":"authenticate_user","data":{"userId":"U1"}}`,
			want: realtime.AuthenticateUser{UserID: "U1"},
			op:   "authenticate_user",
		},
		{
			name: "authenticate partner",
			raw:  `{"event":"authenticate_partner","data":{"partnerId":"P1"}}`,
			want: realtime.AuthenticatePartner{PartnerID: "P1"},
			op:   "authenticate_partner",
		},
		{
			name: "update location",
			raw:  `{"event":"update_location","data":{"orderId":"O1","location":{"lat":40.7128,"lng":-74.006}}}`,
			want: realtime.UpdateLocation{OrderID: "O1", Location: &realtime.Coordinates{Lat: 40.7128, Lng: -74.006}},
			op:   "update_location",
		},
		{
			name: "update location with zero coordinates",
			raw:  `{"event":"update_location","data":{"orderId":"O1","location":{"lat":0,"lng":0}}}`,
			want: realtime.UpdateLocation{OrderID: "O1", Location: &realtime.Coordinates{}},
			op:   "update_location",
		},
		{
			name: "update location missing lng",
			raw:  `{"event":"update_location","data":{"orderId":"O1","location":{"lat":1}}}`,
			want: realtime.UpdateLocation{OrderID: "O1"},
			op:   "update_location",
		},
		{
			name: "update location without location",
			raw:  `{"event":"update_location","data":{"orderId":"O1"}}`,
			want: realtime.UpdateLocation{OrderID: "O1"},
			op:   "update_location",
		},
		{
			name: "update order status",
			raw:  `{"event":"update_order_status","data":{"orderId":"O1","status":"delivered"}}`,
			want: realtime.UpdateOrderStatus{OrderID: "O1", Status: "delivered"},
			op:   "update_order_status",
		},
		{
			name: "subscribe without data",
			raw:  `{"event":"subscribe_to_order"}`,
			want: realtime.SubscribeToOrder{},
			op:   "subscribe_to_order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, op, err := ws.DecodeMessage([]byte(tt.raw))

			require.NoError(t, err)
			assert.Equal(t, tt.want, msg)
			assert.Equal(t, tt.op, op)
		})
	}
}

func TestDecodeMessage_Errors(t *testing.T) {
	t.Run("not json", func(t *testing.T) {
		_, op, err := ws.DecodeMessage([]byte("hello"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Empty(t, op)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, op, err := ws.DecodeMessage([]byte(`{"event":"claim_order","data":{}}`))

		var invalid *errs.ValueIsInvalidError
		require.ErrorAs(t, err, &invalid)
		assert.ErrorIs(t, invalid.Cause, ws.ErrUnknownEvent)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Equal(t, "claim_order", op)
	})

	t.Run("wrong data type", func(t *testing.T) {
		_, op, err := ws.DecodeMessage([]byte(`{"event":"subscribe_to_order","data":{"orderId":42}}`))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "subscribe_to_order", op)
	})
}

func TestEncodeEvent(t *testing.T) {
	at := time.Date(2025, 8, 4, 12, 30, 0, 0, time.UTC)

	raw, err := ws.EncodeEvent(realtime.OrderData{OrderID: "O1", Status: order.Placed, LastUpdated: at})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"event":"order_data","data":{"orderId":"O1","status":"placed","deliveryLocation":null,"lastUpdated":"2025-08-04T12:30:00Z"}}`,
		string(raw))

	raw, err = ws.EncodeEvent(realtime.StatusUpdateSuccess{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"status_update_success","data":{}}`, string(raw))

	raw, err = ws.EncodeEvent(realtime.AuthenticationSuccess{PartnerID: "P1"})
	require.NoError(t, err)
	var f struct {
		Event string         `json:"event"`
		Data  map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &f))
	assert.Equal(t, "authentication_success", f.Event)
	assert.Equal(t, map[string]any{"partnerId": "P1"}, f.Data)

	raw, err = ws.EncodeEvent(realtime.ErrorEvent{Message: "Order not found", Code: errs.KindNotFound})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"error","data":{"message":"Order not found","code":"NotFound"}}`, string(raw))
}
