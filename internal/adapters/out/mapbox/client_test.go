package mapbox_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courierhub/internal/adapters/out/mapbox"
	"courierhub/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locations(t *testing.T) (kernel.Location, kernel.Location) {
	t.Helper()
	from, err := kernel.NewLocation(12.97, 77.59)
	require.NoError(t, err)
	to, err := kernel.NewLocation(12.93, 77.62)
	require.NoError(t, err)
	return from, to
}

func TestClient_Leg(t *testing.T) {
	var gotPath, gotToken, gotGeometries string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("access_token")
		gotGeometries = r.URL.Query().Get("geometries")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":5230,"duration":780},{"distance":9000,"duration":900}]}`))
	}))
	defer server.Close()

	client := mapbox.NewClient(server.URL, "pk.test")
	from, to := locations(t)

	leg, err := client.Leg(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, "/directions/v5/mapbox/driving/77.59,12.97;77.62,12.93", gotPath)
	assert.Equal(t, "pk.test", gotToken)
	assert.Equal(t, "geojson", gotGeometries)
	assert.InDelta(t, 5.23, leg.DistanceKm, 1e-9)
	assert.InDelta(t, 13.0, leg.DurationMin, 1e-9)
}

func TestClient_LegErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
	}{
		{name: "no routes", status: http.StatusOK, body: `{"code":"NoRoute","routes":[]}`, target: mapbox.ErrNoRoute},
		{name: "bad token", status: http.StatusUnauthorized, body: `{"message":"Not Authorized"}`, target: mapbox.ErrUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`},
		{name: "garbage", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			from, to := locations(t)
			_, err := mapbox.NewClient(server.URL, "pk.test").Leg(context.Background(), from, to)

			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestClient_RespectsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	from, to := locations(t)
	_, err := mapbox.NewClient(server.URL, "pk.test", mapbox.WithTimeout(50*time.Millisecond)).
		Leg(context.Background(), from, to)

	require.Error(t, err)
}

func TestStraightLine_Leg(t *testing.T) {
	from, to := locations(t)

	leg, err := mapbox.StraightLine{}.Leg(context.Background(), from, to)
	require.NoError(t, err)

	km, err := from.DistanceKm(to)
	require.NoError(t, err)
	assert.InDelta(t, km, leg.DistanceKm, 0.01)
	assert.InDelta(t, km/mapbox.DefaultSpeedKmh*60, leg.DurationMin, 0.01)
}
