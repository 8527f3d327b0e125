// Package mapbox resolves driving legs with the Mapbox Directions API, and
// provides a straight-line estimate for deployments without a token.
package mapbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
)

const DefaultBaseURL = "https://api.mapbox.com"

var (
	ErrNoRoute      = errors.New("no route found")
	ErrUnauthorized = errors.New("directions request unauthorized")
)

var _ ports.RouteProvider = (*Client)(nil)

// Client calls the driving profile of the Directions API, one leg per request.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

func NewClient(baseURL, token string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With("component", "mapbox_client")
	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

type directionsResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
	} `json:"routes"`
	Message string `json:"message"`
}

// Leg returns the distance in km and duration in minutes of the first route
// between from and to.
func (c *Client) Leg(ctx context.Context, from, to kernel.Location) (services.Leg, error) {
	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/driving/%s;%s",
		c.baseURL, coordinate(from), coordinate(to))
	query := url.Values{}
	query.Set("access_token", c.token)
	query.Set("geometries", "geojson")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return services.Leg{}, fmt.Errorf("build directions request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Leg{}, fmt.Errorf("directions request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return services.Leg{}, fmt.Errorf("read directions response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return services.Leg{}, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		c.logger.WarnContext(ctx, "Directions request failed", "status", resp.StatusCode)
		return services.Leg{}, fmt.Errorf("directions request: unexpected status %d", resp.StatusCode)
	}

	var parsed directionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return services.Leg{}, fmt.Errorf("decode directions response: %w", err)
	}
	if len(parsed.Routes) == 0 {
		return services.Leg{}, fmt.Errorf("%w (code %s)", ErrNoRoute, parsed.Code)
	}

	route := parsed.Routes[0]
	return services.Leg{
		DistanceKm:  route.Distance / 1000,
		DurationMin: route.Duration / 60,
	}, nil
}

// coordinate renders a location in the API's lng,lat order.
func coordinate(loc kernel.Location) string {
	return fmt.Sprintf("%g,%g", loc.Lng(), loc.Lat())
}

// StraightLine estimates legs from great-circle distance at a fixed speed.
type StraightLine struct {
	SpeedKmh float64
}

const DefaultSpeedKmh = 25

var _ ports.RouteProvider = StraightLine{}

func (s StraightLine) Leg(_ context.Context, from, to kernel.Location) (services.Leg, error) {
	speed := s.SpeedKmh
	if speed <= 0 {
		speed = DefaultSpeedKmh
	}
	return services.StraightLineLeg(from, to, speed)
}
