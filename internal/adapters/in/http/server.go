package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"courierhub/internal/core/application/realtime"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/dispatch"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// RealtimeEngine is the part of the real-time dispatcher the HTTP API drives.
type RealtimeEngine interface {
	AnnounceNewOrder(ctx context.Context, a dispatch.Announcement) (int, error)
	ChangeOrderStatus(ctx context.Context, orderID, status string) (*order.Order, error)
	Stats() realtime.Stats
}

// Server handles the REST side of the service. Live updates produced by
// these endpoints reach socket clients through the RealtimeEngine.
type Server struct {
	engine RealtimeEngine

	// Query handlers
	getOrderRouteHandler   queries.GetOrderRouteQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// NewServer creates a new HTTP server with the engine and query handlers.
func NewServer(
	engine RealtimeEngine,
	getOrderRouteHandler queries.GetOrderRouteQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		engine:                 engine,
		getOrderRouteHandler:   getOrderRouteHandler,
		getActiveOrdersHandler: getActiveOrdersHandler,
	}
}

// RegisterRoutes mounts every endpoint on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/dispatch/announcements", s.AnnounceOrder)
	v1.PUT("/orders/:orderId/status", s.ChangeOrderStatus)
	v1.GET("/orders/:orderId/route", s.GetOrderRoute)
	v1.GET("/customers/:customerId/orders/active", s.GetActiveOrders)
	v1.GET("/realtime/stats", s.GetRealtimeStats)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// AnnounceOrder handles POST /api/v1/dispatch/announcements - offers a new
// order to every online courier.
func (s *Server) AnnounceOrder(ctx echo.Context) error {
	var req NewAnnouncement
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	a, err := dispatch.NewAnnouncement(req.OrderID, req.RestaurantName, req.Address, req.Amount)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid announcement: " + err.Error(),
		})
	}

	count, err := s.engine.AnnounceNewOrder(ctx.Request().Context(), a)
	if err != nil {
		return errorResponse(ctx, err, "Failed to announce order")
	}
	if count == 0 {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "No couriers online",
		})
	}

	return ctx.JSON(http.StatusAccepted, AnnouncementResult{Couriers: count})
}

// ChangeOrderStatus handles PUT /api/v1/orders/:orderId/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	var req StatusChange
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	updated, err := s.engine.ChangeOrderStatus(ctx.Request().Context(), ctx.Param("orderId"), req.Status)
	if err != nil {
		return errorResponse(ctx, err, "Failed to update order status")
	}

	return ctx.JSON(http.StatusOK, OrderStatus{
		OrderID:         updated.ID(),
		Status:          updated.Status(),
		StatusUpdatedAt: updated.StatusUpdatedAt(),
	})
}

// GetOrderRoute handles GET /api/v1/orders/:orderId/route.
func (s *Server) GetOrderRoute(ctx echo.Context) error {
	query, err := queries.NewGetOrderRouteQuery(ctx.Param("orderId"))
	if err != nil {
		return errorResponse(ctx, err, "Invalid order id")
	}

	info, err := s.getOrderRouteHandler.Handle(ctx.Request().Context(), query)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrRouteEndpointsMissing):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: "Order has no route end points",
		})
	case errors.Is(err, queries.ErrRouteUnavailable):
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: "Route information unavailable",
		})
	default:
		return errorResponse(ctx, err, "Failed to get route")
	}

	return ctx.JSON(http.StatusOK, Route{
		Distance:      info.DistanceKm,
		Duration:      info.DurationMin,
		LastRefreshed: info.LastRefreshed,
	})
}

// GetActiveOrders handles GET /api/v1/customers/:customerId/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query, err := queries.NewGetActiveOrdersQuery(ctx.Param("customerId"))
	if err != nil {
		return errorResponse(ctx, err, "Invalid customer id")
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err, "Failed to retrieve orders")
	}

	response := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrder{
			OrderID:         o.OrderID,
			Status:          o.Status,
			StatusUpdatedAt: o.StatusUpdatedAt,
		}
		if o.DeliveryLocation != nil {
			response[i].DeliveryLocation = &Location{Lat: o.DeliveryLocation.Lat(), Lng: o.DeliveryLocation.Lng()}
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRealtimeStats handles GET /api/v1/realtime/stats.
func (s *Server) GetRealtimeStats(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.engine.Stats())
}

// errorResponse maps an error kind onto an HTTP status. Client mistakes keep
// their message; store and internal failures only get fallback.
func errorResponse(ctx echo.Context, err error, fallback string) error {
	status := http.StatusInternalServerError
	message := fallback

	switch errs.KindOf(err) {
	case errs.KindValidation:
		status, message = http.StatusBadRequest, err.Error()
	case errs.KindAuthRequired:
		status, message = http.StatusUnauthorized, "Authentication required"
	case errs.KindNotFound:
		status, message = http.StatusNotFound, "Order not found"
	case errs.KindInvalidTransition:
		status, message = http.StatusConflict, err.Error()
	case errs.KindStoreUnavailable:
		status = http.StatusServiceUnavailable
		ctx.Logger().Errorf("%s: %v", fallback, err)
	default:
		ctx.Logger().Errorf("%s: %v", fallback, err)
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewAnnouncement struct {
	OrderID        string  `json:"orderId"`
	RestaurantName string  `json:"restaurantName"`
	Address        string  `json:"address"`
	Amount         float64 `json:"amount"`
}

type AnnouncementResult struct {
	Couriers int `json:"couriers"`
}

type StatusChange struct {
	Status string `json:"status"`
}

type OrderStatus struct {
	OrderID         string       `json:"orderId"`
	Status          order.Status `json:"status"`
	StatusUpdatedAt time.Time    `json:"statusUpdatedAt"`
}

type Route struct {
	Distance      float64   `json:"distance"`
	Duration      float64   `json:"duration"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ActiveOrder struct {
	OrderID          string       `json:"orderId"`
	Status           order.Status `json:"status"`
	StatusUpdatedAt  time.Time    `json:"statusUpdatedAt"`
	DeliveryLocation *Location    `json:"deliveryLocation"`
}
