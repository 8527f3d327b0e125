package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"courierhub/internal/core/application/realtime"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	TrackingPath = "/order-tracking"
	DispatchPath = "/dispatch"
)

// Engine is what the handler drives for every socket.
type Engine interface {
	Connect() kernel.UUID
	Handle(ctx context.Context, id kernel.UUID, msg realtime.Message)
	ReportError(ctx context.Context, id kernel.UUID, op string, err error)
	Disconnect(ctx context.Context, id kernel.UUID)
}

type Handler struct {
	hub      *Hub
	engine   Engine
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHandler(hub *Hub, engine Engine, logger *slog.Logger) (*Handler, error) {
	if hub == nil {
		return nil, errors.New("hub cannot be nil")
	}
	if engine == nil {
		return nil, errors.New("engine cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		hub:    hub,
		engine: engine,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// clients identify themselves with authenticate messages, not cookies
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws_handler"),
	}, nil
}

// Register mounts both socket endpoints on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET(TrackingPath, h.Tracking)
	e.GET(DispatchPath, h.Dispatch)
}

// Tracking serves the full tracking protocol.
func (h *Handler) Tracking(c echo.Context) error {
	return h.serve(c, func(realtime.Message) bool { return true })
}

// Dispatch serves the courier channel, which only accepts
// authenticate_partner and then receives announcements.
func (h *Handler) Dispatch(c echo.Context) error {
	return h.serve(c, func(msg realtime.Message) bool {
		_, ok := msg.(realtime.AuthenticatePartner)
		return ok
	})
}

func (h *Handler) serve(c echo.Context, allowed func(realtime.Message) bool) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the HTTP error
		h.logger.Debug("Upgrade failed", "path", c.Path(), "error", err)
		return nil
	}

	id := h.engine.Connect()
	cl, ok := h.hub.attach(id, conn)
	if !ok {
		h.engine.Disconnect(context.Background(), id)
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "server closing"),
			time.Now().Add(h.hub.cfg.WriteWait),
		)
		_ = conn.Close()
		return nil
	}
	go h.hub.writePump(cl)

	ctx := context.WithoutCancel(c.Request().Context())
	h.readPump(ctx, cl, allowed)

	h.hub.detach(id)
	h.engine.Disconnect(ctx, id)
	return nil
}

func (h *Handler) readPump(ctx context.Context, c *client, allowed func(realtime.Message) bool) {
	conn := c.conn
	conn.SetReadLimit(h.hub.cfg.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.hub.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.hub.cfg.PongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("Socket closed unexpectedly", "connection", c.id.String(), "error", err)
			}
			return
		}

		msg, op, err := DecodeMessage(raw)
		if err != nil {
			h.engine.ReportError(ctx, c.id, op, err)
			continue
		}
		if !allowed(msg) {
			_ = h.hub.Send(c.id, realtime.ErrorEvent{
				Message: "Unsupported event on this channel",
				Code:    errs.KindValidation,
			})
			continue
		}

		h.engine.Handle(ctx, c.id, msg)
	}
}
