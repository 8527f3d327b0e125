// Package ws is the WebSocket transport of the real-time engine. Hub owns the
// sockets and implements realtime.Transport; Handler upgrades HTTP requests
// on the echo server and feeds decoded messages to the engine.
//
// Each socket gets one reader goroutine (the echo handler itself) and one
// writer goroutine draining a bounded send buffer. Send never blocks: when a
// client's buffer is full the event is dropped for that client only.
package ws

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"courierhub/internal/core/application/realtime"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/gorilla/websocket"
)

var ErrSendBufferFull = errors.New("send buffer full")

type Config struct {
	// SendBufferSize is the number of outbound frames queued per connection.
	SendBufferSize int
	WriteWait      time.Duration
	PongWait       time.Duration
	// PingPeriod must be shorter than PongWait.
	PingPeriod     time.Duration
	MaxMessageSize int64
}

func DefaultConfig() Config {
	return Config{
		SendBufferSize: 64,
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		MaxMessageSize: 8 << 10,
	}
}

var _ realtime.Transport = (*Hub)(nil)

type Hub struct {
	cfg    Config
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[kernel.UUID]*client
	closed  bool
}

func NewHub(cfg Config, logger *slog.Logger) *Hub {
	def := DefaultConfig()
	if cfg.SendBufferSize <= 0 {
		cfg.SendBufferSize = def.SendBufferSize
	}
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = def.WriteWait
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = def.PongWait
	}
	if cfg.PingPeriod <= 0 || cfg.PingPeriod >= cfg.PongWait {
		cfg.PingPeriod = cfg.PongWait * 9 / 10
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = def.MaxMessageSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Hub{
		cfg:     cfg,
		logger:  logger.With("component", "ws_hub"),
		clients: make(map[kernel.UUID]*client),
	}
}

// Send encodes ev and queues it for the connection.
func (h *Hub) Send(id kernel.UUID, ev realtime.Event) error {
	h.mu.RLock()
	c, ok := h.clients[id]
	h.mu.RUnlock()
	if !ok {
		return errs.ErrConnectionNotFound
	}

	payload, err := EncodeEvent(ev)
	if err != nil {
		return err
	}
	return c.enqueue(payload)
}

// Len returns the number of open sockets.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close sends a close frame to every socket and refuses new ones. Readers
// notice the closed sockets and run the engine's disconnect.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	h.logger.Info("Closed websocket connections", "count", len(clients))
}

func (h *Hub) attach(id kernel.UUID, conn *websocket.Conn) (*client, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, false
	}
	c := &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, h.cfg.SendBufferSize),
		done: make(chan struct{}),
	}
	h.clients[id] = c
	return c, true
}

func (h *Hub) detach(id kernel.UUID) {
	h.mu.Lock()
	c, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()

	if ok {
		c.close()
	}
}

type client struct {
	id   kernel.UUID
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) enqueue(payload []byte) error {
	select {
	case <-c.done:
		return errs.ErrConnectionNotFound
	default:
	}

	select {
	case c.send <- payload:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

// writePump is the only writer of c.conn. It exits when the client is closed
// or a write fails, and closes the socket on its way out.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.logger.Debug("Write failed", "connection", c.id.String(), "error", err)
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"),
				time.Now().Add(h.cfg.WriteWait),
			)
			return
		}
	}
}
