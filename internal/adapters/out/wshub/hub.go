// Package wshub fans lifecycle events out to websocket observers
// (waiter terminals, kitchen displays, the back office).
//
// Every observer owns a buffered send queue drained by its own write pump.
// Publish marshals the envelope once and offers it to each queue without
// blocking: an observer that is gone or too slow to keep up simply misses the
// message. There is no replay; a reconnecting observer reloads state over HTTP.
package wshub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// EventConnected is sent to each observer right after the handshake.
	EventConnected = "connected"

	sendBufferSize = 256
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4 * 1024
)

// Envelope is the wire shape of every message pushed to observers.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type Option func(*Hub)

// WithObserverGauge tracks the number of registered observers.
func WithObserverGauge(gauge prometheus.Gauge) Option {
	return func(h *Hub) {
		h.gauge = gauge
	}
}

// WithAllowedOrigins restricts browser handshakes to the listed origins.
// Requests without an Origin header (terminals, scripts) are always accepted.
// An empty list keeps the default of accepting every origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(h *Hub) {
		if len(origins) == 0 {
			return
		}
		allowed := make(map[string]struct{}, len(origins))
		for _, origin := range origins {
			allowed[strings.ToLower(strings.TrimRight(origin, "/"))] = struct{}{}
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			_, ok := allowed[strings.ToLower(origin)]
			return ok
		}
	}
}

// Hub implements ports.EventPublisher and serves the websocket endpoint.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	closed   bool
	upgrader websocket.Upgrader
	gauge    prometheus.Gauge
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger, opts ...Option) *Hub {
	h := &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		logger: logger.With("component", "ws_hub"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the request, acknowledges the connection and registers the observer.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Websocket upgrade failed", "error", err)
		return
	}

	ack, err := json.Marshal(Envelope{Event: EventConnected, Data: "ok"})
	if err != nil {
		_ = conn.Close()
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err = conn.WriteMessage(websocket.TextMessage, ack); err != nil {
		h.logger.WarnContext(r.Context(), "Websocket acknowledgement failed", "error", err)
		_ = conn.Close()
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
	if !h.register(c) {
		c.shutdown()
		return
	}

	go c.writePump()
	go c.readPump()
}

// Publish offers {event, data} to every registered observer without blocking.
func (h *Hub) Publish(ctx context.Context, event string, payload any) {
	message, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to encode event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	skipped := 0
	for _, c := range targets {
		if !c.enqueue(message) {
			skipped++
		}
	}
	if skipped > 0 {
		h.logger.WarnContext(ctx, "Observers skipped", "event", event, "skipped", skipped)
	}
}

// Count returns the number of registered observers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every observer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.shutdown()
	}
	if h.gauge != nil {
		h.gauge.Set(0)
	}
	h.logger.Info("Websocket hub closed", "observers", len(clients))
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.gauge != nil {
		h.gauge.Inc()
	}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, found := h.clients[c]
	delete(h.clients, c)
	if found && h.gauge != nil {
		h.gauge.Dec()
	}
	h.mu.Unlock()

	c.shutdown()
}
