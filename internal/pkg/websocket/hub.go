// Package websocket pushes placement events to connected coordinators.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event is the frame written to every subscriber
type Event struct {
	// Routing key of the domain event, e.g. "application.created"
	Type string `json:"type"`

	// The event body as published
	Payload json.RawMessage `json:"payload"`

	// When the hub received the event
	OccurredAt time.Time `json:"occurredAt"`
}

// Hub maintains the set of subscribed clients and broadcasts events to them.
// It satisfies events.Publisher so it can sit next to the broker publisher.
type Hub struct {
	// Registered clients; only the Run goroutine mutates the map
	clients map[*Client]bool

	// Encoded events waiting to be fanned out
	broadcast chan []byte

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Guards clients for ClientCount
	mu sync.RWMutex

	// Closed once the hub stops
	done      chan struct{}
	closeOnce sync.Once

	logger zerolog.Logger

	now func() time.Time
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
		now:        time.Now,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled or Close is called
func (h *Hub) Run(ctx context.Context) {
	defer h.disconnectAll()

	for {
		select {
		case <-ctx.Done():
			h.stop()
			return

		case <-h.done:
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Event feed client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Event feed client unregistered")
}

// broadcastMessage drops clients whose send buffer is full
func (h *Hub) broadcastMessage(message []byte) {
	h.mu.RLock()
	var slow []*Client
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			slow = append(slow, client)
		}
	}
	count := len(h.clients)
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn().Int64("userID", client.userID).Msg("Dropping slow event feed client")
		h.unregisterClient(client)
	}

	h.logger.Debug().Int("clientCount", count-len(slow)).Msg("Event broadcasted")
}

func (h *Hub) disconnectAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) stop() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Publish wraps payload in an Event and queues it for every subscriber.
// Events published after the hub stopped are discarded.
func (h *Hub) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", routingKey, err)
	}
	frame, err := json.Marshal(Event{Type: routingKey, Payload: body, OccurredAt: h.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", routingKey, err)
	}

	select {
	case h.broadcast <- frame:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops Run and disconnects every client
func (h *Hub) Close() error {
	h.stop()
	return nil
}

// ClientCount returns the number of connected subscribers
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
