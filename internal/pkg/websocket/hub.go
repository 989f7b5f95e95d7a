package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EventType names a dashboard notification.
type EventType string

// Events pushed to dashboard clients
const (
	EventRegistrationCreated EventType = "registration.created"
	EventRegistrantUpdated   EventType = "registrant.updated"
	EventRegistrantDeleted   EventType = "registrant.deleted"
	EventPassCheckedIn       EventType = "pass.checked_in"
)

// Event is a message sent to every connected dashboard.
type Event struct {
	Type      EventType   `json:"type"`
	Entity    string      `json:"entity"`
	ID        int64       `json:"id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// broadcastBuffer bounds events queued while the hub is busy.
const broadcastBuffer = 64

// Hub maintains the set of active clients and broadcasts events to them
type Hub struct {
	clients map[*Client]bool

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	// closed once Run returns
	done chan struct{}

	mu sync.RWMutex

	allowedOrigins []string
	logger         zerolog.Logger
}

// NewHub creates a new Hub instance. allowedOrigins restricts websocket
// upgrades; "*" allows any origin.
func NewHub(logger zerolog.Logger, allowedOrigins []string) *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		broadcast:      make(chan []byte, broadcastBuffer),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		done:           make(chan struct{}),
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info().Msg("Realtime hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info().Int64("userID", client.userID).Msg("Dashboard client registered")

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// Done is closed after Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.logger.Info().Int64("userID", client.userID).Msg("Dashboard client unregistered")
	}
}

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

	// Slow clients are dropped; the dashboard reconnects and refetches.
	for _, client := range slow {
		h.logger.Warn().Int64("userID", client.userID).Msg("Dropping slow dashboard client")
		h.removeClient(client)
	}

	h.logger.Debug().Int("clientCount", count).Msg("Event broadcasted")
}

// Publish queues an event for every connected client. It never blocks:
// when the queue is full or the hub has stopped the event is dropped.
func (h *Hub) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to marshal realtime event")
		return
	}

	select {
	case <-h.done:
	case h.broadcast <- data:
	default:
		h.logger.Warn().Str("type", string(event.Type)).Msg("Realtime queue full, event dropped")
	}
}

// ClientCount returns the number of connected dashboards
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) originAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range h.allowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
