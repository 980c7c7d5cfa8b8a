// Package realtime pushes data-point activity to connected WebSocket clients.
package realtime

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const (
	EventRealtimeUpdate   = "real-time-update"
	EventExperimentUpdate = "experiment-update"

	// DefaultSendBuffer is the number of messages queued per client before
	// the client is considered too slow and dropped.
	DefaultSendBuffer = 16
)

// Message is the envelope written to clients.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// ExperimentRoom names the channel of an experiment's subscribers.
func ExperimentRoom(code string) string {
	return "experiment-" + code
}

// Client is one registered listener. Its queue is closed when the hub
// drops or unregisters it.
type Client struct {
	ID   string
	send chan []byte

	// guarded by Hub.mu
	rooms  map[string]struct{}
	closed bool
}

// Send returns the client's outbound queue.
func (c *Client) Send() <-chan []byte {
	return c.send
}

// Hub tracks clients and their room subscriptions.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
	buffer  int
	logger  *slog.Logger
}

func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultSendBuffer
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]map[*Client]struct{}),
		buffer:  buffer,
		logger:  logger,
	}
}

// Register adds a new client.
func (h *Hub) Register() *Client {
	c := &Client{
		ID:    uuid.NewString(),
		send:  make(chan []byte, h.buffer),
		rooms: make(map[string]struct{}),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("client connected", "client", c.ID)
	return c
}

// Unregister removes c from the hub and every room. It is safe to call
// more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	removed := h.remove(c)
	h.mu.Unlock()

	if removed {
		h.logger.Info("client disconnected", "client", c.ID)
	}
}

func (h *Hub) remove(c *Client) bool {
	if c.closed {
		return false
	}
	c.closed = true
	delete(h.clients, c)
	for room := range c.rooms {
		members := h.rooms[room]
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	c.rooms = nil
	close(c.send)
	return true
}

// Subscribe joins c to the room of the given experiment.
func (h *Hub) Subscribe(c *Client, code string) {
	room := ExperimentRoom(code)

	h.mu.Lock()
	defer h.mu.Unlock()

	if c.closed {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}

	h.logger.Debug("client subscribed", "client", c.ID, "room", room)
}

// Broadcast queues msg for every client and returns how many received it.
func (h *Hub) Broadcast(msg Message) (int, error) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	return h.deliver(targets, msg)
}

// Publish queues msg for the members of room and returns how many received it.
func (h *Hub) Publish(room string, msg Message) (int, error) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	return h.deliver(targets, msg)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) deliver(targets []*Client, msg Message) (int, error) {
	if len(targets) == 0 {
		return 0, nil
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to encode %s message: %w", msg.Event, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, c := range targets {
		if c.closed {
			continue
		}
		select {
		case c.send <- payload:
			delivered++
		default:
			h.logger.Warn("dropping slow client", "client", c.ID, "event", msg.Event)
			h.remove(c)
		}
	}
	return delivered, nil
}
