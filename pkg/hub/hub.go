// Package hub fans rig frames and engine events out to websocket
// subscribers over a channel-based broadcast loop.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/visagelabs/go-visage/internal/log"
)

// Envelope is the wire format for everything the hub broadcasts: a type
// tag plus a pre-encoded payload.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Envelope type tags.
const (
	TypeFrame          = "frame"
	TypeClassification = "classification"
	TypeMood           = "mood"
)

// Hub maintains the set of active subscribers and broadcasts envelopes to
// them. All client bookkeeping happens on the Run loop.
type Hub struct {
	name string

	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

// New creates a hub. Call Run in a goroutine before registering clients.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Info("subscriber connected", "hub", h.name, "total", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Info("subscriber disconnected", "hub", h.name, "remaining", count)

		case payload := <-h.broadcast:
			// Full lock: dropping a slow subscriber mutates the client
			// map, which concurrent SubscriberCount readers must not see
			// mid-write.
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// The client's buffer is full; drop it rather than
					// stall the frame stream for everyone else.
					close(client.send)
					delete(h.clients, client)
					log.Warn("dropped slow subscriber", "hub", h.name)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish encodes v into an envelope of the given type and broadcasts it.
// A full broadcast channel drops the envelope; frames are transient.
func (h *Hub) Publish(envelopeType string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(Envelope{Type: envelopeType, Data: data})
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- payload:
	default:
		log.Warn("broadcast channel full, dropping envelope", "hub", h.name, "type", envelopeType)
	}
	return nil
}

// SubscriberCount returns the number of connected clients.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
