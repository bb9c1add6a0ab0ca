package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Event types pushed to connected devices so an open cart or batch list
// refreshes without polling.
const (
	EventCartUpdated   = "CART_UPDATED"
	EventBatchImported = "BATCH_IMPORTED"
	EventBatchDeleted  = "BATCH_DELETED"
)

// Event is the envelope for every broadcast message.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients map: DeviceID -> Client
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[string]*Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if client.DeviceID != "" {
				// A device reconnecting closes its old connection
				if old, ok := h.clients[client.DeviceID]; ok && old != client {
					close(old.send)
					delete(h.clients, client.DeviceID)
				}
				// Drop the anonymous entry of a client that just identified
				for id, existing := range h.clients {
					if existing == client && id != client.DeviceID {
						delete(h.clients, id)
					}
				}
				h.clients[client.DeviceID] = client
				log.Printf("📱 Device connected: %s", client.DeviceID)
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if client.DeviceID != "" {
				if _, ok := h.clients[client.DeviceID]; ok {
					delete(h.clients, client.DeviceID)
					close(client.send)
					log.Printf("📴 Device disconnected: %s", client.DeviceID)
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Buffer full or client dead; drop, the client
					// will resync on reconnect
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast fans an event out to every connected device.
func (h *Hub) Broadcast(eventType string, data interface{}) {
	msg, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("⚠️ Broadcast queue full, dropping %s", eventType)
	}
}
