package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Buffered events per connection before a slow client is dropped.
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Hub maintains the set of open connections. All broadcasts fan out to the
// entire set; game scoping happens in the payloads, not the membership.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

// Register adds a connection to the broadcast set.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()

	log.Printf("Client %s connected (total clients: %d)", c.id, total)
}

// Unregister removes a connection and closes its send channel, which stops
// its write pump. Unregistering twice is safe.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)

	log.Printf("Client %s disconnected (remaining clients: %d)", c.id, len(h.clients))
}

// BroadcastAll marshals v once and queues it to every open connection.
func (h *Hub) BroadcastAll(v any) {
	h.broadcast(v, nil)
}

// BroadcastExcept queues v to every open connection other than exclude.
func (h *Hub) BroadcastExcept(exclude *Client, v any) {
	h.broadcast(v, exclude)
}

func (h *Hub) broadcast(v any, exclude *Client) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c == exclude {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Slow client; its read pump will unregister it on close.
			log.Printf("Client %s send buffer full, dropping message", c.id)
		}
	}
}

// Send queues a message to a single connection.
func (h *Hub) Send(c *Client, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal message for client %s: %v", c.id, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("Client %s send buffer full, dropping message", c.id)
	}
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes every connection. Used on server shutdown.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		c.conn.Close()
	}
}
