package web

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pon3939/SummarizeCharacterSheets/internal/interfaces"
)

const (
	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
	readLimit    = 512
)

// Client represents a WebSocket client connection
type Client struct {
	ID     string
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *NotificationHub
	mu     sync.Mutex
	closed bool
}

// NotificationHub fans notifications out to connected WebSocket clients.
type NotificationHub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan interfaces.Notification
	done       chan struct{}
	mu         sync.RWMutex
}

var _ interfaces.Notifier = (*NotificationHub)(nil)

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client, 100),
		unregister: make(chan *Client, 100),
		broadcast:  make(chan interfaces.Notification, 1000),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop. It returns when ctx is done, after closing
// every client.
func (h *NotificationHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case n := <-h.broadcast:
			h.broadcastNotification(n)
		}
	}
}

func (h *NotificationHub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	log.Printf("[Hub] Client connected: %s (total: %d)", client.ID, len(h.clients))

	go client.writePump()
}

func (h *NotificationHub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(client.Send)
		log.Printf("[Hub] Client disconnected: %s (total: %d)", client.ID, len(h.clients))
	}
}

func (h *NotificationHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		delete(h.clients, id)
		close(client.Send)
	}
}

func (h *NotificationHub) broadcastNotification(n interfaces.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": n,
		"time": time.Now().Unix(),
	})
	if err != nil {
		log.Printf("[Hub] Failed to marshal notification: %v", err)
		return
	}

	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			log.Printf("[Hub] Client send buffer full: %s", client.ID)
		}
	}
}

// Notify queues n for every connected client. It never blocks; when the
// queue is full the notification is dropped.
func (h *NotificationHub) Notify(_ context.Context, n interfaces.Notification) error {
	select {
	case h.broadcast <- n:
	default:
		log.Printf("[Hub] Broadcast channel full, dropping %q", n.Subject)
	}
	return nil
}

// Register hands client to the event loop. It reports false once the hub
// has stopped.
func (h *NotificationHub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *NotificationHub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// GetClientCount returns the number of connected clients
func (h *NotificationHub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.mu.Lock()
			if !ok {
				c.closed = true
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				c.mu.Unlock()
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[Client] Error writing to %s: %v", c.ID, err)
				c.closed = true
				c.mu.Unlock()
				return
			}
			c.mu.Unlock()

		case <-ticker.C:
			c.mu.Lock()
			if c.closed {
				c.mu.Unlock()
				return
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[Client] Error sending ping to %s: %v", c.ID, err)
				c.closed = true
				c.mu.Unlock()
				return
			}
			c.mu.Unlock()
		}
	}
}

// Close closes the client connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.Conn.Close()
}

// readPump only keeps the connection alive; clients do not send anything
// the hub acts on.
func (c *Client) readPump() {
	defer func() {
		c.Hub.leave(c)
		c.Close()
	}()

	c.Conn.SetReadLimit(readLimit)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Client] Unexpected close from %s: %v", c.ID, err)
			}
			break
		}
	}
}
