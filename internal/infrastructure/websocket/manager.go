package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"campusmarket/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Client represents a WebSocket connection client
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// NewClient wraps an upgraded connection for userID.
func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBufferSize),
	}
}

// Manager tracks every open connection per user. A user may hold several
// connections, one per open tab.
type Manager struct {
	clients    map[string]map[*Client]struct{}
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
	done       chan struct{}
}

// NewManager creates a new WebSocket connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start runs the manager's main loop in a goroutine. Cancelling ctx closes
// every remaining client.
func (m *Manager) Start(ctx context.Context) {
	go m.Run(ctx)
}

// Run is the blocking form of Start.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case client := <-m.Register:
			m.mutex.Lock()
			if m.clients[client.UserID] == nil {
				m.clients[client.UserID] = make(map[*Client]struct{})
			}
			m.clients[client.UserID][client] = struct{}{}
			m.mutex.Unlock()
			logger.Info("Client registered: %s", client.UserID)

		case client := <-m.Unregister:
			m.remove(client)
			logger.Info("Client unregistered: %s", client.UserID)

		case <-ctx.Done():
			close(m.done)
			m.mutex.Lock()
			for userID, set := range m.clients {
				for client := range set {
					close(client.Send)
				}
				delete(m.clients, userID)
			}
			m.mutex.Unlock()
			return
		}
	}
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	set, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; ok {
		delete(set, client)
		close(client.Send)
	}
	if len(set) == 0 {
		delete(m.clients, client.UserID)
	}
}

// SendToUser queues message on every connection of userID. A connection
// whose buffer is full misses the message rather than blocking the caller.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for client := range m.clients[userID] {
		select {
		case client.Send <- message:
		default:
			logger.Warn("WebSocket: dropping message for slow client %s", userID)
		}
	}
}

// IsOnline reports whether userID has at least one open connection.
func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients[userID]) > 0
}

// ReadPump reads messages from the WebSocket connection and hands them to
// the manager until the connection fails.
func (c *Client) ReadPump(ctx context.Context, m *Manager, events ClientEvents) {
	defer func() {
		select {
		case m.Unregister <- c:
		case <-m.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error for %s: %v", c.UserID, err)
			}
			return
		}
		m.HandleClientMessage(ctx, c, message, events)
	}
}

// WritePump sends messages to the WebSocket connection and keeps it alive
// with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Error("WebSocket write error for %s: %v", c.UserID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
