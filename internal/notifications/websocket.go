package notifications

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is a message pushed to connected dashboard clients.
type Event struct {
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Severity  string                 `json:"severity,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Manager handles WebSocket connections and broadcasts events to all of
// them. Slow clients are dropped rather than allowed to stall the hub.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]*connection
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

type connection struct {
	id   string
	conn *websocket.Conn
	send chan Event
}

// NewManager creates a new WebSocket manager
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		connections: make(map[string]*connection),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The dashboard is same-origin in production; tighten here
				// when the frontend moves behind its own domain.
				return true
			},
		},
		logger: logger,
	}
}

// HandleConnection upgrades an HTTP request and serves events until the
// client disconnects.
func (m *Manager) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	ws, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &connection{
		id:   uuid.New().String(),
		conn: ws,
		send: make(chan Event, 64),
	}

	m.mu.Lock()
	m.connections[c.id] = c
	m.mu.Unlock()

	m.logger.Debug("WebSocket client connected", zap.String("connection_id", c.id))

	go m.writePump(c)
	go m.readPump(c)
	return nil
}

// Broadcast queues an event for every connected client.
func (m *Manager) Broadcast(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.connections {
		select {
		case c.send <- event:
		default:
			// Buffer full; the write pump will notice when it next fails.
			m.logger.Warn("Dropping event for slow WebSocket client",
				zap.String("connection_id", c.id))
		}
	}
}

// ConnectionCount returns the number of connected clients.
func (m *Manager) ConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

func (m *Manager) writePump(c *connection) {
	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			m.drop(c)
			return
		}
	}
}

func (m *Manager) readPump(c *connection) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			m.drop(c)
			return
		}
	}
}

func (m *Manager) drop(c *connection) {
	m.mu.Lock()
	if _, ok := m.connections[c.id]; ok {
		delete(m.connections, c.id)
		close(c.send)
	}
	m.mu.Unlock()
	c.conn.Close()
	m.logger.Debug("WebSocket client disconnected", zap.String("connection_id", c.id))
}
