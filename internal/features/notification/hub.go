package notification

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// wsConn is the slice of *websocket.Conn the hub needs. Underlying
// connections do not support concurrent writers, so every write goes
// through the per-connection mutex below.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
}

type hubClient struct {
	userID string
	conn   wsConn

	writeMu sync.Mutex
}

func (c *hubClient) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub keeps the live websocket connections of logged-in portal users so
// lifecycle events reach open sessions without polling.
type Hub struct {
	mu      sync.RWMutex
	clients map[string][]*hubClient // userID -> connections
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string][]*hubClient),
		logger:  logger,
	}
}

func (h *Hub) Register(userID string, conn wsConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = append(h.clients[userID], &hubClient{userID: userID, conn: conn})
}

func (h *Hub) Unregister(userID string, conn wsConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	remaining := h.clients[userID][:0]
	for _, c := range h.clients[userID] {
		if c.conn != conn {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		delete(h.clients, userID)
	} else {
		h.clients[userID] = remaining
	}
}

// Broadcast sends the payload to every connected session. Transitions call
// this concurrently; the per-connection mutex serializes writes to each
// socket. Write errors only drop the one connection's delivery; the caller
// never sees them.
func (h *Hub) Broadcast(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn("failed to marshal websocket payload", zap.Error(err))
		return
	}

	h.mu.RLock()
	targets := make([]*hubClient, 0, len(h.clients))
	for _, conns := range h.clients {
		targets = append(targets, conns...)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(data); err != nil {
			h.logger.Debug("websocket write failed", zap.String("userId", c.userID), zap.Error(err))
		}
	}
}
