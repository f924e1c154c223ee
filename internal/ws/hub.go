package ws

import (
	"encoding/json"
	"sync"

	"github.com/YannisFouzi/blind-test-sub001/internal/game"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// connection wraps a websocket with a write lock: the owning room actor and
// direct sends may write from different goroutines.
type connection struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *connection) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Hub tracks live connections by connection id and by room, and implements
// the game.Broadcaster port. It carries no game logic.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*connection
	rooms map[string]map[string]bool
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*connection),
		rooms: make(map[string]map[string]bool),
	}
}

func (h *Hub) Add(roomID, connectionID string, ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[connectionID] = &connection{ws: ws}
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[string]bool)
	}
	h.rooms[roomID][connectionID] = true
	logrus.WithFields(logrus.Fields{"room": roomID, "total": len(h.rooms[roomID])}).Info("ws: client connected")
}

func (h *Hub) Remove(roomID, connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.conns[connectionID]; ok {
		conn.ws.Close()
		delete(h.conns, connectionID)
	}
	if conns, ok := h.rooms[roomID]; ok {
		delete(conns, connectionID)
		if len(conns) == 0 {
			delete(h.rooms, roomID)
		}
	}
	logrus.WithField("room", roomID).Info("ws: client disconnected")
}

func (h *Hub) Broadcast(roomID string, msg game.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logrus.WithError(err).Error("ws: marshal error")
		return
	}

	type target struct {
		id   string
		conn *connection
	}

	h.mu.RLock()
	targets := make([]target, 0, len(h.rooms[roomID]))
	for connectionID := range h.rooms[roomID] {
		if conn, ok := h.conns[connectionID]; ok {
			targets = append(targets, target{id: connectionID, conn: conn})
		}
	}
	h.mu.RUnlock()

	for _, tg := range targets {
		if err := tg.conn.write(data); err != nil {
			logrus.WithError(err).Warn("ws: write error, dropping connection")
			h.evict(tg.id)
		}
	}
}

func (h *Hub) SendTo(connectionID string, msg game.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logrus.WithError(err).Error("ws: marshal error")
		return
	}

	h.mu.RLock()
	conn, ok := h.conns[connectionID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if err := conn.write(data); err != nil {
		logrus.WithError(err).Warn("ws: write error, dropping connection")
		h.evict(connectionID)
	}
}

// evict closes and forgets a connection after a failed write. The read loop
// still runs its own cleanup on exit, but a half-dead socket must stop
// absorbing broadcasts immediately.
func (h *Hub) evict(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connectionID]
	if !ok {
		return
	}
	conn.ws.Close()
	delete(h.conns, connectionID)
	for roomID, conns := range h.rooms {
		delete(conns, connectionID)
		if len(conns) == 0 {
			delete(h.rooms, roomID)
		}
	}
}
