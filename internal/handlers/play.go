package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/YannisFouzi/blind-test-sub001/internal/game"
	"github.com/YannisFouzi/blind-test-sub001/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type PlayHandler struct {
	manager *game.Manager
	hub     *ws.Hub
}

func NewPlayHandler(manager *game.Manager, hub *ws.Hub) *PlayHandler {
	return &PlayHandler{manager: manager, hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleRoomWebSocket godoc
// @Summary      WebSocket play endpoint
// @Description  Join a room over WebSocket; the room is created on first connection
// @Tags         websocket
// @Param        code path string true "Room code"
// @Router       /ws/room/{code} [get]
func (h *PlayHandler) HandleRoomWebSocket(c *gin.Context) {
	code, ok := NormalizeRoomCode(c.Param("code"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid room code"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("websocket upgrade error")
		return
	}

	connectionID := uuid.NewString()
	room := h.manager.Connect(code)
	h.hub.Add(code, connectionID, conn)
	defer func() {
		h.hub.Remove(code, connectionID)
		room.Disconnect(connectionID)
		h.manager.Disconnect(code)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var msg game.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.hub.SendTo(connectionID, game.ServerMessage{Type: game.MsgError, Message: "invalid message"})
			continue
		}
		room.Deliver(connectionID, msg)
	}
}
