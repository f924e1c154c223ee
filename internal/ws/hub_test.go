package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/YannisFouzi/blind-test-sub001/internal/game"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialConn establishes a real websocket pair and registers the server side
// with the hub. Returns the client side for reading.
func dialConn(t *testing.T, hub *Hub, roomID, connID string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Add(roomID, connID, ws)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.conns[connID]
		return ok
	}, time.Second, 10*time.Millisecond, "connection never registered")
	return client
}

func hasConn(hub *Hub, connID string) bool {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	_, ok := hub.conns[connID]
	return ok
}

func TestBroadcastReachesRoomMembers(t *testing.T) {
	hub := NewHub()
	client := dialConn(t, hub, "ROOM", "c1")

	hub.Broadcast("ROOM", game.ServerMessage{Type: game.MsgStateSync})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
	_, payload, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(payload), game.MsgStateSync)
}

func TestBroadcastEvictsDeadConnection(t *testing.T) {
	hub := NewHub()
	healthy := dialConn(t, hub, "ROOM", "c1")
	dialConn(t, hub, "ROOM", "c2")

	// Kill c2's server-side socket so the next write to it fails.
	hub.mu.RLock()
	dead := hub.conns["c2"]
	hub.mu.RUnlock()
	require.NoError(t, dead.ws.Close())

	hub.Broadcast("ROOM", game.ServerMessage{Type: game.MsgStateSync})

	assert.True(t, hasConn(hub, "c1"))
	assert.False(t, hasConn(hub, "c2"), "dead connection must be evicted on write failure")

	hub.mu.RLock()
	members := len(hub.rooms["ROOM"])
	hub.mu.RUnlock()
	assert.Equal(t, 1, members)

	// The healthy connection still receives the broadcast.
	require.NoError(t, healthy.SetReadDeadline(time.Now().Add(time.Second)))
	_, payload, err := healthy.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(payload), game.MsgStateSync)
}

func TestSendToEvictsDeadConnection(t *testing.T) {
	hub := NewHub()
	dialConn(t, hub, "ROOM", "c1")

	hub.mu.RLock()
	dead := hub.conns["c1"]
	hub.mu.RUnlock()
	require.NoError(t, dead.ws.Close())

	hub.SendTo("c1", game.ServerMessage{Type: game.MsgError, Message: "nope"})

	assert.False(t, hasConn(hub, "c1"))

	// Further sends to the evicted id are a no-op.
	hub.SendTo("c1", game.ServerMessage{Type: game.MsgError})
}
