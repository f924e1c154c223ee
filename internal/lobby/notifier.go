package lobby

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/YannisFouzi/blind-test-sub001/internal/game"

	"github.com/sirupsen/logrus"
)

// Notifier pushes room lifecycle events to the lobby discovery service.
// Everything is fire-and-forget: a down lobby never blocks or fails gameplay.
// An empty URL disables the notifier entirely.
type Notifier struct {
	url        string
	httpClient *http.Client
}

func NewNotifier(url string) *Notifier {
	return &Notifier{
		url:        url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func (n *Notifier) Enabled() bool {
	return n.url != ""
}

func (n *Notifier) RoomCreated(roomID string) {
	n.post("room_created", roomID, nil)
}

func (n *Notifier) RoomStateChanged(roomID string, state game.RoomState, players int) {
	n.post("room_state_changed", roomID, map[string]interface{}{
		"state":   state,
		"players": players,
	})
}

func (n *Notifier) RoomDeleted(roomID string) {
	n.post("room_deleted", roomID, nil)
}

func (n *Notifier) post(event, roomID string, extra map[string]interface{}) {
	if n.url == "" {
		return
	}

	payload := map[string]interface{}{
		"event":  event,
		"roomId": roomID,
	}
	for k, v := range extra {
		payload[k] = v
	}

	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			logrus.WithError(err).Error("lobby: marshal error")
			return
		}
		resp, err := n.httpClient.Post(n.url, "application/json", bytes.NewReader(body))
		if err != nil {
			logrus.WithError(err).WithField("event", event).Warn("lobby: notify failed")
			return
		}
		resp.Body.Close()
	}()
}
