package game

// ClientMessage is the inbound WebSocket envelope. The claimed ids (PlayerID,
// HostID) are client-supplied and never trusted on their own; every handler
// re-derives the actual sender from the connection registry.
type ClientMessage struct {
	Type         string         `json:"type"`
	PlayerID     string         `json:"playerId,omitempty"`
	HostID       string         `json:"hostId,omitempty"`
	DisplayName  string         `json:"displayName,omitempty"`
	UniverseID   string         `json:"universeId,omitempty"`
	AllowedWorks []string       `json:"allowedWorks,omitempty"`
	Effects      *EffectsConfig `json:"effects,omitempty"`
	SongID       string         `json:"songId,omitempty"`
	Selection    string         `json:"selection,omitempty"`
}

const (
	MsgJoin       = "join"
	MsgConfigure  = "configure"
	MsgStart      = "start"
	MsgAnswer     = "answer"
	MsgNext       = "next"
	MsgShowScores = "show_scores"
	MsgRestart    = "restart"
)

// ServerMessage is the outbound envelope. Errors carry their text in Message;
// everything else rides in Data.
type ServerMessage struct {
	Type    string      `json:"type"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

const (
	MsgStateSync    = "state_sync"
	MsgJoined       = "joined"
	MsgAnswerResult = "answer_result"
	MsgError        = "error"
)

type PlayerView struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Score       int    `json:"score"`
	Correct     int    `json:"correct"`
	Incorrect   int    `json:"incorrect"`
	IsHost      bool   `json:"isHost"`
	Connected   bool   `json:"connected"`
	Answered    bool   `json:"answered"`
}

// SongView is the clip metadata broadcast with a round. It deliberately omits
// the song's work id, which is the answer.
type SongView struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Artist           string  `json:"artist"`
	YoutubeID        string  `json:"youtubeId"`
	AudioURL         string  `json:"audioUrl"`
	AudioURLReversed string  `json:"audioUrlReversed"`
	Duration         float64 `json:"duration"`
}

type RoundView struct {
	Type  RoundType  `json:"type"`
	Songs []SongView `json:"songs"`
}

type WorkView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Snapshot is the full room state pushed to clients on every change.
type Snapshot struct {
	ID           string       `json:"id"`
	HostID       string       `json:"hostId"`
	State        RoomState    `json:"state"`
	CurrentRound int          `json:"currentRound"`
	TotalRounds  int          `json:"totalRounds"`
	Players      []PlayerView `json:"players"`
	Round        *RoundView   `json:"round,omitempty"`
	Works        []WorkView   `json:"works,omitempty"`
}

// AnswerResult is returned to the answering player only.
type AnswerResult struct {
	SongID    string `json:"songId"`
	IsCorrect bool   `json:"isCorrect"`
	Points    int    `json:"points"`
}

// JoinedData tells a freshly joined connection which player it is bound to.
type JoinedData struct {
	PlayerID string   `json:"playerId"`
	IsHost   bool     `json:"isHost"`
	Room     Snapshot `json:"room"`
}
