package game

// Song is a playable clip as the game core sees it. It is a plain value
// copied out of the catalog; the core never touches storage models.
type Song struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Artist           string  `json:"artist"`
	WorkID           string  `json:"workId"`
	YoutubeID        string  `json:"youtubeId"`
	AudioURL         string  `json:"audioUrl"`
	AudioURLReversed string  `json:"audioUrlReversed"`
	Duration         float64 `json:"duration"`
}

// Work is one guessable answer option.
type Work struct {
	ID         string `json:"id"`
	UniverseID string `json:"universeId"`
	Title      string `json:"title"`
	OrderNum   int    `json:"orderNum"`
}

type Player struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Score        int    `json:"score"`
	Correct      int    `json:"correct"`
	Incorrect    int    `json:"incorrect"`
	IsHost       bool   `json:"isHost"`
	Connected    bool   `json:"connected"`
	ConnectionID string `json:"-"`
}

type RoundType string

const (
	RoundNormal  RoundType = "normal"
	RoundReverse RoundType = "reverse"
	RoundDouble  RoundType = "double"
)

// Round is one unit of gameplay covering one song, or two for a double round.
type Round struct {
	Type    RoundType `json:"type"`
	SongIDs []string  `json:"songIds"`
}

type RoomState string

const (
	StateIdle       RoomState = "idle"
	StateConfigured RoomState = "configured"
	StatePlaying    RoomState = "playing"
	StateResults    RoomState = "results"
)

// EffectsConfig controls the probabilistic mystery effects applied when
// the song list is partitioned into rounds.
type EffectsConfig struct {
	Enabled   bool     `json:"enabled"`
	Frequency int      `json:"frequency"`
	Effects   []string `json:"effects"`
}

const (
	EffectDouble  = "double"
	EffectReverse = "reverse"
)

func (c EffectsConfig) has(effect string) bool {
	for _, e := range c.Effects {
		if e == effect {
			return true
		}
	}
	return false
}
