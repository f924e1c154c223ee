package game

// Response is one scored answer to one round slot. Responses are created on
// submission and never mutated.
type Response struct {
	RoundIndex int    `json:"roundIndex"`
	PlayerID   string `json:"playerId"`
	SongID     string `json:"songId"`
	Selection  string `json:"selection"`
	IsCorrect  bool   `json:"isCorrect"`
	Points     int    `json:"points"`
}

// AnswerLedger records submitted answers per round and guards against
// duplicate submissions. Like the registry it is owned by the room actor.
type AnswerLedger struct {
	scoring *Scoring

	// responses: round index -> player id -> submitted slots, in submission order.
	responses map[int]map[string][]Response

	// remaining: round index -> player id -> correct work ids not yet matched.
	// Only populated for double rounds, where correctness is a multiset match
	// across the pair rather than a per-slot equality.
	remaining map[int]map[string][]string
}

func NewAnswerLedger(scoring *Scoring) *AnswerLedger {
	return &AnswerLedger{
		scoring:   scoring,
		responses: make(map[int]map[string][]Response),
		remaining: make(map[int]map[string][]string),
	}
}

// Submit records one answer slot and returns the scored response. The second
// return value is false when nothing was recorded: the song is not part of the
// round, or the player already answered that slot (duplicates are idempotent).
func (l *AnswerLedger) Submit(roundIndex int, round Round, songs map[string]Song, playerID, songID, selection string) (Response, bool) {
	if !roundContains(round, songID) {
		return Response{}, false
	}

	existing := l.responses[roundIndex][playerID]
	if len(existing) >= len(round.SongIDs) {
		return Response{}, false
	}
	for _, resp := range existing {
		if resp.SongID == songID {
			return Response{}, false
		}
	}

	var correct bool
	if round.Type == RoundDouble {
		correct = l.consumeFromPair(roundIndex, round, songs, playerID, selection)
	} else {
		correct = songs[songID].WorkID == selection
	}

	resp := Response{
		RoundIndex: roundIndex,
		PlayerID:   playerID,
		SongID:     songID,
		Selection:  selection,
		IsCorrect:  correct,
		Points:     l.scoring.Award(correct),
	}

	if l.responses[roundIndex] == nil {
		l.responses[roundIndex] = make(map[string][]Response)
	}
	l.responses[roundIndex][playerID] = append(l.responses[roundIndex][playerID], resp)
	return resp, true
}

// consumeFromPair evaluates a double-round slot against the multiset of the
// pair's correct work ids, consuming one occurrence on a match. Evaluating
// slots in submission order this way keeps duplicate-work pairs honest: a
// selection only counts while an unmatched copy of that work remains.
func (l *AnswerLedger) consumeFromPair(roundIndex int, round Round, songs map[string]Song, playerID, selection string) bool {
	if l.remaining[roundIndex] == nil {
		l.remaining[roundIndex] = make(map[string][]string)
	}
	pool, ok := l.remaining[roundIndex][playerID]
	if !ok {
		pool = make([]string, 0, len(round.SongIDs))
		for _, id := range round.SongIDs {
			pool = append(pool, songs[id].WorkID)
		}
	}

	for i, workID := range pool {
		if workID == selection {
			l.remaining[roundIndex][playerID] = append(pool[:i], pool[i+1:]...)
			return true
		}
	}
	l.remaining[roundIndex][playerID] = pool
	return false
}

// SlotsFilled reports how many slots of a round the player has answered.
func (l *AnswerLedger) SlotsFilled(roundIndex int, playerID string) int {
	return len(l.responses[roundIndex][playerID])
}

// HasAllSlots reports whether the player has answered every slot of the round.
func (l *AnswerLedger) HasAllSlots(roundIndex int, round Round, playerID string) bool {
	return l.SlotsFilled(roundIndex, playerID) >= len(round.SongIDs)
}

// Responses returns the recorded answers for one round.
func (l *AnswerLedger) Responses(roundIndex int) map[string][]Response {
	return l.responses[roundIndex]
}

// Reset drops every recorded response, for reconfiguration or restart.
func (l *AnswerLedger) Reset() {
	l.responses = make(map[int]map[string][]Response)
	l.remaining = make(map[int]map[string][]string)
}

func roundContains(round Round, songID string) bool {
	for _, id := range round.SongIDs {
		if id == songID {
			return true
		}
	}
	return false
}
