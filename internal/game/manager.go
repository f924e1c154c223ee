package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RoomSummary is what the room-list endpoint and the lobby see.
type RoomSummary struct {
	Code         string    `json:"code"`
	State        RoomState `json:"state"`
	Players      int       `json:"players"`
	CurrentRound int       `json:"currentRound"`
	TotalRounds  int       `json:"totalRounds"`
}

type roomEntry struct {
	room       *Room
	conns      int
	emptySince time.Time
}

// Manager tracks live rooms. Rooms are created on first connection and
// destroyed by the janitor once they have been empty past the grace period.
type Manager struct {
	mu      sync.Mutex
	rooms   map[string]*roomEntry
	deps    Deps
	grace   time.Duration
	stop    chan struct{}
	stopped sync.Once
	log     *logrus.Entry
}

func NewManager(deps Deps, grace time.Duration) *Manager {
	if grace <= 0 {
		grace = time.Minute
	}
	return &Manager{
		rooms: make(map[string]*roomEntry),
		deps:  deps,
		grace: grace,
		stop:  make(chan struct{}),
		log:   logrus.WithField("component", "room-manager"),
	}
}

// Connect returns the room for a code, creating and starting it on first
// connection, and counts the new connection against the janitor.
func (m *Manager) Connect(code string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.rooms[code]
	if !ok {
		room := NewRoom(code, m.deps)
		room.Start()
		entry = &roomEntry{room: room}
		m.rooms[code] = entry
		m.log.WithField("room", code).Info("room created")
		if m.deps.Notifier != nil {
			m.deps.Notifier.RoomCreated(code)
		}
	}
	entry.conns++
	entry.emptySince = time.Time{}
	return entry.room
}

// Disconnect decrements a room's connection count; an empty room starts its
// grace period.
func (m *Manager) Disconnect(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.rooms[code]
	if !ok {
		return
	}
	entry.conns--
	if entry.conns <= 0 {
		entry.conns = 0
		entry.emptySince = time.Now()
	}
}

// Get returns a live room without creating one.
func (m *Manager) Get(code string) (*Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.rooms[code]
	if !ok {
		return nil, false
	}
	return entry.room, true
}

// ListActive summarizes every live room, for the lobby-style room list.
func (m *Manager) ListActive() []RoomSummary {
	m.mu.Lock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, entry := range m.rooms {
		rooms = append(rooms, entry.room)
	}
	m.mu.Unlock()

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		snap, ok := room.Snapshot()
		if !ok {
			// Stopped by the janitor between the map copy and here.
			continue
		}
		connected := 0
		for _, p := range snap.Players {
			if p.Connected {
				connected++
			}
		}
		summaries = append(summaries, RoomSummary{
			Code:         snap.ID,
			State:        snap.State,
			Players:      connected,
			CurrentRound: snap.CurrentRound,
			TotalRounds:  snap.TotalRounds,
		})
	}
	return summaries
}

// StartJanitor sweeps for expired empty rooms until Close is called.
func (m *Manager) StartJanitor() {
	go func() {
		ticker := time.NewTicker(m.grace / 2)
		defer ticker.Stop()
		for {
			select {
			case <-m.stop:
				return
			case now := <-ticker.C:
				m.sweep(now)
			}
		}
	}()
}

func (m *Manager) Close() {
	m.stopped.Do(func() { close(m.stop) })
	m.mu.Lock()
	defer m.mu.Unlock()
	for code, entry := range m.rooms {
		entry.room.Stop()
		delete(m.rooms, code)
	}
}

func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	var expired []string
	for code, entry := range m.rooms {
		if entry.conns == 0 && !entry.emptySince.IsZero() && now.Sub(entry.emptySince) >= m.grace {
			expired = append(expired, code)
		}
	}
	for _, code := range expired {
		m.rooms[code].room.Stop()
		delete(m.rooms, code)
	}
	m.mu.Unlock()

	for _, code := range expired {
		m.log.WithField("room", code).Info("room expired")
		if m.deps.Notifier != nil {
			m.deps.Notifier.RoomDeleted(code)
		}
	}
}

// defaultRNG seeds a per-room random source. Only ever called from the room
// actor, so the unsynchronized rand.Rand is fine.
func defaultRNG() func() float64 {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return r.Float64
}
