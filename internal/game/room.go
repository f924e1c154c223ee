package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CatalogProvider supplies the playable songs and answer options for a
// configuration. Implemented by the catalog service; faked in tests.
type CatalogProvider interface {
	SongsForConfiguration(universeID string, allowedWorks []string, maxSongs int) ([]Song, []Work, error)
}

// Broadcaster is the room's only side-effecting dependency: fan-out of state
// to every connection in the room, or a single message to one connection.
// No game logic lives behind it.
type Broadcaster interface {
	Broadcast(roomID string, msg ServerMessage)
	SendTo(connectionID string, msg ServerMessage)
}

// LobbyNotifier announces room lifecycle changes to the lobby discovery
// service. Best effort; implementations must never block the caller.
type LobbyNotifier interface {
	RoomCreated(roomID string)
	RoomStateChanged(roomID string, state RoomState, players int)
	RoomDeleted(roomID string)
}

// Deps are the collaborators a room is constructed with.
type Deps struct {
	Catalog     CatalogProvider
	Broadcaster Broadcaster
	Notifier    LobbyNotifier
	Scoring     *Scoring
	RNG         func() float64
	MaxSongs    int
}

type inbound struct {
	connectionID string
	msg          ClientMessage
}

type disconnected struct {
	connectionID string
}

// configResult re-enters the actor loop carrying the outcome of the one-shot
// catalog fetch started by a configure message.
type configResult struct {
	seq          int
	connectionID string
	universeID   string
	allowedWorks []string
	effects      EffectsConfig
	songs        []Song
	works        []Work
	err          error
}

type snapshotReq struct {
	reply chan Snapshot
}

// Room owns one game session. All mutable state below is confined to the
// actor goroutine started by Start; the rest of the program talks to it
// exclusively through Deliver, Disconnect, Snapshot and Stop.
type Room struct {
	ID string

	deps Deps
	log  *logrus.Entry

	inbox    chan interface{}
	done     chan struct{}
	stopOnce sync.Once

	// Actor-owned state.
	state        RoomState
	hostID       string
	players      map[string]*Player
	joinOrder    []string
	registry     *ConnectionRegistry
	ledger       *AnswerLedger
	songList     []Song
	songs        map[string]Song
	works        []Work
	rounds       []Round
	current      int
	universeID   string
	allowedWorks []string
	effects      EffectsConfig
	configSeq    int
}

func NewRoom(id string, deps Deps) *Room {
	if deps.Scoring == nil {
		deps.Scoring = NewScoring()
	}
	if deps.MaxSongs <= 0 {
		deps.MaxSongs = 20
	}
	return &Room{
		ID:       id,
		deps:     deps,
		log:      logrus.WithField("room", id),
		inbox:    make(chan interface{}, 64),
		done:     make(chan struct{}),
		state:    StateIdle,
		players:  make(map[string]*Player),
		registry: NewConnectionRegistry(),
		ledger:   NewAnswerLedger(deps.Scoring),
	}
}

func (r *Room) Start() {
	go r.run()
}

func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Deliver queues a client message for sequential processing.
func (r *Room) Deliver(connectionID string, msg ClientMessage) {
	r.send(inbound{connectionID: connectionID, msg: msg})
}

// Disconnect tells the room a transport connection went away.
func (r *Room) Disconnect(connectionID string) {
	r.send(disconnected{connectionID: connectionID})
}

// Snapshot reads the current room state through the actor, so it observes
// every message delivered before it. The second return value is false once
// the room has been stopped; no state is synthesized for a dead room.
func (r *Room) Snapshot() (Snapshot, bool) {
	reply := make(chan Snapshot, 1)
	select {
	case r.inbox <- snapshotReq{reply: reply}:
	case <-r.done:
		return Snapshot{}, false
	}
	select {
	case snap := <-reply:
		return snap, true
	case <-r.done:
		return Snapshot{}, false
	}
}

func (r *Room) send(ev interface{}) {
	select {
	case r.inbox <- ev:
	case <-r.done:
	}
}

func (r *Room) run() {
	for {
		select {
		case <-r.done:
			return
		case ev := <-r.inbox:
			r.dispatch(ev)
		}
	}
}

func (r *Room) dispatch(ev interface{}) {
	switch e := ev.(type) {
	case inbound:
		r.handleMessage(e.connectionID, e.msg)
	case disconnected:
		r.handleDisconnect(e.connectionID)
	case configResult:
		r.applyConfigResult(e)
	case snapshotReq:
		e.reply <- r.snapshot()
	}
}

func (r *Room) handleMessage(connID string, msg ClientMessage) {
	switch msg.Type {
	case MsgJoin:
		r.handleJoin(connID, msg)
	case MsgConfigure:
		r.handleConfigure(connID, msg)
	case MsgStart:
		r.handleStart(connID)
	case MsgAnswer:
		r.handleAnswer(connID, msg)
	case MsgNext:
		r.handleNext(connID)
	case MsgShowScores:
		r.handleShowScores(connID)
	case MsgRestart:
		r.handleRestart(connID)
	default:
		r.log.WithField("type", msg.Type).Debug("ignoring unknown message type")
	}
}

func (r *Room) handleJoin(connID string, msg ClientMessage) {
	if existing, ok := r.players[msg.PlayerID]; ok {
		// Known player on a fresh connection: rebind and mark connected.
		r.registry.Bind(connID, existing.ID)
		existing.Connected = true
		existing.ConnectionID = connID
		if msg.DisplayName != "" {
			existing.DisplayName = msg.DisplayName
		}
		r.deps.Broadcaster.SendTo(connID, ServerMessage{
			Type: MsgJoined,
			Data: JoinedData{PlayerID: existing.ID, IsHost: existing.IsHost, Room: r.snapshot()},
		})
		r.broadcastState()
		r.notifyLobby()
		return
	}

	id := msg.PlayerID
	if id == "" {
		id = uuid.NewString()
	}
	name := msg.DisplayName
	if name == "" {
		name = "Player"
	}
	player := &Player{
		ID:           id,
		DisplayName:  name,
		Connected:    true,
		ConnectionID: connID,
		IsHost:       len(r.players) == 0,
	}
	if player.IsHost {
		r.hostID = id
	}
	r.players[id] = player
	r.joinOrder = append(r.joinOrder, id)
	r.registry.Bind(connID, id)

	r.log.WithFields(logrus.Fields{"player": id, "host": player.IsHost}).Info("player joined")

	r.deps.Broadcaster.SendTo(connID, ServerMessage{
		Type: MsgJoined,
		Data: JoinedData{PlayerID: id, IsHost: player.IsHost, Room: r.snapshot()},
	})
	r.broadcastState()
	r.notifyLobby()
}

func (r *Room) handleConfigure(connID string, msg ClientMessage) {
	if !r.senderIsHost(connID) {
		r.sendError(connID, "Only the host can configure the game")
		return
	}
	if r.state != StateIdle && r.state != StateConfigured {
		r.log.WithField("state", r.state).Debug("configure ignored outside idle/configured")
		return
	}

	effects := EffectsConfig{}
	if msg.Effects != nil {
		effects = *msg.Effects
	}

	r.configSeq++
	seq := r.configSeq
	catalog := r.deps.Catalog
	universeID := msg.UniverseID
	allowedWorks := append([]string(nil), msg.AllowedWorks...)
	maxSongs := r.deps.MaxSongs

	// Catalog I/O happens off the actor loop; the result re-enters the inbox
	// as a single message so state mutation stays sequential.
	go func() {
		songs, works, err := catalog.SongsForConfiguration(universeID, allowedWorks, maxSongs)
		r.send(configResult{
			seq:          seq,
			connectionID: connID,
			universeID:   universeID,
			allowedWorks: allowedWorks,
			effects:      effects,
			songs:        songs,
			works:        works,
			err:          err,
		})
	}()
}

func (r *Room) applyConfigResult(res configResult) {
	if res.seq != r.configSeq {
		r.log.Debug("dropping stale configure result")
		return
	}
	if r.state != StateIdle && r.state != StateConfigured {
		return
	}
	if res.err != nil {
		r.log.WithError(res.err).Warn("catalog fetch failed")
		r.sendError(res.connectionID, "Failed to load songs for this configuration")
		return
	}
	if len(res.songs) == 0 {
		r.sendError(res.connectionID, "No songs available for this configuration")
		return
	}

	rng := r.deps.RNG
	if rng == nil {
		rng = defaultRNG()
	}

	r.songList = res.songs
	r.songs = make(map[string]Song, len(res.songs))
	for _, s := range res.songs {
		r.songs[s.ID] = s
	}
	r.works = res.works
	r.universeID = res.universeID
	r.allowedWorks = res.allowedWorks
	r.effects = res.effects
	r.rounds = ComposeRounds(r.songList, r.effects, rng)
	r.current = 0
	r.ledger.Reset()
	r.state = StateConfigured

	r.log.WithFields(logrus.Fields{
		"universe": r.universeID,
		"songs":    len(r.songList),
		"rounds":   len(r.rounds),
	}).Info("room configured")

	r.broadcastState()
	r.notifyLobby()
}

func (r *Room) handleStart(connID string) {
	if !r.senderIsHost(connID) {
		r.sendError(connID, "Only the host can start the game")
		return
	}
	if r.state != StateConfigured {
		r.sendError(connID, "Game is not configured yet")
		return
	}
	r.state = StatePlaying
	r.current = 0
	r.log.Info("game started")
	r.broadcastState()
	r.notifyLobby()
}

func (r *Room) handleAnswer(connID string, msg ClientMessage) {
	if r.state != StatePlaying {
		return
	}

	playerID, ok := r.registry.ResolvePlayer(connID)
	if !ok {
		r.sendError(connID, "Player not found for this connection")
		return
	}
	if playerID != msg.PlayerID {
		r.sendError(connID, "Player ID mismatch")
		return
	}

	round := r.rounds[r.current]
	resp, recorded := r.ledger.Submit(r.current, round, r.songs, playerID, msg.SongID, msg.Selection)
	if !recorded {
		return
	}

	player := r.players[playerID]
	player.Score += resp.Points
	if resp.IsCorrect {
		player.Correct++
	} else {
		player.Incorrect++
	}

	r.deps.Broadcaster.SendTo(connID, ServerMessage{
		Type: MsgAnswerResult,
		Data: AnswerResult{SongID: resp.SongID, IsCorrect: resp.IsCorrect, Points: resp.Points},
	})
	r.broadcastState()
}

func (r *Room) handleNext(connID string) {
	if !r.senderIsHost(connID) {
		r.sendError(connID, "Only the host can go to next song")
		return
	}
	if r.state != StatePlaying {
		return
	}
	if !r.allConnectedAnswered() {
		return
	}

	if r.current+1 >= len(r.rounds) {
		r.state = StateResults
		r.log.Info("all rounds played, showing results")
		r.broadcastState()
		r.notifyLobby()
		return
	}

	r.current++
	r.broadcastState()
}

func (r *Room) handleShowScores(connID string) {
	if !r.senderIsHost(connID) {
		r.sendError(connID, "Only the host can show scores")
		return
	}
	if r.state != StatePlaying {
		return
	}
	r.state = StateResults
	r.broadcastState()
	r.notifyLobby()
}

func (r *Room) handleRestart(connID string) {
	if !r.senderIsHost(connID) {
		r.sendError(connID, "Only the host can restart the game")
		return
	}
	if r.state != StateResults {
		return
	}

	r.songList = nil
	r.songs = nil
	r.works = nil
	r.rounds = nil
	r.current = 0
	r.ledger.Reset()
	for _, p := range r.players {
		p.Score = 0
		p.Correct = 0
		p.Incorrect = 0
	}
	r.state = StateIdle

	r.log.Info("room restarted")
	r.broadcastState()
	r.notifyLobby()
}

func (r *Room) handleDisconnect(connID string) {
	playerID, ok := r.registry.Unbind(connID)
	if !ok {
		return
	}
	if player, exists := r.players[playerID]; exists {
		player.Connected = false
		player.ConnectionID = ""
	}
	r.log.WithField("player", playerID).Info("player disconnected")
	r.broadcastState()
	r.notifyLobby()
}

// senderIsHost is the shared authorization rule for privileged commands: the
// connection must resolve to the player record holding room.hostID. A message
// merely claiming the host id never passes this check.
func (r *Room) senderIsHost(connID string) bool {
	playerID, ok := r.registry.ResolvePlayer(connID)
	return ok && r.hostID != "" && playerID == r.hostID
}

// allConnectedAnswered reports whether every currently-connected player has
// filled all slots of the current round. Disconnected players are excluded so
// they cannot block round advancement.
func (r *Room) allConnectedAnswered() bool {
	round := r.rounds[r.current]
	for _, p := range r.players {
		if !p.Connected {
			continue
		}
		if !r.ledger.HasAllSlots(r.current, round, p.ID) {
			return false
		}
	}
	return true
}

func (r *Room) connectedCount() int {
	n := 0
	for _, p := range r.players {
		if p.Connected {
			n++
		}
	}
	return n
}

func (r *Room) snapshot() Snapshot {
	snap := Snapshot{
		ID:           r.ID,
		HostID:       r.hostID,
		State:        r.state,
		CurrentRound: r.current,
		TotalRounds:  len(r.rounds),
	}

	var roundSlots int
	if r.state == StatePlaying && r.current < len(r.rounds) {
		round := r.rounds[r.current]
		roundSlots = len(round.SongIDs)
		view := RoundView{Type: round.Type}
		for _, id := range round.SongIDs {
			s := r.songs[id]
			view.Songs = append(view.Songs, SongView{
				ID:               s.ID,
				Title:            s.Title,
				Artist:           s.Artist,
				YoutubeID:        s.YoutubeID,
				AudioURL:         s.AudioURL,
				AudioURLReversed: s.AudioURLReversed,
				Duration:         s.Duration,
			})
		}
		snap.Round = &view
	}

	for _, w := range r.works {
		snap.Works = append(snap.Works, WorkView{ID: w.ID, Title: w.Title})
	}

	for _, id := range r.joinOrder {
		p := r.players[id]
		view := PlayerView{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Score:       p.Score,
			Correct:     p.Correct,
			Incorrect:   p.Incorrect,
			IsHost:      p.IsHost,
			Connected:   p.Connected,
		}
		if roundSlots > 0 {
			view.Answered = r.ledger.SlotsFilled(r.current, p.ID) >= roundSlots
		}
		snap.Players = append(snap.Players, view)
	}

	return snap
}

func (r *Room) broadcastState() {
	r.deps.Broadcaster.Broadcast(r.ID, ServerMessage{Type: MsgStateSync, Data: r.snapshot()})
}

func (r *Room) sendError(connID, message string) {
	r.deps.Broadcaster.SendTo(connID, ServerMessage{Type: MsgError, Message: message})
}

func (r *Room) notifyLobby() {
	if r.deps.Notifier == nil {
		return
	}
	r.deps.Notifier.RoomStateChanged(r.ID, r.state, r.connectedCount())
}
