package game

// ConnectionRegistry is the per-room table binding live transport connections
// to player ids. It is the only source of truth for who a message is really
// from: handlers resolve the sender through it and never trust ids claimed in
// the message body.
//
// The registry is owned by the room actor and accessed only from its loop,
// so it carries no locking.
type ConnectionRegistry struct {
	byConn   map[string]string
	byPlayer map[string]string
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		byConn:   make(map[string]string),
		byPlayer: make(map[string]string),
	}
}

// Bind associates a connection with a player. A player rebinding from a new
// connection (reconnect) drops the previous binding so connection ids stay
// unique among connected players.
func (r *ConnectionRegistry) Bind(connectionID, playerID string) {
	if old, ok := r.byPlayer[playerID]; ok && old != connectionID {
		delete(r.byConn, old)
	}
	if old, ok := r.byConn[connectionID]; ok && old != playerID {
		delete(r.byPlayer, old)
	}
	r.byConn[connectionID] = playerID
	r.byPlayer[playerID] = connectionID
}

// Unbind removes a connection's binding and reports which player it belonged to.
func (r *ConnectionRegistry) Unbind(connectionID string) (string, bool) {
	playerID, ok := r.byConn[connectionID]
	if !ok {
		return "", false
	}
	delete(r.byConn, connectionID)
	if r.byPlayer[playerID] == connectionID {
		delete(r.byPlayer, playerID)
	}
	return playerID, true
}

// ResolvePlayer returns the player bound to a connection.
func (r *ConnectionRegistry) ResolvePlayer(connectionID string) (string, bool) {
	playerID, ok := r.byConn[connectionID]
	return playerID, ok
}

// ConnectionFor returns the live connection of a player, if any.
func (r *ConnectionRegistry) ConnectionFor(playerID string) (string, bool) {
	connectionID, ok := r.byPlayer[playerID]
	return connectionID, ok
}
