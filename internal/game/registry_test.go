package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBindAndResolve(t *testing.T) {
	reg := NewConnectionRegistry()
	reg.Bind("conn-1", "alice")

	playerID, ok := reg.ResolvePlayer("conn-1")
	require.True(t, ok)
	assert.Equal(t, "alice", playerID)

	connID, ok := reg.ConnectionFor("alice")
	require.True(t, ok)
	assert.Equal(t, "conn-1", connID)
}

func TestRegistryResolveUnknown(t *testing.T) {
	reg := NewConnectionRegistry()
	_, ok := reg.ResolvePlayer("nope")
	assert.False(t, ok)
}

func TestRegistryUnbind(t *testing.T) {
	reg := NewConnectionRegistry()
	reg.Bind("conn-1", "alice")

	playerID, ok := reg.Unbind("conn-1")
	require.True(t, ok)
	assert.Equal(t, "alice", playerID)

	_, ok = reg.ResolvePlayer("conn-1")
	assert.False(t, ok)
	_, ok = reg.ConnectionFor("alice")
	assert.False(t, ok)

	_, ok = reg.Unbind("conn-1")
	assert.False(t, ok)
}

func TestRegistryRebindDropsStaleConnection(t *testing.T) {
	reg := NewConnectionRegistry()
	reg.Bind("conn-1", "alice")
	reg.Bind("conn-2", "alice")

	// The old connection no longer resolves to anyone.
	_, ok := reg.ResolvePlayer("conn-1")
	assert.False(t, ok)

	playerID, ok := reg.ResolvePlayer("conn-2")
	require.True(t, ok)
	assert.Equal(t, "alice", playerID)

	connID, ok := reg.ConnectionFor("alice")
	require.True(t, ok)
	assert.Equal(t, "conn-2", connID)
}

func TestRegistryConnectionTakeover(t *testing.T) {
	reg := NewConnectionRegistry()
	reg.Bind("conn-1", "alice")
	reg.Bind("conn-1", "bob")

	playerID, ok := reg.ResolvePlayer("conn-1")
	require.True(t, ok)
	assert.Equal(t, "bob", playerID)

	_, ok = reg.ConnectionFor("alice")
	assert.False(t, ok)
}
