package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerFixture() (*AnswerLedger, map[string]Song) {
	songs := map[string]Song{
		"s1": {ID: "s1", WorkID: "w1"},
		"s2": {ID: "s2", WorkID: "w2"},
		"s3": {ID: "s3", WorkID: "w1"},
	}
	return NewAnswerLedger(NewScoring()), songs
}

func TestSubmitNormalRound(t *testing.T) {
	ledger, songs := ledgerFixture()
	round := Round{Type: RoundNormal, SongIDs: []string{"s1"}}

	resp, ok := ledger.Submit(0, round, songs, "alice", "s1", "w1")
	require.True(t, ok)
	assert.True(t, resp.IsCorrect)
	assert.Equal(t, 1, resp.Points)

	resp, ok = ledger.Submit(0, round, songs, "bob", "s1", "w2")
	require.True(t, ok)
	assert.False(t, resp.IsCorrect)
	assert.Zero(t, resp.Points)
}

func TestSubmitDuplicateIgnored(t *testing.T) {
	ledger, songs := ledgerFixture()
	round := Round{Type: RoundNormal, SongIDs: []string{"s1"}}

	_, ok := ledger.Submit(0, round, songs, "alice", "s1", "w2")
	require.True(t, ok)

	// A second submission for the same slot changes nothing, even if it
	// would have been correct.
	_, ok = ledger.Submit(0, round, songs, "alice", "s1", "w1")
	assert.False(t, ok)
	assert.Equal(t, 1, ledger.SlotsFilled(0, "alice"))

	responses := ledger.Responses(0)["alice"]
	require.Len(t, responses, 1)
	assert.False(t, responses[0].IsCorrect)
}

func TestSubmitSongOutsideRoundIgnored(t *testing.T) {
	ledger, songs := ledgerFixture()
	round := Round{Type: RoundNormal, SongIDs: []string{"s1"}}

	_, ok := ledger.Submit(0, round, songs, "alice", "s2", "w2")
	assert.False(t, ok)
	assert.Zero(t, ledger.SlotsFilled(0, "alice"))
}

func TestDoubleRoundDistinctWorks(t *testing.T) {
	ledger, songs := ledgerFixture()
	round := Round{Type: RoundDouble, SongIDs: []string{"s1", "s2"}}

	// First slot consumes w1 from the pair's multiset.
	resp, ok := ledger.Submit(0, round, songs, "alice", "s1", "w1")
	require.True(t, ok)
	assert.True(t, resp.IsCorrect)

	// Repeating w1 cannot score again: only w2 remains.
	resp, ok = ledger.Submit(0, round, songs, "alice", "s2", "w1")
	require.True(t, ok)
	assert.False(t, resp.IsCorrect)
}

func TestDoubleRoundDuplicateWorks(t *testing.T) {
	ledger, songs := ledgerFixture()
	// s1 and s3 belong to the same work.
	round := Round{Type: RoundDouble, SongIDs: []string{"s1", "s3"}}

	resp, ok := ledger.Submit(0, round, songs, "alice", "s1", "w1")
	require.True(t, ok)
	assert.True(t, resp.IsCorrect)

	resp, ok = ledger.Submit(0, round, songs, "alice", "s3", "w1")
	require.True(t, ok)
	assert.True(t, resp.IsCorrect)
}

func TestDoubleRoundMissDoesNotConsume(t *testing.T) {
	ledger, songs := ledgerFixture()
	round := Round{Type: RoundDouble, SongIDs: []string{"s1", "s2"}}

	resp, ok := ledger.Submit(0, round, songs, "alice", "s1", "nope")
	require.True(t, ok)
	assert.False(t, resp.IsCorrect)

	// The miss left the multiset intact, so either correct work still scores.
	resp, ok = ledger.Submit(0, round, songs, "alice", "s2", "w2")
	require.True(t, ok)
	assert.True(t, resp.IsCorrect)
}

func TestDoubleRoundSlotsAreIndependentPerPlayer(t *testing.T) {
	ledger, songs := ledgerFixture()
	round := Round{Type: RoundDouble, SongIDs: []string{"s1", "s2"}}

	_, ok := ledger.Submit(0, round, songs, "alice", "s1", "w2")
	require.True(t, ok)

	resp, ok := ledger.Submit(0, round, songs, "bob", "s1", "w2")
	require.True(t, ok)
	assert.True(t, resp.IsCorrect, "alice's consumption must not affect bob")
}

func TestHasAllSlots(t *testing.T) {
	ledger, songs := ledgerFixture()
	double := Round{Type: RoundDouble, SongIDs: []string{"s1", "s2"}}

	assert.False(t, ledger.HasAllSlots(0, double, "alice"))

	ledger.Submit(0, double, songs, "alice", "s1", "w1")
	assert.False(t, ledger.HasAllSlots(0, double, "alice"))

	ledger.Submit(0, double, songs, "alice", "s2", "w2")
	assert.True(t, ledger.HasAllSlots(0, double, "alice"))
}

func TestLedgerReset(t *testing.T) {
	ledger, songs := ledgerFixture()
	round := Round{Type: RoundNormal, SongIDs: []string{"s1"}}

	ledger.Submit(0, round, songs, "alice", "s1", "w1")
	ledger.Reset()

	assert.Zero(t, ledger.SlotsFilled(0, "alice"))
	_, ok := ledger.Submit(0, round, songs, "alice", "s1", "w1")
	assert.True(t, ok)
}
