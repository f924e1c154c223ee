package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRNG(seed int64) func() float64 {
	r := rand.New(rand.NewSource(seed))
	return r.Float64
}

func makeSongs(n int) []Song {
	songs := make([]Song, 0, n)
	for i := 0; i < n; i++ {
		songs = append(songs, Song{
			ID:     fmt.Sprintf("song-%02d", i),
			Title:  fmt.Sprintf("Song %d", i),
			WorkID: fmt.Sprintf("work-%02d", i),
		})
	}
	return songs
}

func countByType(rounds []Round) map[RoundType]int {
	counts := make(map[RoundType]int)
	for _, r := range rounds {
		counts[r.Type]++
	}
	return counts
}

func TestComposeRoundsEffectsDisabled(t *testing.T) {
	songs := makeSongs(5)
	cfg := EffectsConfig{Enabled: false, Frequency: 50, Effects: []string{EffectDouble, EffectReverse}}

	rounds := ComposeRounds(songs, cfg, seededRNG(1))

	require.Len(t, rounds, 5)
	for i, r := range rounds {
		assert.Equal(t, RoundNormal, r.Type)
		assert.Equal(t, []string{songs[i].ID}, r.SongIDs)
	}
}

func TestComposeRoundsNoEffectsSelected(t *testing.T) {
	rounds := ComposeRounds(makeSongs(4), EffectsConfig{Enabled: true, Frequency: 100}, seededRNG(1))

	require.Len(t, rounds, 4)
	for _, r := range rounds {
		assert.Equal(t, RoundNormal, r.Type)
	}
}

func TestComposeRoundsEmptyInput(t *testing.T) {
	cfg := EffectsConfig{Enabled: true, Frequency: 50, Effects: []string{EffectReverse}}
	assert.Empty(t, ComposeRounds(nil, cfg, seededRNG(1)))
}

func TestComposeRoundsDeterministic(t *testing.T) {
	songs := makeSongs(30)
	cfg := EffectsConfig{Enabled: true, Frequency: 70, Effects: []string{EffectDouble, EffectReverse}}

	first := ComposeRounds(songs, cfg, seededRNG(42))
	second := ComposeRounds(songs, cfg, seededRNG(42))

	assert.Equal(t, first, second)
}

func TestComposeRoundsCoversEverySongOnce(t *testing.T) {
	songs := makeSongs(25)
	cfg := EffectsConfig{Enabled: true, Frequency: 80, Effects: []string{EffectDouble, EffectReverse}}

	for seed := int64(0); seed < 10; seed++ {
		rounds := ComposeRounds(songs, cfg, seededRNG(seed))

		seen := make(map[string]int)
		for _, r := range rounds {
			for _, id := range r.SongIDs {
				seen[id]++
			}
		}
		require.Len(t, seen, len(songs), "seed %d", seed)
		for _, s := range songs {
			assert.Equal(t, 1, seen[s.ID], "seed %d song %s", seed, s.ID)
		}
	}
}

func TestComposeRoundsPreservesSongOrder(t *testing.T) {
	songs := makeSongs(20)
	index := make(map[string]int, len(songs))
	for i, s := range songs {
		index[s.ID] = i
	}
	cfg := EffectsConfig{Enabled: true, Frequency: 60, Effects: []string{EffectDouble, EffectReverse}}

	rounds := ComposeRounds(songs, cfg, seededRNG(7))

	// Each round is anchored at its earliest song index, and anchors
	// increase monotonically across the output.
	prev := -1
	for _, r := range rounds {
		anchor := index[r.SongIDs[0]]
		for _, id := range r.SongIDs {
			if index[id] < anchor {
				anchor = index[id]
			}
		}
		assert.Greater(t, anchor, prev)
		prev = anchor
	}
}

func TestComposeRoundsTwentySongsBothEffects(t *testing.T) {
	songs := makeSongs(20)
	cfg := EffectsConfig{Enabled: true, Frequency: 50, Effects: []string{EffectDouble, EffectReverse}}

	rounds := ComposeRounds(songs, cfg, seededRNG(42))

	counts := countByType(rounds)
	assert.Equal(t, 2, counts[RoundDouble])
	assert.Equal(t, 6, counts[RoundReverse])
	assert.Equal(t, 10, counts[RoundNormal])
	assert.Len(t, rounds, 18)
}

func TestComposeRoundsOddCountDoubleOnly(t *testing.T) {
	songs := makeSongs(21)
	cfg := EffectsConfig{Enabled: true, Frequency: 50, Effects: []string{EffectDouble}}

	rounds := ComposeRounds(songs, cfg, seededRNG(42))

	counts := countByType(rounds)
	assert.Equal(t, 5, counts[RoundDouble])
	assert.Equal(t, 0, counts[RoundReverse])
	assert.Len(t, rounds, 16)

	covered := 0
	for _, r := range rounds {
		covered += len(r.SongIDs)
	}
	assert.Equal(t, 21, covered)
}

func TestComposeRoundsMinimumOneEffect(t *testing.T) {
	songs := makeSongs(9)
	cfg := EffectsConfig{Enabled: true, Frequency: 10, Effects: []string{EffectReverse}}

	for seed := int64(0); seed < 20; seed++ {
		rounds := ComposeRounds(songs, cfg, seededRNG(seed))
		counts := countByType(rounds)
		assert.Equal(t, 1, counts[RoundReverse], "seed %d", seed)
		assert.Len(t, rounds, 9)
	}
}

func TestComposeRoundsDoubleRoundsConsumePairs(t *testing.T) {
	songs := makeSongs(10)
	cfg := EffectsConfig{Enabled: true, Frequency: 100, Effects: []string{EffectDouble}}

	rounds := ComposeRounds(songs, cfg, seededRNG(3))

	counts := countByType(rounds)
	assert.Equal(t, 5, counts[RoundDouble])
	assert.Len(t, rounds, 5)
	for _, r := range rounds {
		assert.Len(t, r.SongIDs, 2)
	}
}

func TestSplitTargetForcesEvenDoubles(t *testing.T) {
	for target := 1; target <= 40; target++ {
		double, reverse := splitTarget(target, true, true)
		assert.Zero(t, double%2, "target %d", target)
		assert.Equal(t, target, double+reverse, "target %d", target)
		assert.GreaterOrEqual(t, reverse, 0, "target %d", target)

		double, reverse = splitTarget(target, true, false)
		assert.Zero(t, double%2, "target %d", target)
		assert.Zero(t, reverse, "target %d", target)
	}
}
