package game

import (
	"math"
	"sort"
)

// ComposeRounds partitions songs into an ordered round list, applying mystery
// effects to a frequency-controlled subset. The rng parameter must return
// values in [0,1); callers inject it so composition is deterministic under a
// seeded source.
//
// Every song id ends up in exactly one round. Round order follows the input
// song order, except that the two songs of a double round are merged into the
// position of the earlier one.
func ComposeRounds(songs []Song, cfg EffectsConfig, rng func() float64) []Round {
	total := len(songs)
	if total == 0 {
		return nil
	}

	wantDouble := cfg.has(EffectDouble)
	wantReverse := cfg.has(EffectReverse)
	if !cfg.Enabled || cfg.Frequency <= 0 || (!wantDouble && !wantReverse) {
		rounds := make([]Round, 0, total)
		for _, s := range songs {
			rounds = append(rounds, Round{Type: RoundNormal, SongIDs: []string{s.ID}})
		}
		return rounds
	}

	target := total * cfg.Frequency / 100
	if target > total {
		target = total
	}
	// Enabled effects with a nonzero frequency always touch at least one song.
	if target < 1 {
		target = 1
	}

	doubleTouched, reverseTouched := splitTarget(target, wantDouble, wantReverse)

	indices := shuffledIndices(total, rng)
	doubleCandidates := append([]int(nil), indices[:doubleTouched]...)
	sort.Ints(doubleCandidates)

	// Pair consecutive double candidates: the earlier index anchors the round.
	partner := make(map[int]int, len(doubleCandidates))
	for i := 0; i+1 < len(doubleCandidates); i += 2 {
		partner[doubleCandidates[i]] = doubleCandidates[i+1]
	}

	reversed := make(map[int]bool, reverseTouched)
	for _, idx := range indices[doubleTouched : doubleTouched+reverseTouched] {
		reversed[idx] = true
	}

	consumed := make(map[int]bool, doubleTouched)
	rounds := make([]Round, 0, total-doubleTouched/2)
	for i := 0; i < total; i++ {
		if consumed[i] {
			continue
		}
		if p, ok := partner[i]; ok {
			consumed[p] = true
			rounds = append(rounds, Round{Type: RoundDouble, SongIDs: []string{songs[i].ID, songs[p].ID}})
			continue
		}
		if reversed[i] {
			rounds = append(rounds, Round{Type: RoundReverse, SongIDs: []string{songs[i].ID}})
			continue
		}
		rounds = append(rounds, Round{Type: RoundNormal, SongIDs: []string{songs[i].ID}})
	}
	return rounds
}

// splitTarget divides the touched-song budget between the two effects.
// Double counts are always even since each double round consumes a pair.
func splitTarget(target int, wantDouble, wantReverse bool) (doubleTouched, reverseTouched int) {
	switch {
	case wantDouble && wantReverse:
		doubleTouched = int(math.Round(float64(target) * 0.5))
		doubleTouched -= doubleTouched % 2
		if doubleTouched < 0 {
			doubleTouched = 0
		}
		if evenCap := target - target%2; doubleTouched > evenCap {
			doubleTouched = evenCap
		}
		reverseTouched = target - doubleTouched
	case wantDouble:
		doubleTouched = target - target%2
	default:
		reverseTouched = target
	}
	return doubleTouched, reverseTouched
}

// shuffledIndices returns 0..n-1 shuffled with Fisher-Yates driven by rng.
func shuffledIndices(n int, rng func() float64) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := int(rng() * float64(i+1))
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices
}
