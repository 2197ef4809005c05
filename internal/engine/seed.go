package engine

import "github.com/vovakirdan/geoquiz/internal/rng"

// roundSeed mirrors the seed quiz.NextQuestion uses for a round's
// candidates, so rebuilt candidate sets match the originals.
func roundSeed(seed int64, round int) int64 {
	if round < 0 {
		round = 0
	}
	return int64(rng.RoundSeed(seed, round))
}
