// Package rng provides the deterministic pseudo-random source used for
// target order, candidate sets and viewport jitter.
//
// The generator is a 32-bit xorshift (13/17/5). Every operation works on
// uint32 words so a given seed yields the same stream on every platform.
package rng

import "errors"

// zeroSeed replaces a zero seed, which would otherwise produce an
// all-zero stream.
const zeroSeed uint32 = 0x6d2b79f5

// ErrEmptySequence is returned by PickOne when there is nothing to pick.
var ErrEmptySequence = errors.New("rng: index out of range on empty sequence")

// Source is a seeded xorshift32 generator. The zero value is not usable;
// construct with New.
type Source struct {
	state uint32
}

// New creates a generator seeded with seed.
func New(seed uint32) *Source {
	if seed == 0 {
		seed = zeroSeed
	}
	return &Source{state: seed}
}

// Next returns a float in [0, 1).
func (s *Source) Next() float64 {
	x := s.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	s.state = x
	return float64(x) / 4294967296.0
}

// NextInt returns an integer in [0, n). n must be positive.
func (s *Source) NextInt(n int) int {
	return int(s.Next() * float64(n))
}

// Shuffle permutes seq in place with Fisher-Yates, walking from the last
// index down to 1.
func Shuffle[T any](seq []T, src *Source) {
	for i := len(seq) - 1; i > 0; i-- {
		j := src.NextInt(i + 1)
		seq[i], seq[j] = seq[j], seq[i]
	}
}

// PickOne returns one element of seq chosen by src.
func PickOne[T any](seq []T, src *Source) (T, error) {
	var zero T
	if len(seq) == 0 {
		return zero, ErrEmptySequence
	}
	return seq[src.NextInt(len(seq))], nil
}
