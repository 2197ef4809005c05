package rng

// Seed mixing constants. roundPrime decorrelates successive rounds drawn
// from one base seed, candidateMix separates the candidate stream from the
// target stream, focusMix separates viewport jitter from both.
const (
	roundPrime   uint32 = 9973
	candidateMix uint32 = 0x9e3779b9
	focusMix     uint32 = 0x85ebca6b
)

// Seed32 reduces a caller seed to 32 bits (seed mod 2^32).
func Seed32(seed int64) uint32 {
	return uint32(seed)
}

// RoundSeed returns (seed + round*9973) mod 2^32.
func RoundSeed(seed int64, round int) uint32 {
	return Seed32(seed) + uint32(round)*roundPrime
}

// CandidateSeed returns (seed XOR 0x9e3779b9) mod 2^32.
func CandidateSeed(seed int64) uint32 {
	return Seed32(seed) ^ candidateMix
}

// FocusSeed returns the per-round seed used for viewport jitter.
func FocusSeed(seed int64, round int) uint32 {
	return RoundSeed(seed, round) ^ focusMix
}
