package roulette

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// osEntropy is a rand.Source reading the operating system CSPRNG. It holds
// no state, so a *rand.Rand over it is safe for concurrent use.
type osEntropy struct{}

func (osEntropy) Uint64() uint64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return rand.Uint64()
	}
	return binary.LittleEndian.Uint64(b[:])
}

var defaultRNG = rand.New(osEntropy{})

// DefaultRNG is backed by crypto/rand, falling back to the runtime-seeded
// math/rand/v2 generator if the OS source fails.
func DefaultRNG() RandomSource { return defaultRNG }

// NewSeededRNG returns a reproducible PCG stream for tests and --seed runs.
// The result must stay with one goroutine.
func NewSeededRNG(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, 0))
}

func orDefault(rng RandomSource) RandomSource {
	if rng == nil {
		return defaultRNG
	}
	return rng
}
