// Package rng abstracts the random-number source every stochastic simulator
// draws from. Production defaults to a crypto-backed source; deterministic
// tests substitute a seeded stream.
package rng

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source yields uniform floats in [0,1) and bounded ints. Simulators accept a
// Source instead of calling a global generator so the same simulation code is
// reproducible under test.
type Source interface {
	Float64() float64
	// IntN returns a uniform int in [0, n). n must be > 0.
	IntN(n int) int
}

// cryptoSource reads entropy from crypto/rand, falling back to math/rand/v2
// if the read fails.
type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func (c cryptoSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(c.Float64() * float64(n))
}

// Default returns the production entropy source.
func Default() Source { return cryptoSource{} }

// seededSource wraps a PCG stream for replicable simulations.
type seededSource struct{ r *rand.Rand }

// NewSeeded returns a deterministic source for tests and replicable runs.
func NewSeeded(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }

func (s *seededSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// Chance reports one Bernoulli trial with probability p. p <= 0 never hits
// and p >= 1 always hits without consuming entropy bounds checks.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// WeightedIndex picks an index proportionally to weights. Non-positive
// weights are ignored; if no weight is positive it returns -1.
func WeightedIndex(src Source, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	roll := src.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return i
		}
	}
	// Float round-off can leave roll at exactly zero; fall back to the last
	// positive weight.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}

// Shuffle permutes ints in place using Fisher-Yates.
func Shuffle(src Source, values []int) {
	for i := len(values) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		values[i], values[j] = values[j], values[i]
	}
}
