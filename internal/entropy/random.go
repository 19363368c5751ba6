// Package entropy provides the seeded, labeled random source used by world generation.
// Every stochastic decision names itself with a label; each label draws from its own
// PCG stream derived from the world seed, so results never depend on the order in
// which unrelated decisions consume randomness.
package entropy

import (
	"hash/fnv"
	"math/rand/v2"
)

// floatResolution is the number of distinct values Float can return.
const floatResolution = 1 << 24

// Source maps (bound, label) to deterministic integers for a fixed seed.
// It is owned by a single generation call and is not safe for concurrent use.
type Source struct {
	seed    uint64
	streams map[string]*rand.Rand
}

// NewSource creates a source for the given world seed.
func NewSource(seed int64) *Source {
	return &Source{
		seed:    uint64(seed),
		streams: make(map[string]*rand.Rand),
	}
}

// Seed returns the world seed the source was created with.
func (s *Source) Seed() int64 {
	return int64(s.seed)
}

// Int returns an integer in [0, bound) from the stream named by label.
// A non-positive bound yields 0 without consuming the stream.
func (s *Source) Int(bound int, label string) int {
	if bound <= 0 {
		return 0
	}
	return s.stream(label).IntN(bound)
}

// Float returns a value in [0, 1) from the stream named by label.
func (s *Source) Float(label string) float64 {
	return float64(s.Int(floatResolution, label)) / floatResolution
}

// Range returns a value in [lo, hi) from the stream named by label.
func (s *Source) Range(lo, hi float64, label string) float64 {
	return lo + (hi-lo)*s.Float(label)
}

// Signed returns a value in [-1, 1) from the stream named by label.
func (s *Source) Signed(label string) float64 {
	return s.Float(label)*2 - 1
}

func (s *Source) stream(label string) *rand.Rand {
	r, ok := s.streams[label]
	if !ok {
		r = rand.New(rand.NewPCG(s.seed, labelHash(label)))
		s.streams[label] = r
	}
	return r
}

func labelHash(label string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(label))
	return h.Sum64()
}
