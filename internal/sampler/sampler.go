// Package sampler is the single source of randomness for exercise
// generation and recommendation. Every random choice, distractor sample and
// option shuffle goes through a *Sampler so tests can pin the outcome with a
// seed.
package sampler

import (
	"math/rand/v2"
	"time"
)

// Sampler wraps a pseudo-random source. It is not safe for concurrent use.
type Sampler struct {
	rng *rand.Rand
}

// New returns a Sampler seeded deterministically from seed.
func New(seed uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandom returns a Sampler seeded from the wall clock.
func NewRandom() *Sampler {
	return New(uint64(time.Now().UnixNano()))
}

// IntN returns a uniform int in [0, n). Panics if n <= 0.
func (s *Sampler) IntN(n int) int {
	return s.rng.IntN(n)
}

// Between returns a uniform int in [lo, hi]. Panics if hi < lo.
func (s *Sampler) Between(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

// Choice returns a uniformly chosen element of items.
// The second return value is false when items is empty.
func Choice[T any](s *Sampler, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[s.rng.IntN(len(items))], true
}

// Sample returns min(k, len(items)) distinct positions of items chosen
// uniformly without replacement. The input slice is not modified.
func Sample[T any](s *Sampler, items []T, k int) []T {
	if k > len(items) {
		k = len(items)
	}
	if k <= 0 {
		return nil
	}
	// Partial Fisher-Yates over a copy.
	pool := make([]T, len(items))
	copy(pool, items)
	for i := 0; i < k; i++ {
		j := i + s.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Shuffle permutes items in place uniformly.
func Shuffle[T any](s *Sampler, items []T) {
	s.rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}
