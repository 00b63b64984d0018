// Package entropy provides the random sources the simulation draws from.
// Every probabilistic decision in the engine goes through a Source so that
// outcomes can be replayed from a seed or scripted in tests.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	mathrand "math/rand"
	"sync"
)

// Source yields uniform random numbers.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

// Seeded is a deterministic Source backed by math/rand. It counts the values
// it has drawn so a restored game can resume where it left off.
type Seeded struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

// NewSeeded creates a deterministic source from seed.
func NewSeeded(seed int64) *Seeded {
	return NewSeededAt(seed, new(uint64))
}

// NewSeededAt creates a source from seed fast-forwarded past *draws values.
// Every later draw increments *draws.
func NewSeededAt(seed int64, draws *uint64) *Seeded {
	src := mathrand.NewSource(seed)
	for i := uint64(0); i < *draws; i++ {
		src.Int63()
	}
	return &Seeded{rng: mathrand.New(&countingSource{src: src, draws: draws})}
}

func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *Seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// countingSource counts the raw values pulled from the underlying source.
// math/rand derives Float64 and Intn from Int63 alone.
type countingSource struct {
	src   mathrand.Source
	draws *uint64
}

func (c *countingSource) Int63() int64 {
	*c.draws++
	return c.src.Int63()
}

func (c *countingSource) Seed(seed int64) {
	c.src.Seed(seed)
	*c.draws = 0
}

// Crypto draws from crypto/rand. Not reproducible.
type Crypto struct{}

func (Crypto) Float64() float64 { return cryptoRandFloat() }

func (Crypto) Intn(n int) int {
	v := int(cryptoRandFloat() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// NewSeed draws a fresh positive game seed from crypto/rand.
func NewSeed() int64 {
	return int64(Crypto{}.Intn(math.MaxInt32)) + 1
}

// cryptoRandFloat generates a random float64 using crypto/rand.
func cryptoRandFloat() float64 {
	var buf [8]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		// This should never happen but return 0.5 as a safe default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// Sequence replays a fixed list of draws, cycling when exhausted.
// Intn maps the next draw onto [0, n).
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequence creates a scripted source. With no values it always returns 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *Sequence) Intn(n int) int {
	v := int(s.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Chance reports whether a draw lands under p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Between returns an integer in [lo, hi].
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}
