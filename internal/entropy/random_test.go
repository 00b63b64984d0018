package entropy

import "testing"

func TestSeededIsReproducible(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d: %v != %v", i, x, y)
		}
		if x, y := a.Intn(10), b.Intn(10); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestSequence(t *testing.T) {
	s := NewSequence(0.25, 0.999)
	if got := s.Float64(); got != 0.25 {
		t.Fatalf("first draw = %v", got)
	}
	if got := s.Intn(4); got != 3 {
		t.Fatalf("Intn(4) on 0.999 = %d, want 3", got)
	}
	if got := s.Intn(4); got != 1 {
		t.Fatalf("cycled Intn(4) on 0.25 = %d, want 1", got)
	}
	if got := NewSequence().Float64(); got != 0 {
		t.Fatalf("empty sequence = %v", got)
	}
	if got := NewSequence(1).Intn(5); got != 4 {
		t.Fatalf("Intn clamps to n-1, got %d", got)
	}
}

func TestChanceAndBetween(t *testing.T) {
	if !Chance(NewSequence(0.1), 0.2) || Chance(NewSequence(0.2), 0.2) {
		t.Fatal("Chance should be strictly below p")
	}
	if got := Between(NewSequence(0), 3, 7); got != 3 {
		t.Fatalf("Between low = %d", got)
	}
	if got := Between(NewSequence(0.99), 3, 7); got != 7 {
		t.Fatalf("Between high = %d", got)
	}
	if got := Between(NewSequence(0.5), 5, 5); got != 5 {
		t.Fatalf("Between on an empty range = %d", got)
	}
}

func TestCryptoRange(t *testing.T) {
	var c Crypto
	for i := 0; i < 1000; i++ {
		if f := c.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 = %v", f)
		}
		if n := c.Intn(3); n < 0 || n >= 3 {
			t.Fatalf("Intn(3) = %d", n)
		}
	}
}

func TestSeededResumesFromDrawCount(t *testing.T) {
	var draws uint64
	a := NewSeededAt(9, &draws)
	for i := 0; i < 37; i++ {
		a.Float64()
		a.Intn(7)
	}
	if draws == 0 {
		t.Fatal("draws not counted")
	}

	resumed := draws
	b := NewSeededAt(9, &resumed)
	for i := 0; i < 20; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d after resume: %v != %v", i, x, y)
		}
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d after resume: %d != %d", i, x, y)
		}
	}
	if draws != resumed {
		t.Fatalf("counters diverged: %d vs %d", draws, resumed)
	}
}

func TestNewSeedIsPositive(t *testing.T) {
	for i := 0; i < 100; i++ {
		if s := NewSeed(); s <= 0 {
			t.Fatalf("NewSeed = %d", s)
		}
	}
}
