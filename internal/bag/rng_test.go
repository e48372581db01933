package bag

import "testing"

func TestSeededRNGIsDeterministic(t *testing.T) {
	a := NewSeededRNG(42)
	b := NewSeededRNG(42)
	for i := 0; i < 1000; i++ {
		if x, y := a.IntN(9), b.IntN(9); x != y {
			t.Fatalf("same seed diverged at i=%d: %d vs %d", i, x, y)
		}
	}
}

func TestDefaultRNGBounds(t *testing.T) {
	rng := DefaultRNG()
	for i := 0; i < 1000; i++ {
		if v := rng.IntN(9); v < 0 || v >= 9 {
			t.Fatalf("IntN(9) out of range: %d", v)
		}
	}
}

func TestNewSeedVaries(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("two generated seeds collided: %d", a)
	}
}
