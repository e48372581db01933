package bag

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// RandomSource supplies the uniform index used for
// draw-without-replacement.
type RandomSource interface {
	IntN(n int) int // uniform in [0, n); n must be > 0
}

// crypto random: default source when the caller does not care about
// reproducibility.
type cryptoRNG struct{}

func (cryptoRNG) IntN(n int) int {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// back to math/rand/v2
		return rand.IntN(n)
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return int(float64(u) / (1 << 53) * float64(n))
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG for Monte Carlo runs and tests.
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) IntN(n int) int { return s.r.IntN(n) }

// NewSeed generates a run seed from crypto/rand, for callers that want
// a recorded-but-random seed.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := cryptoRand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
