// Package stats drives bulk round simulation and summarizes the
// resulting position samples.
package stats

import (
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/quacksim/quacksim/internal/bag"
	"github.com/quacksim/quacksim/internal/player"
)

// Strategy selects the player's stopping policy for a run.
type Strategy string

const (
	// Keep drawing until bust, board end, or an empty bag.
	StrategyExplode Strategy = "explode"
	// Stop as soon as the bust probability exceeds the tolerance.
	StrategySafe Strategy = "safe"
)

var ErrNoRounds = errors.New("rounds must be >= 1")

// RunConfig describes one simulation run.
type RunConfig struct {
	Rounds        int
	Strategy      Strategy
	RiskTolerance float64 // only read by StrategySafe
	Seed          uint64  // 0 means a crypto-generated seed
	Workers       int     // <=1 runs sequentially
}

// Summary condenses integer samples: moments plus interpolated
// percentiles.
type Summary struct {
	Mean    float64 `json:"mean"`
	Var     float64 `json:"var"`
	StdDev  float64 `json:"std_dev"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	P50     float64 `json:"p50"`
	P90     float64 `json:"p90"`
	P99     float64 `json:"p99"`
	Samples []int   `json:"-"`
}

// StopCounts tallies how rounds ended.
type StopCounts struct {
	Busted       int `json:"busted"`
	ReachedEnd   int `json:"reached_end"`
	Exhausted    int `json:"exhausted"`
	RiskExceeded int `json:"risk_exceeded"`
}

func (c *StopCounts) add(r player.StopReason) {
	switch r {
	case player.StopBusted:
		c.Busted++
	case player.StopReachedEnd:
		c.ReachedEnd++
	case player.StopExhausted:
		c.Exhausted++
	case player.StopRiskExceeded:
		c.RiskExceeded++
	}
}

func (c *StopCounts) merge(o StopCounts) {
	c.Busted += o.Busted
	c.ReachedEnd += o.ReachedEnd
	c.Exhausted += o.Exhausted
	c.RiskExceeded += o.RiskExceeded
}

// Result is one strategy's aggregate over a full run.
type Result struct {
	Strategy  Strategy   `json:"strategy"`
	Rounds    int        `json:"rounds"`
	Seed      uint64     `json:"seed"`
	Positions Summary    `json:"positions"`
	Stops     StopCounts `json:"stops"`
}

// Comparison pairs both strategies over the same bag configuration,
// the shape the original analysis reported.
type Comparison struct {
	Explode Result `json:"explode"`
	Safe    Result `json:"safe"`
}

// Run simulates cfg.Rounds rounds on independent clones of p and
// summarizes the final positions. p itself is never drawn from, so a
// shared player can serve concurrent runs.
func Run(p *player.Player, cfg RunConfig) (Result, error) {
	if cfg.Rounds < 1 {
		return Result{}, ErrNoRounds
	}
	seed := cfg.Seed
	if seed == 0 {
		s, err := bag.NewSeed()
		if err != nil {
			return Result{}, err
		}
		seed = s
	}
	stop := cfg.Strategy == StrategySafe

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > cfg.Rounds {
		workers = cfg.Rounds
	}

	type partial struct {
		samples []int
		stops   StopCounts
	}

	parts := make([]partial, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		rounds := cfg.Rounds / workers
		if w < cfg.Rounds%workers {
			rounds++
		}
		// each worker owns a bag clone and its own PCG stream
		wp := p.Clone(bag.NewSeededRNG(seed + uint64(w)))

		wg.Add(1)
		go func(w, rounds int) {
			defer wg.Done()
			part := partial{samples: make([]int, 0, rounds)}
			for i := 0; i < rounds; i++ {
				out := wp.SimulateRound(stop, cfg.RiskTolerance)
				part.samples = append(part.samples, out.FinalPosition)
				part.stops.add(out.Stopped)
			}
			parts[w] = part
		}(w, rounds)
	}
	wg.Wait()

	res := Result{Strategy: cfg.Strategy, Rounds: cfg.Rounds, Seed: seed}
	samples := make([]int, 0, cfg.Rounds)
	for _, part := range parts {
		samples = append(samples, part.samples...)
		res.Stops.merge(part.stops)
	}
	res.Positions = Summarize(samples)
	return res, nil
}

// Compare runs both strategies against the same configuration. The
// safe run gets a distinct seed stream so the two sample sets are
// independent.
func Compare(p *player.Player, rounds int, riskTolerance float64, seed uint64, workers int) (Comparison, error) {
	if seed == 0 {
		s, err := bag.NewSeed()
		if err != nil {
			return Comparison{}, err
		}
		seed = s
	}
	explode, err := Run(p, RunConfig{
		Rounds: rounds, Strategy: StrategyExplode, Seed: seed, Workers: workers,
	})
	if err != nil {
		return Comparison{}, err
	}
	safe, err := Run(p, RunConfig{
		Rounds: rounds, Strategy: StrategySafe, RiskTolerance: riskTolerance,
		Seed: seed + 7919, Workers: workers,
	})
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{Explode: explode, Safe: safe}, nil
}

// Summarize computes mean/variance/percentiles for integer samples.
func Summarize(xs []int) Summary {
	n := len(xs)
	if n == 0 {
		return Summary{}
	}

	var sum float64
	min, max := xs[0], xs[0]
	for _, v := range xs {
		sum += float64(v)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(n)

	// population variance
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if p <= 0 || n == 1 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Summary{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		Min:     min,
		Max:     max,
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}
