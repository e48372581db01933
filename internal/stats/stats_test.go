package stats

import (
	"reflect"
	"testing"

	"github.com/quacksim/quacksim/internal/bag"
	"github.com/quacksim/quacksim/internal/player"
)

func defaultPlayer() *player.Player {
	return player.New(bag.New(bag.NewSeededRNG(1)), nil)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]int{1, 2, 3, 4, 5})
	if s.Mean != 3 {
		t.Fatalf("mean = %f, want 3", s.Mean)
	}
	if s.Var != 2 {
		t.Fatalf("var = %f, want 2", s.Var)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Fatalf("min/max = %d/%d, want 1/5", s.Min, s.Max)
	}
	if s.P50 != 3 {
		t.Fatalf("p50 = %f, want 3", s.P50)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); !reflect.DeepEqual(s, Summary{}) {
		t.Fatalf("empty summary = %+v, want zero", s)
	}
}

func TestRunRequiresRounds(t *testing.T) {
	if _, err := Run(defaultPlayer(), RunConfig{Rounds: 0}); err != ErrNoRounds {
		t.Fatalf("err = %v, want ErrNoRounds", err)
	}
}

func TestRunIsDeterministicForSeed(t *testing.T) {
	cfg := RunConfig{Rounds: 500, Strategy: StrategyExplode, Seed: 42}
	a, err := Run(defaultPlayer(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(defaultPlayer(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if a.Positions.Mean != b.Positions.Mean || a.Stops != b.Stops {
		t.Fatalf("same seed diverged: %+v vs %+v", a, b)
	}
}

func TestRunCountsEveryRound(t *testing.T) {
	res, err := Run(defaultPlayer(), RunConfig{
		Rounds: 1000, Strategy: StrategyExplode, Seed: 7,
	})
	if err != nil {
		t.Fatal(err)
	}
	total := res.Stops.Busted + res.Stops.ReachedEnd + res.Stops.Exhausted + res.Stops.RiskExceeded
	if total != 1000 {
		t.Fatalf("stop counts sum to %d, want 1000", total)
	}
	if len(res.Positions.Samples) != 1000 {
		t.Fatalf("samples = %d, want 1000", len(res.Positions.Samples))
	}
}

func TestSafeStrategyWithZeroToleranceNeverBusts(t *testing.T) {
	res, err := Run(defaultPlayer(), RunConfig{
		Rounds: 2000, Strategy: StrategySafe, RiskTolerance: 0, Seed: 11,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stops.Busted != 0 {
		t.Fatalf("zero tolerance still busted %d times", res.Stops.Busted)
	}
}

func TestRunParallelMatchesRoundCount(t *testing.T) {
	res, err := Run(defaultPlayer(), RunConfig{
		Rounds: 999, Strategy: StrategyExplode, Seed: 3, Workers: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Positions.Samples) != 999 {
		t.Fatalf("samples = %d, want 999", len(res.Positions.Samples))
	}
	total := res.Stops.Busted + res.Stops.ReachedEnd + res.Stops.Exhausted + res.Stops.RiskExceeded
	if total != 999 {
		t.Fatalf("stop counts sum to %d, want 999", total)
	}
}

func TestCompareRunsBothStrategies(t *testing.T) {
	cmp, err := Compare(defaultPlayer(), 500, 0.25, 42, 1)
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Explode.Rounds != 500 || cmp.Safe.Rounds != 500 {
		t.Fatalf("rounds = %d/%d, want 500/500", cmp.Explode.Rounds, cmp.Safe.Rounds)
	}
	if cmp.Explode.Strategy != StrategyExplode || cmp.Safe.Strategy != StrategySafe {
		t.Fatalf("strategies mislabeled: %+v", cmp)
	}
	// the cautious player should never move further on average
	if cmp.Safe.Positions.Mean > float64(cmp.Explode.Positions.Max) {
		t.Fatalf("safe mean %f above explode max %d", cmp.Safe.Positions.Mean, cmp.Explode.Positions.Max)
	}
}
