package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/quacksim/quacksim/internal/bag"
)

const defaultYAML = `version: "1"
bag:
  bust_threshold: 7
  hazard: white
  tokens:
    white: [1, 1, 1, 1, 2, 2, 3]
    orange: [1]
    green: [1]
player:
  stop_before_explosion: false
board:
  last_playable_space: 33
simulation:
  rounds: 5000
`

const cautiousYAML = `player:
  stop_before_explosion: true
  risk_tolerance: 0.1
simulation:
  rounds: 200
`

func writeScenarios(t *testing.T, files map[string]string) string {
	t.Helper()
	base := t.TempDir()
	dir := filepath.Join(base, "scenarios")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return base
}

func TestLoadMergedDefault(t *testing.T) {
	base := writeScenarios(t, map[string]string{"default.yaml": defaultYAML})
	l := NewLoader(base)

	cfg, err := l.LoadMerged("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bag == nil || cfg.Bag.BustThreshold == nil || *cfg.Bag.BustThreshold != 7 {
		t.Fatalf("bag config = %+v", cfg.Bag)
	}
	if len(cfg.Bag.Tokens["white"]) != 7 {
		t.Fatalf("white tokens = %v", cfg.Bag.Tokens["white"])
	}
}

func TestLoadMergedOverlayWins(t *testing.T) {
	base := writeScenarios(t, map[string]string{
		"default.yaml":  defaultYAML,
		"cautious.yaml": cautiousYAML,
	})
	l := NewLoader(base)

	cfg, err := l.LoadMerged("cautious")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Player == nil || cfg.Player.StopBeforeExplosion == nil || !*cfg.Player.StopBeforeExplosion {
		t.Fatalf("player config = %+v", cfg.Player)
	}
	if *cfg.Player.RiskTolerance != 0.1 {
		t.Fatalf("risk tolerance = %v", *cfg.Player.RiskTolerance)
	}
	if *cfg.Simulation.Rounds != 200 {
		t.Fatalf("rounds = %d, want the overlay's 200", *cfg.Simulation.Rounds)
	}
	// fields the overlay omits fall through to the default
	if *cfg.Board.LastPlayableSpace != 33 {
		t.Fatalf("last playable space = %d, want 33", *cfg.Board.LastPlayableSpace)
	}
	if len(cfg.Bag.Tokens["white"]) != 7 {
		t.Fatalf("white tokens lost in merge: %v", cfg.Bag.Tokens)
	}
}

func TestLoadMergedCachesUntilInvalidate(t *testing.T) {
	base := writeScenarios(t, map[string]string{"default.yaml": defaultYAML})
	l := NewLoader(base)

	if _, err := l.LoadMerged(""); err != nil {
		t.Fatal(err)
	}

	// rewrite the file; the cached copy should still be served
	path := filepath.Join(base, "scenarios", "default.yaml")
	if err := os.WriteFile(path, []byte("version: \"2\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := l.LoadMerged("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != "1" {
		t.Fatalf("cache bypassed: version = %q", cfg.Version)
	}

	l.Invalidate()
	cfg, err = l.LoadMerged("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != "2" {
		t.Fatalf("invalidate did not reload: version = %q", cfg.Version)
	}
}

func TestLoadMergedCachesPerScenarioName(t *testing.T) {
	base := writeScenarios(t, map[string]string{
		"default.yaml":  defaultYAML,
		"cautious.yaml": cautiousYAML,
	})
	l := NewLoader(base)

	// cache the named scenario, then rewrite both files
	if _, err := l.LoadMerged("cautious"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"default.yaml", "cautious.yaml"} {
		path := filepath.Join(base, "scenarios", name)
		if err := os.WriteFile(path, []byte("version: \"9\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cached, err := l.LoadMerged("cautious")
	if err != nil {
		t.Fatal(err)
	}
	if cached.Version == "9" {
		t.Fatal("named scenario was not served from cache")
	}

	// the default was never loaded on its own, so it reads fresh
	def, err := l.LoadMerged("")
	if err != nil {
		t.Fatal(err)
	}
	if def.Version != "9" {
		t.Fatalf("default version = %q, want the rewritten file", def.Version)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	threshold := 0
	risk := 1.5
	rounds := 0
	cfg := RawConfig{
		Bag:        &BagConfig{BustThreshold: &threshold, Tokens: map[string][]int{"white": {0}}},
		Player:     &PlayerConfig{RiskTolerance: &risk},
		Simulation: &SimConfig{Rounds: &rounds},
	}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"bust_threshold", "risk_tolerance", "rounds", "white"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestBuildDefaults(t *testing.T) {
	p, settings, err := Build(RawConfig{}, bag.NewSeededRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Bag.Sum(bag.White, bag.ScopePool); got != 11 {
		t.Fatalf("default bag white sum = %d, want 11", got)
	}
	if p.Board.LastPlayableSpace() != 33 {
		t.Fatalf("board end = %d, want 33", p.Board.LastPlayableSpace())
	}
	if settings.RiskTolerance != DefaultRiskTolerance {
		t.Fatalf("risk tolerance = %v, want %v", settings.RiskTolerance, DefaultRiskTolerance)
	}
	if settings.Rounds != DefaultRounds {
		t.Fatalf("rounds = %d, want %d", settings.Rounds, DefaultRounds)
	}
}

func TestBuildCustomBag(t *testing.T) {
	threshold := 5
	cfg := RawConfig{
		Bag: &BagConfig{
			BustThreshold: &threshold,
			Tokens: map[string][]int{
				"white": {1, 2},
				"blue":  {4},
			},
		},
	}
	p, _, err := Build(cfg, bag.NewSeededRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	if p.Bag.BustThreshold != 5 {
		t.Fatalf("threshold = %d, want 5", p.Bag.BustThreshold)
	}
	if got := p.Bag.Count(bag.ScopePool); got != 3 {
		t.Fatalf("pool size = %d, want 3", got)
	}
	if got := p.Bag.Sum(bag.Blue, bag.ScopePool); got != 4 {
		t.Fatalf("blue sum = %d, want 4", got)
	}
}

func TestBuildRejectsInvalid(t *testing.T) {
	risk := -0.5
	_, _, err := Build(RawConfig{Player: &PlayerConfig{RiskTolerance: &risk}}, nil)
	if err == nil {
		t.Fatal("expected an error for a negative risk tolerance")
	}
}

func TestWatcherFiresOnChange(t *testing.T) {
	base := writeScenarios(t, map[string]string{"default.yaml": defaultYAML})
	path := filepath.Join(base, "scenarios", "default.yaml")

	changed := make(chan string, 1)
	w := NewWatcher([]string{path}, 10*time.Millisecond, func(p string) {
		select {
		case changed <- p:
		default:
		}
	})
	w.Start()
	defer w.Stop()

	// give the watcher a tick to prime its mtime cache
	time.Sleep(50 * time.Millisecond)
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if p != path {
			t.Fatalf("changed path = %q, want %q", p, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never fired")
	}
}
