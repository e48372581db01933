// Package scenario loads simulation scenarios from YAML: a default
// file plus named overlays, merged and validated, then materialized
// into a bag, a board, and run settings.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths locates scenario files under a base directory.
type Paths struct {
	BaseDir string // e.g. ./configs
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "scenarios", "default.yaml")
}

func (p Paths) ScenarioPath(name string) string {
	return filepath.Join(p.BaseDir, "scenarios", name+".yaml")
}

// Loader reads YAML scenarios and merges default → scenario. Merged
// results are cached until Invalidate.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: scenario name; "" normalizes to "default"
}

// NewLoader creates a scenario loader rooted at baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// WatchPaths lists the files whose changes should invalidate the
// cache for the given scenario.
func (l *Loader) WatchPaths(name string) []string {
	paths := []string{l.paths.DefaultPath()}
	if name != "" && name != "default" {
		paths = append(paths, l.paths.ScenarioPath(name))
	}
	return paths
}

// LoadMerged loads default.yaml, overlays the named scenario on top
// (name may be "" or "default" for the default alone), and returns the
// merged config without validation.
func (l *Loader) LoadMerged(name string) (RawConfig, error) {
	key := name
	if key == "" {
		key = "default"
	}

	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default scenario: %w", err)
	}

	merged := defCfg
	if key != "default" {
		overlay, err := readYAML(l.paths.ScenarioPath(name))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read scenario %q: %w", name, err)
		}
		merged = mergeRaw(defCfg, overlay)
	}

	l.mu.Lock()
	l.cache[key] = merged
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears the cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads one file into RawConfig. A missing file reads as an
// empty config, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw deep-merges b over a: fields b sets win, fields it omits
// fall through to a. The token map replaces wholesale when provided.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// bag
	switch {
	case out.Bag == nil && b.Bag != nil:
		c := *b.Bag
		out.Bag = &c
	case out.Bag != nil && b.Bag != nil:
		merged := *out.Bag
		if b.Bag.BustThreshold != nil {
			merged.BustThreshold = b.Bag.BustThreshold
		}
		if b.Bag.Hazard != "" {
			merged.Hazard = b.Bag.Hazard
		}
		if len(b.Bag.Tokens) > 0 {
			merged.Tokens = b.Bag.Tokens
		}
		out.Bag = &merged
	}

	// player
	switch {
	case out.Player == nil && b.Player != nil:
		c := *b.Player
		out.Player = &c
	case out.Player != nil && b.Player != nil:
		merged := *out.Player
		if b.Player.DropletPosition != nil {
			merged.DropletPosition = b.Player.DropletPosition
		}
		if b.Player.RatTails != nil {
			merged.RatTails = b.Player.RatTails
		}
		if b.Player.StopBeforeExplosion != nil {
			merged.StopBeforeExplosion = b.Player.StopBeforeExplosion
		}
		if b.Player.RiskTolerance != nil {
			merged.RiskTolerance = b.Player.RiskTolerance
		}
		out.Player = &merged
	}

	// board
	switch {
	case out.Board == nil && b.Board != nil:
		c := *b.Board
		out.Board = &c
	case out.Board != nil && b.Board != nil:
		merged := *out.Board
		if b.Board.LastPlayableSpace != nil {
			merged.LastPlayableSpace = b.Board.LastPlayableSpace
		}
		out.Board = &merged
	}

	// simulation
	switch {
	case out.Simulation == nil && b.Simulation != nil:
		c := *b.Simulation
		out.Simulation = &c
	case out.Simulation != nil && b.Simulation != nil:
		merged := *out.Simulation
		if b.Simulation.Rounds != nil {
			merged.Rounds = b.Simulation.Rounds
		}
		if b.Simulation.Seed != nil {
			merged.Seed = b.Simulation.Seed
		}
		if b.Simulation.Workers != nil {
			merged.Workers = b.Simulation.Workers
		}
		out.Simulation = &merged
	}

	return out
}
