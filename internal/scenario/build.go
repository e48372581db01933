package scenario

import (
	"sort"

	"github.com/quacksim/quacksim/internal/bag"
	"github.com/quacksim/quacksim/internal/board"
	"github.com/quacksim/quacksim/internal/player"
)

// Defaults applied when a merged scenario leaves fields unset.
const (
	DefaultRiskTolerance = 0.25
	DefaultRounds        = 10000
)

// Build materializes a validated config into a player and run
// settings. A config without bag tokens gets the standard starting
// bag. The rng seeds the player's own bag; bulk runs clone it with
// per-worker sources.
func Build(cfg RawConfig, rng bag.RandomSource) (*player.Player, Settings, error) {
	if err := Validate(cfg); err != nil {
		return nil, Settings{}, err
	}

	b := bag.New(rng)
	if cfg.Bag != nil {
		if cfg.Bag.BustThreshold != nil {
			b.BustThreshold = *cfg.Bag.BustThreshold
		}
		if cfg.Bag.Hazard != "" {
			b.Hazard = bag.Color(cfg.Bag.Hazard)
		}
		if len(cfg.Bag.Tokens) > 0 {
			// sort colors so the pool order is stable across runs
			colors := make([]string, 0, len(cfg.Bag.Tokens))
			for c := range cfg.Bag.Tokens {
				colors = append(colors, c)
			}
			sort.Strings(colors)

			var pool []bag.Token
			for _, c := range colors {
				for _, v := range cfg.Bag.Tokens[c] {
					pool = append(pool, bag.Token{Color: bag.Color(c), Value: v})
				}
			}
			b.SetPool(pool)
		}
	}

	brd := board.Default()
	if cfg.Board != nil && cfg.Board.LastPlayableSpace != nil {
		brd = board.New(*cfg.Board.LastPlayableSpace)
	}

	p := player.New(b, brd)
	settings := Settings{
		RiskTolerance: DefaultRiskTolerance,
		Rounds:        DefaultRounds,
		Workers:       1,
		Version:       cfg.Version,
	}

	if cfg.Player != nil {
		if cfg.Player.DropletPosition != nil {
			p.DropletPosition = *cfg.Player.DropletPosition
		}
		if cfg.Player.RatTails != nil {
			p.RatTails = *cfg.Player.RatTails
		}
		if cfg.Player.StopBeforeExplosion != nil {
			settings.StopBeforeExplosion = *cfg.Player.StopBeforeExplosion
		}
		if cfg.Player.RiskTolerance != nil {
			settings.RiskTolerance = *cfg.Player.RiskTolerance
		}
	}
	if cfg.Simulation != nil {
		if cfg.Simulation.Rounds != nil {
			settings.Rounds = *cfg.Simulation.Rounds
		}
		if cfg.Simulation.Seed != nil {
			settings.Seed = *cfg.Simulation.Seed
		}
		if cfg.Simulation.Workers != nil {
			settings.Workers = *cfg.Simulation.Workers
		}
	}

	return p, settings, nil
}
