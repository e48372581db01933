package scenario

import (
	"fmt"
	"strings"
)

// Validate checks semantic constraints of a merged config and reports
// every violation at once.
func Validate(cfg RawConfig) error {
	var errs []string

	if cfg.Bag != nil {
		if cfg.Bag.BustThreshold != nil && *cfg.Bag.BustThreshold < 1 {
			errs = append(errs, "bag.bust_threshold must be >= 1")
		}
		for color, values := range cfg.Bag.Tokens {
			if strings.TrimSpace(color) == "" {
				errs = append(errs, "bag.tokens has an empty color name")
			}
			for _, v := range values {
				if v < 1 {
					errs = append(errs, fmt.Sprintf("bag.tokens.%s: value %d must be >= 1", color, v))
					break
				}
			}
		}
	}

	if cfg.Player != nil {
		if cfg.Player.DropletPosition != nil && *cfg.Player.DropletPosition < 0 {
			errs = append(errs, "player.droplet_position must be >= 0")
		}
		if cfg.Player.RatTails != nil && *cfg.Player.RatTails < 0 {
			errs = append(errs, "player.rat_tails must be >= 0")
		}
		if cfg.Player.RiskTolerance != nil {
			if r := *cfg.Player.RiskTolerance; r < 0 || r > 1 {
				errs = append(errs, "player.risk_tolerance must be in [0,1]")
			}
		}
	}

	if cfg.Board != nil && cfg.Board.LastPlayableSpace != nil && *cfg.Board.LastPlayableSpace < 1 {
		errs = append(errs, "board.last_playable_space must be >= 1")
	}

	if cfg.Simulation != nil {
		if cfg.Simulation.Rounds != nil && *cfg.Simulation.Rounds < 1 {
			errs = append(errs, "simulation.rounds must be >= 1")
		}
		if cfg.Simulation.Workers != nil && *cfg.Simulation.Workers < 0 {
			errs = append(errs, "simulation.workers must be >= 0")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid scenario: %s", strings.Join(errs, "; "))
	}
	return nil
}
