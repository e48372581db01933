package scenario

// RawConfig mirrors the YAML scenario schema. Pointer fields
// distinguish "omitted" from "zero" so overlays only override what
// they set.
type RawConfig struct {
	Version    string        `yaml:"version"`
	Bag        *BagConfig    `yaml:"bag,omitempty"`
	Player     *PlayerConfig `yaml:"player,omitempty"`
	Board      *BoardConfig  `yaml:"board,omitempty"`
	Simulation *SimConfig    `yaml:"simulation,omitempty"`
	Notes      string        `yaml:"notes,omitempty"`
}

type BagConfig struct {
	BustThreshold *int `yaml:"bust_threshold,omitempty"`
	// Hazard names the color that accumulates toward the threshold.
	Hazard string `yaml:"hazard,omitempty"`
	// Tokens maps a color name to the values of the chips of that
	// color in the pool, e.g. white: [1, 1, 1, 1, 2, 2, 3].
	// An overlay providing tokens replaces the whole pool.
	Tokens map[string][]int `yaml:"tokens,omitempty"`
}

type PlayerConfig struct {
	DropletPosition     *int     `yaml:"droplet_position,omitempty"`
	RatTails            *int     `yaml:"rat_tails,omitempty"`
	StopBeforeExplosion *bool    `yaml:"stop_before_explosion,omitempty"`
	RiskTolerance       *float64 `yaml:"risk_tolerance,omitempty"`
}

type BoardConfig struct {
	LastPlayableSpace *int `yaml:"last_playable_space,omitempty"`
}

type SimConfig struct {
	Rounds  *int    `yaml:"rounds,omitempty"`
	Seed    *uint64 `yaml:"seed,omitempty"`
	Workers *int    `yaml:"workers,omitempty"`
}

// Settings is the normalized, fully-defaulted form of a merged config,
// ready to drive simulation runs.
type Settings struct {
	StopBeforeExplosion bool
	RiskTolerance       float64
	Rounds              int
	Seed                uint64
	Workers             int
	Version             string // effective config version for tracing
}
