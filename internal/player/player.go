// Package player runs single rounds: repeated draws from the bag with
// four termination rules evaluated in fixed precedence.
package player

import (
	"github.com/quacksim/quacksim/internal/bag"
	"github.com/quacksim/quacksim/internal/board"
)

// StopReason names the rule that ended a round. When several rules
// hold after the same draw the earliest one wins.
type StopReason int

const (
	StopNone StopReason = iota
	StopBusted
	StopReachedEnd
	StopExhausted
	StopRiskExceeded
)

func (r StopReason) String() string {
	switch r {
	case StopBusted:
		return "busted"
	case StopReachedEnd:
		return "reached_end"
	case StopExhausted:
		return "exhausted"
	case StopRiskExceeded:
		return "risk_exceeded"
	default:
		return "none"
	}
}

// RoundOutcome reports one finished round.
type RoundOutcome struct {
	// FinalPosition is starting offset plus drawn values, clamped to
	// the board's last playable space.
	FinalPosition int `json:"final_position"`
	// TotalValue is the unclamped sum of every drawn token value.
	TotalValue int `json:"total_value"`
	// BustColorValue is the drawn hazard-color total.
	BustColorValue int        `json:"bust_color_value"`
	Stopped        StopReason `json:"-"`
}

// Player ties a bag to a board plus the position bonuses applied
// before any draw. The same player may simulate many rounds; the bag
// is reset on the way in and on the way out of every round.
type Player struct {
	Bag   *bag.Bag
	Board *board.Board

	// DropletPosition and RatTails advance the starting position
	// before the first draw.
	DropletPosition int
	RatTails        int
}

// New returns a player over the given bag and board. A nil bag gets
// the standard starting bag; a nil board gets the default track.
func New(b *bag.Bag, brd *board.Board) *Player {
	if b == nil {
		b = bag.New(nil)
	}
	if brd == nil {
		brd = board.Default()
	}
	return &Player{Bag: b, Board: brd}
}

// StartingOffset is the position the round begins from.
func (p *Player) StartingOffset() int {
	return p.DropletPosition + p.RatTails
}

// SimulateRound plays one full round to completion and returns its
// outcome. With stopBeforeExplosion set, the player quits as soon as
// the bust probability of the next draw exceeds riskTolerance; that
// check also runs before the first draw, so an already-too-risky bag
// yields zero draws.
//
// Termination rules, checked in order after every draw:
// busted, reached board end, bag exhausted, risk exceeded.
func (p *Player) SimulateRound(stopBeforeExplosion bool, riskTolerance float64) RoundOutcome {
	p.Bag.ResetRound()

	offset := p.StartingOffset()
	last := p.Board.LastPlayableSpace()

	stopped := StopNone
	if stopBeforeExplosion && p.Bag.ExplosionProbability() > riskTolerance {
		stopped = StopRiskExceeded
	}

	for stopped == StopNone {
		if _, ok := p.Bag.Draw(); !ok {
			stopped = StopExhausted
			break
		}
		switch {
		case p.Bag.BustProgress() > p.Bag.BustThreshold:
			stopped = StopBusted
		case offset+p.Bag.Total(bag.ScopeDrawn) >= last:
			stopped = StopReachedEnd
		case p.Bag.Count(bag.ScopeAvailable) == 0:
			stopped = StopExhausted
		case stopBeforeExplosion && p.Bag.ExplosionProbability() > riskTolerance:
			stopped = StopRiskExceeded
		}
	}

	total := p.Bag.Total(bag.ScopeDrawn)
	position := offset + total
	if position > last {
		// overshoot is discarded, not scored
		position = last
	}
	out := RoundOutcome{
		FinalPosition:  position,
		TotalValue:     total,
		BustColorValue: p.Bag.BustProgress(),
		Stopped:        stopped,
	}
	p.Bag.ResetRound()
	return out
}

// Clone returns an independent player over a clone of the bag, for
// parallel simulation workers. The board is shared; it is never
// mutated.
func (p *Player) Clone(rng bag.RandomSource) *Player {
	return &Player{
		Bag:             p.Bag.Clone(rng),
		Board:           p.Board,
		DropletPosition: p.DropletPosition,
		RatTails:        p.RatTails,
	}
}
