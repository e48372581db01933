// Package bag implements the ingredient bag: three disjoint token
// multisets (pool, available, drawn), draw-without-replacement, and
// the exact next-draw explosion probability.
package bag

import (
	"log"
	"os"
)

// Diag emits diagnostics for recoverable misuse (unknown scope,
// permanent removal with no match). Tests may silence or capture it.
var Diag = log.New(os.Stderr, "bag: ", log.LstdFlags)

// DefaultBustThreshold is the standard explosion limit: the round is
// lost once drawn hazard values exceed it.
const DefaultBustThreshold = 7

// Bag owns all tokens a player has collected. The pool is permanent
// and changes only through AddPermanent/RemovePermanent; available and
// drawn partition a copy of the pool during a round. Their multiset
// union always equals the pool.
type Bag struct {
	pool      []Token
	available []Token
	drawn     []Token

	// BustThreshold is the value drawn Hazard tokens must exceed to
	// bust. Hazard is the color that accumulates toward it.
	BustThreshold int
	Hazard        Color

	rng RandomSource
}

// New returns a bag holding the standard starting ingredients:
// white 1,1,1,1,2,2,3 plus one orange 1 and one green 1.
// A nil rng falls back to the crypto-backed default.
func New(rng RandomSource) *Bag {
	b := NewEmpty(rng)
	b.ReturnToBaseline()
	return b
}

// NewEmpty returns a bag with no tokens at all; callers populate it
// through AddPermanent or SetPool.
func NewEmpty(rng RandomSource) *Bag {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Bag{
		BustThreshold: DefaultBustThreshold,
		Hazard:        White,
		rng:           rng,
	}
}

// ReturnToBaseline resets the pool to the starting ingredient set and
// begins a fresh round.
func (b *Bag) ReturnToBaseline() {
	b.pool = b.pool[:0]
	for _, v := range []int{1, 1, 1, 1, 2, 2, 3} {
		b.pool = append(b.pool, Token{Color: White, Value: v})
	}
	b.pool = append(b.pool, Token{Color: Orange, Value: 1})
	b.pool = append(b.pool, Token{Color: Green, Value: 1})
	b.ResetRound()
}

// SetPool replaces the permanent pool wholesale and resets the round.
// Used for scenario setup.
func (b *Bag) SetPool(tokens []Token) {
	b.pool = append([]Token(nil), tokens...)
	b.ResetRound()
}

// ResetRound repopulates available as an exact copy of the pool and
// clears drawn. Idempotent; must run before every round.
func (b *Bag) ResetRound() {
	b.available = append([]Token(nil), b.pool...)
	b.drawn = nil
}

// Draw removes one token chosen uniformly among every token instance
// still available and appends it to drawn. Multiplicities matter: two
// identical tokens are twice as likely as one. Returns ok=false when
// the bag is empty, which callers treat as a normal terminal case.
func (b *Bag) Draw() (Token, bool) {
	if len(b.available) == 0 {
		return Token{}, false
	}
	i := b.rng.IntN(len(b.available))
	t := b.available[i]
	b.available = append(b.available[:i], b.available[i+1:]...)
	b.drawn = append(b.drawn, t)
	return t, true
}

// scopeTokens resolves a scope name to its backing slice. Unknown
// scopes log a diagnostic and read as empty, never as an error.
func (b *Bag) scopeTokens(scope Scope) []Token {
	switch scope {
	case ScopePool:
		return b.pool
	case ScopeAvailable:
		return b.available
	case ScopeDrawn:
		return b.drawn
	default:
		Diag.Printf("unknown scope %q; treating as empty", scope)
		return nil
	}
}

// Sum returns the total value of tokens of the given color in scope.
// A color with no tokens sums to 0.
func (b *Bag) Sum(color Color, scope Scope) int {
	sum := 0
	for _, t := range b.scopeTokens(scope) {
		if t.Color == color {
			sum += t.Value
		}
	}
	return sum
}

// Max returns the highest value among tokens of the given color in
// scope, and 0 when the scope holds no such token. The zero default is
// deliberate: ExplosionProbability depends on it reading as
// "no qualifying token".
func (b *Bag) Max(color Color, scope Scope) int {
	max := 0
	for _, t := range b.scopeTokens(scope) {
		if t.Color == color && t.Value > max {
			max = t.Value
		}
	}
	return max
}

// Total returns the summed value of every token in scope regardless of
// color.
func (b *Bag) Total(scope Scope) int {
	sum := 0
	for _, t := range b.scopeTokens(scope) {
		sum += t.Value
	}
	return sum
}

// Count returns how many tokens are in scope.
func (b *Bag) Count(scope Scope) int {
	return len(b.scopeTokens(scope))
}

// Tokens returns a copy of the tokens in scope, in stable order
// (pool: insertion order; drawn: draw order, most recent last).
func (b *Bag) Tokens(scope Scope) []Token {
	return append([]Token(nil), b.scopeTokens(scope)...)
}

// BustProgress is the total hazard value drawn so far this round.
func (b *Bag) BustProgress() int {
	return b.Sum(b.Hazard, ScopeDrawn)
}

// ExplosionProbability is the exact probability that the next single
// draw busts the round, given current bag contents. It must be
// recomputed after every draw: both the qualifying-token count and the
// bag size shrink as tokens come out.
func (b *Bag) ExplosionProbability() float64 {
	if len(b.available) == 0 {
		return 0
	}
	// smallest hazard value that would push the cumulative total
	// strictly over the threshold
	needed := b.BustThreshold - b.BustProgress() + 1
	if b.Max(b.Hazard, ScopeAvailable) < needed {
		return 0
	}
	qualifying := 0
	for _, t := range b.available {
		if t.Color == b.Hazard && t.Value >= needed {
			qualifying++
		}
	}
	return float64(qualifying) / float64(len(b.available))
}

// AddPermanent adds one token to the pool. Available and drawn are
// untouched until the next ResetRound.
func (b *Bag) AddPermanent(color Color, value int) Token {
	t := Token{Color: color, Value: value}
	b.pool = append(b.pool, t)
	return t
}

// RemovePermanent removes at most one matching token from the pool,
// first match in insertion order. A miss logs a diagnostic and returns
// false with the bag unchanged. Available and drawn are untouched
// until the next ResetRound.
func (b *Bag) RemovePermanent(color Color, value int) bool {
	for i, t := range b.pool {
		if t.Color == color && t.Value == value {
			b.pool = append(b.pool[:i], b.pool[i+1:]...)
			return true
		}
	}
	Diag.Printf("no %s %d token in pool; nothing removed", color, value)
	return false
}

// Clone returns an independent bag with a copy of the pool, the same
// threshold and hazard color, and its own random source. Parallel
// simulation workers must each run on a clone.
func (b *Bag) Clone(rng RandomSource) *Bag {
	nb := NewEmpty(rng)
	nb.BustThreshold = b.BustThreshold
	nb.Hazard = b.Hazard
	nb.SetPool(b.pool)
	return nb
}
