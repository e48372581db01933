// Package board holds the scoring-track data: one reward entry per
// position. The simulation core only reads the position ceiling;
// reward values exist for display and scoring layers.
package board

// Space is one position on the scoring track.
type Space struct {
	Money  int  `json:"money"`
	Points int  `json:"points"`
	Ruby   bool `json:"ruby"`
}

// Board is the ordered scoring track. It is reference data: the round
// simulator reads LastPlayableSpace and nothing else, and never
// mutates it.
type Board struct {
	Spaces []Space
}

// LastPlayableSpace is the highest position a token can land on.
// Overshooting tokens are clamped back to it.
func (b *Board) LastPlayableSpace() int {
	if len(b.Spaces) == 0 {
		return 0
	}
	return len(b.Spaces) - 1
}

// RewardAt returns the reward entry for a final position. Positions
// past the end clamp to the last space; negative positions clamp to
// the start.
func (b *Board) RewardAt(pos int) Space {
	if len(b.Spaces) == 0 {
		return Space{}
	}
	if pos < 0 {
		pos = 0
	}
	if pos > b.LastPlayableSpace() {
		pos = b.LastPlayableSpace()
	}
	return b.Spaces[pos]
}

// rubySpaces are the positions carrying a ruby on the standard track.
var rubySpaces = map[int]bool{
	5: true, 9: true, 13: true, 16: true, 20: true,
	24: true, 27: true, 30: true, 33: true,
}

// Default returns the standard 34-space track (positions 0..33).
// Money equals the position value; points ramp up over the back half.
func Default() *Board {
	return New(33)
}

// New builds a board of n+1 spaces (positions 0..n) with the default
// reward pattern, for scenarios that shorten or extend the track.
func New(lastPlayable int) *Board {
	if lastPlayable < 0 {
		lastPlayable = 0
	}
	spaces := make([]Space, lastPlayable+1)
	for i := range spaces {
		points := 0
		if i > 3 {
			points = (i - 2) / 2
		}
		spaces[i] = Space{Money: i, Points: points, Ruby: rubySpaces[i]}
	}
	return &Board{Spaces: spaces}
}
