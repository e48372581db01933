package bag

// Color identifies an ingredient token color. White is the hazard
// color in the standard game: its drawn values accumulate toward the
// bust threshold.
type Color string

const (
	White  Color = "white"
	Orange Color = "orange"
	Green  Color = "green"
	Blue   Color = "blue"
	Red    Color = "red"
	Yellow Color = "yellow"
	Purple Color = "purple"
	Black  Color = "black"
)

// Token is a single ingredient chip: a color and the number of spaces
// it advances when drawn. Tokens carry no identity beyond
// (color, value); duplicates are told apart only by which multiset
// holds them.
type Token struct {
	Color Color `json:"color" yaml:"color"`
	Value int   `json:"value" yaml:"value"`
}

// Scope selects which of the bag's three multisets a query reads.
type Scope string

const (
	ScopePool      Scope = "pool"      // everything the player owns
	ScopeAvailable Scope = "available" // not yet drawn this round
	ScopeDrawn     Scope = "drawn"     // drawn this round, most recent last
)
