package t2048

// DefaultSpawn4Prob is the chance that a spawned tile is a 4 instead of a 2.
const DefaultSpawn4Prob = 0.10

// Tile is a single occupied cell. Its value never changes after creation;
// a merge replaces two tiles with a new one.
type Tile struct {
	value  int
	merged bool // set only while a merge pass runs
}

// NewTile creates a tile with an explicit value.
// A zero value is allowed for display placeholders but is never stored on a board.
func NewTile(value int) *Tile {
	return &Tile{value: value}
}

// RandomTile creates a spawn tile: 2 with 90% probability, 4 otherwise.
func RandomTile(src Source) *Tile {
	return RandomTileWithOdds(src, DefaultSpawn4Prob)
}

// RandomTileWithOdds creates a spawn tile that is a 4 with probability spawn4.
func RandomTileWithOdds(src Source, spawn4 float64) *Tile {
	if src.Float64() < 1-spawn4 {
		return NewTile(2)
	}
	return NewTile(4)
}

// Value returns the tile magnitude.
func (t Tile) Value() int {
	return t.value
}
