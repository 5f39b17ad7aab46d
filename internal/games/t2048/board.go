// Package t2048 implements the 2048 sliding-tile puzzle: the board state
// machine and a terminal Game adapter around it.
package t2048

import (
	"errors"
	"fmt"
)

// DefaultWinValue is the tile value that ends the game with a win.
const DefaultWinValue = 2048

// BoardSize is the default board dimension.
const BoardSize = 4

// ErrInvalidSize is returned when a board is built with a non-positive size.
var ErrInvalidSize = errors.New("t2048: board size must be positive")

// Board holds an N×N grid of tiles plus score and terminal state.
// It is not safe for concurrent use.
type Board struct {
	size     int
	grid     [][]*Tile // [row][col], nil means empty
	score    int
	best     int
	over     bool
	won      bool
	winValue int
	spawn4   float64
	rng      Source
}

// BoardOption customises a Board at construction.
type BoardOption func(*Board)

// WithWinValue sets the tile value that wins the game.
func WithWinValue(v int) BoardOption {
	return func(b *Board) {
		b.winValue = v
	}
}

// WithSpawn4Prob sets the probability that a spawned tile is a 4.
func WithSpawn4Prob(p float64) BoardOption {
	return func(b *Board) {
		b.spawn4 = p
	}
}

// NewBoard creates a size×size board and starts a new game on it.
func NewBoard(size int, src Source, opts ...BoardOption) (*Board, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if src == nil {
		src = NewSource(0)
	}
	b := &Board{
		size:     size,
		winValue: DefaultWinValue,
		spawn4:   DefaultSpawn4Prob,
		rng:      src,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.StartNewGame()
	return b, nil
}

// StartNewGame clears the grid, score and terminal flags and spawns two tiles.
// Best score is kept. A board too small to move after spawning starts over.
func (b *Board) StartNewGame() {
	b.grid = make([][]*Tile, b.size)
	for row := range b.grid {
		b.grid[row] = make([]*Tile, b.size)
	}
	b.score = 0
	b.over = false
	b.won = false

	b.AddRandomTile()
	b.AddRandomTile()
	b.CheckGameOver()
}

// AddRandomTile places a spawn tile in a uniformly chosen empty cell.
// Returns false without touching the grid when the board is full.
func (b *Board) AddRandomTile() bool {
	remaining := b.EmptyCount()
	if remaining == 0 {
		return false
	}

	lastRow, lastCol := -1, -1
	for row := range b.size {
		for col := range b.size {
			if b.grid[row][col] != nil {
				continue
			}
			lastRow, lastCol = row, col
			if b.rng.Float64() < 1.0/float64(remaining) {
				b.grid[row][col] = RandomTileWithOdds(b.rng, b.spawn4)
				return true
			}
			remaining--
		}
	}

	// Only reachable through float rounding; the last empty cell is the fallback.
	b.grid[lastRow][lastCol] = RandomTileWithOdds(b.rng, b.spawn4)
	return true
}

// Size returns the grid dimension.
func (b *Board) Size() int {
	return b.size
}

// Score returns the score of the current game.
func (b *Board) Score() int {
	return b.score
}

// Best returns the highest score reached on this board across games.
func (b *Board) Best() int {
	return b.best
}

// Over reports whether the game has ended, by win or by exhaustion.
func (b *Board) Over() bool {
	return b.over
}

// Won reports whether the win value has been reached.
func (b *Board) Won() bool {
	return b.won
}

// WinValue returns the tile value that wins the game.
func (b *Board) WinValue() int {
	return b.winValue
}

// Cell returns the tile at (row, col) and whether the cell is occupied.
// Out-of-range coordinates report an empty cell.
func (b *Board) Cell(row, col int) (Tile, bool) {
	if row < 0 || row >= b.size || col < 0 || col >= b.size {
		return Tile{}, false
	}
	t := b.grid[row][col]
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// Values returns a copy of the grid as tile values, 0 for empty cells.
func (b *Board) Values() [][]int {
	values := make([][]int, b.size)
	for row := range b.size {
		values[row] = make([]int, b.size)
		for col := range b.size {
			if t := b.grid[row][col]; t != nil {
				values[row][col] = t.value
			}
		}
	}
	return values
}

// EmptyCount returns the number of unoccupied cells.
func (b *Board) EmptyCount() int {
	n := 0
	for row := range b.size {
		for col := range b.size {
			if b.grid[row][col] == nil {
				n++
			}
		}
	}
	return n
}

// MaxTile returns the largest tile value on the board.
func (b *Board) MaxTile() int {
	maxVal := 0
	for row := range b.size {
		for col := range b.size {
			if t := b.grid[row][col]; t != nil && t.value > maxVal {
				maxVal = t.value
			}
		}
	}
	return maxVal
}

// addScore credits a merge and keeps best in step with score.
func (b *Board) addScore(points int) {
	b.score += points
	if b.score > b.best {
		b.best = b.score
	}
}
