package t2048

import (
	"errors"
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every move direction.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// ErrUnknownDirection is returned by ParseDirection for unrecognised names.
var ErrUnknownDirection = errors.New("t2048: unknown direction")

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name such as "left" or "U" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// cell is a grid coordinate.
type cell struct {
	row, col int
}

// line returns the coordinates of line k for a move in dir, ordered from the
// edge being moved toward to the opposite edge.
func (b *Board) line(dir Direction, k int) []cell {
	cells := make([]cell, b.size)
	for i := range b.size {
		switch dir {
		case DirLeft:
			cells[i] = cell{k, i}
		case DirRight:
			cells[i] = cell{k, b.size - 1 - i}
		case DirUp:
			cells[i] = cell{i, k}
		case DirDown:
			cells[i] = cell{b.size - 1 - i, k}
		}
	}
	return cells
}

func (b *Board) at(c cell) *Tile {
	return b.grid[c.row][c.col]
}

// Possible reports whether a move in dir would change the board:
// some tile can shift toward the edge or merge with its neighbour.
func (b *Board) Possible(dir Direction) bool {
	for k := range b.size {
		cells := b.line(dir, k)
		for i := 1; i < len(cells); i++ {
			near, far := b.at(cells[i-1]), b.at(cells[i])
			if far == nil {
				continue
			}
			if near == nil || near.value == far.value {
				return true
			}
		}
	}
	return false
}

// PossibleUp reports whether an upward move would change the board.
func (b *Board) PossibleUp() bool { return b.Possible(DirUp) }

// PossibleDown reports whether a downward move would change the board.
func (b *Board) PossibleDown() bool { return b.Possible(DirDown) }

// PossibleLeft reports whether a leftward move would change the board.
func (b *Board) PossibleLeft() bool { return b.Possible(DirLeft) }

// PossibleRight reports whether a rightward move would change the board.
func (b *Board) PossibleRight() bool { return b.Possible(DirRight) }

// Move slides and merges every line toward dir, spawns one tile and checks
// for the end of the game. It returns false, leaving the board untouched,
// when the game is over or nothing can move in that direction.
func (b *Board) Move(dir Direction) bool {
	if b.over || !b.Possible(dir) {
		return false
	}

	for k := range b.size {
		cells := b.line(dir, k)

		tiles := make([]*Tile, 0, len(cells))
		for _, c := range cells {
			if t := b.at(c); t != nil {
				tiles = append(tiles, t)
			}
		}

		merged := b.mergeLine(tiles)

		for i, c := range cells {
			if i < len(merged) {
				b.grid[c.row][c.col] = merged[i]
			} else {
				b.grid[c.row][c.col] = nil
			}
		}
	}

	b.AddRandomTile()
	b.CheckGameOver()
	return true
}

// MoveUp moves all tiles up.
func (b *Board) MoveUp() { b.Move(DirUp) }

// MoveDown moves all tiles down.
func (b *Board) MoveDown() { b.Move(DirDown) }

// MoveLeft moves all tiles left.
func (b *Board) MoveLeft() { b.Move(DirLeft) }

// MoveRight moves all tiles right.
func (b *Board) MoveRight() { b.Move(DirRight) }

// mergeLine runs one merge pass over tiles ordered near to far and returns
// the compacted line. A tile produced by a merge may be compared with its
// next neighbour but never merges twice in the same pass. Every direction
// scans from its own near edge, so [2,2,2] gives [4,2] left and [2,4] right.
func (b *Board) mergeLine(tiles []*Tile) []*Tile {
	out := make([]*Tile, 0, len(tiles))
	for _, t := range tiles {
		if n := len(out); n > 0 {
			prev := out[n-1]
			if prev.value == t.value && !prev.merged && !t.merged {
				m := &Tile{value: prev.value * 2, merged: true}
				out[n-1] = m
				b.addScore(m.value)
				if m.value >= b.winValue {
					b.won = true
					b.over = true
				}
				continue
			}
		}
		out = append(out, t)
	}

	for _, t := range out {
		t.merged = false
	}
	return out
}

// CheckGameOver ends the game when no direction can move.
// A recorded win is left as is.
func (b *Board) CheckGameOver() {
	if b.won {
		return
	}
	for _, dir := range Directions {
		if b.Possible(dir) {
			return
		}
	}
	b.over = true
	b.won = false
}
