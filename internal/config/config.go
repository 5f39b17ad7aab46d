// Package config provides YAML-based configuration for the 2048 game,
// with embedded defaults, a file search path and environment overrides.
package config

import (
	"errors"
	"fmt"
)

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Board  BoardConfig  `yaml:"board"`
	Layout LayoutConfig `yaml:"layout"`
}

// BoardConfig defines the rules parameters of a board.
type BoardConfig struct {
	Size       int     `yaml:"size" env:"T2048_BOARD_SIZE"`
	WinValue   int     `yaml:"win_value" env:"T2048_WIN_VALUE"`
	Spawn4Prob float64 `yaml:"spawn4_prob" env:"T2048_SPAWN4_PROB"` // Probability a spawned tile is a 4
}

// LayoutConfig defines how large a cell is drawn, in terminal characters.
type LayoutConfig struct {
	CellWidth  int `yaml:"cell_width" env:"T2048_CELL_WIDTH"`
	CellHeight int `yaml:"cell_height" env:"T2048_CELL_HEIGHT"`
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid 2048 config")

// Validate checks that the config describes a playable game.
func (c T2048Config) Validate() error {
	switch {
	case c.Board.Size <= 0:
		return fmt.Errorf("%w: board size %d must be positive", ErrInvalidConfig, c.Board.Size)
	case c.Board.WinValue < 4 || c.Board.WinValue&(c.Board.WinValue-1) != 0:
		return fmt.Errorf("%w: win value %d must be a power of two >= 4", ErrInvalidConfig, c.Board.WinValue)
	case c.Board.Spawn4Prob < 0 || c.Board.Spawn4Prob > 1:
		return fmt.Errorf("%w: spawn4 probability %.2f must be in [0, 1]", ErrInvalidConfig, c.Board.Spawn4Prob)
	case c.Layout.CellWidth < 3:
		return fmt.Errorf("%w: cell width %d must be at least 3", ErrInvalidConfig, c.Layout.CellWidth)
	case c.Layout.CellHeight < 2:
		return fmt.Errorf("%w: cell height %d must be at least 2", ErrInvalidConfig, c.Layout.CellHeight)
	}
	return nil
}

// WithSize returns a copy of c with the board size replaced.
func (c T2048Config) WithSize(size int) T2048Config {
	c.Board.Size = size
	return c
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Spawn4ForPreset returns the chance of spawning a 4 for a preset.
// Unknown presets get the normal odds.
func Spawn4ForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.05
	case DifficultyHard:
		return 0.25
	default:
		return 0.10
	}
}

// ApplyT2048Preset adjusts the spawn odds for a difficulty preset.
// An empty preset leaves the config unchanged.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Board.Spawn4Prob = Spawn4ForPreset(preset)
}
