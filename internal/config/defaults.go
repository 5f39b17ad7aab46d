package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the built-in 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			Size:       4,
			WinValue:   2048,
			Spawn4Prob: 0.10,
		},
		Layout: LayoutConfig{
			CellWidth:  7,
			CellHeight: 2,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultT2048YAML
}
