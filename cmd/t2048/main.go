// t2048 plays the 2048 sliding-tile puzzle in the terminal.
//
// Usage:
//
//	t2048 list                 - List board variants
//	t2048 play [variant]       - Play a variant, or pick one from a menu
//	t2048 serve                - Start SSH server for remote play
//	t2048 mcp                  - Serve boards as MCP tools on stdio
//	t2048 scores <variant>     - Show high scores for a variant
//	t2048 scoreboard           - Browse high scores interactively
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible games
//	--db <path>           - Set database path (default: ~/.t2048/scores.db)
//	--config <path>       - Load board settings from a YAML file
//	--size <n>            - Board size override
//	--difficulty <preset> - easy, normal or hard spawn odds
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagSize       int
	flagDifficulty string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "t2048",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide all tiles up, down, left or right. Equal tiles that collide merge
into their sum. Reach 2048 to win; run out of moves and the game is over.

Available commands:
  list        - Show board variants
  play        - Play a variant (menu when none is given)
  serve       - Start SSH server for remote play
  mcp         - Serve boards as MCP tools on stdio
  scores      - View high scores
  scoreboard  - Browse high scores interactively

Examples:
  t2048 play
  t2048 play 2048_5x5
  t2048 play --size 8 --difficulty hard
  t2048 serve --ssh :2222
  t2048 scores 2048`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a board config YAML")
	rootCmd.PersistentFlags().IntVar(&flagSize, "size", 0, "Board size (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Spawn odds preset: easy, normal, hard")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(scoreboardCmd)
}

// loadGameConfig reads the board config and applies the command-line overrides.
func loadGameConfig() (config.T2048Config, error) {
	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return cfg, err
	}

	switch preset := config.DifficultyPreset(flagDifficulty); preset {
	case "", config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard:
		config.ApplyT2048Preset(&cfg, preset)
	default:
		return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}

	if flagSize != 0 {
		cfg = cfg.WithSize(flagSize)
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// createGame builds a variant by ID. IDs of the form 2048_NxN work for any
// size, registered or not.
func createGame(id string, cfg config.T2048Config) (registry.Game, error) {
	if registry.Exists(id) {
		return registry.Create(id, cfg)
	}
	size, ok := t2048.ParseVariantID(id)
	if !ok {
		return nil, fmt.Errorf("unknown variant %q; run 't2048 list' to see available variants", id)
	}
	cfg = cfg.WithSize(size)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return t2048.New(cfg), nil
}

// knownVariant reports whether id names a registered or well-formed variant.
func knownVariant(id string) bool {
	if registry.Exists(id) {
		return true
	}
	_, ok := t2048.ParseVariantID(id)
	return ok
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if user := os.Getenv("USER"); user != "" {
		cfg.Player = user
	}
	return cfg
}

// openStore opens the scores database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
