package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play 2048",
	Long: `Start playing. Without a variant (and without --size) a menu lets you
pick a board; after each game you return to the menu.

Controls:
  Arrows/WASD/hjkl  - Slide tiles
  N/R               - New game
  P                 - Pause
  ?                 - Show all keys
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Examples:
  t2048 play
  t2048 play 2048
  t2048 play 2048_3x3 --difficulty easy
  t2048 play --size 7
  t2048 play --config ./my-2048.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		logger.Fatal("could not load config", "error", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	var variant string
	switch {
	case len(args) == 1:
		variant = args[0]
	case flagSize != 0:
		variant = t2048.VariantID(flagSize)
	default:
		runMenuLoop(cfg, store)
		return
	}

	game, err := createGame(variant, cfg)
	if err != nil {
		logger.Fatal("could not create game", "error", err)
	}

	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		logger.Fatal("error running game", "error", err)
	}
}

// runMenuLoop alternates between the menu, the chosen game and the
// scoreboard until the user quits from the menu.
func runMenuLoop(cfg config.T2048Config, store *storage.Store) {
	rt := runtimeConfig()

	for {
		result, err := tui.RunMenu(store, rt)
		if err != nil {
			logger.Fatal("menu error", "error", err)
		}
		rt = result.Config

		switch {
		case result.Quit:
			return

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
			if err != nil {
				logger.Fatal("scoreboard error", "error", err)
			}
			if !goBack {
				return
			}

		default:
			game, err := createGame(result.GameID, cfg)
			if err != nil {
				logger.Fatal("could not create game", "error", err)
			}
			if err := tui.Run(game, store, rt); err != nil {
				logger.Fatal("error running game", "error", err)
			}
		}
	}
}
