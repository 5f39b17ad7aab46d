package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a variant",
	Long: `Display the top high scores for the specified variant.

Examples:
  t2048 scores 2048
  t2048 scores 2048_5x5 --limit 20`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

var scoreboardCmd = &cobra.Command{
	Use:   "scoreboard",
	Short: "Browse high scores interactively",
	Run:   runScoreboard,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]
	if !knownVariant(gameID) {
		logger.Fatal("unknown variant; run 't2048 list' to see available variants", "variant", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Fatal("could not open scores database", "error", err)
	}
	defer store.Close()

	results, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		logger.Fatal("could not read scores", "error", err)
	}

	fmt.Printf("High Scores - %s\n", gameID)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-4s  %-12s  %s\n", "Rank", "Score", "Tile", "Won", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-4s  %-12s  %s\n", "----", "-----", "----", "---", "------", "----")
	for i, r := range results {
		won := ""
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-8d  %-6d  %-4s  %-12s  %s\n",
			i+1, r.Score, r.MaxTile, won, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Wins: %d  Best: %d  Average: %.0f  Best tile: %d\n",
			stats.GamesCount, stats.Wins, stats.HighScore, stats.AvgScore, stats.BestTile)
	}
}

func runScoreboard(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	rt := runtimeConfig()
	if _, err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH); err != nil {
		logger.Fatal("scoreboard error", "error", err)
	}
}
