package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/transport/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve 2048 boards as MCP tools on stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout so an assistant
can start games and play moves.

Tools: new_game, move, game_state, restart_game, list_sessions, end_session.
Finished games are recorded in the scores database under the player "mcp".

Example client configuration:
  {"command": "t2048", "args": ["mcp", "--seed", "42"]}`,
	Run: runMCP,
}

func runMCP(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		logger.Fatal("could not load config", "error", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server := mcp.New(cfg,
		mcp.WithStore(store),
		mcp.WithSeed(flagSeed),
		mcp.WithLogger(logger.WithPrefix("t2048-mcp")),
	)

	logger.Info("serving MCP on stdio", "board", cfg.Board.Size, "win", cfg.Board.WinValue)
	if err := server.Serve(); err != nil {
		logger.Error("mcp server stopped", "error", err)
	}
}
