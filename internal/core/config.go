package core

// RuntimeConfig is what the platform hands a game when it (re)starts it.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Platform ticks per second
	Seed     int64  // RNG seed, 0 for time-based
	Player   string // Name recorded with results ("local" for the CLI)
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Player:   "local",
	}
}

// GameState is the externally visible status of a game.
type GameState struct {
	Score    int
	Best     int
	MaxTile  int
	GameOver bool // Win or no moves left
	Won      bool
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	Moved bool // The board changed this step
}
