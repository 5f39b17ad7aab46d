package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateWon         GameStateType = "won"
	StateLost        GameStateType = "lost"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and for
// adapters that serialise the board.
type Snapshot struct {
	Tick    uint64        `json:"tick"`
	Variant string        `json:"variant"`
	Size    int           `json:"size"`
	Score   int           `json:"score"`
	Best    int           `json:"best"`
	Board   [][]int       `json:"board"`
	MaxTile int           `json:"max_tile"`
	State   GameStateType `json:"state"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    g.tick,
		Variant: g.ID(),
		Size:    g.cfg.Board.Size,
		State:   StatePlaying,
	}
	if g.board == nil {
		return snap
	}

	snap.Score = g.board.Score()
	snap.Best = g.board.Best()
	snap.Board = g.board.Values()
	snap.MaxTile = g.board.MaxTile()
	snap.State = boardState(g.board)

	if snap.State == StatePlaying {
		switch {
		case g.tooSmall():
			snap.State = StatePausedSmall
		case g.paused:
			snap.State = StatePaused
		}
	}
	return snap
}

// boardState classifies a board as playing, won or lost.
func boardState(b *Board) GameStateType {
	switch {
	case b.Won():
		return StateWon
	case b.Over():
		return StateLost
	default:
		return StatePlaying
	}
}

// BoardSnapshot captures a bare board, for adapters that do not run a Game.
func BoardSnapshot(b *Board) Snapshot {
	return Snapshot{
		Variant: VariantID(b.Size()),
		Size:    b.Size(),
		Score:   b.Score(),
		Best:    b.Best(),
		Board:   b.Values(),
		MaxTile: b.MaxTile(),
		State:   boardState(b),
	}
}
