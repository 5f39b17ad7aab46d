package t2048

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Extra sizes registered as separate variants next to the default board.
var variantSizes = []int{3, 5, 6}

func init() {
	registry.Register(VariantID(BoardSize), func(cfg config.T2048Config) registry.Game {
		return New(cfg)
	})
	for _, size := range variantSizes {
		registry.Register(VariantID(size), func(cfg config.T2048Config) registry.Game {
			return New(cfg.WithSize(size))
		})
	}
}

// VariantID returns the game ID for a board size: "2048" for the classic 4x4,
// "2048_NxN" otherwise.
func VariantID(size int) string {
	if size == BoardSize {
		return "2048"
	}
	return fmt.Sprintf("2048_%dx%d", size, size)
}

// ParseVariantID is the inverse of VariantID.
func ParseVariantID(id string) (int, bool) {
	if id == "2048" {
		return BoardSize, true
	}
	dims, ok := strings.CutPrefix(id, "2048_")
	if !ok {
		return 0, false
	}
	w, h, ok := strings.Cut(dims, "x")
	if !ok || w != h {
		return 0, false
	}
	size, err := strconv.Atoi(w)
	if err != nil || size <= 0 {
		return 0, false
	}
	return size, true
}

// Game adapts a Board to the terminal platform: it turns input actions into
// moves and draws the board. The Board itself knows nothing about terminals.
type Game struct {
	cfg   config.T2048Config
	board *Board
	tick  uint64

	screenW int
	screenH int
	paused  bool
}

// New creates a game for the given configuration. The board is built on the
// first Reset. Zero fields fall back to the defaults.
func New(cfg config.T2048Config) *Game {
	def := config.DefaultT2048Config()
	if cfg.Board.Size <= 0 {
		cfg.Board.Size = def.Board.Size
	}
	if cfg.Board.WinValue <= 0 {
		cfg.Board.WinValue = def.Board.WinValue
	}
	if cfg.Layout.CellWidth <= 0 || cfg.Layout.CellHeight <= 0 {
		cfg.Layout = def.Layout
	}
	return &Game{cfg: cfg}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return VariantID(g.cfg.Board.Size)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.cfg.Board.Size == BoardSize {
		return "2048"
	}
	return fmt.Sprintf("2048 (%dx%d)", g.cfg.Board.Size, g.cfg.Board.Size)
}

// Board exposes the underlying board for read access. It is nil before Reset.
func (g *Game) Board() *Board {
	return g.board
}

// Reset starts a new game. The board is created on the first call and reused
// afterwards so the best score survives restarts.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	if g.board != nil {
		g.board.StartNewGame()
		return
	}

	board, err := NewBoard(g.cfg.Board.Size, NewSource(cfg.Seed),
		WithWinValue(g.cfg.Board.WinValue),
		WithSpawn4Prob(g.cfg.Board.Spawn4Prob),
	)
	if err != nil {
		// New guarantees a positive size
		panic(err)
	}
	g.board = board
}

// Resize records new screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Step applies one tick of input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.board == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionRestart) {
		g.board.StartNewGame()
		g.paused = false
		return core.StepResult{State: g.State(), Moved: true}
	}

	if in.Has(core.ActionPause) && !g.board.Over() {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall() {
		return core.StepResult{State: g.State()}
	}

	moved := false
	if dir, ok := directionFor(in); ok {
		moved = g.board.Move(dir)
	}

	return core.StepResult{State: g.State(), Moved: moved}
}

// directionFor picks the move requested by the frame, if any.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.board == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.board.Score(),
		Best:     g.board.Best(),
		MaxTile:  g.board.MaxTile(),
		GameOver: g.board.Over(),
		Won:      g.board.Won(),
		Paused:   g.paused || g.tooSmall(),
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | N: New game | P: Pause | Q: Quit"
}
