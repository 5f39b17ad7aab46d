package t2048

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New(config.DefaultT2048Config())
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)
	return g
}

func TestDeterministicGame(t *testing.T) {
	inputs := []core.Action{
		core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown,
		core.ActionLeft, core.ActionLeft, core.ActionUp, core.ActionNone,
		core.ActionRight, core.ActionDown, core.ActionUp, core.ActionLeft,
	}

	run := func() Snapshot {
		g := newTestGame(t, 42)
		for range 10 {
			for _, a := range inputs {
				g.Step(frame(a))
			}
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different games:\n%+v\n%+v", a, b)
	}
}

func TestGameStepMoves(t *testing.T) {
	g := newTestGame(t, 1)
	g.board = boardFrom(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, nil)

	res := g.Step(frame(core.ActionLeft))

	if !res.Moved {
		t.Fatal("left should move the board")
	}
	if res.State.Score != 4 || res.State.Best != 4 || res.State.MaxTile != 4 {
		t.Errorf("state = %+v", res.State)
	}

	res = g.Step(frame(core.ActionLeft))
	if res.Moved {
		t.Error("second left cannot move anything")
	}
}

func TestGameRestartKeepsBest(t *testing.T) {
	g := newTestGame(t, 1)
	g.board = boardFrom(t, [][]int{
		{4, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, nil)
	g.Step(frame(core.ActionLeft))

	res := g.Step(frame(core.ActionRestart))
	if !res.Moved || res.State.Score != 0 || res.State.Best != 8 {
		t.Errorf("after restart: %+v", res)
	}

	g.Reset(core.DefaultConfig())
	if g.State().Best != 8 {
		t.Errorf("Reset lost the best score: %d", g.State().Best)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, 1)
	before := g.Board().Values()

	g.Step(frame(core.ActionPause))
	if !g.State().Paused || g.Snapshot().State != StatePaused {
		t.Fatal("game should be paused")
	}

	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown} {
		if g.Step(frame(a)).Moved {
			t.Errorf("%v moved while paused", a)
		}
	}
	if !reflect.DeepEqual(before, g.Board().Values()) {
		t.Error("board changed while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameTooSmallBlocksMoves(t *testing.T) {
	g := newTestGame(t, 1)
	g.Resize(20, 8)

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("state = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}
	for _, dir := range Directions {
		if g.Board().Possible(dir) {
			if g.Step(frame(actionFor(dir))).Moved {
				t.Errorf("%v moved in a too-small window", dir)
			}
		}
	}

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected resize hint, got:\n%s", screen.String())
	}
}

func actionFor(dir Direction) core.Action {
	switch dir {
	case DirUp:
		return core.ActionUp
	case DirDown:
		return core.ActionDown
	case DirLeft:
		return core.ActionLeft
	default:
		return core.ActionRight
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, 1)
	g.board = boardFrom(t, [][]int{
		{2, 0, 0, 0},
		{0, 128, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 2048},
	}, nil)
	g.board.score = 1234

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"2048", "Score: 1234", "Best: 0", "128", "┌", "┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestGameRenderOverlays(t *testing.T) {
	tests := []struct {
		name  string
		board [][]int
		move  core.Action
		want  string
		state GameStateType
	}{
		{
			name: "win",
			board: [][]int{
				{1024, 1024, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			move:  core.ActionLeft,
			want:  "You Win! :)",
			state: StateWon,
		},
		{
			name: "lose",
			board: [][]int{
				{4, 8, 16, 32},
				{8, 16, 32, 64},
				{16, 32, 64, 128},
				{0, 4, 8, 16},
			},
			move:  core.ActionLeft,
			want:  "You Lose! :(",
			state: StateLost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, 1)
			g.board = boardFrom(t, tt.board, nil)
			g.Step(frame(tt.move))

			screen := core.NewScreen(80, 24)
			g.Render(screen)

			if !strings.Contains(screen.String(), tt.want) {
				t.Errorf("render missing %q:\n%s", tt.want, screen.String())
			}
			if g.Snapshot().State != tt.state {
				t.Errorf("snapshot state = %s, want %s", g.Snapshot().State, tt.state)
			}
			if !g.State().GameOver {
				t.Error("GameOver should be set")
			}
		})
	}
}

func TestTileColor(t *testing.T) {
	if TileColor(2) == TileColor(2048) {
		t.Error("2 and 2048 should use different colors")
	}
	if TileColor(0) != core.ColorGray {
		t.Error("empty cells should be gray")
	}
	if TileColor(4096) != core.ColorBrightMagenta {
		t.Error("values past the palette should use the overflow color")
	}
}

func TestFormatBoard(t *testing.T) {
	b := boardFrom(t, [][]int{
		{2, 0, 0},
		{0, 128, 0},
		{0, 0, 4},
	}, nil)
	b.score, b.best = 12, 40

	want := "Score: 12  Best: 40\n" +
		"  2   .   .\n" +
		"  . 128   .\n" +
		"  .   .   4\n"
	if got := FormatBoard(b); got != want {
		t.Errorf("FormatBoard() =\n%q\nwant\n%q", got, want)
	}

	b.over = true
	if !strings.HasSuffix(FormatBoard(b), "Game over: no moves left.\n") {
		t.Error("lost board should end with the game over line")
	}
	b.won = true
	if !strings.HasSuffix(FormatBoard(b), "You win!\n") {
		t.Error("won board should end with the win line")
	}
}

func TestVariantIDs(t *testing.T) {
	tests := []struct {
		size int
		id   string
	}{
		{4, "2048"},
		{3, "2048_3x3"},
		{5, "2048_5x5"},
		{8, "2048_8x8"},
	}
	for _, tt := range tests {
		if got := VariantID(tt.size); got != tt.id {
			t.Errorf("VariantID(%d) = %q, want %q", tt.size, got, tt.id)
		}
		size, ok := ParseVariantID(tt.id)
		if !ok || size != tt.size {
			t.Errorf("ParseVariantID(%q) = %d, %v", tt.id, size, ok)
		}
	}

	for _, bad := range []string{"", "snake", "2048_", "2048_4x5", "2048_0x0", "2048_axa"} {
		if _, ok := ParseVariantID(bad); ok {
			t.Errorf("ParseVariantID(%q) should fail", bad)
		}
	}
}

func TestRegisteredVariants(t *testing.T) {
	for _, size := range []int{3, 4, 5, 6} {
		id := VariantID(size)
		if !registry.Exists(id) {
			t.Errorf("variant %q not registered", id)
			continue
		}

		game, err := registry.Create(id, config.DefaultT2048Config())
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		game.Reset(core.DefaultConfig())

		g, ok := game.(*Game)
		if !ok {
			t.Fatalf("Create(%q) returned %T", id, game)
		}
		if g.Board().Size() != size || g.ID() != id {
			t.Errorf("variant %q built a %dx%d board with ID %q", id, g.Board().Size(), g.Board().Size(), g.ID())
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"up", DirUp},
		{"U", DirUp},
		{" down ", DirDown},
		{"l", DirLeft},
		{"Right", DirRight},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, %v", tt.in, got, err)
		}
	}

	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection should reject unknown names")
	}
	if DirLeft.String() != "left" {
		t.Errorf("DirLeft.String() = %q", DirLeft.String())
	}
}
