package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	_ "github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

type stubGame struct {
	state     core.GameState
	resets    int
	lastInput core.InputFrame
	resized   [2]int
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Resize(w, h int)          { g.resized = [2]int{w, h} }
func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub game")
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.lastInput = in
	if in.Has(core.ActionRestart) {
		g.state = core.GameState{}
	}
	return core.StepResult{State: g.state}
}

type fakeSaver struct {
	results []storage.Result
	err     error
}

func (s *fakeSaver) SaveResult(r storage.Result) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.results = append(s.results, r)
	return int64(len(s.results)), nil
}

type fakeScores map[string]int

func (f fakeScores) HighScore(id string) (int, error) { return f[id], nil }

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	cfg.Player = "tester"
	return cfg
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestMapKey(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runeKey("w"), core.ActionUp, false},
		{runeKey("k"), core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{runeKey("s"), core.ActionDown, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey("a"), core.ActionLeft, false},
		{runeKey("h"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{runeKey("d"), core.ActionRight, false},
		{runeKey("l"), core.ActionRight, false},
		{runeKey("n"), core.ActionRestart, false},
		{runeKey("r"), core.ActionRestart, false},
		{runeKey("p"), core.ActionPause, false},
		{runeKey("?"), core.ActionHelp, false},
		{runeKey("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := DefaultKeyMap()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame) {
		t.Error("left is not a quit key")
	}
	km.MapKeyToFrame(runeKey("x"), &frame)

	if !frame.Has(core.ActionLeft) || frame.Has(core.ActionNone) {
		t.Errorf("unexpected frame contents")
	}
}

func TestModelForwardsInput(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, TickMsg{})

	if !g.lastInput.Has(core.ActionLeft) {
		t.Error("left key should reach the game")
	}

	m = update(t, m, TickMsg{})
	if !g.lastInput.Empty() {
		t.Error("input frame should be cleared after a tick")
	}
}

func TestModelSavesFinishedGameOnce(t *testing.T) {
	g := &stubGame{}
	saver := &fakeSaver{}
	m := NewModel(g, saver, testConfig())
	m.Init()

	g.state = core.GameState{Score: 1200, MaxTile: 128, GameOver: true}
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if len(saver.results) != 1 {
		t.Fatalf("expected 1 saved result, got %d", len(saver.results))
	}
	got := saver.results[0]
	if got.GameID != "stub" || got.Player != "tester" || got.Score != 1200 || got.MaxTile != 128 || got.Won {
		t.Errorf("unexpected result: %+v", got)
	}

	// New game, finished again
	m = update(t, m, runeKey("n"))
	m = update(t, m, TickMsg{})
	g.state = core.GameState{Score: 2048, MaxTile: 2048, GameOver: true, Won: true}
	update(t, m, TickMsg{})

	if len(saver.results) != 2 || !saver.results[1].Won {
		t.Errorf("second game not recorded: %+v", saver.results)
	}
}

func TestModelSavesRestartedGame(t *testing.T) {
	g := &stubGame{}
	saver := &fakeSaver{}
	m := NewModel(g, saver, testConfig())
	m.Init()

	g.state = core.GameState{Score: 500, MaxTile: 64}
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey("n"))
	m = update(t, m, TickMsg{})

	if len(saver.results) != 1 {
		t.Fatalf("expected the restarted game to be saved, got %d results", len(saver.results))
	}
	if got := saver.results[0]; got.Score != 500 || got.MaxTile != 64 || got.Won {
		t.Errorf("unexpected result: %+v", got)
	}

	// The fresh game is tracked separately
	g.state = core.GameState{Score: 8, MaxTile: 4, GameOver: true}
	update(t, m, TickMsg{})

	if len(saver.results) != 2 || saver.results[1].Score != 8 {
		t.Errorf("second game not recorded: %+v", saver.results)
	}
}

func TestModelSkipsEmptyGames(t *testing.T) {
	g := &stubGame{state: core.GameState{GameOver: true}}
	saver := &fakeSaver{}
	m := NewModel(g, saver, testConfig())
	m.Init()

	update(t, m, TickMsg{})

	if len(saver.results) != 0 {
		t.Errorf("a zero-score game should not be saved")
	}
}

func TestModelStorageFailures(t *testing.T) {
	g := &stubGame{state: core.GameState{Score: 4, GameOver: true}}

	// Save errors are absorbed
	m := NewModel(g, &fakeSaver{err: errors.New("disk full")}, testConfig())
	m.Init()
	update(t, m, TickMsg{})

	// A nil store is treated as no store
	var store *storage.Store
	m = NewModel(g, store, testConfig())
	m.Init()
	update(t, m, TickMsg{})
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.resets != 1 {
		t.Errorf("resize should not restart the game, resets = %d", g.resets)
	}
	if g.resized != [2]int{100, 40 - helpHeight} {
		t.Errorf("game resized to %v", g.resized)
	}
}

func TestModelQuitAndBack(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.BackToMenu() {
		t.Error("a standalone game has no menu to go back to")
	}

	m.embedded = true
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("esc should go back to the menu in a session")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("ctrl+c should quit")
	}
	if next.(Model).View() != "" {
		t.Error("a quitting model renders nothing")
	}
}

func TestModelView(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	view := m.View()
	if !strings.Contains(view, "stub game") {
		t.Errorf("view is missing the game screen:\n%s", view)
	}
	if !strings.Contains(view, "new game") {
		t.Errorf("view is missing the help footer:\n%s", view)
	}

	m = update(t, m, runeKey("?"))
	if !strings.Contains(m.View(), "right") {
		t.Error("full help should list the move keys")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawTextColored(0, 0, "2048", core.ColorBrightCyan)
	s.DrawText(5, 0, "x")
	s.SetColored(0, 2, '┼', core.ColorGray)

	out := RenderScreen(s)

	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 3 lines, got:\n%s", out)
	}
	for _, want := range []string{"2048", "x", "┼"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMenuModel(t *testing.T) {
	m := NewMenuModel(fakeScores{"2048": 3000}, testConfig())

	if len(m.items) < 4 {
		t.Fatalf("expected all board variants, got %d items", len(m.items))
	}
	var classic *MenuItem
	for i := range m.items {
		if m.items[i].GameID == "2048" {
			classic = &m.items[i]
		}
	}
	if classic == nil || classic.Best != 3000 {
		t.Fatalf("classic variant missing or without best score: %+v", classic)
	}
	if !strings.Contains(m.View(), "best 3000") {
		t.Error("menu should show the best score")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	if m.Selected() == nil || m.Selected().GameID != m.items[1].GameID {
		t.Errorf("selected %+v, want %s", m.Selected(), m.items[1].GameID)
	}
}

func TestMenuNilStore(t *testing.T) {
	var store *storage.Store
	m := NewMenuModel(store, testConfig())
	for _, item := range m.items {
		if item.Best != 0 {
			t.Errorf("%s has a best score without a store", item.GameID)
		}
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScoreboardModel(t *testing.T) {
	store := openStore(t)
	for _, r := range []storage.Result{
		{GameID: "2048", Player: "alice", Score: 5000, MaxTile: 512},
		{GameID: "2048", Player: "bob", Score: 25000, MaxTile: 2048, Won: true},
		{GameID: "2048_8x8", Player: "carol", Score: 90000, MaxTile: 4096, Won: true},
	} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 120, 40)

	found := false
	for _, g := range m.games {
		if g.ID == "2048_8x8" {
			found = true
		}
	}
	if !found {
		t.Error("custom board sizes from the history should be listed")
	}

	if m.games[0].ID != "2048" {
		t.Fatalf("first board = %s", m.games[0].ID)
	}
	view := m.View()
	for _, want := range []string{"HIGH SCORES", "games 2  wins 1", "bob", "25000"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.gameCursor != 1 {
		t.Errorf("tab should move to the next board, cursor = %d", m.gameCursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if !next.(ScoreboardModel).IsGoingBack() || cmd != nil {
		t.Error("embedded scoreboard should go back without quitting")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No games recorded yet") {
		t.Errorf("expected empty message:\n%s", m.View())
	}
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	m := NewSessionModel(store, config.DefaultT2048Config(), testConfig(), nil)

	step := func(msg tea.Msg) tea.Cmd {
		next, cmd := m.Update(msg)
		m = next.(SessionModel)
		return cmd
	}

	if cmd := step(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Error("starting a game should start the tick loop")
	}
	if m.screen != screenGame {
		t.Fatalf("enter should start a game, screen = %v", m.screen)
	}
	if !strings.Contains(m.View(), "Score:") {
		t.Errorf("game view expected:\n%s", m.View())
	}

	step(TickMsg{})
	step(tea.KeyMsg{Type: tea.KeyEscape})
	if m.screen != screenMenu {
		t.Fatalf("esc should return to the menu, screen = %v", m.screen)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("tab should open the scoreboard, screen = %v", m.screen)
	}
	step(tea.KeyMsg{Type: tea.KeyEscape})
	if m.screen != screenMenu {
		t.Fatalf("esc should leave the scoreboard, screen = %v", m.screen)
	}

	if cmd := step(runeKey("q")); cmd == nil || !m.quitting {
		t.Error("q should end the session")
	}
}
