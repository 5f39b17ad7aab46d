package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// helpHeight is the number of rows kept free for the help footer.
const helpHeight = 1

// resizer is implemented by games that can follow a terminal resize without
// starting over.
type resizer interface {
	Resize(w, h int)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// ResultSaver records finished games. *storage.Store satisfies it.
type ResultSaver interface {
	SaveResult(r storage.Result) (int64, error)
}

// Model is the Bubble Tea model that plays one game variant.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      ResultSaver
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState

	embedded    bool // Running inside a SessionModel: back returns to the menu
	quitting    bool
	backToMenu  bool
	resultSaved bool // Whether the current finished game has been recorded
}

// NewModel creates a model for the given game. store may be nil.
func NewModel(game registry.Game, store ResultSaver, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Player == "" {
		cfg.Player = "local"
	}
	if s, ok := store.(*storage.Store); ok && s == nil {
		store = nil
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		store:      store,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
}

// WithLogger returns a copy of m that reports storage failures to l.
func (m Model) WithLogger(l *log.Logger) Model {
	m.logger = l
	return m
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenH = m.screen.Height()
	m.game.Reset(cfg)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.embedded {
			m.saveResult()
			m.backToMenu = true
		}
		return m, nil

	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	m.keys.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleResize keeps the board and only moves it on screen.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	h := max(msg.Height-helpHeight, 0)
	m.screen.Resize(msg.Width, h)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, h)
	} else if !m.gameState.GameOver {
		cfg := m.config
		cfg.ScreenH = h
		m.game.Reset(cfg)
	}

	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	restart := m.inputFrame.Has(core.ActionRestart)
	if restart {
		// Record the abandoned game before Step replaces it
		m.saveResult()
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if restart {
		m.resultSaved = false
	} else if m.gameState.GameOver {
		m.saveResult()
	}

	return m, tickCmd(m.config.TickRate)
}

// saveResult records the current game once, if it ended or scored anything.
func (m *Model) saveResult() {
	if m.resultSaved || m.gameState.Score == 0 {
		return
	}
	m.resultSaved = true

	if m.store == nil {
		return
	}
	_, err := m.store.SaveResult(storage.Result{
		GameID:  m.game.ID(),
		Player:  m.config.Player,
		Score:   m.gameState.Score,
		MaxTile: m.gameState.MaxTile,
		Won:     m.gameState.Won,
	})
	if err != nil && m.logger != nil {
		m.logger.Warn("could not save result", "game", m.game.ID(), "player", m.config.Player, "error", err)
	}
}

// saveScreenshot writes the current screen as plain text to ~/.t2048/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".t2048", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the game screen and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the current terminal until the user quits.
func Run(game registry.Game, store ResultSaver, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}

	// A game quit mid-way still counts if it scored
	if m, ok := final.(Model); ok {
		m.saveResult()
	}
	return nil
}
