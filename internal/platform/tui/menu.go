package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// HighScorer looks up the best recorded score of a variant.
// *storage.Store satisfies it.
type HighScorer interface {
	HighScore(gameID string) (int, error)
}

// MenuItem is a selectable variant in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int // Best recorded score, 0 when unknown
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// MenuModel is the Bubble Tea model for the variant picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keys           KeyMap
	quitOnDone     bool // Standalone menu: exit the program once a choice is made
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists every registered variant with its best recorded score.
// scores may be nil.
func NewMenuModel(scores HighScorer, cfg core.RuntimeConfig) MenuModel {
	if s, ok := scores.(*storage.Store); ok && s == nil {
		scores = nil
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if scores != nil {
			if best, err := scores.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, m.done()
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, m.done()
	}

	return m, nil
}

func (m MenuModel) done() tea.Cmd {
	if m.quitOnDone {
		return tea.Quit
	}
	return nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("2 0 4 8"), m.width, 7))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a board", m.width, 0))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-12s", item.Title)
		if item.Best > 0 {
			line += fmt.Sprintf("  best %d", item.Best)
		}
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(centerText(line, m.width, 28))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("↑/↓: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit", m.width, 0))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text so it sits in the middle of width columns. A positive
// visible overrides the measured width, which is needed for styled text.
func centerText(text string, width, visible int) string {
	if visible <= 0 {
		visible = lipgloss.Width(text)
	}
	if visible >= width {
		return text
	}
	return strings.Repeat(" ", (width-visible)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(scores HighScorer, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(scores, cfg)
	model.quitOnDone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
