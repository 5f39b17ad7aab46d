package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	minWidthForSidebar = 90  // Minimum width to show the variant sidebar
	sidebarWidth       = 18  // Width of the variant sidebar
	maxScores          = 100 // Max results to load per variant
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next board"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statsStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	panelStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ScoreboardModel shows the best recorded results per variant.
type ScoreboardModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	results     []storage.Result
	stats       *storage.GameStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitOnDone  bool
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard over the registered variants and
// any other board size found in the store. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:       scoreboardGames(store),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if len(m.games) > 0 {
		m.loadScores(m.games[0].ID)
	}
	return m
}

// scoreboardGames merges registered variants with IDs that only exist in the
// result history, such as custom board sizes.
func scoreboardGames(store *storage.Store) []registry.GameInfo {
	games := registry.List()
	if store == nil {
		return games
	}

	played, err := store.PlayedGames()
	if err != nil {
		return games
	}
	for _, id := range played {
		if !registry.Exists(id) {
			games = append(games, registry.GameInfo{ID: id, Title: id})
		}
	}
	return games
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Tile", Width: 6},
		{Title: "Result", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 6
	if m.showSidebar {
		tableWidth -= sidebarWidth + 4
	}
	// Give spare room to the player column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := tableWidth - used; extra > 0 {
		columns[4].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ScoreboardModel) loadScores(gameID string) {
	m.results = nil
	m.stats = nil

	if m.store != nil {
		if results, err := m.store.TopScores(gameID, maxScores); err == nil {
			m.results = results
		}
		if stats, err := m.store.GameStats(gameID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		outcome := "-"
		if r.Won {
			outcome = "won"
		}
		player := r.Player
		if player == "" {
			player = "?"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.MaxTile),
			outcome,
			player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.quitOnDone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.loadScores(m.games[m.gameCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.loadScores(m.games[m.gameCursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title = fmt.Sprintf("HIGH SCORES - %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(centerText(scoreTitleStyle.Render(title), m.width, len(title)))
	b.WriteString("\n")
	b.WriteString(centerText(statsStyle.Render(m.statsLine()), m.width, len(m.statsLine())))
	b.WriteString("\n\n")

	body := panelStyle.Render(m.renderTableContent())
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body)
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width, 0))
		b.WriteString("\n\n")
	}
	b.WriteString(body)

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarises the selected variant.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "no games yet"
	}
	return fmt.Sprintf("games %d  wins %d  avg %.0f  best tile %d",
		m.stats.GamesCount, m.stats.Wins, m.stats.AvgScore, m.stats.BestTile)
}

func (m ScoreboardModel) renderSidebar() string {
	var sidebar strings.Builder
	sidebar.WriteString("Boards\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		line := "  " + g.Title
		if i == m.gameCursor {
			line = menuCursorStyle.Render("> " + g.Title)
		}
		sidebar.WriteString(line)
		sidebar.WriteString("\n")
	}

	return panelStyle.Width(sidebarWidth).Render(sidebar.String())
}

func (m ScoreboardModel) renderTabs() string {
	if len(m.games) == 0 {
		return ""
	}
	return fmt.Sprintf("< %s >", m.games[m.gameCursor].Title)
}

func (m ScoreboardModel) renderTableContent() string {
	if len(m.results) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4).
			Render("No games recorded yet.\nFinish a game to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if the user wants to go back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen on its own.
// Returns true if the user wants to go back rather than quit.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)
	model.quitOnDone = true

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
