package t2048

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const hudHeight = 3

// tileColors is the classic 2048 palette.
var tileColors = map[int]core.Color{
	2:    core.ColorWhite,
	4:    core.ColorBrightWhite,
	8:    core.ColorOrange,
	16:   core.ColorBrightRed,
	32:   core.ColorRed,
	64:   core.ColorMagenta,
	128:  core.ColorBrightYellow,
	256:  core.ColorYellow,
	512:  core.ColorBrightGreen,
	1024: core.ColorGreen,
	2048: core.ColorBrightCyan,
}

// TileColor returns the display color for a tile value.
func TileColor(value int) core.Color {
	if c, ok := tileColors[value]; ok {
		return c
	}
	if value == 0 {
		return core.ColorGray
	}
	return core.ColorBrightMagenta
}

// boardRect returns where the grid is drawn, centered below the HUD.
func (g *Game) boardRect() core.Rect {
	n := g.cfg.Board.Size
	w := n*g.cfg.Layout.CellWidth + 1
	h := n*g.cfg.Layout.CellHeight + 1
	return core.Rect{X: (g.screenW - w) / 2, Y: hudHeight, W: w, H: h}
}

// tooSmall reports whether the HUD and grid do not fit the screen.
func (g *Game) tooSmall() bool {
	screen := core.NewRect(0, 0, g.screenW, g.screenH)
	return !screen.Encloses(g.boardRect())
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.board == nil {
		return
	}

	if g.tooSmall() {
		g.renderTooSmall(dst)
		return
	}

	r := g.boardRect()
	g.renderHUD(dst, r)
	g.renderBoard(dst, r)
	g.renderOverlays(dst, r)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *core.Screen, r core.Rect) {
	title := g.Title()
	dst.DrawTextColored(r.X+(r.W-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(r.X, 1, fmt.Sprintf("Score: %d", g.board.Score()))

	best := fmt.Sprintf("Best: %d", g.board.Best())
	dst.DrawText(max(r.X, r.Right()-len(best)), 1, best)
}

func (g *Game) renderBoard(dst *core.Screen, r core.Rect) {
	cw, ch := g.cfg.Layout.CellWidth, g.cfg.Layout.CellHeight
	n := g.board.Size()

	// Grid lines
	for row := 0; row <= n; row++ {
		for col := 0; col <= n; col++ {
			px := r.X + col*cw
			py := r.Y + row*ch
			dst.SetColored(px, py, gridCorner(row, col, n), core.ColorGray)
			if col < n {
				for i := 1; i < cw; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if row < n {
				for i := 1; i < ch; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	// Tiles, centered in their cell
	for row := range n {
		for col := range n {
			tile, ok := g.board.Cell(row, col)
			if !ok {
				continue
			}
			text := strconv.Itoa(tile.Value())
			inner := cw - 1
			pad := max((inner-len(text))/2, 0)
			if len(text) > inner {
				text = text[:inner]
			}
			x := r.X + col*cw + 1 + pad
			y := r.Y + row*ch + ch/2
			dst.DrawTextColored(x, y, text, TileColor(tile.Value()))
		}
	}
}

// gridCorner picks the box-drawing junction for grid intersection (row, col).
func gridCorner(row, col, n int) rune {
	switch {
	case row == 0 && col == 0:
		return '┌'
	case row == 0 && col == n:
		return '┐'
	case row == n && col == 0:
		return '└'
	case row == n && col == n:
		return '┘'
	case row == 0:
		return '┬'
	case row == n:
		return '┴'
	case col == 0:
		return '├'
	case col == n:
		return '┤'
	default:
		return '┼'
	}
}

func (g *Game) renderOverlays(dst *core.Screen, r core.Rect) {
	switch {
	case g.board.Won():
		drawOverlay(dst, r, core.ColorBrightGreen, "You Win! :)", fmt.Sprintf("Score: %d", g.board.Score()), "Press N for a new game")
	case g.board.Over():
		drawOverlay(dst, r, core.ColorBrightRed, "You Lose! :(", fmt.Sprintf("Max tile: %d", g.board.MaxTile()), "Press N for a new game")
	case g.paused:
		drawOverlay(dst, r, core.ColorDefault, "PAUSED", "Press P to resume")
	}
}

// drawOverlay draws a boxed message centered on r.
func drawOverlay(dst *core.Screen, r core.Rect, c core.Color, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}

	box := r.CenteredIn(width+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, c)

	for i, line := range lines {
		x := box.X + (box.W-len(line))/2
		dst.DrawTextColored(x, box.Y+1+i, line, c)
	}
}

// FormatBoard renders a board as plain text: a score line followed by the
// grid, with "." for empty cells.
func FormatBoard(b *Board) string {
	width := max(len(strconv.Itoa(b.MaxTile())), 1)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d  Best: %d\n", b.Score(), b.Best())
	for _, row := range b.Values() {
		cells := make([]string, len(row))
		for i, v := range row {
			text := "."
			if v != 0 {
				text = strconv.Itoa(v)
			}
			cells[i] = fmt.Sprintf("%*s", width, text)
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteByte('\n')
	}

	switch {
	case b.Won():
		sb.WriteString("You win!\n")
	case b.Over():
		sb.WriteString("Game over: no moves left.\n")
	}
	return sb.String()
}
