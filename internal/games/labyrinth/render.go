package labyrinth

import (
	"fmt"
	"time"

	"github.com/vovakirdan/labyrinth/internal/core"
	"github.com/vovakirdan/labyrinth/internal/maze"
)

const (
	runePlayer = '@'
	runeExit   = 'E'
	runeHint   = '.'
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	switch {
	case g.genErr != nil:
		g.renderOverlay(dst, "Cannot build maze", g.genErr.Error())
		return
	case g.tooSmall || g.session == nil:
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderMaze(dst)
	g.renderHint(dst)
	g.renderMarkers(dst)
	g.renderFooter(dst)

	switch {
	case g.Completed():
		g.renderOverlay(dst, "You escaped!",
			fmt.Sprintf("Score: %d  Moves: %d/%d  R for a new maze", g.score, g.session.Moves(), g.Optimal()))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s %dx%d  Seed: %d", g.Title(), g.board.Width, g.board.Height, g.seed)
	if g.session != nil {
		hud += fmt.Sprintf("  Moves: %d  Optimal: %d  Hints: %d  Time: %s",
			g.session.Moves(), g.Optimal(), g.hints, formatClock(g.Elapsed()))
	}
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderMaze draws the walls of every cell. Each cell owns its top-left
// corner, its top edge and its left edge; the last column and row close the
// right and bottom borders.
func (g *Game) renderMaze(dst *core.Screen) {
	m := g.session.Maze()

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			p := maze.Position{X: x, Y: y}
			sx, sy := g.cellOrigin(p)

			dst.SetColored(sx, sy, '+', core.ColorWall)
			if m.HasWall(p, maze.Top) {
				dst.SetColored(sx+1, sy, '-', core.ColorWall)
				dst.SetColored(sx+2, sy, '-', core.ColorWall)
			}
			if m.HasWall(p, maze.Left) {
				dst.SetColored(sx, sy+1, '|', core.ColorWall)
			}
			if x == m.Width()-1 {
				dst.SetColored(sx+cellW, sy, '+', core.ColorWall)
				if m.HasWall(p, maze.Right) {
					dst.SetColored(sx+cellW, sy+1, '|', core.ColorWall)
				}
			}
			if y == m.Height()-1 {
				dst.SetColored(sx, sy+cellH, '+', core.ColorWall)
				if m.HasWall(p, maze.Bottom) {
					dst.SetColored(sx+1, sy+cellH, '-', core.ColorWall)
					dst.SetColored(sx+2, sy+cellH, '-', core.ColorWall)
				}
				if x == m.Width()-1 {
					dst.SetColored(sx+cellW, sy+cellH, '+', core.ColorWall)
				}
			}
		}
	}
}

// renderHint draws the revealed trail towards the exit.
func (g *Game) renderHint(dst *core.Screen) {
	for _, p := range g.Hint() {
		sx, sy := g.cellOrigin(p)
		dst.SetColored(sx+1, sy+1, runeHint, core.ColorHint)
	}
}

// renderMarkers draws the exit and the player. The player wins the cell.
func (g *Game) renderMarkers(dst *core.Screen) {
	m := g.session.Maze()

	ex, ey := g.cellOrigin(m.Exit())
	dst.SetColored(ex+1, ey+1, runeExit, core.ColorExit)

	px, py := g.cellOrigin(g.session.Position())
	dst.SetColored(px+1, py+1, runePlayer, core.ColorPlayer)
}

// renderFooter draws the controls line below the maze.
func (g *Game) renderFooter(dst *core.Screen) {
	m := g.session.Maze()
	y := g.offsetY + m.Height()*cellH + 1
	help := "Arrows/WASD move  ? hint  P pause  R new maze  Q quit"
	if g.mode == ModeDaily {
		help = "Arrows/WASD move  ? hint  P pause  R retry  Q quit"
	}
	dst.DrawTextColored(g.offsetX, y, help, core.ColorGray)
}

// cellOrigin returns the screen coordinates of a cell's top-left corner.
func (g *Game) cellOrigin(p maze.Position) (x, y int) {
	return g.offsetX + p.X*cellW, g.offsetY + p.Y*cellH
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

// formatClock renders d as mm:ss.
func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
