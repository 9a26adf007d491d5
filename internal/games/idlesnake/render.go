package idlesnake

import (
	"fmt"

	"github.com/vovakirdan/idle-snake/internal/core"
	"github.com/vovakirdan/idle-snake/internal/navigation"
)

const (
	hudHeight = 2
	cellWidth = 2 // Terminal cells are roughly twice as tall as wide
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	boxW := g.n*cellWidth + 2
	boxH := g.n + 2
	if dst.Width() < boxW || dst.Height() < boxH+hudHeight {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", boxW, boxH+hudHeight))
		return
	}

	ox := (dst.Width() - boxW) / 2
	oy := hudHeight + (dst.Height()-hudHeight-boxH)/2
	dst.DrawBox(core.NewRect(ox, oy, boxW, boxH), core.ColorGrid)

	// Board origin inside the frame
	bx, by := ox+1, oy+1
	for y := 0; y < g.n; y++ {
		for x := 0; x < g.n; x++ {
			g.drawCell(dst, bx, by, core.Pos(x, y), '·', core.ColorGrid)
		}
	}
	for _, w := range g.walls {
		r, c := wallGlyph(w.Kind)
		for _, p := range w.Positions {
			g.drawCell(dst, bx, by, p, r, c)
		}
	}
	for _, f := range g.fruits {
		if f.Golden {
			g.drawCell(dst, bx, by, f.Position, '$', core.ColorGolden)
		} else {
			g.drawCell(dst, bx, by, f.Position, '*', core.ColorFruit)
		}
	}
	for i := len(g.snake) - 1; i >= 0; i-- {
		if i == 0 {
			head := 'O'
			if g.dead {
				head = 'X'
			}
			g.drawCell(dst, bx, by, g.snake[i], head, core.ColorSnakeHead)
		} else {
			g.drawCell(dst, bx, by, g.snake[i], 'o', core.ColorSnakeBody)
		}
	}

	switch {
	case g.dead:
		g.renderOverlay(dst, fmt.Sprintf("Run %d over: %s", g.run, g.deathReason),
			fmt.Sprintf("Score %d, respawning...", g.score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) drawCell(dst *core.Screen, bx, by int, p core.Position, r rune, c core.Color) {
	x := bx + p.X*cellWidth
	y := by + p.Y
	dst.SetColored(x, y, r, c)
	dst.SetColored(x+1, y, ' ', c)
}

func wallGlyph(k navigation.WallKind) (rune, core.Color) {
	switch k {
	case navigation.Portal:
		return '@', core.ColorPortal
	case navigation.Repulsion:
		return '#', core.ColorRepulsion
	case navigation.Boost:
		return '+', core.ColorBoost
	default:
		return '%', core.ColorFusion
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	stage := g.engine.LastDecision().Stage
	hud := fmt.Sprintf(" %s  Run %d  Score %d (best %d)  Len %d  Grid %d  Deaths %d  x%.2g  %s",
		g.board.Title, g.run, g.score, g.best, len(g.snake), g.n, g.deaths, g.speed, stage)
	if g.boostLeft > 0 {
		hud += "  BOOST"
	}
	dst.DrawText(0, 0, hud, core.ColorHUD)

	for x, w := 0, dst.Width(); x < w; x++ {
		dst.SetColored(x, 1, '─', core.ColorGrid)
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		for x := r.X + 1; x < r.Right()-1; x++ {
			dst.SetColored(x, y, ' ', core.ColorDefault)
		}
	}
	dst.DrawBox(r, core.ColorAlert)
	dst.DrawTextCentered(r.Y+1, line1, core.ColorAlert)
	dst.DrawTextCentered(r.Y+3, line2, core.ColorHUD)
}
