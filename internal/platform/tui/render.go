package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/idle-snake/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorSnakeHead: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorSnakeBody: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorFruit:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGolden:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorPortal:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorRepulsion: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorBoost:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorFusion:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorGrid:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorHUD:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorAlert:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
