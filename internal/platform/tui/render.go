package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/caterpillar/internal/core"
)

// colorStyles maps every core.Color to a lipgloss style.
var colorStyles = buildColorStyles()

func buildColorStyles() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
	}
	for _, name := range core.ColorNames() {
		c, err := core.ParseColor(name)
		if err != nil {
			continue
		}
		if code, ok := c.ANSI(); ok {
			styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(code)))
		}
	}
	return styles
}

// colorOf returns the lipgloss color for c, or no color for the default.
func colorOf(c core.Color) lipgloss.TerminalColor {
	if code, ok := c.ANSI(); ok {
		return lipgloss.Color(strconv.Itoa(code))
	}
	return lipgloss.NoColor{}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
