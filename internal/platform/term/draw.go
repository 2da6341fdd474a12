package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/caterpillar/internal/core"
	"github.com/vovakirdan/caterpillar/internal/games/caterpillar"
	"github.com/vovakirdan/caterpillar/internal/storage"
)

// Frame layout: score line, bordered board, status line, leaderboard.
const (
	frameWidth      = caterpillar.BoardWidth + 2
	boardTop        = 1
	leaderboardSize = 5
	hintLine        = "arrows/wasd move  r restart  tab board  q quit"
)

// cellSetter is the part of tcell.Screen the blitter needs.
type cellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// frameInput is everything one frame shows.
type frameInput struct {
	board       *core.Screen
	theme       caterpillar.Theme
	hud         *hud
	status      string
	leaderboard []storage.RoundRecord // nil hides the panel
}

// composeFrame lays out a full frame into a new screen buffer.
func composeFrame(in frameInput) *core.Screen {
	height := boardTop + caterpillar.BoardHeight + 2 + 1
	if in.leaderboard != nil {
		height += 2 + leaderboardSize
	}
	width := core.Max(frameWidth, len(hintLine))
	dst := core.NewScreen(width, height)

	dst.DrawText(0, 0, in.hud.Line(), in.theme.Text)

	box := core.NewRect(0, boardTop, frameWidth, caterpillar.BoardHeight+2)
	dst.DrawBox(box, in.theme.Border)

	board := in.board
	if in.hud.outcome {
		board = board.Clone()
		caterpillar.DrawOverlay(board, in.hud.won, in.theme)
	}
	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			c := board.GetCell(x, y)
			dst.SetCell(box.X+1+x, box.Y+1+y, c.Rune, c.Color)
		}
	}

	y := box.Bottom()
	status := in.status
	if status == "" {
		status = hintLine
	}
	dst.DrawText(0, y, status, core.ColorGray)

	if in.leaderboard != nil {
		y += 2
		dst.DrawText(0, y, "LEADERBOARD", in.theme.Text)
		if len(in.leaderboard) == 0 {
			dst.DrawText(0, y+1, "No rounds finished yet.", core.ColorGray)
		}
		for i, r := range in.leaderboard {
			if i >= leaderboardSize-1 {
				break
			}
			result := "lost"
			if r.Won {
				result = "won"
			}
			line := fmt.Sprintf("%d. %-12s %3d  %-4s len %2d", i+1, r.Session, r.Score, result, r.Length)
			dst.DrawText(0, y+1+i, line, core.ColorWhite)
		}
	}
	return dst
}

// styleFor maps a core.Color to a tcell style.
func styleFor(c core.Color) tcell.Style {
	if code, ok := c.ANSI(); ok {
		return tcell.StyleDefault.Foreground(tcell.PaletteColor(code))
	}
	return tcell.StyleDefault
}

// blit copies src to dst with its top-left corner at (ox, oy).
func blit(dst cellSetter, src *core.Screen, ox, oy int) {
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			c := src.GetCell(x, y)
			dst.SetContent(ox+x, oy+y, c.Rune, nil, styleFor(c.Color))
		}
	}
}

// origin centers a w x h frame on a screen of size sw x sh.
func origin(sw, sh, w, h int) (int, int) {
	return core.Max(0, (sw-w)/2), core.Max(0, (sh-h)/2)
}
