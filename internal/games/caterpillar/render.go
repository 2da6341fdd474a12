package caterpillar

import (
	"github.com/vovakirdan/caterpillar/internal/core"
)

// Terminal geometry of the board. Each grid cell is two columns wide so the
// cells look roughly square in a terminal.
const (
	CellWidth   = 2
	BoardWidth  = GridSize * CellWidth
	BoardHeight = GridSize
)

// Text shown by renderers and presenters.
const (
	StartPrompt  = "Press any key to start"
	WinMessage   = "You Win!"
	LoseMessage  = "Game Over!"
	RestartHint  = "Press R to restart"
	segmentRune  = '█'
	headRune     = '▣'
	foodRune     = '●'
	overlayLines = 5
)

// Theme assigns colors to board elements.
type Theme struct {
	Body   core.Color
	Head   core.Color
	Food   core.Color
	Text   core.Color
	Border core.Color
}

// DefaultTheme mirrors the classic palette: lime body, pink food.
func DefaultTheme() Theme {
	return Theme{
		Body:   core.ColorLime,
		Head:   core.ColorBrightGreen,
		Food:   core.ColorPink,
		Text:   core.ColorBrightWhite,
		Border: core.ColorGray,
	}
}

// OutcomeMessage returns the overlay headline for a finished round.
func OutcomeMessage(won bool) string {
	if won {
		return WinMessage
	}
	return LoseMessage
}

// Board is a Renderer that draws the grid into a core.Screen.
type Board struct {
	screen *core.Screen
	theme  Theme
}

// NewBoard creates a board renderer with its own screen buffer.
func NewBoard(theme Theme) *Board {
	return &Board{
		screen: core.NewScreen(BoardWidth, BoardHeight),
		theme:  theme,
	}
}

// Screen returns the buffer the board draws into.
func (b *Board) Screen() *core.Screen {
	return b.screen
}

// Render redraws the whole board from the snapshot.
func (b *Board) Render(s Snapshot) {
	dst := b.screen
	dst.Clear()

	if s.State == StateNotStarted {
		dst.DrawTextCentered(BoardHeight/2, StartPrompt, b.theme.Text)
		return
	}

	for i, seg := range s.Caterpillar {
		if i == 0 {
			b.fillCell(seg, headRune, b.theme.Head)
			continue
		}
		b.fillCell(seg, segmentRune, b.theme.Body)
	}

	if s.Food.InBounds() {
		x := s.Food.X * CellWidth
		dst.SetCell(x, s.Food.Y, foodRune, b.theme.Food)
		dst.SetCell(x+1, s.Food.Y, ' ', core.ColorDefault)
	}
}

// fillCell paints every column of one grid cell.
func (b *Board) fillCell(p Position, r rune, c core.Color) {
	for i := 0; i < CellWidth; i++ {
		b.screen.SetCell(p.X*CellWidth+i, p.Y, r, c)
	}
}

// DrawOverlay draws the centered end-of-round box onto dst.
func DrawOverlay(dst *core.Screen, won bool, theme Theme) {
	headline := OutcomeMessage(won)
	width := core.Max(len(headline), len(RestartHint)) + 4
	box := dst.Bounds().Centered(width, overlayLines)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, theme.Border)
	dst.DrawText(box.X+(box.W-len(headline))/2, box.Y+1, headline, theme.Text)
	dst.DrawText(box.X+(box.W-len(RestartHint))/2, box.Y+3, RestartHint, theme.Text)
}
