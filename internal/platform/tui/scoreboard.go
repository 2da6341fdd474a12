package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/caterpillar/internal/storage"
)

// Leaderboard layout constants
const (
	leaderboardRows   = 10
	minWidthForBeside = 100 // Narrower windows show the leaderboard instead of the board
)

// leaderboard shows the best rounds of the process-lifetime ledger.
type leaderboard struct {
	store   *storage.Store
	table   table.Model
	summary storage.Summary
	err     error
}

func newLeaderboard(store *storage.Store) *leaderboard {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 6},
		{Title: "Result", Width: 6},
		{Title: "Length", Width: 6},
		{Title: "Time", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(leaderboardRows+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)

	return &leaderboard{store: store, table: t}
}

// Refresh reloads rows and the summary from the ledger.
func (l *leaderboard) Refresh() {
	if l.store == nil {
		return
	}

	rounds, err := l.store.TopRounds(leaderboardRows)
	if err != nil {
		l.err = err
		return
	}
	summary, err := l.store.Summary()
	if err != nil {
		l.err = err
		return
	}
	l.err = nil
	l.summary = summary
	l.table.SetRows(leaderboardRowsFor(rounds))
}

func leaderboardRowsFor(rounds []storage.RoundRecord) []table.Row {
	rows := make([]table.Row, len(rounds))
	for i, r := range rounds {
		result := "Lost"
		if r.Won {
			result = "Won"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			truncate(r.Session, 12),
			fmt.Sprintf("%d", r.Score),
			result,
			fmt.Sprintf("%d", r.Length),
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
		}
	}
	return rows
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// View renders the leaderboard panel.
func (l *leaderboard) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("LEADERBOARD"))
	b.WriteString("\n\n")

	switch {
	case l.store == nil:
		b.WriteString(dimStyle.Render("Round ledger unavailable."))
	case l.err != nil:
		b.WriteString(dimStyle.Render("Cannot read ledger: " + l.err.Error()))
	case l.summary.Rounds == 0:
		b.WriteString(dimStyle.Render("No rounds finished yet.\nPlay one to get on the board!"))
	default:
		b.WriteString(l.table.View())
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Rounds: %d  Wins: %d  Losses: %d  Best: %d",
			l.summary.Rounds, l.summary.Wins, l.summary.Losses, l.summary.BestScore))
	}

	return panel.Render(b.String())
}
