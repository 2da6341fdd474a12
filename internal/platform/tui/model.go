package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/caterpillar/internal/audio"
	"github.com/vovakirdan/caterpillar/internal/canvas"
	"github.com/vovakirdan/caterpillar/internal/config"
	"github.com/vovakirdan/caterpillar/internal/core"
	"github.com/vovakirdan/caterpillar/internal/games/caterpillar"
	"github.com/vovakirdan/caterpillar/internal/session"
	"github.com/vovakirdan/caterpillar/internal/storage"
)

// Options configures a game model.
type Options struct {
	Config   config.Config
	Runtime  core.RuntimeConfig
	PlayerID string
	Ledger   *storage.Store // optional
	Player   *audio.Player  // optional, nil is silent
	Logger   *log.Logger
}

// game is the mutable state behind Model. The engine keeps pointers to the
// board, the hud and the scheduler, so they must outlive value copies of
// the model.
type game struct {
	sess        *session.Session
	board       *caterpillar.Board
	hud         *hud
	sched       *teaScheduler
	leaderboard *leaderboard
	theme       caterpillar.Theme
	shotsDir    string
	logger      *log.Logger
	status      string
	seenRounds  int
}

// Model is the Bubble Tea model for one player.
type Model struct {
	g         *game
	keys      KeyMap
	help      help.Model
	width     int
	height    int
	showBoard bool // leaderboard panel visible
	quitting  bool
}

// NewModel creates the model and its session. The engine starts in the
// not_started state showing the start prompt.
func NewModel(opts Options) Model {
	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	theme := opts.Config.GameTheme()
	g := &game{
		board:       caterpillar.NewBoard(theme),
		hud:         &hud{player: opts.Player},
		sched:       newTeaScheduler(),
		leaderboard: newLeaderboard(opts.Ledger),
		theme:       theme,
		shotsDir:    opts.Config.Screenshots.Dir,
		logger:      logger,
	}

	opt := session.Options{
		ID:     opts.PlayerID,
		Logger: logger,
		Game: caterpillar.Options{
			Renderer:  g.board,
			Presenter: g.hud,
			Scheduler: g.sched,
			Seed:      seed,
		},
	}
	// A nil *storage.Store must not become a non-nil Ledger interface.
	if opts.Ledger != nil {
		opt.Ledger = opts.Ledger
	}
	g.sess = session.New(opt)

	h := help.New()
	h.ShowAll = false

	return Model{
		g:      g,
		keys:   DefaultKeyMap(),
		help:   h,
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}
}

// Session returns the session driven by this model.
func (m Model) Session() *session.Session {
	return m.g.sess
}

// Init initializes the model. Nothing is armed until the first key.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.g.sched.Fire(msg.id)
		m.refreshLeaderboard(false)
		return m, m.g.sched.Drain()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionScoreboard:
		m.showBoard = !m.showBoard
		m.refreshLeaderboard(true)
		return m, nil

	case core.ActionScreenshot:
		m.saveScreenshot()
		return m, nil

	default:
		m.g.status = ""
		m.g.sess.Handle(action)
		m.refreshLeaderboard(false)
		return m, m.g.sched.Drain()
	}
}

// refreshLeaderboard reloads the visible leaderboard when forced or when
// this session finished another round.
func (m Model) refreshLeaderboard(force bool) {
	if !m.showBoard {
		return
	}
	n := len(m.g.sess.Rounds())
	if !force && n == m.g.seenRounds {
		return
	}
	m.g.seenRounds = n
	m.g.leaderboard.Refresh()
}

// frame returns the board with the outcome overlay applied.
func (m Model) frame() *core.Screen {
	screen := m.g.board.Screen().Clone()
	if m.g.hud.outcome {
		caterpillar.DrawOverlay(screen, m.g.hud.won, m.g.theme)
	}
	return screen
}

// saveScreenshot writes the current frame as text and as a PNG.
func (m Model) saveScreenshot() {
	stamp := time.Now().Format("20060102_150405")
	base := filepath.Join(m.g.shotsDir, fmt.Sprintf("caterpillar_%s", stamp))

	if err := os.MkdirAll(m.g.shotsDir, 0o755); err != nil {
		m.g.logger.Warn("cannot create screenshot directory", "err", err)
		m.g.status = "screenshot failed"
		return
	}

	header := m.g.hud.Line() + "\n"
	if err := os.WriteFile(base+".txt", []byte(header+m.frame().String()), 0o600); err != nil {
		m.g.logger.Warn("cannot save text screenshot", "err", err)
		m.g.status = "screenshot failed"
		return
	}
	if err := canvas.SavePNG(base+".png", m.g.sess.Engine().Snapshot()); err != nil {
		m.g.logger.Warn("cannot save png screenshot", "err", err)
		m.g.status = "screenshot failed"
		return
	}

	m.g.logger.Info("screenshot saved", "path", base)
	m.g.status = "saved " + base + ".{txt,png}"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	hudStyle := lipgloss.NewStyle().Bold(true).Foreground(colorOf(m.g.theme.Text))
	boardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorOf(m.g.theme.Border))
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	board := lipgloss.JoinVertical(lipgloss.Left,
		hudStyle.Render(m.g.hud.Line()),
		boardStyle.Render(RenderScreen(m.frame())),
	)

	body := board
	if m.showBoard {
		if m.width == 0 || m.width >= minWidthForBeside {
			body = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", m.g.leaderboard.View())
		} else {
			body = m.g.leaderboard.View()
		}
	}

	footer := statusStyle.Render(m.help.View(m.keys))
	if m.g.status != "" {
		footer = statusStyle.Render(m.g.status) + "\n" + footer
	}

	view := lipgloss.JoinVertical(lipgloss.Left, body, footer)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}
