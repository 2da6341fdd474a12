package term

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/caterpillar/internal/audio"
	"github.com/vovakirdan/caterpillar/internal/canvas"
	"github.com/vovakirdan/caterpillar/internal/core"
	"github.com/vovakirdan/caterpillar/internal/games/caterpillar"
	"github.com/vovakirdan/caterpillar/internal/registry"
	"github.com/vovakirdan/caterpillar/internal/sched"
	"github.com/vovakirdan/caterpillar/internal/session"
	"github.com/vovakirdan/caterpillar/internal/storage"
)

func init() {
	registry.Register("tcell", func() registry.Frontend { return frontend{} })
}

type frontend struct{}

func (frontend) ID() string    { return "tcell" }
func (frontend) Title() string { return "Direct tcell renderer" }

// app is the state of one running tcell frontend. Everything except the
// input goroutine runs on the loop.
type app struct {
	screen   tcell.Screen
	loop     *sched.Loop
	sess     *session.Session
	board    *caterpillar.Board
	hud      *hud
	theme    caterpillar.Theme
	ledger   *storage.Store
	logger   *log.Logger
	shotsDir string

	status      string
	showBoard   bool
	leaderboard []storage.RoundRecord
}

// Render implements caterpillar.Renderer. The engine always renders last
// after presenter calls, so one draw per engine event covers the HUD too.
func (a *app) Render(s caterpillar.Snapshot) {
	a.board.Render(s)
	a.draw()
}

func (a *app) draw() {
	frame := composeFrame(frameInput{
		board:       a.board.Screen(),
		theme:       a.theme,
		hud:         a.hud,
		status:      a.status,
		leaderboard: a.visibleLeaderboard(),
	})
	sw, sh := a.screen.Size()
	ox, oy := origin(sw, sh, frame.Width(), frame.Height())

	a.screen.Clear()
	blit(a.screen, frame, ox, oy)
	a.screen.Show()
}

func (a *app) visibleLeaderboard() []storage.RoundRecord {
	if !a.showBoard {
		return nil
	}
	if a.leaderboard == nil {
		return []storage.RoundRecord{}
	}
	return a.leaderboard
}

func (a *app) refreshLeaderboard() {
	if a.ledger == nil {
		return
	}
	rounds, err := a.ledger.TopRounds(leaderboardSize)
	if err != nil {
		a.logger.Warn("cannot read ledger", "err", err)
		return
	}
	a.leaderboard = rounds
}

// handle runs on the loop goroutine.
func (a *app) handle(action core.Action) {
	switch action {
	case core.ActionScoreboard:
		a.showBoard = !a.showBoard
		a.refreshLeaderboard()
		a.draw()
	case core.ActionScreenshot:
		a.screenshot()
		a.draw()
	default:
		before := len(a.sess.Rounds())
		a.status = ""
		a.sess.Handle(action)
		if a.showBoard && len(a.sess.Rounds()) != before {
			a.refreshLeaderboard()
			a.draw()
		}
	}
}

func (a *app) screenshot() {
	path := filepath.Join(a.shotsDir, fmt.Sprintf("caterpillar_%s.png", time.Now().Format("20060102_150405")))
	if err := canvas.SavePNG(path, a.sess.Engine().Snapshot()); err != nil {
		a.logger.Warn("cannot save screenshot", "err", err)
		a.status = "screenshot failed"
		return
	}
	a.logger.Info("screenshot saved", "path", path)
	a.status = "saved " + path
}

// Run plays on the local terminal until q, ctrl+c or ctx cancellation.
func (frontend) Run(ctx context.Context, env registry.Env) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcell: cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tcell: cannot init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	var player *audio.Player
	if env.Config.Audio.Enabled && !env.Mute {
		player = audio.NewPlayer(true, env.Config.Audio.Volume, env.Logger)
		if err := player.Init(); err != nil {
			env.Logger.Warn("audio disabled", "err", err)
		}
		defer player.Close()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	theme := env.Config.GameTheme()
	a := &app{
		screen:   screen,
		loop:     sched.NewLoop(64),
		board:    caterpillar.NewBoard(theme),
		hud:      &hud{player: player},
		theme:    theme,
		ledger:   env.Ledger,
		logger:   env.Logger,
		shotsDir: env.Config.Screenshots.Dir,
	}

	seed := env.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := session.Options{
		ID:     env.PlayerID,
		Logger: env.Logger,
		Game: caterpillar.Options{
			Renderer:  a,
			Presenter: a.hud,
			Scheduler: a.loop,
			Seed:      seed,
		},
	}
	if env.Ledger != nil {
		opts.Ledger = env.Ledger
	}
	a.sess = session.New(opts)

	go a.pollInput(cancel)

	err = a.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pollInput forwards terminal events to the loop. It returns when the
// screen is finalized.
func (a *app) pollInput(quit func()) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			action := mapKey(ev)
			if action == core.ActionQuit {
				quit()
				return
			}
			a.loop.Post(func() { a.handle(action) })
		case *tcell.EventResize:
			a.loop.Post(func() {
				a.screen.Sync()
				a.draw()
			})
		}
	}
}
