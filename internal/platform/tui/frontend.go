package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/caterpillar/internal/audio"
	"github.com/vovakirdan/caterpillar/internal/registry"
)

func init() {
	registry.Register("tui", func() registry.Frontend { return frontend{} })
}

// frontend runs the Bubble Tea model on the local terminal.
type frontend struct{}

func (frontend) ID() string    { return "tui" }
func (frontend) Title() string { return "Bubble Tea terminal UI" }

func (frontend) Run(ctx context.Context, env registry.Env) error {
	var player *audio.Player
	if env.Config.Audio.Enabled && !env.Mute {
		player = audio.NewPlayer(true, env.Config.Audio.Volume, env.Logger)
		if err := player.Init(); err != nil {
			env.Logger.Warn("audio disabled", "err", err)
		}
		defer player.Close()
	}

	model := NewModel(Options{
		Config:   env.Config,
		Runtime:  env.Runtime,
		PlayerID: env.PlayerID,
		Ledger:   env.Ledger,
		Player:   player,
		Logger:   env.Logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
