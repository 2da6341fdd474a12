package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/caterpillar/internal/core"
	"github.com/vovakirdan/caterpillar/internal/registry"
	"github.com/vovakirdan/caterpillar/internal/storage"
)

var (
	flagFrontend string
	flagMute     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Arrows/WASD  - Steer (reversing is ignored)
  Any key      - Start the round
  R            - Restart
  Tab          - Toggle the leaderboard of this run
  Ctrl+S       - Save a screenshot (text and PNG)
  Q/Ctrl+C     - Quit

Examples:
  caterpillar play
  caterpillar play --frontend tcell
  caterpillar play --mute --seed 7`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFrontend, "frontend", "tui", "Frontend to use (see 'caterpillar frontends')")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable outcome sounds")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !registry.Exists(flagFrontend) {
		return fmt.Errorf("unknown frontend %q, run 'caterpillar frontends' to see available frontends", flagFrontend)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, io.Discard, "caterpillar")
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// The ledger only lives as long as this process
	store, err := storage.Open()
	if err != nil {
		logger.Warn("round ledger unavailable", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	fe, err := registry.Create(flagFrontend)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "frontend", fe.ID(), "seed", flagSeed)
	err = fe.Run(ctx, registry.Env{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
		Ledger:   store,
		Logger:   logger,
		PlayerID: localPlayer(),
		Mute:     flagMute,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", fe.ID(), err)
	}

	printSummary(store)
	return nil
}

// localPlayer names the local player after the OS user.
func localPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}

func printSummary(store *storage.Store) {
	if store == nil {
		return
	}
	sum, err := store.Summary()
	if err != nil || sum.Rounds == 0 {
		return
	}
	fmt.Printf("Rounds: %d  Wins: %d  Losses: %d  Best score: %d\n",
		sum.Rounds, sum.Wins, sum.Losses, sum.BestScore)
}

