// caterpillar is a terminal rendition of the classic grid game: steer a
// growing caterpillar to the food, avoid the walls and yourself, and reach
// length 15 to win.
//
// Usage:
//
//	caterpillar play         - Play in this terminal
//	caterpillar serve        - Start SSH server for remote play
//	caterpillar frontends    - List available frontends
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.caterpillar, ./configs, built-in)
//	--seed <value>      - Set RNG seed for reproducible food placement
//	--log-level <lvl>   - Override the configured log level
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import frontends to register them
	_ "github.com/vovakirdan/caterpillar/internal/platform/term"
	_ "github.com/vovakirdan/caterpillar/internal/platform/tui"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "caterpillar",
	Short: "Caterpillar - grow to fifteen segments without crashing",
	Long: `Caterpillar is a terminal grid game. The caterpillar moves on a 20x20
grid; each piece of food adds a segment, a point and a little speed.
Hitting a wall or your own body ends the round, reaching length 15 wins it.

Available commands:
  play       - Play in this terminal
  serve      - Start SSH server for remote play
  frontends  - Show the available terminal frontends

Examples:
  caterpillar play
  caterpillar play --frontend tcell --mute
  caterpillar serve --ssh :2222
  caterpillar play --seed 42 --log-file caterpillar.log`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file path (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(frontendsCmd)
}
