// Package config provides YAML-based configuration for presentation and
// platform concerns. Game rules are fixed and not configurable.
package config

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/caterpillar/internal/core"
	"github.com/vovakirdan/caterpillar/internal/games/caterpillar"
)

// Config is the complete configuration.
type Config struct {
	Theme       ThemeConfig      `yaml:"theme"`
	Audio       AudioConfig      `yaml:"audio"`
	Server      ServerConfig     `yaml:"server"`
	Log         LogConfig        `yaml:"log"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
}

// ThemeConfig names the colors of the terminal board.
// Valid names are listed by core.ColorNames.
type ThemeConfig struct {
	Body   string `yaml:"body"`
	Head   string `yaml:"head"`
	Food   string `yaml:"food"`
	Text   string `yaml:"text"`
	Border string `yaml:"border"`
}

// AudioConfig controls the outcome jingles.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 - 1.0
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	HostKey     string `yaml:"host_key"`
	IdleTimeout int    `yaml:"idle_timeout"` // minutes, 0 disables
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty discards logs while the TUI owns the terminal
}

// ScreenshotConfig defines where screenshots are written.
type ScreenshotConfig struct {
	Dir string `yaml:"dir"`
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	for _, field := range []struct {
		name, value string
	}{
		{"theme.body", c.Theme.Body},
		{"theme.head", c.Theme.Head},
		{"theme.food", c.Theme.Food},
		{"theme.text", c.Theme.Text},
		{"theme.border", c.Theme.Border},
	} {
		if _, err := core.ParseColor(field.value); err != nil {
			return fmt.Errorf("config: %s: %w", field.name, err)
		}
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("config: audio.volume %.2f out of range [0, 1]", c.Audio.Volume)
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config: server.idle_timeout must not be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// GameTheme converts the theme names into board colors. Unknown names
// fall back to the default theme; call Validate to reject them instead.
func (c Config) GameTheme() caterpillar.Theme {
	theme := caterpillar.DefaultTheme()
	set := func(dst *core.Color, name string) {
		if col, err := core.ParseColor(name); err == nil {
			*dst = col
		}
	}
	set(&theme.Body, c.Theme.Body)
	set(&theme.Head, c.Theme.Head)
	set(&theme.Food, c.Theme.Food)
	set(&theme.Text, c.Theme.Text)
	set(&theme.Border, c.Theme.Border)
	return theme
}

// LogLevel returns the parsed log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
