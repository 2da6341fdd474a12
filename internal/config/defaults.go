package config

import (
	_ "embed"
)

//go:embed defaults/caterpillar.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches
// defaults/caterpillar.yaml.
func Default() Config {
	return Config{
		Theme: ThemeConfig{
			Body:   "lime",
			Head:   "bright_green",
			Food:   "pink",
			Text:   "bright_white",
			Border: "gray",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Server: ServerConfig{
			Addr:        ":23235",
			HostKey:     ".ssh/caterpillar_ed25519",
			IdleTimeout: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
		Screenshots: ScreenshotConfig{
			Dir: "screenshots",
		},
	}
}
