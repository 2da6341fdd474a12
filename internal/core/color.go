package core

import (
	"fmt"
	"sort"
	"strings"
)

// Color represents a foreground color for a screen cell.
// Frontends map it to ANSI 256-color codes or terminal styles.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorLime
	ColorPink
)

var colorNames = map[Color]string{
	ColorDefault:       "default",
	ColorRed:           "red",
	ColorGreen:         "green",
	ColorYellow:        "yellow",
	ColorBlue:          "blue",
	ColorMagenta:       "magenta",
	ColorCyan:          "cyan",
	ColorWhite:         "white",
	ColorBrightRed:     "bright_red",
	ColorBrightGreen:   "bright_green",
	ColorBrightYellow:  "bright_yellow",
	ColorBrightBlue:    "bright_blue",
	ColorBrightMagenta: "bright_magenta",
	ColorBrightCyan:    "bright_cyan",
	ColorBrightWhite:   "bright_white",
	ColorOrange:        "orange",
	ColorGray:          "gray",
	ColorLime:          "lime",
	ColorPink:          "pink",
}

// ansiCodes holds the ANSI 256-color code for each color.
// ColorDefault has no code and keeps the terminal foreground.
var ansiCodes = map[Color]int{
	ColorRed:           1,
	ColorGreen:         2,
	ColorYellow:        3,
	ColorBlue:          4,
	ColorMagenta:       5,
	ColorCyan:          6,
	ColorWhite:         7,
	ColorBrightRed:     9,
	ColorBrightGreen:   10,
	ColorBrightYellow:  11,
	ColorBrightBlue:    12,
	ColorBrightMagenta: 13,
	ColorBrightCyan:    14,
	ColorBrightWhite:   15,
	ColorOrange:        208,
	ColorGray:          245,
	ColorLime:          77,  // closest to #32CD32
	ColorPink:          197, // closest to #FF0066
}

// String returns the configuration name of the color.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ANSI returns the 256-color palette index for c.
// The second result is false for ColorDefault.
func (c Color) ANSI() (int, bool) {
	code, ok := ansiCodes[c]
	return code, ok
}

// ParseColor resolves a configuration color name (case-insensitive,
// dashes or underscores) to a Color.
func ParseColor(name string) (Color, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for c, n := range colorNames {
		if n == key {
			return c, nil
		}
	}
	return ColorDefault, fmt.Errorf("unknown color %q (known: %s)", name, strings.Join(ColorNames(), ", "))
}

// ColorNames returns all known color names, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(colorNames))
	for _, n := range colorNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
