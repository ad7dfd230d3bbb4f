// Package config holds the immutable overlay configuration. All values are
// validated or defaulted here, before the render loop ever sees them.
package config

import (
	"fmt"
	"strings"

	"github.com/gregjohnson2017/overlay-clock/pkg/log"
)

// Defaults applied by New and Validate.
const (
	DefaultFontFamily = "DejaVu Sans Mono"
	DefaultFontSize   = 16.0
	DefaultMargin     = 8
)

// Color is an RGB color with each channel in [0, 1].
type Color struct {
	R, G, B float64
}

// RGB returns the channels scaled to [0, 255].
func (c Color) RGB() (uint8, uint8, uint8) {
	return uint8(c.R*255 + 0.5), uint8(c.G*255 + 0.5), uint8(c.B*255 + 0.5)
}

func (c Color) String() string {
	return fmt.Sprintf("%.3f,%.3f,%.3f", c.R, c.G, c.B)
}

// ErrBadColor indicates a color string that is not of the form #RRGGBB.
const ErrBadColor log.ConstErr = "color must be #RRGGBB"

// ParseHex parses "#RRGGBB" or "RRGGBB" into a Color.
func ParseHex(s string) (Color, error) {
	p := strings.TrimPrefix(s, "#")
	if len(p) != 6 {
		return Color{}, fmt.Errorf("parsing %q: %w", s, ErrBadColor)
	}
	var ch [3]int
	for i := 0; i < 3; i++ {
		hi := hexVal(p[2*i])
		lo := hexVal(p[2*i+1])
		if hi < 0 || lo < 0 {
			return Color{}, fmt.Errorf("parsing %q: %w", s, ErrBadColor)
		}
		ch[i] = hi<<4 | lo
	}
	return Color{
		R: float64(ch[0]) / 255.0,
		G: float64(ch[1]) / 255.0,
		B: float64(ch[2]) / 255.0,
	}, nil
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// Config represents the overlay configuration for the application
type Config struct {
	FontFamily string
	FontSize   float64
	Margin     int
	Foreground Color
	Background Color
	TimeOnly   bool
	Debug      bool
}

// New returns a Config populated with the defaults: white text on a black
// background, 16px DejaVu Sans Mono, 8px margin.
func New() *Config {
	return &Config{
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
		Margin:     DefaultMargin,
		Foreground: Color{1, 1, 1},
		Background: Color{0, 0, 0},
	}
}

// Validate normalizes out-of-range numeric fields. A non-positive font size
// falls back to the default rather than erroring, and a negative margin is
// clamped to zero.
func (c *Config) Validate() {
	if c.FontSize <= 0 {
		c.FontSize = DefaultFontSize
	}
	if c.Margin < 0 {
		c.Margin = 0
	}
}

func (c *Config) String() string {
	return fmt.Sprintf("font=%q size=%.1f margin=%d time_only=%v fg=%v bg=%v",
		c.FontFamily, c.FontSize, c.Margin, c.TimeOnly, c.Foreground, c.Background)
}
