package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/gregjohnson2017/overlay-clock/pkg/config"
	"github.com/gregjohnson2017/overlay-clock/pkg/font"
	"github.com/gregjohnson2017/overlay-clock/pkg/layout"
	"github.com/gregjohnson2017/overlay-clock/pkg/log"
	"github.com/gregjohnson2017/overlay-clock/pkg/overlay"
	"github.com/gregjohnson2017/overlay-clock/pkg/perf"
	"github.com/gregjohnson2017/overlay-clock/pkg/x11"
)

// Initial window size before the first measurement resizes it.
const placeholderW, placeholderH = 64, 24

func main() {
	var (
		fontFamily = pflag.StringP("font", "f", config.DefaultFontFamily, "font family name")
		fontSize   = pflag.Float64P("size", "s", config.DefaultFontSize, "font size in pixels")
		fgHex      = pflag.String("fg", "#FFFFFF", "foreground/text color (#RRGGBB)")
		bgHex      = pflag.String("bg", "#000000", "background color (#RRGGBB)")
		margin     = pflag.IntP("margin", "m", config.DefaultMargin, "outer margin from screen edges in pixels")
		timeOnly   = pflag.BoolP("time-only", "t", false, "show only time (HH:MM:SS), omit the date")
		debug      = pflag.BoolP("debug", "d", false, "verbose debug logs to stderr")
		confPath   = pflag.StringP("config", "c", "", "config file (default $XDG_CONFIG_HOME/overlay-clock/config.yaml)")
		help       = pflag.BoolP("help", "h", false, "show this help and exit")
	)
	pflag.Usage = func() { printHelp(os.Stderr) }
	pflag.Parse()
	if *help {
		printHelp(os.Stdout)
		return
	}

	cfg := config.New()
	applyConfigFile(cfg, *confPath, pflag.CommandLine.Changed("config"))
	if pflag.CommandLine.Changed("font") {
		cfg.FontFamily = *fontFamily
	}
	if pflag.CommandLine.Changed("size") {
		cfg.FontSize = *fontSize
	}
	if pflag.CommandLine.Changed("margin") {
		cfg.Margin = *margin
	}
	if pflag.CommandLine.Changed("time-only") {
		cfg.TimeOnly = *timeOnly
	}
	applyColorFlag(&cfg.Foreground, "fg", *fgHex)
	applyColorFlag(&cfg.Background, "bg", *bgHex)
	cfg.Debug = *debug
	cfg.Validate()

	if cfg.Debug {
		log.SetVerbose(os.Stderr)
		perf.SetMetricsEnabled(true)
	}
	log.Debugf("opts: %v", cfg)

	conn, err := x11.Connect()
	if err != nil {
		log.Fatal(err)
	}
	screenW, screenH := conn.ScreenSize()
	log.Debugf("screen: %vx%v", screenW, screenH)

	initial := layout.Geometry{
		X: screenW - placeholderW - cfg.Margin,
		Y: cfg.Margin,
		W: placeholderW,
		H: placeholderH,
	}
	if err := conn.CreateOverlay(initial); err != nil {
		conn.Destroy()
		log.Fatal(err)
	}
	log.Debugf("created window id=0x%08x", conn.WindowID())

	fonts := font.New(cfg.FontFamily, cfg.FontSize)
	if fonts.Fallback() {
		log.Warnf("font family %q not found, using embedded fallback", cfg.FontFamily)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	app := overlay.New(cfg, conn, fonts, screenW)
	if err := app.Run(sig); err != nil {
		log.Warnf("render loop exited: %v", err)
	}
	perf.LogMetrics()
	conn.Destroy()
}

// applyConfigFile overlays the optional YAML file onto cfg. A missing file
// at the default path is fine; an explicit --config path must exist and
// parse, or the invocation is rejected before the loop starts.
func applyConfigFile(cfg *config.Config, path string, explicit bool) {
	if !explicit {
		path = config.DefaultPath()
	} else if _, err := os.Stat(path); err != nil {
		usageError(err)
	}
	f, err := config.LoadOptional(path)
	if err != nil {
		usageError(err)
	}
	if err := f.Apply(cfg); err != nil {
		usageError(err)
	}
}

func applyColorFlag(dst *config.Color, name, value string) {
	if !pflag.CommandLine.Changed(name) {
		return
	}
	col, err := config.ParseHex(value)
	if err != nil {
		usageError(fmt.Errorf("invalid --%v color: %w", name, err))
	}
	*dst = col
}

func usageError(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(2)
}

func printHelp(w io.Writer) {
	fmt.Fprintf(w, `overlay-clock - tiny always-on-top datetime overlay (X11)

Usage:
  overlay-clock [--font FAMILY] [--size PX] [--fg #RRGGBB] [--bg #RRGGBB] [--margin PX] [--time-only] [--debug] [--config FILE]
  overlay-clock -h | --help

Options:
%v
Example:
  overlay-clock --time-only --font "DejaVu Sans Mono" --size 18 --fg #EAEAEA --bg #101010 --margin 10
`, pflag.CommandLine.FlagUsages())
}
