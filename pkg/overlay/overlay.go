// Package overlay runs the render loop: sleep to the next second boundary,
// drain and classify window-system events, and redraw the overlay when
// warranted. The loop cycles Sleeping, Draining, Deciding, Redrawing until
// the process is signaled or the connection is lost.
package overlay

import (
	"image"
	"os"
	"time"

	"github.com/jezek/xgb"

	"github.com/gregjohnson2017/overlay-clock/pkg/clock"
	"github.com/gregjohnson2017/overlay-clock/pkg/config"
	"github.com/gregjohnson2017/overlay-clock/pkg/font"
	"github.com/gregjohnson2017/overlay-clock/pkg/gfx"
	"github.com/gregjohnson2017/overlay-clock/pkg/layout"
	"github.com/gregjohnson2017/overlay-clock/pkg/log"
	"github.com/gregjohnson2017/overlay-clock/pkg/perf"
)

// ErrConnectionLost indicates the X event stream ended underneath the loop.
const ErrConnectionLost log.ConstErr = "x connection closed"

// Window is what the loop needs from the window controller each tick.
type Window interface {
	ApplyGeometry(layout.Geometry)
	PutFrame(*image.RGBA) error
	Sync()
	Events() <-chan xgb.Event
}

// App holds state for the overlay render loop.
type App struct {
	cfg         *config.Config
	win         Window
	fonts       *font.Source
	screenWidth int
	now         func() time.Time
}

// New returns a newly instantiated render loop over an already-created
// overlay window.
func New(cfg *config.Config, win Window, fonts *font.Source, screenWidth int) *App {
	return &App{
		cfg:         cfg,
		win:         win,
		fonts:       fonts,
		screenWidth: screenWidth,
		now:         time.Now,
	}
}

// Run blocks in the render loop until stop fires or the connection is lost.
// Each cycle waits on whichever comes first of the next second boundary and
// an incoming event; the wait is recomputed from the current time every
// cycle, so slow ticks never accumulate drift.
func (a *App) Run(stop <-chan os.Signal) error {
	for {
		timer := time.NewTimer(clock.UntilNextSecond(a.now()))
		needRedraw := false

		select {
		case <-stop:
			timer.Stop()
			log.Debugf("event: %v", Interrupted)
			return nil
		case <-timer.C:
			// steady-state 1 Hz tick
			needRedraw = true
		case ev, ok := <-a.win.Events():
			if !ok {
				timer.Stop()
				return ErrConnectionLost
			}
			if classifyAndLog(ev).Redraws() {
				needRedraw = true
			}
		}
		timer.Stop()

		closed := drain(a.win.Events(), &needRedraw)
		if closed {
			return ErrConnectionLost
		}

		if needRedraw {
			a.redraw(a.now())
		}
	}
}

// drain pulls all currently queued events without blocking, setting
// needRedraw for any that warrant a repaint. It reports whether the event
// channel closed mid-drain.
func drain(events <-chan xgb.Event, needRedraw *bool) bool {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return true
			}
			if classifyAndLog(ev).Redraws() {
				*needRedraw = true
			}
		default:
			return false
		}
	}
}

func classifyAndLog(ev xgb.Event) WakeReason {
	reason := Classify(ev)
	log.Debugf("event: %v", reason)
	return reason
}

// redraw performs one tick's update: format, measure, lay out, apply
// geometry, then paint. Geometry is always applied before painting so the
// frame is composed at the final size.
func (a *App) redraw(now time.Time) {
	sw := perf.Start()
	defer sw.StopRecordAverage("overlay.redraw")

	text := clock.Format(now, a.cfg.TimeOnly)
	m := a.fonts.Measure(text)
	geom := layout.Compute(m, a.cfg.Margin, a.screenWidth)

	a.win.ApplyGeometry(geom)
	frame := gfx.Compose(geom, m, text, a.fonts.Face(), a.cfg)
	if err := a.win.PutFrame(frame); err != nil {
		log.Debugf("redraw abandoned: %v", err)
		return
	}
	a.win.Sync()

	log.Debugf("tick str=%q %v %v", text, m, geom)
}
