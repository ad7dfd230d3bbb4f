// Package x11 owns the X connection and the overlay window. It creates an
// override-redirect, click-through, always-above window and applies per-tick
// geometry updates. Configure requests are fire-and-forget; asynchronous X
// errors only ever reach the debug log.
package x11

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/gregjohnson2017/overlay-clock/pkg/log"
)

// Startup conditions that are unrecoverable by design.
const (
	ErrNoScreen log.ConstErr = "could not get default screen"
	ErrNoVisual log.ConstErr = "could not find visual for screen"
)

// Conn wraps the X connection, the target screen, and the overlay window.
// One goroutine owns it for the process lifetime; only the event pump
// touches the connection concurrently, which xgb permits.
type Conn struct {
	x      *xgb.Conn
	setup  *xproto.SetupInfo
	screen *xproto.ScreenInfo
	depth  byte
	win    xproto.Window
	gc     xproto.Gcontext
	events chan xgb.Event
}

// Connect establishes the X connection and resolves the default screen and
// its root visual. Any failure here is fatal to the caller; there is no
// overlay to run without a display.
func Connect() (*Conn, error) {
	x, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	setup := xproto.Setup(x)
	if len(setup.Roots) == 0 {
		x.Close()
		return nil, ErrNoScreen
	}
	screen := setup.DefaultScreen(x)
	depth, ok := rootVisualDepth(screen)
	if !ok {
		x.Close()
		return nil, ErrNoVisual
	}
	return &Conn{x: x, setup: setup, screen: screen, depth: depth}, nil
}

// rootVisualDepth finds the depth the root visual is listed under. The
// painter needs a 32-bit-per-pixel ZPixmap layout, so only depths 24 and 32
// are usable.
func rootVisualDepth(screen *xproto.ScreenInfo) (byte, bool) {
	for _, d := range screen.AllowedDepths {
		for _, v := range d.Visuals {
			if v.VisualId == screen.RootVisual {
				if d.Depth == 24 || d.Depth == 32 {
					return d.Depth, true
				}
				return 0, false
			}
		}
	}
	return 0, false
}

// ScreenSize returns the target screen's dimensions in pixels.
func (c *Conn) ScreenSize() (int, int) {
	return int(c.screen.WidthInPixels), int(c.screen.HeightInPixels)
}

// WindowID returns the overlay window's X resource id.
func (c *Conn) WindowID() uint32 {
	return uint32(c.win)
}

// Events returns the channel fed by the event pump. The channel closes when
// the connection is lost or closed.
func (c *Conn) Events() <-chan xgb.Event {
	return c.events
}

func (c *Conn) startPump() {
	c.events = make(chan xgb.Event, 16)
	go func() {
		defer close(c.events)
		for {
			ev, err := c.x.WaitForEvent()
			if ev == nil && err == nil {
				return
			}
			if err != nil {
				log.Debugf("x error: %v", err)
				continue
			}
			c.events <- ev
		}
	}()
}

// Sync forces a round trip so all pending requests are processed before it
// returns. Used after painting so each tick's update is visible immediately.
func (c *Conn) Sync() {
	c.x.Sync()
}

// Destroy releases the overlay window and the connection. Best-effort,
// process-exit cleanup only.
func (c *Conn) Destroy() {
	if c.win != 0 {
		xproto.DestroyWindow(c.x, c.win)
	}
	c.x.Close()
}

func internAtom(x *xgb.Conn, name string) xproto.Atom {
	reply, err := xproto.InternAtom(x, false, uint16(len(name)), name).Reply()
	if err != nil {
		log.Debugf("failed to intern atom %v: %v", name, err)
		return xproto.AtomNone
	}
	return reply.Atom
}

func put32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
