package x11

import (
	"fmt"

	"github.com/jezek/xgb/shape"
	"github.com/jezek/xgb/xproto"

	"github.com/gregjohnson2017/overlay-clock/pkg/layout"
	"github.com/gregjohnson2017/overlay-clock/pkg/log"
)

// CreateOverlay creates the overlay window at geom, makes it click-through,
// sets the window-manager hints, and maps it raised. The window is
// override-redirect so the window manager never reparents or decorates it.
func (c *Conn) CreateOverlay(geom layout.Geometry) error {
	win, err := xproto.NewWindowId(c.x)
	if err != nil {
		return fmt.Errorf("failed to allocate window id: %w", err)
	}

	const copyFromParent = 0
	mask := uint32(xproto.CwOverrideRedirect | xproto.CwEventMask)
	values := []uint32{
		1, // override-redirect
		xproto.EventMaskExposure |
			xproto.EventMaskStructureNotify |
			xproto.EventMaskVisibilityChange,
	}
	err = xproto.CreateWindowChecked(c.x,
		copyFromParent, // depth
		win,
		c.screen.Root,
		int16(geom.X), int16(geom.Y),
		uint16(geom.W), uint16(geom.H),
		0,
		xproto.WindowClassInputOutput,
		c.screen.RootVisual,
		mask,
		values).Check()
	if err != nil {
		return fmt.Errorf("failed to create overlay window: %w", err)
	}
	c.win = win

	gc, err := xproto.NewGcontextId(c.x)
	if err != nil {
		return fmt.Errorf("failed to allocate gcontext id: %w", err)
	}
	if err := xproto.CreateGCChecked(c.x, gc, xproto.Drawable(win), 0, nil).Check(); err != nil {
		return fmt.Errorf("failed to create gcontext: %w", err)
	}
	c.gc = gc

	c.setInputTransparent()
	c.setWMHints()

	xproto.MapWindow(c.x, win)
	xproto.ConfigureWindow(c.x, win,
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
	c.Sync()

	c.startPump()
	return nil
}

// setInputTransparent sets an input shape of zero rectangles so clicks pass
// through to whatever is beneath and the window never takes focus.
func (c *Conn) setInputTransparent() {
	if err := shape.Init(c.x); err != nil {
		log.Warnf("shape extension unavailable, window will not be click-through: %v", err)
		return
	}
	shape.Rectangles(c.x,
		shape.SoSet,
		shape.SkInput,
		xproto.ClipOrderingUnsorted,
		c.win,
		0, 0,
		nil)
}

// setWMHints applies best-effort EWMH properties: dock type, sticky across
// all desktops, and stacked above. Missing atoms are skipped silently.
func (c *Conn) setWMHints() {
	windowType := internAtom(c.x, "_NET_WM_WINDOW_TYPE")
	windowTypeDock := internAtom(c.x, "_NET_WM_WINDOW_TYPE_DOCK")
	if windowType != xproto.AtomNone && windowTypeDock != xproto.AtomNone {
		c.changeAtomProperty(windowType, xproto.AtomAtom, []uint32{uint32(windowTypeDock)})
	}

	state := internAtom(c.x, "_NET_WM_STATE")
	var states []uint32
	for _, name := range []string{"_NET_WM_STATE_STICKY", "_NET_WM_STATE_ABOVE"} {
		if atom := internAtom(c.x, name); atom != xproto.AtomNone {
			states = append(states, uint32(atom))
		}
	}
	if state != xproto.AtomNone && len(states) > 0 {
		c.changeAtomProperty(state, xproto.AtomAtom, states)
	}

	if desktop := internAtom(c.x, "_NET_WM_DESKTOP"); desktop != xproto.AtomNone {
		// 0xFFFFFFFF means all desktops per EWMH
		c.changeAtomProperty(desktop, xproto.AtomCardinal, []uint32{0xFFFFFFFF})
	}
}

func (c *Conn) changeAtomProperty(prop, typ xproto.Atom, values []uint32) {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		put32(data[4*i:], v)
	}
	xproto.ChangeProperty(c.x, xproto.PropModeReplace, c.win,
		prop, typ, 32, uint32(len(values)), data)
}

// ApplyGeometry issues one configure request setting position and size, and
// re-asserts stack-above. The re-assertion happens on every call so a window
// manager that demotes the overlay over time gets overridden each tick.
func (c *Conn) ApplyGeometry(geom layout.Geometry) {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight |
		xproto.ConfigWindowStackMode)
	xproto.ConfigureWindow(c.x, c.win, mask, []uint32{
		uint32(int16(geom.X)),
		uint32(int16(geom.Y)),
		uint32(uint16(geom.W)),
		uint32(uint16(geom.H)),
		xproto.StackModeAbove,
	})
}
