package overlay

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// WakeReason classifies why the loop woke. It is transient, derived per
// wake, and never persisted.
type WakeReason int

const (
	// Tick means the wait reached the next second boundary.
	Tick WakeReason = iota
	// Expose means part of the window was exposed and must be repainted.
	Expose
	// VisibilityChange means the window's visibility state changed.
	VisibilityChange
	// GeometryChange means the window was moved or resized.
	GeometryChange
	// Other is any window-system event the overlay does not care about.
	Other
	// Interrupted means the wait was cut short by a termination signal.
	Interrupted
)

func (r WakeReason) String() string {
	switch r {
	case Tick:
		return "Tick"
	case Expose:
		return "Expose"
	case VisibilityChange:
		return "VisibilityNotify"
	case GeometryChange:
		return "ConfigureNotify"
	case Interrupted:
		return "Interrupted"
	default:
		return "Other"
	}
}

// Redraws reports whether this wake reason warrants a repaint.
func (r WakeReason) Redraws() bool {
	switch r {
	case Tick, Expose, VisibilityChange, GeometryChange:
		return true
	}
	return false
}

// Classify maps an incoming X event onto a WakeReason. The mapping is a
// pure function over the closed set of event types the window's event mask
// selects for.
func Classify(ev xgb.Event) WakeReason {
	switch ev.(type) {
	case xproto.ExposeEvent:
		return Expose
	case xproto.VisibilityNotifyEvent:
		return VisibilityChange
	case xproto.ConfigureNotifyEvent:
		return GeometryChange
	default:
		return Other
	}
}
