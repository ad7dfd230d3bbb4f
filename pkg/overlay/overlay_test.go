package overlay

import (
	"errors"
	"image"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/gregjohnson2017/overlay-clock/pkg/config"
	"github.com/gregjohnson2017/overlay-clock/pkg/font"
	"github.com/gregjohnson2017/overlay-clock/pkg/layout"
)

type stubWindow struct {
	events chan xgb.Event
	mu     sync.Mutex
	calls  []string
	geoms  []layout.Geometry
	frames []*image.RGBA
	putErr error
}

func newStubWindow() *stubWindow {
	return &stubWindow{events: make(chan xgb.Event, 16)}
}

func (w *stubWindow) ApplyGeometry(g layout.Geometry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, "geometry")
	w.geoms = append(w.geoms, g)
}

func (w *stubWindow) PutFrame(img *image.RGBA) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, "frame")
	w.frames = append(w.frames, img)
	return w.putErr
}

func (w *stubWindow) Sync() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, "sync")
}

func (w *stubWindow) frameCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.frames)
}

func (w *stubWindow) Events() <-chan xgb.Event {
	return w.events
}

func newTestApp(win *stubWindow) *App {
	cfg := config.New()
	cfg.TimeOnly = true
	app := New(cfg, win, font.New("no-such-family-aAzZ", 16), 1920)
	// halfway through a second so loop iterations wait rather than spin
	fixed := time.Date(2024, time.January, 15, 9, 5, 3, 500e6, time.Local)
	app.now = func() time.Time { return fixed }
	return app
}

func testClassify(ev xgb.Event, expected WakeReason) func(t *testing.T) {
	return func(t *testing.T) {
		if actual := Classify(ev); actual != expected {
			t.Fatalf("expected %v, got %v", expected, actual)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Run("expose", testClassify(xproto.ExposeEvent{}, Expose))
	t.Run("visibility", testClassify(xproto.VisibilityNotifyEvent{}, VisibilityChange))
	t.Run("configure", testClassify(xproto.ConfigureNotifyEvent{}, GeometryChange))
	t.Run("unrelated event", testClassify(xproto.KeyPressEvent{}, Other))
}

func TestWakeReasonRedraws(t *testing.T) {
	redraws := map[WakeReason]bool{
		Tick:             true,
		Expose:           true,
		VisibilityChange: true,
		GeometryChange:   true,
		Other:            false,
		Interrupted:      false,
	}
	for reason, expected := range redraws {
		if reason.Redraws() != expected {
			t.Fatalf("%v.Redraws(): expected %v", reason, expected)
		}
	}
}

func TestDrain(t *testing.T) {
	t.Run("redraw-worthy event sets the flag", func(t *testing.T) {
		events := make(chan xgb.Event, 4)
		events <- xproto.ExposeEvent{}
		events <- xproto.KeyPressEvent{}
		needRedraw := false
		if closed := drain(events, &needRedraw); closed {
			t.Fatal("channel reported closed")
		}
		if !needRedraw {
			t.Fatal("expose event did not set needRedraw")
		}
		if len(events) != 0 {
			t.Fatalf("%v events left queued", len(events))
		}
	})
	t.Run("unrelated event leaves the flag unchanged", func(t *testing.T) {
		events := make(chan xgb.Event, 4)
		events <- xproto.KeyPressEvent{}
		needRedraw := false
		drain(events, &needRedraw)
		if needRedraw {
			t.Fatal("unrelated event set needRedraw")
		}
	})
	t.Run("empty queue is a no-op", func(t *testing.T) {
		events := make(chan xgb.Event, 4)
		needRedraw := false
		if closed := drain(events, &needRedraw); closed || needRedraw {
			t.Fatalf("closed=%v needRedraw=%v after empty drain", closed, needRedraw)
		}
	})
	t.Run("closed channel reports lost connection", func(t *testing.T) {
		events := make(chan xgb.Event)
		close(events)
		needRedraw := false
		if closed := drain(events, &needRedraw); !closed {
			t.Fatal("expected closed")
		}
	})
}

// Two redraws within the same second produce identical geometry and frames,
// and geometry is always applied before the frame is painted.
func TestRedrawIdempotent(t *testing.T) {
	win := newStubWindow()
	app := newTestApp(win)

	app.redraw(app.now())
	app.redraw(app.now())

	expectedCalls := []string{"geometry", "frame", "sync", "geometry", "frame", "sync"}
	if len(win.calls) != len(expectedCalls) {
		t.Fatalf("expected calls %v, got %v", expectedCalls, win.calls)
	}
	for i := range expectedCalls {
		if win.calls[i] != expectedCalls[i] {
			t.Fatalf("expected calls %v, got %v", expectedCalls, win.calls)
		}
	}
	if win.geoms[0] != win.geoms[1] {
		t.Fatalf("geometry changed within one second: %v then %v", win.geoms[0], win.geoms[1])
	}
	a, b := win.frames[0], win.frames[1]
	if len(a.Pix) != len(b.Pix) {
		t.Fatalf("frame sizes differ: %v vs %v", len(a.Pix), len(b.Pix))
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("frames differ at byte %v", i)
		}
	}
}

// A failed upload abandons the tick without flushing.
func TestRedrawAbandonedOnPutFailure(t *testing.T) {
	win := newStubWindow()
	win.putErr = errors.New("window gone")
	app := newTestApp(win)

	app.redraw(app.now())

	expectedCalls := []string{"geometry", "frame"}
	if len(win.calls) != 2 || win.calls[0] != expectedCalls[0] || win.calls[1] != expectedCalls[1] {
		t.Fatalf("expected calls %v, got %v", expectedCalls, win.calls)
	}
}

func TestRunRedrawsOnExposeAndStops(t *testing.T) {
	win := newStubWindow()
	app := newTestApp(win)

	stop := make(chan os.Signal, 1)
	done := make(chan error, 1)
	win.events <- xproto.ExposeEvent{}
	go func() { done <- app.Run(stop) }()

	deadline := time.After(2 * time.Second)
	for win.frameCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("no redraw within 2s of an expose event")
		case err := <-done:
			t.Fatalf("loop exited early: %v", err)
		default:
			time.Sleep(time.Millisecond)
		}
	}

	stop <- os.Interrupt
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil on signal, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on signal")
	}
}

func TestRunReturnsOnConnectionLoss(t *testing.T) {
	win := newStubWindow()
	app := newTestApp(win)
	close(win.events)

	done := make(chan error, 1)
	go func() { done <- app.Run(make(chan os.Signal)) }()

	select {
	case err := <-done:
		if !errors.Is(err, ErrConnectionLost) {
			t.Fatalf("expected ErrConnectionLost, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit on closed event channel")
	}
}
