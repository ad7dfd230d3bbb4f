package gfx_test

import (
	"image/color"
	"testing"

	"github.com/gregjohnson2017/overlay-clock/pkg/config"
	"github.com/gregjohnson2017/overlay-clock/pkg/font"
	"github.com/gregjohnson2017/overlay-clock/pkg/gfx"
	"github.com/gregjohnson2017/overlay-clock/pkg/layout"
)

func compose(t *testing.T, text string) (*config.Config, layout.Geometry, *font.Source, color.RGBA, color.RGBA) {
	t.Helper()
	cfg := config.New()
	src := font.New("no-such-family-aAzZ", 16)
	m := src.Measure(text)
	geom := layout.Compute(m, cfg.Margin, 1920)
	fr, fg, fb := cfg.Foreground.RGB()
	br, bg, bb := cfg.Background.RGB()
	return cfg, geom, src, color.RGBA{fr, fg, fb, 0xFF}, color.RGBA{br, bg, bb, 0xFF}
}

func TestComposeSize(t *testing.T) {
	text := "09:05:03"
	cfg, geom, src, _, _ := compose(t, text)
	img := gfx.Compose(geom, src.Measure(text), text, src.Face(), cfg)
	if img.Rect.Dx() != geom.W || img.Rect.Dy() != geom.H {
		t.Fatalf("expected %vx%v frame, got %vx%v", geom.W, geom.H, img.Rect.Dx(), img.Rect.Dy())
	}
}

func TestComposeBackgroundFill(t *testing.T) {
	text := "09:05:03"
	cfg, geom, src, _, bg := compose(t, text)
	img := gfx.Compose(geom, src.Measure(text), text, src.Face(), cfg)
	// corners are outside the padded text box
	corners := [][2]int{{0, 0}, {geom.W - 1, 0}, {0, geom.H - 1}, {geom.W - 1, geom.H - 1}}
	for _, c := range corners {
		if got := img.RGBAAt(c[0], c[1]); got != bg {
			t.Fatalf("corner (%v,%v): expected background %v, got %v", c[0], c[1], bg, got)
		}
	}
}

func TestComposeDrawsForeground(t *testing.T) {
	text := "09:05:03"
	cfg, geom, src, _, bg := compose(t, text)
	img := gfx.Compose(geom, src.Measure(text), text, src.Face(), cfg)
	// white on black: any substantially bright pixel is glyph ink
	for y := 0; y < geom.H; y++ {
		for x := 0; x < geom.W; x++ {
			px := img.RGBAAt(x, y)
			if px != bg && px.R >= 0x80 {
				return
			}
		}
	}
	t.Fatal("no foreground pixel found, text was not drawn")
}

// Two frames composed from the same inputs are identical.
func TestComposeDeterministic(t *testing.T) {
	text := "2024-01-15 09:05:03"
	cfg, geom, src, _, _ := compose(t, text)
	m := src.Measure(text)
	a := gfx.Compose(geom, m, text, src.Face(), cfg)
	b := gfx.Compose(geom, m, text, src.Face(), cfg)
	if len(a.Pix) != len(b.Pix) {
		t.Fatalf("frame sizes differ: %v vs %v", len(a.Pix), len(b.Pix))
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("frames differ at byte %v", i)
		}
	}
}
