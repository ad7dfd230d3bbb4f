// Package gfx rasterizes one overlay frame: background fill plus the
// formatted time string at its baseline.
package gfx

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gregjohnson2017/overlay-clock/pkg/config"
	"github.com/gregjohnson2017/overlay-clock/pkg/font"
	"github.com/gregjohnson2017/overlay-clock/pkg/layout"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Compose builds a fresh frame of exactly geom.W by geom.H pixels. The
// background is filled with bg, and text is drawn in fg with its baseline
// at (margin - leftBearing, margin + ascent), so the glyph ink's left edge
// lands on the padded interior regardless of bearing. A frame is built per
// tick since the size may change tick to tick.
func Compose(geom layout.Geometry, m font.Metrics, text string, face xfont.Face, cfg *config.Config) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, geom.W, geom.H))

	br, bg, bb := cfg.Background.RGB()
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{br, bg, bb, 0xFF}), image.Point{}, draw.Src)

	fr, fg, fb := cfg.Foreground.RGB()
	d := xfont.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{fr, fg, fb, 0xFF}),
		Face: face,
		Dot: fixed.Point26_6{
			X: floatToI26_6(float64(cfg.Margin) - m.LeftBearing),
			Y: floatToI26_6(float64(cfg.Margin) + m.Ascent),
		},
	}
	d.DrawString(text)
	return img
}

func floatToI26_6(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
