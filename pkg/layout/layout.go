// Package layout computes the overlay window geometry from measured text.
package layout

import (
	"fmt"
	"math"

	"github.com/gregjohnson2017/overlay-clock/pkg/font"
)

// Geometry is the overlay window's position and size in screen pixels.
type Geometry struct {
	X, Y int
	W, H int
}

func (g Geometry) String() string {
	return fmt.Sprintf("%vx%v at (%v,%v)", g.W, g.H, g.X, g.Y)
}

// Compute returns the top-right anchored geometry for text with the given
// metrics: the text bounding box rounded to whole pixels, padded by margin
// on all sides, and placed margin pixels from the top and right screen
// edges. It is recomputed every tick rather than diffed against the
// previous geometry.
func Compute(m font.Metrics, margin, screenWidth int) Geometry {
	textW := round(m.Advance)
	textH := round(m.Ascent + m.Descent)
	w := textW + 2*margin
	h := textH + 2*margin
	return Geometry{
		X: screenWidth - w - margin,
		Y: margin,
		W: w,
		H: h,
	}
}

// round rounds half up to the nearest integer pixel.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
