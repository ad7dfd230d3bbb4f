// Package font loads a TrueType face for the configured family and size and
// measures rendered strings with it. Measurement reuses one long-lived face
// rather than building a new one per call; no pixels are ever rasterized
// for a measurement.
package font

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/gregjohnson2017/overlay-clock/pkg/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

// Metrics is the pixel bounding box of a measured string.
type Metrics struct {
	// Advance is the horizontal space the string consumes, including
	// inter-glyph spacing.
	Advance float64
	// Ascent and Descent are the face's vertical extents above and below
	// the baseline.
	Ascent  float64
	Descent float64
	// LeftBearing is the offset from the drawing origin to the first
	// glyph's visible ink, used to correct the start position so glyphs
	// are not clipped at the left edge.
	LeftBearing float64
}

func (m Metrics) String() string {
	return fmt.Sprintf("advance=%.2f ascent=%.2f descent=%.2f bearing=%.2f",
		m.Advance, m.Ascent, m.Descent, m.LeftBearing)
}

// Source owns the measurement face for one family/size pair.
type Source struct {
	face     font.Face
	fallback bool
}

// New resolves family to a TrueType file and builds a face at the given
// pixel size. A family that cannot be resolved or parsed degrades to the
// embedded Go Mono face; this is never fatal.
func New(family string, size float64) *Source {
	ttf, err := load(family)
	fallback := false
	if err != nil {
		log.Debugf("font %q unavailable, using embedded fallback: %v", family, err)
		ttf, fallback = gomono.TTF, true
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		log.Debugf("parsing font %q failed, using embedded fallback: %v", family, err)
		f, _ = truetype.Parse(gomono.TTF)
		fallback = true
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return &Source{face: face, fallback: fallback}
}

func load(family string) ([]byte, error) {
	path, err := Resolve(family)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// Measure returns the metrics for text at the source's face. Repeat calls
// with the same text return identical metrics.
func (s *Source) Measure(text string) Metrics {
	advance := font.MeasureString(s.face, text)
	bounds, _ := font.BoundString(s.face, text)
	fm := s.face.Metrics()
	return Metrics{
		Advance:     i26_6ToFloat64(advance),
		Ascent:      i26_6ToFloat64(fm.Ascent),
		Descent:     i26_6ToFloat64(fm.Descent),
		LeftBearing: i26_6ToFloat64(bounds.Min.X),
	}
}

// Face exposes the measurement face for drawing. The face is owned by the
// render loop's goroutine and must not be shared.
func (s *Source) Face() font.Face {
	return s.face
}

// Fallback reports whether the embedded face is in use instead of the
// requested family.
func (s *Source) Fallback() bool {
	return s.fallback
}

func i26_6ToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
