package x11

import (
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

// putImage request header size in bytes, needed for banding math.
const putImageOverhead = 24

// PutFrame uploads img to the overlay window as a ZPixmap. The frame is
// split into horizontal bands when it would exceed the server's maximum
// request length. Failure abandons the tick's redraw; it is not fatal.
func (c *Conn) PutFrame(img *image.RGBA) error {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	data := c.encode(img)
	stride := w * 4

	maxBytes := 4 * int(c.setup.MaximumRequestLength)
	rowsPerBand := (maxBytes - putImageOverhead) / stride
	if rowsPerBand < 1 {
		return fmt.Errorf("frame row of %v bytes exceeds maximum request length", stride)
	}

	for y := 0; y < h; y += rowsPerBand {
		rows := h - y
		if rows > rowsPerBand {
			rows = rowsPerBand
		}
		band := data[y*stride : (y+rows)*stride]
		err := xproto.PutImageChecked(c.x,
			xproto.ImageFormatZPixmap,
			xproto.Drawable(c.win),
			c.gc,
			uint16(w), uint16(rows),
			0, int16(y),
			0,
			c.depth,
			band).Check()
		if err != nil {
			return fmt.Errorf("failed to put frame band at row %v: %w", y, err)
		}
	}
	return nil
}

// encode converts RGBA pixels to the server's 32-bit ZPixmap layout,
// honoring the setup's image byte order.
func (c *Conn) encode(img *image.RGBA) []byte {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	out := make([]byte, w*h*4)
	lsb := c.setup.ImageByteOrder == xproto.ImageOrderLSBFirst
	i := 0
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			r, g, b := row[x], row[x+1], row[x+2]
			if lsb {
				out[i], out[i+1], out[i+2], out[i+3] = b, g, r, 0xFF
			} else {
				out[i], out[i+1], out[i+2], out[i+3] = 0xFF, r, g, b
			}
			i += 4
		}
	}
	return out
}
