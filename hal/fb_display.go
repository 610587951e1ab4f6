package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*fbDisplay)(nil)

// fbDisplay adapts a hostFramebuffer to the TinyGo display driver interface
// so tinyfont can draw into it.
type fbDisplay struct {
	fb *hostFramebuffer
}

func newFBDisplay(fb *hostFramebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.width), int16(d.fb.height)
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.fb.width || iy < 0 || iy >= d.fb.height {
		return
	}

	pixel := rgb565From(c)
	off := iy*d.fb.stride + ix*2
	d.fb.buf[off] = byte(pixel)
	d.fb.buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplay) Display() error { return nil }

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	w := d.fb.width
	h := d.fb.height

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565From(c)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	for py := y0; py < y1; py++ {
		row := py * d.fb.stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			d.fb.buf[off] = lo
			d.fb.buf[off+1] = hi
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
