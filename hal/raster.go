package hal

import (
	"fmt"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	cellHeight = 10
	fontOffset = 6
	// blinkFrames is the number of frames per cursor/blink phase.
	blinkFrames = 16
)

// rasterizer draws text mode cells into an RGB565 framebuffer with a bitmap
// font.
type rasterizer struct {
	fb   *hostFramebuffer
	d    *fbDisplay
	font tinyfont.Fonter

	cols   int
	rows   int
	cellW  int16
	cellH  int16
	offset int16

	cells     []byte
	seq       uint64
	blinkOn   bool
	drawnOnce bool
}

func newRasterizer(cols, rows int) (*rasterizer, error) {
	font := &proggy.TinySZ8pt7b
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	cellW := int16(outboxWidth)
	if cellW <= 0 {
		return nil, fmt.Errorf("raster: font has no width")
	}

	fb := newHostFramebuffer(cols*int(cellW), rows*cellHeight)
	return &rasterizer{
		fb:     fb,
		d:      newFBDisplay(fb),
		font:   font,
		cols:   cols,
		rows:   rows,
		cellW:  cellW,
		cellH:  cellHeight,
		offset: fontOffset,
		cells:  make([]byte, cols*rows*2),
	}, nil
}

// update redraws the framebuffer if the presented screen or the blink phase
// changed since the last call, and reports whether it did.
func (r *rasterizer) update(t *hostTextMode, blinkOn bool) bool {
	cursor, seq := t.snapshot(r.cells)
	if r.drawnOnce && seq == r.seq && blinkOn == r.blinkOn {
		return false
	}
	r.seq = seq
	r.blinkOn = blinkOn
	r.drawnOnce = true
	r.render(cursor)
	return true
}

func (r *rasterizer) render(cursor int) {
	for i := 0; i < r.cols*r.rows; i++ {
		r.drawCell(i, r.cells[i*2], r.cells[i*2+1], i == cursor)
	}
}

func (r *rasterizer) drawCell(i int, glyph, attr byte, hasCursor bool) {
	x := int16(i%r.cols) * r.cellW
	y := int16(i/r.cols) * r.cellH
	fg, bg, blink := attrColors(attr)

	_ = r.d.FillRectangle(x, y, r.cellW, r.cellH, bg)
	if g := printable(glyph); g != ' ' && (!blink || r.blinkOn) {
		tinyfont.DrawChar(r.d, r.font, x, y+r.offset, rune(g), fg)
	}
	if hasCursor && r.blinkOn {
		_ = r.d.FillRectangle(x, y+r.cellH-2, r.cellW, 1, fg)
	}
}
