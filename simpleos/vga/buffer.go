// Package vga implements a VGA-style text mode screen: a fixed grid of
// two-byte character cells addressed by a single cursor index, and the
// console renderer that turns a character stream into cell writes.
package vga

import "fmt"

const (
	// Width is the number of cells per row.
	Width = 80
	// Height is the number of rows.
	Height = 25
	// Size is the number of cells on the screen.
	Size = Width * Height
	// CellBytes is the size of one cell in memory: glyph, then attribute.
	CellBytes = 2
)

// Attr is a cell attribute byte: low nibble foreground, bits 4-6
// background, bit 7 blink.
type Attr uint8

// AttrDefault is light gray on black. Every write and every blank uses it.
const AttrDefault Attr = 0x07

const blank = ' '

// Cell is one character slot on the screen.
type Cell struct {
	Glyph byte
	Attr  Attr
}

// Buffer is the text screen over injected cell memory.
//
// The cursor is always a valid cell index: any advance past the last cell
// scrolls the screen before returning.
type Buffer struct {
	mem    []byte
	cursor int
}

// New wraps mem, which must hold at least Size cells. Contents are left as
// they are until Clear is called.
func New(mem []byte) (*Buffer, error) {
	if len(mem) < Size*CellBytes {
		return nil, fmt.Errorf("vga: memory is %d bytes, need %d", len(mem), Size*CellBytes)
	}
	return &Buffer{mem: mem[:Size*CellBytes]}, nil
}

// Cursor returns the index of the next cell to be written.
func (b *Buffer) Cursor() int { return b.cursor }

// Cell returns the cell at index i.
func (b *Buffer) Cell(i int) Cell {
	off := i * CellBytes
	return Cell{Glyph: b.mem[off], Attr: Attr(b.mem[off+1])}
}

// Row returns the glyphs of row r as a string, trailing blanks included.
func (b *Buffer) Row(r int) string {
	out := make([]byte, Width)
	for col := range out {
		out[col] = b.mem[(r*Width+col)*CellBytes]
	}
	return string(out)
}

// Clear blanks every cell and homes the cursor.
func (b *Buffer) Clear() {
	for i := 0; i < Size; i++ {
		b.put(i, blank)
	}
	b.cursor = 0
}

// WriteAtCursor stores glyph at the cursor and advances it, scrolling when
// the last cell has been filled.
func (b *Buffer) WriteAtCursor(glyph byte) {
	b.put(b.cursor, glyph)
	b.cursor++
	b.wrap()
}

// Scroll drops the top row, moves every other row up by one, blanks the
// bottom row and puts the cursor at its start.
func (b *Buffer) Scroll() {
	copy(b.mem, b.mem[Width*CellBytes:])
	for i := Size - Width; i < Size; i++ {
		b.put(i, blank)
	}
	b.cursor = Size - Width
}

func (b *Buffer) wrap() {
	if b.cursor >= Size {
		b.Scroll()
	}
}

func (b *Buffer) put(i int, glyph byte) {
	off := i * CellBytes
	b.mem[off] = glyph
	b.mem[off+1] = byte(AttrDefault)
}
