package vga

// Presenter makes the cell memory visible, e.g. by copying it to a host
// surface. The cursor is passed along for backends that draw one.
type Presenter interface {
	Present(cursor int) error
}

// Console renders a character stream onto a Buffer.
//
// Control characters: '\n' moves to the start of the next row, '\r' to the
// start of the current row, '\b' erases the previous cell. Everything else
// is written as a glyph.
type Console struct {
	buf *Buffer
	out Presenter
}

// NewConsole returns a console drawing into buf. out may be nil.
func NewConsole(buf *Buffer, out Presenter) *Console {
	return &Console{buf: buf, out: out}
}

// Buffer returns the underlying screen.
func (c *Console) Buffer() *Buffer { return c.buf }

// PutChar renders a single character.
func (c *Console) PutChar(ch byte) {
	c.putChar(ch)
	c.present()
}

// Print renders s left to right.
func (c *Console) Print(s string) {
	for i := 0; i < len(s); i++ {
		c.putChar(s[i])
	}
	c.present()
}

// Write implements io.Writer. It never fails.
func (c *Console) Write(p []byte) (int, error) {
	for _, ch := range p {
		c.putChar(ch)
	}
	c.present()
	return len(p), nil
}

// Clear blanks the screen and homes the cursor.
func (c *Console) Clear() {
	c.buf.Clear()
	c.present()
}

func (c *Console) putChar(ch byte) {
	b := c.buf
	switch ch {
	case '\n':
		b.cursor = (b.cursor/Width + 1) * Width
	case '\r':
		b.cursor -= b.cursor % Width
	case '\b':
		// Plain index decrement: at column 0 this lands on the last
		// column of the previous row.
		if b.cursor > 0 {
			b.cursor--
			b.put(b.cursor, blank)
		}
		return
	default:
		b.WriteAtCursor(ch)
	}
	b.wrap()
}

func (c *Console) present() {
	if c.out == nil {
		return
	}
	_ = c.out.Present(c.buf.cursor)
}
