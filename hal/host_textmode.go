package hal

import (
	"strings"
	"sync"
)

// hostTextMode double-buffers the cell memory: the OS writes the back buffer
// from its own goroutine, Present copies it to the front buffer that
// backends read.
type hostTextMode struct {
	cols int
	rows int
	back []byte

	mu      sync.Mutex
	front   []byte
	cursor  int
	seq     uint64
	changed chan struct{}
}

func newHostTextMode(cols, rows int) *hostTextMode {
	n := cols * rows * 2
	return &hostTextMode{
		cols:    cols,
		rows:    rows,
		back:    make([]byte, n),
		front:   make([]byte, n),
		changed: make(chan struct{}, 1),
	}
}

func (t *hostTextMode) Columns() int   { return t.cols }
func (t *hostTextMode) Rows() int      { return t.rows }
func (t *hostTextMode) Memory() []byte { return t.back }

func (t *hostTextMode) Present(cursor int) error {
	t.mu.Lock()
	copy(t.front, t.back)
	t.cursor = cursor
	t.seq++
	t.mu.Unlock()

	select {
	case t.changed <- struct{}{}:
	default:
	}
	return nil
}

// Changed is signalled after every Present (coalesced).
func (t *hostTextMode) Changed() <-chan struct{} { return t.changed }

// snapshot copies the presented cells into dst and returns the cursor and
// the present sequence number.
func (t *hostTextMode) snapshot(dst []byte) (cursor int, seq uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	copy(dst, t.front)
	return t.cursor, t.seq
}

// lines renders the presented screen as text, one string per row, with
// trailing blanks and trailing empty rows removed.
func (t *hostTextMode) lines() []string {
	cells := make([]byte, len(t.front))
	t.snapshot(cells)

	out := make([]string, 0, t.rows)
	row := make([]byte, t.cols)
	for r := 0; r < t.rows; r++ {
		for c := 0; c < t.cols; c++ {
			row[c] = printable(cells[(r*t.cols+c)*2])
		}
		out = append(out, strings.TrimRight(string(row), " "))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func printable(g byte) byte {
	if g < 0x20 || g > 0x7e {
		return ' '
	}
	return g
}
