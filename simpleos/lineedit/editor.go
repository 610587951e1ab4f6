// Package lineedit reads one bounded line of keyboard input with echo.
package lineedit

import "context"

const (
	// KeyAccept ends the line.
	KeyAccept = '\r'
	// KeyBackspace erases the last character.
	KeyBackspace = '\b'
)

// KeySource blocks until the next keystroke is available.
type KeySource interface {
	NextKey(ctx context.Context) (byte, error)
}

// Echo renders accepted keystrokes.
type Echo interface {
	PutChar(ch byte)
}

// Editor collects keystrokes into a line.
type Editor struct {
	keys KeySource
	echo Echo
}

func New(keys KeySource, echo Echo) *Editor {
	return &Editor{keys: keys, echo: echo}
}

// ReadLine reads keystrokes until KeyAccept and returns at most capacity-1
// printable characters. Keys past that limit are dropped without echo, as
// are backspaces on an empty line and any non-printable key. The accept key
// itself is not echoed; a single newline is rendered in its place.
//
// The only errors are those of the key source.
func (e *Editor) ReadLine(ctx context.Context, capacity int) (string, error) {
	limit := capacity - 1
	if limit < 0 {
		limit = 0
	}
	line := make([]byte, 0, limit)

	for {
		c, err := e.keys.NextKey(ctx)
		if err != nil {
			return "", err
		}

		switch {
		case c == KeyAccept:
			e.echo.PutChar('\n')
			return string(line), nil
		case c == KeyBackspace:
			if len(line) == 0 {
				continue
			}
			line = line[:len(line)-1]
			e.echo.PutChar(KeyBackspace)
		case c >= ' ' && c <= '~':
			if len(line) >= limit {
				continue
			}
			line = append(line, c)
			e.echo.PutChar(c)
		}
	}
}
