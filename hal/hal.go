package hal

import (
	"context"
	"errors"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// TextMode is a character-cell display.
//
// Memory holds Columns*Rows cells of two bytes each: glyph, then attribute
// (low nibble foreground, bits 4-6 background, bit 7 blink). Writes to it are
// not visible until Present is called.
type TextMode interface {
	Columns() int
	Rows() int
	Memory() []byte
	Present(cursor int) error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyBackspace
)

// KeyEvent is a keyboard event. Text input arrives with Code == KeyUnknown
// and a non-zero Rune.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
//
// The channel is closed when the input device goes away.
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the text screen.
type Display interface {
	Text() TextMode
}

// Input provides access to input devices.
type Input interface {
	Keyboard() Keyboard
}

// PowerEvent is a host power action requested by the OS.
type PowerEvent uint8

const (
	PowerRestart PowerEvent = iota + 1
	PowerShutdown
)

func (e PowerEvent) String() string {
	switch e {
	case PowerRestart:
		return "restart"
	case PowerShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Power performs machine power actions.
//
// Restart and Shutdown behave like firmware calls: they return only once the
// host has torn down the caller, which is signalled by ctx being done.
// Events delivers the requests to whoever owns the machine lifecycle.
type Power interface {
	Restart(ctx context.Context)
	Shutdown(ctx context.Context)
	Events() <-chan PowerEvent
}

// HAL provides the only contact point between the OS and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Power() Power
}

// Program is the OS as seen by a host runner. It owns the HAL until it
// returns.
type Program func(ctx context.Context, h HAL) error
