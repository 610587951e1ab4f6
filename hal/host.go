package hal

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// HostConfig controls the desktop runners.
type HostConfig struct {
	// Title is the window title (window backend).
	Title string
	// Scale is the integer window zoom (window backend).
	Scale int
	// TPS is the frame rate (window backend).
	TPS int
	// Dump writes the final screen as text when the OS stops (headless backend).
	Dump bool
	// Log receives log lines. Nil means stderr, except for the tty backend
	// where it means discard.
	Log io.Writer
}

func (c HostConfig) withDefaults() HostConfig {
	if c.Title == "" {
		c.Title = "SimpleOS"
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	if c.Log == nil {
		c.Log = os.Stderr
	}
	return c
}

const (
	textColumns = 80
	textRows    = 25
)

type hostHAL struct {
	logger *hostLogger
	text   *hostTextMode
	kbd    *hostKeyboard
	power  *hostPower
}

func newHostHAL(cfg HostConfig) *hostHAL {
	logger := &hostLogger{w: cfg.Log}
	return &hostHAL{
		logger: logger,
		text:   newHostTextMode(textColumns, textRows),
		kbd:    newHostKeyboard(),
		power:  newHostPower(logger),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{text: h.text} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Power() Power     { return h.power }

// start runs prog on its own goroutine. The returned channel yields its
// result once.
func (h *hostHAL) start(ctx context.Context, prog Program) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("program panic: %v", r)
			}
		}()
		done <- prog(ctx, h)
	}()
	return done
}

type hostDisplay struct {
	text *hostTextMode
}

func (d hostDisplay) Text() TextMode { return d.text }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
