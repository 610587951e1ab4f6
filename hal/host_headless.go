package hal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// RunHeadless runs the OS without any display. Keystrokes are read from in;
// when the program stops the final screen is written to out as text if
// cfg.Dump is set.
//
// Both '\r' and '\n' (and a "\r\n" pair) accept a line, DEL erases like
// backspace, and Ctrl+C or Ctrl+D end the input like EOF does.
func RunHeadless(ctx context.Context, cfg HostConfig, in io.Reader, out io.Writer, prog Program) error {
	cfg = cfg.withDefaults()

	restore, err := makeRaw(in)
	if err != nil {
		return err
	}
	defer restore()

	h := newHostHAL(cfg)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan struct{})
	defer close(stop)
	go feedKeys(in, h.kbd, stop)

	err = <-h.start(ctx, prog)
	restore()
	if cfg.Dump {
		if werr := writeScreen(out, h.text); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

// makeRaw switches in to raw mode when it is a terminal so keys arrive one
// at a time. The returned func is safe to call more than once.
func makeRaw(in io.Reader) (func(), error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}, nil
	}
	fd := int(f.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("headless raw mode: %w", err)
	}
	restored := false
	return func() {
		if restored {
			return
		}
		restored = true
		_ = term.Restore(fd, old)
	}, nil
}

func feedKeys(r io.Reader, kbd *hostKeyboard, stop <-chan struct{}) {
	defer kbd.close()

	br := bufio.NewReader(r)
	var prev byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return
		}
		if b == '\n' && prev == '\r' {
			prev = b
			continue
		}
		prev = b

		ev, end := keyFromByte(b)
		if end {
			return
		}
		if !kbd.emitWait(ev, stop) {
			return
		}
	}
}

func keyFromByte(b byte) (ev KeyEvent, end bool) {
	switch b {
	case '\r', '\n':
		return press(KeyEnter), false
	case 0x08, 0x7f:
		return press(KeyBackspace), false
	case 0x03, 0x04:
		return KeyEvent{}, true
	default:
		return text(rune(b)), false
	}
}

func writeScreen(w io.Writer, t *hostTextMode) error {
	for _, line := range t.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("dump screen: %w", err)
		}
	}
	return nil
}
