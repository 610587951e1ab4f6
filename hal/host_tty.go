package hal

import (
	"context"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
)

// RunTTY runs the OS full-screen in the controlling terminal. Ctrl+C stops
// the program.
func RunTTY(ctx context.Context, cfg HostConfig, prog Program) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tty: %w", err)
	}
	return runTTY(ctx, screen, cfg, prog)
}

func runTTY(ctx context.Context, screen tcell.Screen, cfg HostConfig, prog Program) error {
	if cfg.Log == nil {
		// The terminal belongs to tcell.
		cfg.Log = io.Discard
	}
	cfg = cfg.withDefaults()

	if err := screen.Init(); err != nil {
		return fmt.Errorf("tty init: %w", err)
	}

	h := newHostHAL(cfg)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := h.start(ctx, prog)
	go pollTTY(screen, h.kbd, cancel)

	cells := make([]byte, h.text.Columns()*h.text.Rows()*2)
	for {
		select {
		case <-h.text.Changed():
			cursor, _ := h.text.snapshot(cells)
			drawCells(screen, cells, h.text.Columns(), cursor)
		case err := <-done:
			screen.Fini()
			return err
		}
	}
}

// pollTTY forwards terminal key events until the screen is finalized.
func pollTTY(screen tcell.Screen, kbd *hostKeyboard, interrupt func()) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				interrupt()
				continue
			}
			if kev, ok := keyFromTcell(ev); ok {
				kbd.emit(kev)
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func keyFromTcell(ev *tcell.EventKey) (KeyEvent, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return press(KeyEnter), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return press(KeyBackspace), true
	case tcell.KeyRune:
		return text(ev.Rune()), true
	default:
		return KeyEvent{}, false
	}
}

func drawCells(screen tcell.Screen, cells []byte, cols, cursor int) {
	for i := 0; i+1 < len(cells); i += 2 {
		n := i / 2
		screen.SetContent(n%cols, n/cols, rune(printable(cells[i])), nil, attrStyle(cells[i+1]))
	}
	screen.ShowCursor(cursor%cols, cursor/cols)
	screen.Show()
}

func attrStyle(attr byte) tcell.Style {
	fg, bg, blink := attrColors(attr)
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B))).
		Blink(blink)
}
