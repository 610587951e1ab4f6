package hal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyFromTcell(t *testing.T) {
	tcs := []struct {
		ev   *tcell.EventKey
		want KeyEvent
		ok   bool
	}{
		{ev: tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), want: press(KeyEnter), ok: true},
		{ev: tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), want: press(KeyBackspace), ok: true},
		{ev: tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), want: text('q'), ok: true},
		{ev: tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)},
	}
	for _, tc := range tcs {
		got, ok := keyFromTcell(tc.ev)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("keyFromTcell(%v) = %+v, %v; want %+v, %v", tc.ev.Name(), got, ok, tc.want, tc.ok)
		}
	}
}

func TestDrawCells(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 25)

	cells := make([]byte, 80*25*2)
	for i := 0; i < len(cells); i += 2 {
		cells[i] = ' '
		cells[i+1] = 0x07
	}
	copy(cells[(80+1)*2:], []byte{'o', 0x07, 'k', 0x1f})

	drawCells(screen, cells, 80, 83)

	contents, width, _ := screen.GetContents()
	if width != 80 {
		t.Fatalf("width = %d, want 80", width)
	}
	if got := string(contents[81].Runes) + string(contents[82].Runes); got != "ok" {
		t.Fatalf("row 1 = %q, want %q", got, "ok")
	}
	_, bg, _ := contents[82].Style.Decompose()
	if want := tcell.NewRGBColor(0, 0, 0xaa); bg != want {
		t.Fatalf("background = %v, want %v", bg, want)
	}
	x, y, visible := screen.GetCursor()
	if x != 3 || y != 1 || !visible {
		t.Fatalf("cursor = %d,%d visible=%v; want 3,1 visible", x, y, visible)
	}
}
