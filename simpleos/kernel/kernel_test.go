package kernel

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"simple/hal"
	"simple/simpleos/vga"
)

const testTimeout = 2 * time.Second

type fakeText struct {
	cols, rows int
	mem        []byte
	presents   int
	cursor     int
}

func (t *fakeText) Columns() int   { return t.cols }
func (t *fakeText) Rows() int      { return t.rows }
func (t *fakeText) Memory() []byte { return t.mem }
func (t *fakeText) Present(cursor int) error {
	t.presents++
	t.cursor = cursor
	return nil
}

func (t *fakeText) row(r int) string {
	out := make([]byte, t.cols)
	for c := range out {
		out[c] = t.mem[(r*t.cols+c)*2]
	}
	return strings.TrimRight(string(out), " ")
}

type fakeKeyboard struct {
	ch chan hal.KeyEvent
}

func (k *fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakeLogger struct {
	lines []string
}

func (l *fakeLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *fakeLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type fakePower struct {
	calls []hal.PowerEvent
	// teardown, when set, simulates the host tearing the boot down.
	teardown context.CancelFunc
}

func (p *fakePower) Restart(ctx context.Context)   { p.request(ctx, hal.PowerRestart) }
func (p *fakePower) Shutdown(ctx context.Context)  { p.request(ctx, hal.PowerShutdown) }
func (p *fakePower) Events() <-chan hal.PowerEvent { return nil }

func (p *fakePower) request(ctx context.Context, ev hal.PowerEvent) {
	p.calls = append(p.calls, ev)
	if p.teardown != nil {
		p.teardown()
		<-ctx.Done()
	}
}

type fakeDisplay struct{ t *fakeText }

func (d fakeDisplay) Text() hal.TextMode { return d.t }

type fakeInput struct{ k *fakeKeyboard }

func (in fakeInput) Keyboard() hal.Keyboard { return in.k }

type fakeHAL struct {
	log   *fakeLogger
	text  *fakeText
	kbd   *fakeKeyboard
	power *fakePower
}

func (h *fakeHAL) Logger() hal.Logger   { return h.log }
func (h *fakeHAL) Display() hal.Display { return fakeDisplay{h.text} }
func (h *fakeHAL) Input() hal.Input     { return fakeInput{h.kbd} }
func (h *fakeHAL) Power() hal.Power     { return h.power }

// newFakeHAL returns a HAL whose keyboard replays keys and then closes.
// '\r' becomes Enter and '\b' Backspace.
func newFakeHAL(keys string) *fakeHAL {
	ch := make(chan hal.KeyEvent, len(keys))
	for _, r := range keys {
		switch r {
		case '\r':
			ch <- hal.KeyEvent{Code: hal.KeyEnter, Press: true}
		case '\b':
			ch <- hal.KeyEvent{Code: hal.KeyBackspace, Press: true}
		default:
			ch <- hal.KeyEvent{Press: true, Rune: r}
		}
	}
	close(ch)

	return &fakeHAL{
		log:   &fakeLogger{},
		text:  &fakeText{cols: vga.Width, rows: vga.Height, mem: make([]byte, vga.Size*vga.CellBytes)},
		kbd:   &fakeKeyboard{ch: ch},
		power: &fakePower{},
	}
}

func runKernel(t *testing.T, ctx context.Context, h *fakeHAL) error {
	t.Helper()
	k, err := New(h, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- k.Run(ctx) }()
	select {
	case err := <-done:
		return err
	case <-time.After(testTimeout):
		t.Fatal("Run did not return")
		return nil
	}
}

func assertRows(t *testing.T, text *fakeText, want ...string) {
	t.Helper()
	for r := 0; r < text.rows; r++ {
		w := ""
		if r < len(want) {
			w = want[r]
		}
		w = strings.TrimRight(w, " ")
		if got := text.row(r); got != w {
			t.Fatalf("row %d = %q, want %q", r, got, w)
		}
	}
}

func TestRunBannerAndPrompt(t *testing.T) {
	h := newFakeHAL("")
	err := runKernel(t, context.Background(), h)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("Run() err = %v, want io.EOF", err)
	}

	assertRows(t, h.text, DefaultBanner, "> ")
	if h.text.cursor != vga.Width+2 {
		t.Fatalf("presented cursor = %d, want %d", h.text.cursor, vga.Width+2)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	h := newFakeHAL("Restart\r\r")
	_ = runKernel(t, context.Background(), h)

	assertRows(t, h.text,
		DefaultBanner,
		"> Restart",
		"Unknown command: Restart",
		">",
		"Unknown command:",
		"> ",
	)
	if len(h.power.calls) != 0 {
		t.Fatalf("power calls = %v, want none", h.power.calls)
	}
	if len(h.log.lines) != 2 || h.log.lines[0] != `shell: unknown command "Restart"` {
		t.Fatalf("log = %q", h.log.lines)
	}
}

func TestRunClear(t *testing.T) {
	h := newFakeHAL("abc\rclear\r")
	_ = runKernel(t, context.Background(), h)

	assertRows(t, h.text, "> ")
	if h.text.cursor != 2 {
		t.Fatalf("presented cursor = %d, want 2", h.text.cursor)
	}
}

func TestRunBackspaceEditing(t *testing.T) {
	h := newFakeHAL("\bcleax\br\r")
	_ = runKernel(t, context.Background(), h)

	assertRows(t, h.text, "> ")
}

func TestRunLineCapacity(t *testing.T) {
	h := newFakeHAL(strings.Repeat("z", 20) + "\r")
	_ = runKernel(t, context.Background(), h)

	z15 := strings.Repeat("z", 15)
	assertRows(t, h.text, DefaultBanner, "> "+z15, "Unknown command: "+z15, "> ")
}

func TestRunPowerReturnsControl(t *testing.T) {
	h := newFakeHAL("restart\rshutdown\r")
	_ = runKernel(t, context.Background(), h)

	if len(h.power.calls) != 2 || h.power.calls[0] != hal.PowerRestart || h.power.calls[1] != hal.PowerShutdown {
		t.Fatalf("power calls = %v, want [restart shutdown]", h.power.calls)
	}
	assertRows(t, h.text,
		DefaultBanner,
		"> restart",
		"Restarting...",
		"> shutdown",
		"Attempting shutdown...",
		"> ",
	)
}

func TestRunStopsAfterPowerTeardown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := newFakeHAL("shutdown\rclear\r")
	h.power.teardown = cancel
	err := runKernel(t, ctx, h)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() err = %v, want context.Canceled", err)
	}

	assertRows(t, h.text, DefaultBanner, "> shutdown", "Attempting shutdown...")
}

func TestRunCustomPrompt(t *testing.T) {
	h := newFakeHAL("")
	k, err := New(h, Config{Banner: "hi", Prompt: "$ "})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = k.Run(context.Background())

	assertRows(t, h.text, "hi", "$ ")
}

func TestNewRejectsGeometry(t *testing.T) {
	h := newFakeHAL("")
	h.text.cols = 40
	if _, err := New(h, Config{}); err == nil {
		t.Fatal("New() err = nil, want geometry error")
	}
}

func TestKeyByte(t *testing.T) {
	tcs := []struct {
		ev   hal.KeyEvent
		want byte
		ok   bool
	}{
		{ev: hal.KeyEvent{Code: hal.KeyEnter, Press: true}, want: '\r', ok: true},
		{ev: hal.KeyEvent{Code: hal.KeyBackspace, Press: true}, want: '\b', ok: true},
		{ev: hal.KeyEvent{Press: true, Rune: 'q'}, want: 'q', ok: true},
		{ev: hal.KeyEvent{Press: true, Rune: 0x1b}, want: 0x1b, ok: true},
		{ev: hal.KeyEvent{Code: hal.KeyEnter, Press: false}},
		{ev: hal.KeyEvent{Press: true, Rune: 'é'}},
		{ev: hal.KeyEvent{Press: true}},
	}

	for _, tc := range tcs {
		got, ok := keyByte(tc.ev)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("keyByte(%+v) = %q, %v; want %q, %v", tc.ev, got, ok, tc.want, tc.ok)
		}
	}
}

func TestKeySourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := newKeySource(&fakeKeyboard{ch: make(chan hal.KeyEvent)})
	if _, err := src.NextKey(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("NextKey() err = %v, want context.Canceled", err)
	}
}
