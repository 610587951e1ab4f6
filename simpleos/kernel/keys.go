package kernel

import (
	"context"
	"io"

	"simple/hal"
	"simple/simpleos/lineedit"
)

// keySource turns HAL keyboard events into the byte codes the line editor
// expects.
type keySource struct {
	events <-chan hal.KeyEvent
}

func newKeySource(kbd hal.Keyboard) *keySource {
	return &keySource{events: kbd.Events()}
}

func (s *keySource) NextKey(ctx context.Context) (byte, error) {
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case ev, ok := <-s.events:
			if !ok {
				return 0, io.EOF
			}
			if c, ok := keyByte(ev); ok {
				return c, nil
			}
		}
	}
}

func keyByte(ev hal.KeyEvent) (byte, bool) {
	if !ev.Press {
		return 0, false
	}
	switch ev.Code {
	case hal.KeyEnter:
		return lineedit.KeyAccept, true
	case hal.KeyBackspace:
		return lineedit.KeyBackspace, true
	}
	if ev.Rune > 0 && ev.Rune < 0x80 {
		return byte(ev.Rune), true
	}
	return 0, false
}
