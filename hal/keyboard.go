package hal

import "sync"

type hostKeyboard struct {
	ch        chan KeyEvent
	closeOnce sync.Once
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// emit queues ev, dropping it when the queue is full.
func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

// emitWait queues ev, waiting for room unless stop is closed first.
func (k *hostKeyboard) emitWait(ev KeyEvent, stop <-chan struct{}) bool {
	select {
	case k.ch <- ev:
		return true
	case <-stop:
		return false
	}
}

func (k *hostKeyboard) close() {
	k.closeOnce.Do(func() { close(k.ch) })
}

func press(code KeyCode) KeyEvent { return KeyEvent{Code: code, Press: true} }
func text(r rune) KeyEvent        { return KeyEvent{Press: true, Rune: r} }
