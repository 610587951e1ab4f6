//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	repeatDelay    = 30
	repeatInterval = 4
)

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(text(r))
	}

	k.pollKey(ebiten.KeyEnter, KeyEnter)
	k.pollKey(ebiten.KeyNumpadEnter, KeyEnter)
	k.pollKey(ebiten.KeyBackspace, KeyBackspace)
}

// pollKey emits code on press and then at the typematic rate while held.
func (k *hostKeyboard) pollKey(key ebiten.Key, code KeyCode) {
	d := inpututil.KeyPressDuration(key)
	if d == 1 || (d > repeatDelay && (d-repeatDelay)%repeatInterval == 0) {
		k.emit(press(code))
	}
}
