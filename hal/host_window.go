//go:build cgo

package hal

import (
	"context"
	"errors"
	"image"

	"simple/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the text screen and
// forwards keyboard input. It blocks until the program stops or the window
// closes.
func RunWindow(ctx context.Context, cfg HostConfig, prog Program) error {
	cfg = cfg.withDefaults()
	h := newHostHAL(cfg)
	r, err := newRasterizer(h.text.Columns(), h.text.Rows())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g := &hostGame{h: h, r: r, done: h.start(ctx, prog)}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(r.fb.width*cfg.Scale, r.fb.height*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)

	err = ebiten.RunGame(g)
	if g.finished {
		return g.progErr
	}

	// Window closed under a running program.
	cancel()
	if perr := <-g.done; perr != nil && !errors.Is(perr, context.Canceled) {
		return perr
	}
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h    *hostHAL
	r    *rasterizer
	done <-chan error

	finished bool
	progErr  error
	frame    int

	img   *image.RGBA
	fbImg *ebiten.Image
}

func (g *hostGame) Update() error {
	select {
	case err := <-g.done:
		g.finished = true
		g.progErr = err
		return ebiten.Termination
	default:
	}

	g.h.kbd.poll()
	g.frame++
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.r.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	blinkOn := (g.frame/blinkFrames)%2 == 0
	if g.r.update(g.h.text, blinkOn) {
		rgbaFrom565(g.img.Pix, fb.buf)
		g.fbImg.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.r.fb.width, g.r.fb.height
}
