// Package kernel is the terminal main loop: clear the screen, print the
// banner, then prompt, read a line and dispatch it, forever.
package kernel

import (
	"context"
	"fmt"

	"simple/hal"
	"simple/simpleos/lineedit"
	"simple/simpleos/shell"
	"simple/simpleos/vga"
)

const (
	// LineCapacity is the input buffer size, terminator included.
	LineCapacity = 16

	DefaultBanner = "SimpleOS v0.5 - Freestanding Terminal"
	DefaultPrompt = "> "
)

type Config struct {
	Banner string
	Prompt string
}

func (c Config) withDefaults() Config {
	if c.Banner == "" {
		c.Banner = DefaultBanner
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	return c
}

type Kernel struct {
	cfg   Config
	log   hal.Logger
	power hal.Power

	con *vga.Console
	ed  *lineedit.Editor
}

// New binds a kernel to the HAL's text screen and keyboard.
func New(h hal.HAL, cfg Config) (*Kernel, error) {
	text := h.Display().Text()
	if text.Columns() != vga.Width || text.Rows() != vga.Height {
		return nil, fmt.Errorf("kernel: text mode is %dx%d, need %dx%d",
			text.Columns(), text.Rows(), vga.Width, vga.Height)
	}
	buf, err := vga.New(text.Memory())
	if err != nil {
		return nil, fmt.Errorf("kernel: %w", err)
	}

	con := vga.NewConsole(buf, text)
	return &Kernel{
		cfg:   cfg.withDefaults(),
		log:   h.Logger(),
		power: h.Power(),
		con:   con,
		ed:    lineedit.New(newKeySource(h.Input().Keyboard()), con),
	}, nil
}

// Console returns the kernel's screen renderer.
func (k *Kernel) Console() *vga.Console { return k.con }

// Run boots the terminal and serves input lines until ctx is done or the
// keyboard goes away. It never returns nil.
func (k *Kernel) Run(ctx context.Context) error {
	table, err := shell.NewBuiltinTable(k.con, boundPower{ctx: ctx, p: k.power})
	if err != nil {
		return fmt.Errorf("kernel: %w", err)
	}
	sh := shell.NewDispatcher(table, k.con)

	k.con.Clear()
	k.con.Print(k.cfg.Banner + "\n")

	for {
		// A power action tears the boot down through ctx; never prompt
		// after one.
		if err := ctx.Err(); err != nil {
			return err
		}

		k.con.Print(k.cfg.Prompt)
		line, err := k.ed.ReadLine(ctx, LineCapacity)
		if err != nil {
			return err
		}
		if !sh.Dispatch(line) {
			k.log.WriteLineString(fmt.Sprintf("shell: unknown command %q", line))
		}
	}
}

// boundPower gives the shell's zero-argument handlers access to the HAL
// power calls of the current boot.
type boundPower struct {
	ctx context.Context
	p   hal.Power
}

func (b boundPower) Restart()  { b.p.Restart(b.ctx) }
func (b boundPower) Shutdown() { b.p.Shutdown(b.ctx) }
