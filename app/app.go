package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"simple/hal"
	"simple/internal/buildinfo"
	"simple/simpleos/kernel"
)

type Config struct {
	Banner string
	Prompt string
}

// Program returns the OS entry point for a host runner.
func Program(cfg Config) hal.Program {
	return func(ctx context.Context, h hal.HAL) error {
		return Run(ctx, h, cfg)
	}
}

// Run boots the OS and boots it again after every restart request. It
// returns nil after a shutdown request or once the keyboard goes away, and
// ctx.Err() if ctx ends first.
func Run(ctx context.Context, h hal.HAL, cfg Config) error {
	log := h.Logger()
	power := h.Power().Events()
	log.WriteLineString("app: SimpleOS " + buildinfo.String())

	for boot := 1; ; boot++ {
		k, err := kernel.New(h, kernel.Config{Banner: cfg.Banner, Prompt: cfg.Prompt})
		if err != nil {
			return fmt.Errorf("boot %d: %w", boot, err)
		}
		log.WriteLineString(fmt.Sprintf("kernel: boot %d", boot))

		ev, err := runBoot(ctx, h, k, power)
		switch {
		case ev == hal.PowerRestart:
			continue
		case ev == hal.PowerShutdown:
			log.WriteLineString("app: shutdown")
			return nil
		case errors.Is(err, io.EOF):
			log.WriteLineString("app: input closed")
			return nil
		default:
			return err
		}
	}
}

// runBoot runs one kernel lifetime. A power request ends it: the kernel's
// context is cancelled, which is what lets the pending power call return.
func runBoot(ctx context.Context, h hal.HAL, k *kernel.Kernel, power <-chan hal.PowerEvent) (hal.PowerEvent, error) {
	bootCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- kernelPanic(h, r)
			}
		}()
		done <- k.Run(bootCtx)
	}()

	select {
	case ev := <-power:
		cancel()
		<-done
		return ev, nil
	case err := <-done:
		return 0, err
	}
}
