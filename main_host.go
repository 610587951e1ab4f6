package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"simple/app"
	"simple/hal"
)

func main() {
	envFile := ".env"
	if v := os.Getenv("SIMPLEOS_ENV"); v != "" {
		envFile = v
	}
	if err := app.LoadEnvFile(envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var cfg app.Config
	var host hal.HostConfig
	var backend, logPath string
	flag.StringVar(&backend, "backend", app.EnvString(app.EnvBackend, "window"), "Host backend: window, tty or headless.")
	flag.IntVar(&host.Scale, "scale", app.EnvInt(app.EnvScale, 2), "Window zoom factor.")
	flag.IntVar(&host.TPS, "tps", app.EnvInt(app.EnvTPS, 60), "Window frame rate.")
	flag.BoolVar(&host.Dump, "dump", app.EnvBool(app.EnvDump, true), "Print the final screen when headless.")
	flag.StringVar(&logPath, "log", app.EnvString(app.EnvLog, ""), "Append log lines to this file instead of stderr.")
	flag.StringVar(&cfg.Prompt, "prompt", app.EnvString(app.EnvPrompt, ""), "Override the input prompt.")
	flag.StringVar(&cfg.Banner, "banner", app.EnvString(app.EnvBanner, ""), "Override the boot banner.")
	flag.Parse()

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log %q: %v\n", logPath, err)
			os.Exit(1)
		}
		defer f.Close()
		host.Log = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, backend, host, app.Program(cfg)); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, backend string, host hal.HostConfig, prog hal.Program) error {
	switch backend {
	case "window":
		return hal.RunWindow(ctx, host, prog)
	case "tty":
		return hal.RunTTY(ctx, host, prog)
	case "headless":
		return hal.RunHeadless(ctx, host, os.Stdin, os.Stdout, prog)
	default:
		return fmt.Errorf("unknown backend %q (want window, tty or headless)", backend)
	}
}
