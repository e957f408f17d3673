package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/flipclock/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional, defaults to ~/.config/flipclock/config.toml)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	target := flag.String("target", "", "target instant, e.g. 2026-12-31T23:59:00")
	schedule := flag.String("schedule", "", "cron expression; the next occurrence is the target when -target is empty")
	caption := flag.String("caption", "", "caption shown above the clock")
	labels := flag.String("labels", "", "unit labels separated by |, e.g. \"Days|Hours|Minutes\"")
	headless := flag.Bool("headless", false, "print the summary to stdout instead of drawing the clock")
	httpAddr := flag.String("http", "", "serve the HTTP API on this address, e.g. 127.0.0.1:7490")
	policy := flag.String("policy", "", "flip policy when a digit changes mid-flip: coalesce or overlap")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Target:     *target,
		Schedule:   *schedule,
		Caption:    *caption,
		Labels:     *labels,
		Policy:     *policy,
		HTTPAddr:   *httpAddr,
		Headless:   *headless,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "flipclock: %v\n", err)
		return 1
	}
	return 0
}
