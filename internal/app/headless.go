package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/five82/flipclock/internal/clock"
	"github.com/five82/flipclock/internal/countdown"
	"github.com/five82/flipclock/internal/logger"
)

// instantCell is a countdown.Cell without a face. Flips complete at once.
type instantCell struct {
	top    byte
	bottom byte
}

func (c *instantCell) Top() byte                      { return c.top }
func (c *instantCell) SetTop(ch byte)                 { c.top = ch }
func (c *instantCell) SetBottom(ch byte)              { c.bottom = ch }
func (c *instantCell) FlipTop(_ byte, done func())    { done() }
func (c *instantCell) FlipBottom(_ byte, done func()) { done() }

type instantBuilder struct{}

func (instantBuilder) BuildCell(_ countdown.Slot, initial byte) countdown.Cell {
	return &instantCell{top: initial, bottom: initial}
}

type headlessOptions struct {
	Countdown countdown.Options
	Clock     clock.Clock
	Tick      time.Duration
	Hooks     countdown.Hooks
	OnStart   func(countdown.Snapshot)
	Out       io.Writer
}

// runHeadless ticks the countdown on its own goroutine and prints the
// summary whenever it changes. It returns on expiry or when ctx ends.
func runHeadless(ctx context.Context, opts headlessOptions) error {
	out := stdout(opts.Out)

	hooks := opts.Hooks
	hooks.OnSummary = func(summary string) {
		fmt.Fprintln(out, summary)
	}
	onExpire := hooks.OnExpire
	hooks.OnExpire = func(s countdown.Snapshot) {
		if onExpire != nil {
			onExpire(s)
		}
		fmt.Fprintln(out, "expired")
	}

	cd, err := countdown.New(opts.Countdown, opts.Clock.Now(), instantBuilder{}, hooks)
	if err != nil {
		logger.Errorf("Rejected countdown input: %v", err)
		return err
	}
	if opts.OnStart != nil {
		opts.OnStart(cd.Snapshot())
	}
	logger.Infof("Countdown %s started headless, target %s", cd.ID(), cd.Target().Format("2006-01-02 15:04:05 MST"))

	handle := cd.Start(opts.Clock, opts.Tick)
	select {
	case <-handle.Done():
	case <-ctx.Done():
		handle.Stop()
		<-handle.Done()
		logger.Infof("Countdown %s stopped before expiry", cd.ID())
	}
	return nil
}
