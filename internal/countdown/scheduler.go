package countdown

import (
	"sync"
	"time"

	"github.com/five82/flipclock/internal/clock"
)

const (
	// DefaultTick is the period between countdown evaluations.
	DefaultTick = time.Second
	// DefaultFlipDuration is the length of each half of a flip.
	DefaultFlipDuration = 500 * time.Millisecond
)

// Handle owns the periodic task started by Countdown.Start.
type Handle struct {
	ticker clock.Ticker
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// Start ticks c every period on a new goroutine, which becomes the only
// goroutine allowed to touch c. Ticking stops when the countdown expires or
// the handle is stopped.
func (c *Countdown) Start(clk clock.Clock, period time.Duration) *Handle {
	if period <= 0 {
		period = DefaultTick
	}
	if c.cancel != nil {
		c.cancel()
	}

	h := &Handle{
		ticker: clk.NewTicker(period),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	if c.state == Expired {
		h.Stop()
		close(h.done)
		return h
	}
	c.cancel = h.Stop

	go func() {
		defer close(h.done)
		for {
			select {
			case <-h.stop:
				return
			case <-h.ticker.C():
				if !c.Tick(clk.Now()) {
					return
				}
			}
		}
	}()
	return h
}

// Stop cancels the periodic task. It is safe to call more than once.
func (h *Handle) Stop() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.stop)
	})
}

// Done is closed once the ticking goroutine has returned.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
