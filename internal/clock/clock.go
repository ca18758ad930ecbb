// Package clock keeps a periodically refreshed time-of-day string for a
// fixed zone. A Clock owns one background loop between Start and Stop.
package clock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/letsjoyn/portfolio/internal/metrics"
)

const DefaultInterval = time.Second

type Option func(*Clock)

// WithClock swaps the time source, mainly for fake clocks in tests.
func WithClock(c clockwork.Clock) Option {
	return func(cl *Clock) {
		cl.clock = c
	}
}

func WithInterval(d time.Duration) Option {
	return func(cl *Clock) {
		if d > 0 {
			cl.interval = d
		}
	}
}

func WithFormatter(f TimeFormatter) Option {
	return func(cl *Clock) {
		cl.formatter = f
	}
}

// WithPublisher sets the sink that receives every successfully formatted value.
func WithPublisher(fn func(string)) Option {
	return func(cl *Clock) {
		cl.publish = fn
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Clock) {
		cl.log = l
	}
}

type Clock struct {
	clock     clockwork.Clock
	formatter TimeFormatter
	interval  time.Duration
	publish   func(string)
	log       *slog.Logger

	displayMu sync.RWMutex
	display   string

	lifecycleMu sync.Mutex
	started     bool
	stopped     bool
	cancel      context.CancelFunc
	done        chan struct{}
}

func New(opts ...Option) *Clock {
	c := &Clock{
		clock:    clockwork.NewRealClock(),
		interval: DefaultInterval,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.formatter == nil {
		c.formatter = NewZoneFormatter(DefaultZone)
	}
	return c
}

// Display returns the last successfully formatted time, or "" before the first one.
func (c *Clock) Display() string {
	c.displayMu.RLock()
	defer c.displayMu.RUnlock()
	return c.display
}

// Start publishes the current time immediately and then once per interval
// until Stop is called or ctx is cancelled. Only the first call has effect.
func (c *Clock) Start(ctx context.Context) {
	c.lifecycleMu.Lock()
	if c.started || c.stopped {
		c.lifecycleMu.Unlock()
		return
	}
	c.started = true

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	ticker := c.clock.NewTicker(c.interval)
	c.lifecycleMu.Unlock()

	c.tick()
	go c.run(loopCtx, ticker)
}

// Stop cancels the refresh loop and waits for it to exit. No publish happens
// after Stop returns. Calling Stop again, or before Start, is a no-op.
func (c *Clock) Stop() {
	c.lifecycleMu.Lock()
	if c.stopped {
		c.lifecycleMu.Unlock()
		return
	}
	c.stopped = true
	cancel, done := c.cancel, c.done
	c.lifecycleMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (c *Clock) run(ctx context.Context, ticker clockwork.Ticker) {
	defer close(c.done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if ctx.Err() != nil {
				return
			}
			c.tick()
		}
	}
}

func (c *Clock) tick() {
	value, err := c.formatter.Format(c.clock.Now())
	if err != nil {
		metrics.ClockTicksTotal.WithLabelValues("formatting_error").Inc()
		c.log.Warn("Clock tick skipped", "error", err)
		return
	}
	metrics.ClockTicksTotal.WithLabelValues("ok").Inc()

	c.displayMu.Lock()
	c.display = value
	c.displayMu.Unlock()

	if c.publish != nil {
		c.publish(value)
	}
}
