package page

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/letsjoyn/portfolio/internal/metrics"
)

var (
	ErrViewExists      = errors.New("view already mounted")
	ErrViewNotFound    = errors.New("view not found")
	ErrAlreadyAttached = errors.New("view stream already attached")
)

const (
	DefaultStaleAfter    = 2 * time.Minute
	defaultSweepInterval = 30 * time.Second
)

type RegistryOption func(*Registry)

func WithRegistryClock(c clockwork.Clock) RegistryOption {
	return func(r *Registry) {
		r.clock = c
	}
}

// WithStaleAfter sets how long a view may wait for its event stream before
// the sweep unmounts it.
func WithStaleAfter(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.staleAfter = d
		}
	}
}

func WithSweepInterval(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.sweepInterval = d
		}
	}
}

type registered struct {
	view      *View
	mountedAt time.Time
	attached  bool
}

// Registry tracks mounted page views by ID.
type Registry struct {
	clock         clockwork.Clock
	staleAfter    time.Duration
	sweepInterval time.Duration

	mu    sync.Mutex
	views map[string]*registered
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		clock:         clockwork.NewRealClock(),
		staleAfter:    DefaultStaleAfter,
		sweepInterval: defaultSweepInterval,
		views:         make(map[string]*registered),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mount starts v and registers it. ctx bounds the view's clock, so it should
// outlive the request that created the view.
func (r *Registry) Mount(ctx context.Context, v *View) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.views[v.ID]; exists {
		return ErrViewExists
	}

	v.Mount(ctx)
	r.views[v.ID] = &registered{view: v, mountedAt: r.clock.Now()}
	return nil
}

func (r *Registry) Get(id string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.views[id]
	if !ok {
		return nil, false
	}
	return reg.view, true
}

// Attach hands out the view's event stream. Only one stream per view.
func (r *Registry) Attach(id string) (<-chan Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.views[id]
	if !ok {
		return nil, ErrViewNotFound
	}
	if reg.attached {
		return nil, ErrAlreadyAttached
	}
	reg.attached = true
	return reg.view.Events(), nil
}

// Streaming reports whether an event stream is attached to the view.
func (r *Registry) Streaming(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.views[id]
	return ok && reg.attached
}

// Unmount tears the view down and forgets it.
func (r *Registry) Unmount(id string) error {
	r.mu.Lock()
	reg, ok := r.views[id]
	if ok {
		delete(r.views, id)
	}
	r.mu.Unlock()

	if !ok {
		return ErrViewNotFound
	}
	reg.view.Unmount()
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Run sweeps views whose stream never attached. It blocks until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	ticker := r.clock.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			r.sweep()
		}
	}
}

func (r *Registry) sweep() {
	cutoff := r.clock.Now().Add(-r.staleAfter)

	r.mu.Lock()
	var stale []*View
	for id, reg := range r.views {
		if !reg.attached && reg.mountedAt.Before(cutoff) {
			stale = append(stale, reg.view)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range stale {
		v.Unmount()
		metrics.ViewsEvicted.Inc()
	}
	if len(stale) > 0 {
		slog.Info("Swept stale views", "count", len(stale))
	}
}

// Close unmounts every view.
func (r *Registry) Close() {
	r.mu.Lock()
	views := make([]*View, 0, len(r.views))
	for id, reg := range r.views {
		views = append(views, reg.view)
		delete(r.views, id)
	}
	r.mu.Unlock()

	for _, v := range views {
		v.Unmount()
	}
}
