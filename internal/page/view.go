// Package page owns the per-visitor page view: the section navigator, the
// live clock and the event stream that carries their updates to the browser.
package page

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/letsjoyn/portfolio/internal/clock"
	"github.com/letsjoyn/portfolio/internal/metrics"
	"github.com/letsjoyn/portfolio/internal/navigator"
	"github.com/letsjoyn/portfolio/internal/section"
)

const defaultEventBuffer = 32

type EventType string

const (
	EventClock  EventType = "clock"
	EventScroll EventType = "scroll"
	EventActive EventType = "active"
)

// Event is one update pushed to the browser.
type Event struct {
	Type EventType
	Data any
}

// ScrollRequest asks the browser to bring a section anchor into view.
type ScrollRequest struct {
	Section  section.ID         `json:"section"`
	Behavior navigator.Behavior `json:"behavior"`
}

type Config struct {
	// Anchors are the sections present in the rendered document.
	Anchors      []section.ID
	Background   Background
	ClockOptions []clock.Option
	EventBuffer  int
	Logger       *slog.Logger
}

// State is a read-only snapshot used for rendering.
type State struct {
	ID         string
	Active     section.ID
	Clock      string
	Anchors    []section.ID
	Background Background
}

type View struct {
	ID        string
	CreatedAt time.Time

	nav        *navigator.Navigator
	clock      *clock.Clock
	anchors    []section.ID
	anchorSet  map[section.ID]struct{}
	background Background
	log        *slog.Logger

	mu      sync.Mutex
	events  chan Event
	mounted bool
	closed  bool
}

func NewView(cfg Config) *View {
	buffer := cfg.EventBuffer
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	v := &View{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now(),
		anchors:    append([]section.ID(nil), cfg.Anchors...),
		anchorSet:  make(map[section.ID]struct{}, len(cfg.Anchors)),
		background: cfg.Background,
		events:     make(chan Event, buffer),
	}
	v.log = logger.With("view_id", v.ID)
	for _, id := range cfg.Anchors {
		v.anchorSet[id] = struct{}{}
	}

	v.nav = navigator.New(v.lookupAnchor,
		navigator.WithLogger(v.log),
		navigator.WithObserver(func(id section.ID) {
			v.emit(Event{Type: EventActive, Data: id})
		}),
	)

	clockOpts := append([]clock.Option{
		clock.WithLogger(v.log),
	}, cfg.ClockOptions...)
	clockOpts = append(clockOpts, clock.WithPublisher(func(display string) {
		v.emit(Event{Type: EventClock, Data: display})
	}))
	v.clock = clock.New(clockOpts...)

	return v
}

// Mount starts the clock. The first display value is available when Mount returns.
func (v *View) Mount(ctx context.Context) {
	v.mu.Lock()
	if v.mounted || v.closed {
		v.mu.Unlock()
		return
	}
	v.mounted = true
	v.mu.Unlock()

	metrics.ViewsActive.Inc()
	v.clock.Start(ctx)
	v.log.Debug("View mounted")
}

// Unmount stops the clock and closes the event stream. Safe to call repeatedly.
func (v *View) Unmount() {
	// The clock publishes through emit, so it has to stop before the channel closes.
	v.clock.Stop()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	close(v.events)

	if v.mounted {
		metrics.ViewsActive.Dec()
	}
	v.log.Debug("View unmounted")
}

// Navigate requests a smooth scroll to id and marks it active. It reports
// whether the request applied; a missing anchor leaves the view unchanged.
func (v *View) Navigate(id section.ID) bool {
	return v.nav.NavigateTo(id)
}

func (v *View) Active() section.ID {
	return v.nav.Active()
}

func (v *View) Clock() string {
	return v.clock.Display()
}

// Events is the stream consumed by the browser connection. It closes on Unmount.
func (v *View) Events() <-chan Event {
	return v.events
}

func (v *View) Snapshot() State {
	return State{
		ID:         v.ID,
		Active:     v.nav.Active(),
		Clock:      v.clock.Display(),
		Anchors:    append([]section.ID(nil), v.anchors...),
		Background: v.background,
	}
}

func (v *View) lookupAnchor(id section.ID) (navigator.Target, bool) {
	if _, ok := v.anchorSet[id]; !ok {
		return nil, false
	}
	return anchor{view: v, id: id}, true
}

func (v *View) emit(e Event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	select {
	case v.events <- e:
	default:
		metrics.EventsDropped.WithLabelValues(string(e.Type)).Inc()
		v.log.Debug("Event dropped, stream buffer full", "type", e.Type)
	}
}

// anchor is a rendered section; scrolling it is a fire-and-forget event.
type anchor struct {
	view *View
	id   section.ID
}

func (a anchor) ScrollIntoView(b navigator.Behavior) {
	a.view.emit(Event{Type: EventScroll, Data: ScrollRequest{Section: a.id, Behavior: b}})
}
