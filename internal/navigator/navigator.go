// Package navigator tracks the active page section and turns navigation
// requests into scroll requests against the rendered document.
package navigator

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/letsjoyn/portfolio/internal/metrics"
	"github.com/letsjoyn/portfolio/internal/section"
)

// ErrMissingAnchor is logged, never returned, when a section has no rendered anchor.
var ErrMissingAnchor = errors.New("section anchor not found")

// Behavior selects how a target is scrolled into view.
type Behavior string

const (
	Smooth  Behavior = "smooth"
	Instant Behavior = "instant"
)

// Target is a scrollable anchor in the rendered document. ScrollIntoView must
// not block on the scroll animation.
type Target interface {
	ScrollIntoView(b Behavior)
}

// AnchorLookup resolves a section to its anchor in the host document.
type AnchorLookup func(id section.ID) (Target, bool)

type Option func(*Navigator)

// WithObserver registers a callback invoked after every applied navigation.
// It runs while the navigator is locked and must not call back into it.
func WithObserver(fn func(section.ID)) Option {
	return func(n *Navigator) {
		n.observer = fn
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) {
		n.log = l
	}
}

type Navigator struct {
	lookup   AnchorLookup
	observer func(section.ID)
	log      *slog.Logger

	mu     sync.Mutex
	active section.ID
}

func New(lookup AnchorLookup, opts ...Option) *Navigator {
	n := &Navigator{
		lookup: lookup,
		log:    slog.Default(),
		active: section.Default,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Active returns the most recently requested section.
func (n *Navigator) Active() section.ID {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

// NavigateTo smooth-scrolls to the anchor of id and marks it active. When the
// anchor does not exist nothing changes and false is returned.
func (n *Navigator) NavigateTo(id section.ID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	target, ok := n.resolve(id)
	if !ok {
		metrics.NavigationsTotal.WithLabelValues(label(id), "missing_anchor").Inc()
		n.log.Debug("Navigation ignored", "section", id, "error", ErrMissingAnchor)
		return false
	}

	// Scroll and state write share the lock so scroll requests keep call order.
	target.ScrollIntoView(Smooth)
	n.active = id
	metrics.NavigationsTotal.WithLabelValues(label(id), "applied").Inc()

	if n.observer != nil {
		n.observer(id)
	}
	return true
}

func (n *Navigator) resolve(id section.ID) (Target, bool) {
	if n.lookup == nil || !id.Valid() {
		return nil, false
	}
	target, ok := n.lookup(id)
	if !ok || target == nil {
		return nil, false
	}
	return target, true
}

// label keeps metric cardinality bounded for bogus identifiers.
func label(id section.ID) string {
	if !id.Valid() {
		return "unknown"
	}
	return string(id)
}
