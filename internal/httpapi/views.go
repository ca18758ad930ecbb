// Package httpapi exposes mounted page views to the browser: the event
// stream, section navigation and teardown.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/letsjoyn/portfolio/internal/page"
	"github.com/letsjoyn/portfolio/internal/section"
)

// NavigationRecorder persists applied navigations for the admin statistics.
type NavigationRecorder interface {
	RecordNavigation(ctx context.Context, viewID string, id section.ID, at time.Time) error
}

// NavItem is one navigation button.
type NavItem struct {
	ID     section.ID
	Label  string
	Active bool
}

// NavItems lists every section button, marking the active one.
func NavItems(active section.ID) []NavItem {
	all := section.All()
	items := make([]NavItem, 0, len(all))
	for _, id := range all {
		items = append(items, NavItem{ID: id, Label: id.Label(), Active: id == active})
	}
	return items
}

type ViewHandlers struct {
	views    *page.Registry
	recorder NavigationRecorder
}

func NewViewHandlers(views *page.Registry, recorder NavigationRecorder) *ViewHandlers {
	return &ViewHandlers{views: views, recorder: recorder}
}

func (h *ViewHandlers) Register(r gin.IRouter) {
	g := r.Group("/views/:id")
	g.GET("/events", h.StreamEvents)
	g.POST("/navigate/:section", h.Navigate)
	g.DELETE("", h.Unmount)
}

// StreamEvents forwards the view's events as Server-Sent Events. The view is
// unmounted when the stream ends, whichever side closes it.
func (h *ViewHandlers) StreamEvents(c *gin.Context) {
	id := c.Param("id")

	events, err := h.views.Attach(id)
	switch {
	case errors.Is(err, page.ErrViewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "view not found"})
		return
	case errors.Is(err, page.ErrAlreadyAttached):
		c.JSON(http.StatusConflict, gin.H{"error": "view already streaming"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer func() {
		if err := h.views.Unmount(id); err == nil {
			slog.Debug("View unmounted after stream ended", "view_id", id)
		}
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent(string(e.Type), e.Data)
			c.Writer.Flush()
		case <-ctx.Done():
			return
		}
	}
}

// Navigate applies a navigation request. Unknown sections and sections
// without an anchor are a no-op, never an error.
func (h *ViewHandlers) Navigate(c *gin.Context) {
	view, ok := h.views.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "view not found"})
		return
	}

	applied := false
	if id, err := section.Parse(c.Param("section")); err == nil {
		applied = view.Navigate(id)
		if applied && h.recorder != nil {
			if err := h.recorder.RecordNavigation(c.Request.Context(), view.ID, id, time.Now()); err != nil {
				slog.Warn("Failed to record navigation", "view_id", view.ID, "section", id, "error", err)
			}
		}
	} else {
		slog.Debug("Navigation to unknown section ignored", "view_id", view.ID, "section", c.Param("section"))
	}

	active := view.Active()
	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "nav.html", gin.H{
			"view": view.Snapshot(),
			"nav":  NavItems(active),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active, "applied": applied})
}

func (h *ViewHandlers) Unmount(c *gin.Context) {
	if err := h.views.Unmount(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "view not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
