package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/letsjoyn/portfolio/internal/clock"
	"github.com/letsjoyn/portfolio/internal/config"
	"github.com/letsjoyn/portfolio/internal/content"
	"github.com/letsjoyn/portfolio/internal/httpapi"
	"github.com/letsjoyn/portfolio/internal/logging"
	"github.com/letsjoyn/portfolio/internal/page"
	"github.com/letsjoyn/portfolio/internal/storage"
)

type server struct {
	cfg       *config.Config
	portfolio *content.Portfolio
	views     *page.Registry
	store     *storage.Store
	admin     *admin

	// baseCtx bounds every mounted view; it outlives individual requests.
	baseCtx      context.Context
	clockOptions []clock.Option
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// slog is not configured yet
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	portfolio, err := content.Load(cfg.ContentFile, defaultPortfolio)
	if err != nil {
		slog.Error("Failed to load content", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	adm, err := newAdmin(cfg, store)
	if err != nil {
		slog.Error("Failed to initialize admin", "error", err)
		os.Exit(1)
	}
	go adm.runRetention(ctx)

	views := page.NewRegistry(page.WithStaleAfter(cfg.ViewStaleAfter))
	go views.Run(ctx)

	s := &server{
		cfg:       cfg,
		portfolio: portfolio,
		views:     views,
		store:     store,
		admin:     adm,
		baseCtx:   ctx,
		clockOptions: []clock.Option{
			clock.WithFormatter(clock.NewZoneFormatter(cfg.ClockTimezone)),
			clock.WithInterval(cfg.ClockInterval),
		},
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutdown signal received, cleaning up...")

	// Closing the views ends every open event stream so Shutdown can drain.
	views.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}

func (s *server) routes() *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(s.cfg.TemplatesGlob)

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.Use(s.admin.visitorTracking())

	// Home page route: every render mounts a fresh page view
	r.GET("/", s.index)

	httpapi.NewViewHandlers(s.views, s.store).Register(r)

	r.GET("/healthz", func(c *gin.Context) {
		if err := s.store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "views": s.views.Len()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.admin.setupRoutes(r)
	return r
}

func (s *server) index(c *gin.Context) {
	view := page.NewView(page.Config{
		Anchors:      s.portfolio.Sections(),
		Background:   page.DefaultBackground(),
		ClockOptions: s.clockOptions,
	})
	if err := s.views.Mount(s.baseCtx, view); err != nil {
		slog.Error("Failed to mount view", "error", err)
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}

	visitors, err := s.store.VisitorCount(c.Request.Context())
	if err != nil {
		slog.Warn("Failed to count visitors", "error", err)
	}

	state := view.Snapshot()
	background, err := json.Marshal(state.Background)
	if err != nil {
		slog.Warn("Failed to encode background config", "error", err)
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"view":       state,
		"nav":        httpapi.NavItems(state.Active),
		"portfolio":  s.portfolio,
		"visitors":   visitors,
		"clockLabel": s.cfg.ClockLabel,
		"background": string(background),
	})
}
