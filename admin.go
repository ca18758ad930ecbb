// admin.go - privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/letsjoyn/portfolio/internal/config"
	"github.com/letsjoyn/portfolio/internal/storage"
)

const retentionSweepInterval = 24 * time.Hour

type admin struct {
	store     *storage.Store
	clock     clockwork.Clock
	token     string
	salt      string
	username  string
	password  string
	retention time.Duration
}

// newAdmin generates a fresh session token and IP hashing salt per process.
func newAdmin(cfg *config.Config, store *storage.Store) (*admin, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}
	salt, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}

	a := &admin{
		store:     store,
		clock:     clockwork.NewRealClock(),
		token:     token,
		salt:      salt,
		username:  cfg.AdminUsername,
		password:  cfg.AdminPassword,
		retention: cfg.VisitorRetention,
	}

	// Default credentials for development only
	if a.username == "" || a.password == "" {
		if gin.Mode() == gin.DebugMode {
			slog.Warn("Using default admin credentials. Set ADMIN_USERNAME and ADMIN_PASSWORD.")
			a.username, a.password = "admin", "admin123"
		} else {
			slog.Warn("Admin login disabled: ADMIN_USERNAME and ADMIN_PASSWORD not set")
		}
	}

	slog.Info("Admin access available at /admin/login")
	if gin.Mode() == gin.DebugMode {
		slog.Debug("Admin token (dev only)", "token", a.token)
	}
	return a, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashIP is stable per IP for the lifetime of the process.
func (a *admin) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (a *admin) loginEnabled() bool {
	return a.username != "" && a.password != ""
}

func (a *admin) checkCredentials(username, password string) bool {
	if !a.loginEnabled() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

func (a *admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// visitorTracking records page requests with a hashed IP. Static assets,
// admin pages, view traffic and DNT requests are skipped.
func (a *admin) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || !isTrackedPath(path) {
			c.Next()
			return
		}

		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		visit := storage.Visit{
			HashedIP:  a.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: a.clock.Now(),
		}
		if err := a.store.RecordVisit(c.Request.Context(), visit); err != nil {
			slog.Error("Error recording visitor", "error", err)
		}
		c.Next()
	}
}

func isTrackedPath(path string) bool {
	for _, prefix := range []string{"/static/", "/images/", "/admin/", "/views/", "/favicon", "/privacy", "/metrics", "/healthz"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// runRetention purges visitor rows older than the retention window, once at
// start and then daily, until ctx is cancelled.
func (a *admin) runRetention(ctx context.Context) {
	a.purgeOldVisitors(ctx)

	ticker := a.clock.NewTicker(retentionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			a.purgeOldVisitors(ctx)
		}
	}
}

func (a *admin) purgeOldVisitors(ctx context.Context) {
	deleted, err := a.store.PurgeVisitorsBefore(ctx, a.clock.Now().Add(-a.retention))
	if err != nil {
		slog.Error("Error cleaning up old visitor data", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("Privacy cleanup: removed old visitor records", "count", deleted, "retention", a.retention)
	}
}

func (a *admin) setupRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"retention": a.retention,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if a.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie("admin_token", a.token, 3600*24, "/admin", "", false, true)
			slog.Info("Admin login successful", "client", a.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}

		slog.Warn("Failed admin login attempt", "client", a.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(a.authMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), a.clock.Now())
		if err != nil {
			slog.Error("Error loading admin stats", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), a.clock.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	adminGroup.POST("/privacy/purge", func(c *gin.Context) {
		a.purgeOldVisitors(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup completed"})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), a.clock.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=portfolio-stats.json")
		slog.Info("Admin stats exported", "client", a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
