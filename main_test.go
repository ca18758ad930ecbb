package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsjoyn/portfolio/internal/clock"
	"github.com/letsjoyn/portfolio/internal/config"
	"github.com/letsjoyn/portfolio/internal/content"
	"github.com/letsjoyn/portfolio/internal/page"
	"github.com/letsjoyn/portfolio/internal/section"
	"github.com/letsjoyn/portfolio/internal/storage"
)

// 08:35 UTC is 14:05 in Asia/Kolkata.
var afternoon = time.Date(2026, 3, 14, 8, 35, 0, 0, time.UTC)

var viewIDPattern = regexp.MustCompile(`data-view-id="([0-9a-f-]+)"`)

func newTestServer(t *testing.T, p content.Portfolio) (*server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	cfg := &config.Config{
		TemplatesGlob:    "templates/*",
		ClockLabel:       "Delhi",
		VisitorRetention: 24 * time.Hour,
		AdminUsername:    "owner",
		AdminPassword:    "secret",
	}

	store, err := storage.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	portfolio, err := content.Load("", p)
	require.NoError(t, err)

	adm, err := newAdmin(cfg, store)
	require.NoError(t, err)
	adm.clock = clockwork.NewFakeClockAt(afternoon)

	views := page.NewRegistry()
	t.Cleanup(views.Close)

	s := &server{
		cfg:          cfg,
		portfolio:    portfolio,
		views:        views,
		store:        store,
		admin:        adm,
		baseCtx:      ctx,
		clockOptions: []clock.Option{clock.WithClock(clockwork.NewFakeClockAt(afternoon))},
	}
	return s, s.routes()
}

func renderIndex(t *testing.T, r *gin.Engine) (string, string) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	m := viewIDPattern.FindStringSubmatch(body)
	require.Len(t, m, 2, "page must carry its view id")
	return body, m[1]
}

func TestIndex_RendersPageAndMountsView(t *testing.T) {
	s, r := newTestServer(t, defaultPortfolio)

	body, viewID := renderIndex(t, r)

	for _, id := range section.All() {
		assert.Contains(t, body, `id="`+string(id)+`"`)
	}
	assert.Contains(t, body, `<span id="live-clock">2:05 PM</span>`)
	assert.Contains(t, body, "Places I&#39;ve Made an Impact")
	assert.Contains(t, body, "Visitors <strong>#1</strong>")
	assert.Regexp(t, `class="nav-button nav-button--active"[^>]*data-section="about"`, body)

	view, ok := s.views.Get(viewID)
	require.True(t, ok)
	assert.Equal(t, section.About, view.Active())
}

func TestIndex_DoNotTrackSkipsVisitor(t *testing.T) {
	s, r := newTestServer(t, defaultPortfolio)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	n, err := s.store.VisitorCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNavigate_HTMXSwapAndRecord(t *testing.T) {
	s, r := newTestServer(t, defaultPortfolio)
	_, viewID := renderIndex(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/views/"+viewID+"/navigate/projects", nil)
	req.Header.Set("HX-Request", "true")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Regexp(t, `class="nav-button nav-button--active"[^>]*data-section="projects"`, w.Body.String())
	assert.Equal(t, 1, strings.Count(w.Body.String(), "nav-button--active"))

	stats, err := s.store.Stats(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, []storage.SectionCount{{Section: section.Projects, Count: 1}}, stats.Navigations)
}

func TestNavigate_SectionWithoutContentIsNoop(t *testing.T) {
	p := defaultPortfolio
	p.Volunteering = nil
	s, r := newTestServer(t, p)
	body, viewID := renderIndex(t, r)
	assert.NotContains(t, body, `id="volunteering"`)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/views/"+viewID+"/navigate/volunteering", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"active":"about","applied":false}`, w.Body.String())

	view, ok := s.views.Get(viewID)
	require.True(t, ok)
	assert.Equal(t, section.About, view.Active())
}

func TestHealthz(t *testing.T) {
	_, r := newTestServer(t, defaultPortfolio)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","views":0}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	_, r := newTestServer(t, defaultPortfolio)
	renderIndex(t, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "portfolio_views_active")
	assert.Contains(t, w.Body.String(), "portfolio_clock_ticks_total")
}

func TestAdmin_DashboardRequiresLogin(t *testing.T) {
	_, r := newTestServer(t, defaultPortfolio)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestAdmin_LoginAndDashboard(t *testing.T) {
	_, r := newTestServer(t, defaultPortfolio)
	renderIndex(t, r)

	form := url.Values{"username": {"owner"}, "password": {"wrong"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	form.Set("password", "secret")
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_visitors":1`)
}

func TestAdmin_PurgeOldVisitors(t *testing.T) {
	s, _ := newTestServer(t, defaultPortfolio)
	ctx := context.Background()

	require.NoError(t, s.store.RecordVisit(ctx, storage.Visit{HashedIP: "old", Timestamp: afternoon.Add(-48 * time.Hour)}))
	require.NoError(t, s.store.RecordVisit(ctx, storage.Visit{HashedIP: "new", Timestamp: afternoon}))

	s.admin.purgeOldVisitors(ctx)

	n, err := s.store.VisitorCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestHashIPIsStableAndOpaque(t *testing.T) {
	s, _ := newTestServer(t, defaultPortfolio)

	a := s.admin.hashIP("203.0.113.7")
	assert.Equal(t, a, s.admin.hashIP("203.0.113.7"))
	assert.NotEqual(t, a, s.admin.hashIP("203.0.113.8"))
	assert.Len(t, a, 16)
}

func TestIsTrackedPath(t *testing.T) {
	assert.True(t, isTrackedPath("/"))
	for _, p := range []string{"/static/app.js", "/views/x/events", "/admin/login", "/metrics"} {
		assert.False(t, isTrackedPath(p), p)
	}
}
