package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadscore/roadscore/internal/dashboard"
	dashboardhttp "github.com/roadscore/roadscore/internal/dashboard/http"
	"github.com/roadscore/roadscore/internal/dashboard/loop"
	"github.com/roadscore/roadscore/internal/observability"
	"github.com/roadscore/roadscore/internal/shared"
	"github.com/roadscore/roadscore/internal/telemetry"
	"github.com/roadscore/roadscore/internal/view"
	"github.com/roadscore/roadscore/jobs"
)

var csrfMeta = regexp.MustCompile(`<meta name="csrf-token" content="([^"]+)">`)

func newTestRouter(t *testing.T, health func(context.Context) error) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second, AppRateLimit: 100}

	store := telemetry.DefaultStore()
	sched := loop.NewManual()
	registry, err := dashboard.NewRegistry(sched, dashboard.NewFactory(sched, store, dashboard.DefaultSettings()), time.Hour)
	require.NoError(t, err)
	templates, err := view.NewEngine()
	require.NoError(t, err)
	csrf := shared.NewCSRFManager("csrf-secret")
	charts := dashboard.NewChartRenderer(store, dashboard.NewChartCache(client, time.Minute))

	return NewRouter(RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   shared.NewSessionManager(client, "roadscore_session", "session-secret", time.Hour, false),
		CSRFManager:      csrf,
		DashboardHandler: dashboardhttp.NewHandler(logger, sched, registry, charts, store, templates, csrf),
		JobHandler:       jobs.NewHandler(nil, logger),
		Metrics:          observability.NewMetrics(),
		Health:           health,
	})
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Empty(t, rr.Result().Cookies(), "health checks must not mint sessions")
}

func TestHealthzReportsDependencyFailure(t *testing.T) {
	router := newTestRouter(t, func(context.Context) error { return errors.New("redis down") })
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestStaticAssetsAreCachedWithoutSession(t *testing.T) {
	router := newTestRouter(t, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/css/dashboard.css", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/css")
	assert.Empty(t, rr.Result().Cookies())
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `roadscore_http_requests_total{code="200",route="/healthz"} 1`)
}

func TestJobsHealthMounted(t *testing.T) {
	router := newTestRouter(t, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"queue":"default"`)
}

func TestDashboardSetsSessionAndSecurityHeaders(t *testing.T) {
	router := newTestRouter(t, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "roadscore_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "default-src 'self'")
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "style-src 'self' 'unsafe-inline'")
	assert.NotEmpty(t, rr.Header().Get("Permissions-Policy"))
}

func TestSelectViewRequiresCSRFToken(t *testing.T) {
	router := newTestRouter(t, nil)

	page := httptest.NewRecorder()
	router.ServeHTTP(page, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, page.Code)
	cookie := page.Result().Cookies()[0]
	match := csrfMeta.FindStringSubmatch(page.Body.String())
	require.Len(t, match, 2, "csrf meta tag missing")

	post := func(token string) *httptest.ResponseRecorder {
		form := url.Values{"view": {"company"}}
		if token != "" {
			form.Set(shared.CSRFFormField, token)
		}
		req := httptest.NewRequest(http.MethodPost, "/dashboard/view", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusForbidden, post("").Code)
	assert.Equal(t, http.StatusForbidden, post("forged").Code)

	rr := post(match[1])
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestSelectViewAcceptsHeaderToken(t *testing.T) {
	router := newTestRouter(t, nil)

	page := httptest.NewRecorder()
	router.ServeHTTP(page, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	cookie := page.Result().Cookies()[0]
	token := csrfMeta.FindStringSubmatch(page.Body.String())[1]

	req := httptest.NewRequest(http.MethodPost, "/dashboard/view", strings.NewReader("view=company"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(shared.CSRFHeader, token)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"view":"company"`)
}
