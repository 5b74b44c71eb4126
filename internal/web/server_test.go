package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henri123lemoine/aligns/internal/config"
	"github.com/henri123lemoine/aligns/internal/dataset"
)

func newTestServer(t *testing.T, cfg *config.Config, tbl *dataset.Table) (*Server, *httptest.Server) {
	t.Helper()
	s := New(cfg, tbl)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

func get(t *testing.T, c *http.Client, u string) (*http.Response, string) {
	t.Helper()
	resp, err := c.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func navigate(t *testing.T, c *http.Client, base, target, source string) (*http.Response, string) {
	t.Helper()
	resp, err := c.PostForm(base+"/navigate", url.Values{"view": {target}, "source": {source}})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, config.DefaultConfig(), dataset.Sample())

	resp, body := get(t, newClient(t), ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestIndexStartsAtHome(t *testing.T) {
	s, ts := newTestServer(t, config.DefaultConfig(), dataset.Sample())

	resp, body := get(t, newClient(t), ts.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	assert.Contains(t, body, `data-view="home"`)
	assert.Contains(t, body, "ALIGNs: Psychometric Analysis")
	assert.Contains(t, body, "Navigation")
	assert.Contains(t, body, "Go to")
	assert.Contains(t, body, "© 2025 ALIGNs")
	assert.Contains(t, body, `value="home" checked`)
	assert.Contains(t, body, `class="wide"`)
	assert.Equal(t, 1, s.Sessions())
}

func TestSessionCookieReused(t *testing.T) {
	s, ts := newTestServer(t, config.DefaultConfig(), dataset.Sample())
	c := newClient(t)

	get(t, c, ts.URL+"/")
	get(t, c, ts.URL+"/")
	assert.Equal(t, 1, s.Sessions())

	get(t, newClient(t), ts.URL+"/")
	assert.Equal(t, 2, s.Sessions())
}

func TestIdleSessionsSwept(t *testing.T) {
	s := New(config.DefaultConfig(), dataset.Sample())
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	h := s.Handler()

	serve := func(cookie *http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		return rec
	}

	// cookieless requests each start a session
	for i := 0; i < 50; i++ {
		serve(nil)
	}
	require.Equal(t, 50, s.Sessions())

	clock = clock.Add(20 * time.Minute)
	cookies := serve(nil).Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, 51, s.Sessions())

	clock = clock.Add(15 * time.Minute)
	assert.Equal(t, 50, s.sweep(clock, 30*time.Minute))
	assert.Equal(t, 1, s.Sessions())

	// a request refreshes last-seen, and the cookie keeps its session
	clock = clock.Add(10 * time.Minute)
	assert.Empty(t, serve(cookies[0]).Result().Cookies())
	clock = clock.Add(25 * time.Minute)
	assert.Zero(t, s.sweep(clock, 30*time.Minute))
	assert.Equal(t, 1, s.Sessions())
}

func TestSweepLoopStopsWithoutExpiry(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.SessionIdle = "0"
	s := New(cfg, dataset.Sample())

	done := make(chan struct{})
	go func() {
		s.sweepLoop(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep loop ran with expiry disabled")
	}
}

func TestSweepLoopExpiresSessions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.SessionIdle = "20ms"
	s, ts := newTestServer(t, cfg, dataset.Sample())
	get(t, newClient(t), ts.URL+"/")
	require.Equal(t, 1, s.Sessions())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.sweepLoop(ctx)

	assert.Eventually(t, func() bool { return s.Sessions() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestSidebarNavigation(t *testing.T) {
	_, ts := newTestServer(t, config.DefaultConfig(), dataset.Sample())
	c := newClient(t)

	resp, body := navigate(t, c, ts.URL, "explore", "sidebar")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `data-view="explore"`)
	assert.Contains(t, body, "Data Exploration")

	// state sticks across plain reloads
	_, body = get(t, c, ts.URL+"/")
	assert.Contains(t, body, `data-view="explore"`)
}

func TestHomeButtonOpensVisualize(t *testing.T) {
	_, ts := newTestServer(t, config.DefaultConfig(), dataset.Sample())

	_, body := navigate(t, newClient(t), ts.URL, "visualize", "action")
	assert.Contains(t, body, `data-view="visualize"`)
	assert.Contains(t, body, "Sample Data Table")
	assert.Contains(t, body, "/chart/visualize.svg")
	// header row plus seven records
	assert.Equal(t, 8, strings.Count(body, "<tr>"))
	assert.Contains(t, body, `value="visualize" checked`)
}

func TestActionIgnoredAwayFromHome(t *testing.T) {
	_, ts := newTestServer(t, config.DefaultConfig(), dataset.Sample())
	c := newClient(t)

	navigate(t, c, ts.URL, "implicit-definition", "sidebar")
	_, body := navigate(t, c, ts.URL, "visualize", "action")
	assert.Contains(t, body, `data-view="implicit-definition"`)
}

func TestSplitModeLeavesSidebar(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Navigation.Mode = "split"
	_, ts := newTestServer(t, cfg, dataset.Sample())

	_, body := navigate(t, newClient(t), ts.URL, "explore-factor", "action")
	assert.Contains(t, body, `data-view="explore-factor"`)
	assert.Contains(t, body, `value="home" checked`)
}

func TestUnknownViewFallsBackToHome(t *testing.T) {
	_, ts := newTestServer(t, config.DefaultConfig(), dataset.Sample())
	c := newClient(t)

	navigate(t, c, ts.URL, "explore", "sidebar")
	_, body := navigate(t, c, ts.URL, "nonsense", "sidebar")
	assert.Contains(t, body, `data-view="home"`)
}

func TestNavigateMissingView(t *testing.T) {
	_, ts := newTestServer(t, config.DefaultConfig(), dataset.Sample())

	resp, _ := navigate(t, newClient(t), ts.URL, "", "sidebar")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	_, ts := newTestServer(t, config.DefaultConfig(), dataset.Sample())

	resp, _ := get(t, newClient(t), ts.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExploreFilter(t *testing.T) {
	_, ts := newTestServer(t, config.DefaultConfig(), dataset.Sample())
	c := newClient(t)
	navigate(t, c, ts.URL, "explore", "sidebar")

	// defaults to the first option
	_, body := get(t, c, ts.URL+"/")
	assert.Contains(t, body, "<option selected>Mood And Feelings Questionnaire</option>")
	assert.Equal(t, 2, strings.Count(body, "<tr>"))

	_, body = get(t, c, ts.URL+"/?variable="+url.QueryEscape("PROMIS Sleep Disturbance"))
	assert.Contains(t, body, "<option selected>PROMIS Sleep Disturbance</option>")
	assert.Contains(t, body, "My sleep was restless")
	assert.NotContains(t, body, "I felt down or sad")
	assert.Equal(t, 2, strings.Count(body, "<tr>"))

	_, body = get(t, c, ts.URL+"/?variable=Unknown")
	assert.Contains(t, body, "No rows")
}

func TestChartRoutes(t *testing.T) {
	_, ts := newTestServer(t, config.DefaultConfig(), dataset.Sample())
	c := newClient(t)

	for _, name := range []string{"visualize", "explore-factor"} {
		resp, body := get(t, c, ts.URL+"/chart/"+name+".svg")
		require.Equal(t, http.StatusOK, resp.StatusCode, name)
		assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
		assert.Contains(t, body, "<svg")
	}

	// both views chart the same data, untitled, so the bytes match
	_, visualize := get(t, c, ts.URL+"/chart/visualize.svg")
	_, factor := get(t, c, ts.URL+"/chart/explore-factor.svg")
	assert.Equal(t, visualize, factor)
	assert.NotContains(t, visualize, "Emotional Distress Score Distribution")

	for _, path := range []string{"/chart/home.svg", "/chart/explore.svg", "/chart/bogus.svg", "/chart/visualize.png"} {
		resp, _ := get(t, c, ts.URL+path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestEmptyDataset(t *testing.T) {
	_, ts := newTestServer(t, config.DefaultConfig(), dataset.New(nil))
	c := newClient(t)

	_, body := navigate(t, c, ts.URL, "visualize", "action")
	assert.Contains(t, body, "No rows")

	resp, body := get(t, c, ts.URL+"/chart/visualize.svg")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "No data to chart.")

	_, body = navigate(t, c, ts.URL, "explore", "sidebar")
	assert.Contains(t, body, "Data Exploration")
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:0"
	s := New(cfg, dataset.Sample())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeOnListener(t *testing.T) {
	s := New(config.DefaultConfig(), dataset.Sample())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	_, body := get(t, newClient(t), "http://"+ln.Addr().String()+"/healthz")
	assert.Equal(t, "ok", body)

	cancel()
	require.NoError(t, <-done)
}

func TestListenAndServeBadAddr(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Addr = "not-an-address"

	err := New(cfg, dataset.Sample()).ListenAndServe(context.Background())
	assert.Error(t, err)
}
