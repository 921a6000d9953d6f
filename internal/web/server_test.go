package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vacmar/portfolio/internal/config"
	"github.com/vacmar/portfolio/internal/content"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []ContactMessage
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		Port:            "8080",
		Mode:            "test",
		StaticDir:       dir,
		ImagesDir:       dir,
		AudioDir:        dir,
		ResumePath:      filepath.Join(dir, "resume.pdf"),
		SessionKey:      strings.Repeat("k", 32),
		ViewIdleTimeout: time.Minute,
		ToEmail:         "owner@example.com",
		Roadmap: config.Roadmap{
			ScrollSettle: 100 * time.Millisecond,
			Particles:    15,
			Seed:         1,
		},
	}
}

func newTestServer(t *testing.T, cfg config.Config, opts ...Option) *Server {
	t.Helper()
	store, err := content.DefaultRoadmap()
	require.NoError(t, err)
	s, err := New(cfg, store, zap.NewNop(), opts...)
	require.NoError(t, err)
	t.Cleanup(s.views.Close)
	return s
}

// browser carries the session cookie between requests.
type browser struct {
	t       *testing.T
	h       http.Handler
	cookies []*http.Cookie
}

func newBrowser(t *testing.T, s *Server) *browser {
	return &browser{t: t, h: s.Handler()}
}

func (b *browser) do(method, path string, form url.Values, headers map[string]string) *httptest.ResponseRecorder {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("HX-Request", "true")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)
	if cs := rec.Result().Cookies(); len(cs) > 0 {
		b.cookies = cs
	}
	return rec
}

func viewportValues(scrollY int) url.Values {
	return url.Values{
		"scroll_x":      {"0"},
		"scroll_y":      {strconv.Itoa(scrollY)},
		"width":         {"1000"},
		"height":        {"100"},
		"canvas_left":   {"0"},
		"canvas_top":    {"0"},
		"canvas_width":  {"1000"},
		"canvas_height": {"1000"},
	}
}

func TestIndex_MountsOneViewPerSession(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	b := newBrowser(t, s)

	rec := b.do(http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Development Roadmap")
	assert.Contains(t, body, "All Items")
	assert.Contains(t, body, "Learning Path")
	assert.Contains(t, body, "Major Projects")
	assert.Contains(t, body, `id="roadmap-svg"`)
	assert.Contains(t, body, `hx-get="/roadmap/nodes/7"`)
	assert.Contains(t, body, `rel="noopener noreferrer"`)
	require.NotEmpty(t, b.cookies)
	assert.Equal(t, 1, s.views.Len())

	b.do(http.MethodGet, "/roadmap", nil, nil)
	assert.Equal(t, 1, s.views.Len(), "the session cookie brings the visitor back to the same view")

	newBrowser(t, s).do(http.MethodGet, "/", nil, nil)
	assert.Equal(t, 2, s.views.Len())
}

func TestFilter_ResetsAndSchedulesScroll(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	b := newBrowser(t, s)

	rec := b.do(http.MethodPost, "/roadmap/viewport", viewportValues(0), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, strings.Count(rec.Body.String(), `class="roadmap-node revealed"`))

	rec = b.do(http.MethodPost, "/roadmap/filter/project", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"roadmap:scroll":{"delay":100}}`, rec.Header().Get("HX-Trigger-After-Settle"))
	body := rec.Body.String()
	assert.Contains(t, body, `roadmap-tab active`)
	assert.Contains(t, body, `data-node-id="7"`)
	assert.NotContains(t, body, `data-node-id="1"`)
	assert.NotContains(t, body, "revealed", "a new filter starts with nothing revealed")

	rec = b.do(http.MethodPost, "/roadmap/viewport", viewportValues(550), nil)
	assert.Equal(t, 3, strings.Count(rec.Body.String(), `class="roadmap-node revealed"`))

	rec = b.do(http.MethodPost, "/roadmap/filter/everything", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown roadmap filter")
}

func TestViewport_RejectsBadInput(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	b := newBrowser(t, s)

	form := viewportValues(0)
	form.Set("canvas_width", "0")
	rec := b.do(http.MethodPost, "/roadmap/viewport", form, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHover_LabelsAndTouch(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	b := newBrowser(t, s)
	b.do(http.MethodPost, "/roadmap/viewport", viewportValues(0), nil)

	rec := b.do(http.MethodPost, "/roadmap/hover/2", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ">React Ecosystem</text>")
	assert.Equal(t, 1, strings.Count(rec.Body.String(), `class="roadmap-label"`))

	rec = b.do(http.MethodPost, "/roadmap/hover/0", nil, map[string]string{
		"User-Agent": "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148",
	})
	assert.Equal(t, 2, strings.Count(rec.Body.String(), `class="roadmap-label"`), "touch devices label every revealed node")

	rec = b.do(http.MethodPost, "/roadmap/hover/x", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReveal_FromBrowserObserver(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	b := newBrowser(t, s)

	rec := b.do(http.MethodPost, "/roadmap/reveal", url.Values{"id": {"4", "99"}}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, strings.Count(rec.Body.String(), `class="roadmap-node revealed"`))
	assert.Contains(t, rec.Body.String(), `class="roadmap-node revealed" data-node-id="4"`)
}

func TestSectionEntered_KeepsRevealed(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	b := newBrowser(t, s)
	b.do(http.MethodPost, "/roadmap/viewport", viewportValues(0), nil)

	rec := b.do(http.MethodPost, "/roadmap/section", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, strings.Count(rec.Body.String(), `class="roadmap-node revealed"`))
}

func TestModal_LockRetargetRestore(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	b := newBrowser(t, s)

	rec := b.do(http.MethodGet, "/roadmap/nodes/7", nil, map[string]string{
		headerScrollY:        "480",
		headerScrollbarWidth: "15",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"scroll:lock":{"padding":15}}`, rec.Header().Get("HX-Trigger"))
	body := rec.Body.String()
	assert.Contains(t, body, "Elevatr")
	assert.Contains(t, body, "26%")
	assert.Contains(t, body, "Connected To")
	assert.Contains(t, body, `hx-get="/roadmap/nodes/8"`)
	assert.Contains(t, body, `href="https://github.com/vacmar/elevatr" target="_blank" rel="noopener noreferrer"`)

	// Following a connection re-targets the open modal without another lock.
	rec = b.do(http.MethodGet, "/roadmap/nodes/8", nil, map[string]string{headerScrollY: "0"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("HX-Trigger"))
	assert.Contains(t, rec.Body.String(), "Spendly")

	rec = b.do(http.MethodGet, "/roadmap/nodes/404", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not exist")

	rec = b.do(http.MethodPost, "/roadmap/close", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"scroll:restore":{"x":0,"y":480}}`, rec.Header().Get("HX-Trigger"))
	assert.Empty(t, rec.Body.String())

	rec = b.do(http.MethodPost, "/roadmap/close", nil, nil)
	assert.Empty(t, rec.Header().Get("HX-Trigger"), "closing twice is a no-op")
}

func TestModal_SelectionIgnoresFilter(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	b := newBrowser(t, s)
	b.do(http.MethodPost, "/roadmap/filter/learning", nil, nil)

	rec := b.do(http.MethodGet, "/roadmap/nodes/9", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "MindSync+")
	assert.Contains(t, rec.Body.String(), "Major Project")
}

func TestWelcome_EnterStartsAudioAndIsRemembered(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	b := newBrowser(t, s)

	body := b.do(http.MethodGet, "/", nil, nil).Body.String()
	assert.Contains(t, body, `<body class="welcome-active">`)
	assert.Contains(t, body, `id="welcome-screen"`)
	assert.Contains(t, body, "Welcome to my Portfolio and to Experience")
	assert.Contains(t, body, `hx-post="/welcome"`)
	assert.Contains(t, body, `id="audio-toggle"`)
	assert.Contains(t, body, `id="background-audio"`)

	rec := b.do(http.MethodPost, "/welcome", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.JSONEq(t, `{"audio:start":{"volume":1,"retry":1000}}`, rec.Header().Get("HX-Trigger"))

	body = b.do(http.MethodGet, "/", nil, nil).Body.String()
	assert.NotContains(t, body, `id="welcome-screen"`)
	assert.NotContains(t, body, "welcome-active")
	assert.Contains(t, body, `id="audio-toggle"`, "music stays controllable after entering")
	assert.Equal(t, 1, s.views.Len(), "entering keeps the visitor's roadmap view")

	script := b.do(http.MethodGet, "/assets/roadmap.js", nil, nil).Body.String()
	assert.Contains(t, script, "audio:start")
	assert.Contains(t, script, "audio-toggle")
	assert.Contains(t, script, ".play()")
}

func TestResume(t *testing.T) {
	cfg := testConfig(t)
	s := newTestServer(t, cfg)
	b := newBrowser(t, s)

	rec := b.do(http.MethodGet, "/resume", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not available")

	require.NoError(t, os.WriteFile(cfg.ResumePath, []byte("%PDF-1.4"), 0o600))
	rec = b.do(http.MethodGet, "/resume", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cd := rec.Header().Get("Content-Disposition")
	assert.Contains(t, cd, "attachment")
	assert.Contains(t, cd, resumeFilename)
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
}

func TestContact(t *testing.T) {
	mailer := &fakeMailer{}
	s := newTestServer(t, testConfig(t), WithMailer(mailer))
	b := newBrowser(t, s)

	rec := b.do(http.MethodPost, "/contact", url.Values{
		"fullName": {"Ada"},
		"email":    {"ada@example.com"},
		"message":  {"Hello"},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you for your message")
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Ada", mailer.sent[0].Name)

	rec = b.do(http.MethodPost, "/contact", url.Values{
		"fullName": {"Ada"},
		"email":    {"not-an-email"},
		"message":  {"Hello"},
	}, nil)
	assert.Contains(t, rec.Body.String(), "valid email")
	assert.Len(t, mailer.sent, 1)

	mailer.err = ErrMailNotConfigured
	rec = b.do(http.MethodPost, "/contact", url.Values{
		"fullName": {"Ada"},
		"email":    {"ada@example.com"},
		"message":  {"Hello"},
	}, nil)
	assert.Contains(t, rec.Body.String(), "error sending your message")

	rec = b.do(http.MethodGet, "/contact-form", nil, nil)
	assert.Contains(t, rec.Body.String(), `name="fullName"`)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	b := newBrowser(t, s)
	b.do(http.MethodPost, "/roadmap/filter/project", nil, nil)
	b.do(http.MethodGet, "/roadmap/nodes/7", nil, nil)

	rec := b.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `portfolio_roadmap_filter_total{filter="project"} 1`)
	assert.Contains(t, body, `portfolio_roadmap_select_total{type="project"} 1`)
	assert.Contains(t, body, "portfolio_roadmap_views 1")
}

func TestPageViews_SkipAssetsAndDoNotTrack(t *testing.T) {
	s := newTestServer(t, testConfig(t))
	b := newBrowser(t, s)
	b.do(http.MethodGet, "/", nil, nil)
	b.do(http.MethodGet, "/roadmap", nil, map[string]string{"DNT": "1"})
	b.do(http.MethodGet, "/healthz", nil, nil)
	b.do(http.MethodGet, "/assets/roadmap.js", nil, nil)
	b.do(http.MethodGet, "/no-such-page", nil, nil)

	body := b.do(http.MethodGet, "/metrics", nil, nil).Body.String()
	assert.Contains(t, body, `portfolio_page_views_total{route="/"} 1`)
	assert.Contains(t, body, `portfolio_page_views_total{route="unmatched"} 1`)
	assert.NotContains(t, body, `route="/roadmap"`)
	assert.NotContains(t, body, `route="/healthz"`)
	assert.NotContains(t, body, `route="/assets/*filepath"`)
}

func TestIsTouch(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, isTouch(req))

	req.Header.Set("Sec-CH-UA-Mobile", "?1")
	assert.True(t, isTouch(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Linux; Android 14) Mobile Safari")
	assert.True(t, isTouch(req))
}
