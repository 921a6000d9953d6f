package web

import (
	"context"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vacmar/portfolio/internal/config"
	"github.com/vacmar/portfolio/internal/content"
	"github.com/vacmar/portfolio/internal/roadmap"
)

func newTestRegistry(t *testing.T, idle time.Duration) (*Registry, *time.Time) {
	t.Helper()
	store, err := content.DefaultRoadmap()
	require.NoError(t, err)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(store, roadmap.Options{Particles: -1}, idle, zap.NewNop(), NewMetrics())
	r.now = func() time.Time { return now }
	t.Cleanup(r.Close)
	return r, &now
}

func TestRegistry_AcquireAndSweep(t *testing.T) {
	r, now := newTestRegistry(t, time.Minute)

	a := r.Acquire("")
	require.NotEmpty(t, a.id)
	assert.Same(t, a, r.Acquire(a.id))
	b := r.Acquire("forged-id")
	assert.NotEqual(t, "forged-id", b.id, "unknown ids get a fresh view")
	assert.Equal(t, 2, r.Len())

	*now = now.Add(45 * time.Second)
	r.Acquire(a.id)
	*now = now.Add(30 * time.Second)

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())
	assert.False(t, b.view.Mounted())
	assert.True(t, a.view.Mounted())
}

func TestRegistry_SweepReleasesScrollLock(t *testing.T) {
	r, now := newTestRegistry(t, time.Minute)
	v := r.Acquire("")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(headerScrollY, "300")
	v.doc.report(req)
	require.NoError(t, v.view.Select(1))
	require.True(t, v.view.ScrollLock().Locked())

	*now = now.Add(2 * time.Minute)
	r.Sweep()
	assert.False(t, v.view.ScrollLock().Locked())
}

func TestRegistry_RunStopsWithContext(t *testing.T) {
	r, _ := newTestRegistry(t, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRegistry_CloseUnmountsAll(t *testing.T) {
	r, _ := newTestRegistry(t, time.Minute)
	a, b := r.Acquire(""), r.Acquire("")
	r.Close()
	assert.Zero(t, r.Len())
	assert.False(t, a.view.Mounted())
	assert.False(t, b.view.Mounted())
}

func TestPageDocument(t *testing.T) {
	d := newPageDocument()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(headerScrollX, "12.6")
	req.Header.Set(headerScrollY, "480")
	req.Header.Set(headerScrollbarWidth, "junk")
	d.report(req)

	x, y := d.ScrollOffset()
	assert.Equal(t, 13, x)
	assert.Equal(t, 480, y)
	assert.Zero(t, d.ScrollbarWidth())
	assert.Nil(t, d.drain())

	lock := roadmap.NewScrollLock(d)
	lock.Lock()
	assert.Equal(t, map[string]any{eventScrollLock: map[string]int{"padding": 0}}, d.drain())

	lock.Unlock()
	assert.Equal(t, map[string]any{eventScrollRestore: map[string]int{"x": 13, "y": 480}}, d.drain())
	assert.Nil(t, d.drain())
}

func TestPageDocument_RejectsOutOfRangeMetrics(t *testing.T) {
	d := newPageDocument()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(headerScrollY, "480")
	d.report(req)

	for _, raw := range []string{"Inf", "+Inf", "NaN", "1e300", "-5", "2147483648"} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(headerScrollX, raw)
		req.Header.Set(headerScrollY, raw)
		d.report(req)

		x, y := d.ScrollOffset()
		assert.Zero(t, x, raw)
		assert.Equal(t, 480, y, raw)
	}
}

func TestSMTPMailer(t *testing.T) {
	msg := ContactMessage{Name: "Eve\r\nBcc: all@example.com", Email: "eve@example.com", Message: "hi"}

	m := NewSMTPMailer(config.SMTP{Host: "smtp.example.com", Port: "587"}, "owner@example.com", zap.NewNop())
	assert.ErrorIs(t, m.Send(context.Background(), msg), ErrMailNotConfigured)

	m = NewSMTPMailer(config.SMTP{Host: "smtp.example.com", Port: "587", User: "bot@example.com", Pass: "pw"},
		"owner@example.com", zap.NewNop())
	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	m.sendMail = func(addr string, _ smtp.Auth, from string, to []string, body []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(body)
		assert.Equal(t, "bot@example.com", from)
		return nil
	}
	require.NoError(t, m.Send(context.Background(), msg))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"owner@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Portfolio Contact: Eve  Bcc: all@example.com\r\n")
	assert.Contains(t, gotMsg, "Reply-To: eve@example.com\r\n")
	headers, _, _ := strings.Cut(gotMsg, "\r\n\r\n")
	assert.NotContains(t, headers, "\r\nBcc:")
}
