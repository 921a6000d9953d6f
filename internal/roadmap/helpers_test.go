package roadmap_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vacmar/portfolio/internal/content"
	"github.com/vacmar/portfolio/internal/roadmap"
)

func defaultStore(t *testing.T) *roadmap.Store {
	t.Helper()
	store, err := content.DefaultRoadmap()
	require.NoError(t, err)
	return store
}

func ids(nodes []roadmap.Node) []int {
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func intPtr(v int) *int { return &v }

// fakeDocument records what a scroll lock does to the page.
type fakeDocument struct {
	mu        sync.Mutex
	x, y      int
	scrollbar int
	overflow  bool
	padding   int
	scrollTos int
}

func (d *fakeDocument) ScrollOffset() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.x, d.y
}

func (d *fakeDocument) ScrollbarWidth() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrollbar
}

func (d *fakeDocument) SetOverflowHidden(hidden bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overflow = hidden
}

func (d *fakeDocument) SetPaddingRight(px int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.padding = px
}

func (d *fakeDocument) ScrollTo(x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.x, d.y = x, y
	d.scrollTos++
}

// manualScheduler holds scheduled functions until the test fires them.
type manualScheduler struct {
	mu      sync.Mutex
	delays  []time.Duration
	pending []func()
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	s.pending = append(s.pending, f)
}

func (s *manualScheduler) fire() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, f := range pending {
		f()
	}
}

// recordingObserver keeps the callback so tests can deliver entries by hand.
type recordingObserver struct {
	callback     func([]roadmap.Entry)
	observed     []int
	unobserved   []int
	disconnected bool
}

func (o *recordingObserver) Observe(m roadmap.Marker) { o.observed = append(o.observed, m.NodeID) }
func (o *recordingObserver) Unobserve(id int)         { o.unobserved = append(o.unobserved, id) }
func (o *recordingObserver) Disconnect()              { o.disconnected = true }

type observerLog struct {
	observers []*recordingObserver
}

func (l *observerLog) factory(_ roadmap.ObserverOptions, cb func([]roadmap.Entry)) roadmap.Observer {
	o := &recordingObserver{callback: cb}
	l.observers = append(l.observers, o)
	return o
}

func (l *observerLog) last() *recordingObserver { return l.observers[len(l.observers)-1] }

func intersecting(ids ...int) []roadmap.Entry {
	out := make([]roadmap.Entry, len(ids))
	for i, id := range ids {
		out[i] = roadmap.Entry{NodeID: id, Intersecting: true, Ratio: 1}
	}
	return out
}

func leaving(ids ...int) []roadmap.Entry {
	out := make([]roadmap.Entry, len(ids))
	for i, id := range ids {
		out[i] = roadmap.Entry{NodeID: id}
	}
	return out
}
