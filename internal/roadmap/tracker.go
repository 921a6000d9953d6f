package roadmap

import (
	"slices"
	"sync"
)

// TrackerOptions configure a Tracker.
type TrackerOptions struct {
	Observer ObserverOptions
	// RemoveOnExit drops ids when their marker leaves the viewport. Off by
	// default: once revealed, a node stays revealed until the next filter
	// change.
	RemoveOnExit bool
}

// DefaultTrackerOptions use sticky visibility.
var DefaultTrackerOptions = TrackerOptions{Observer: DefaultObserverOptions}

// Tracker maintains the set of node ids whose markers have intersected the
// viewport. Each call to Track starts a new observation generation; callbacks
// from older generations are ignored.
type Tracker struct {
	mu          sync.Mutex
	newObserver ObserverFactory
	opts        TrackerOptions

	observer    Observer
	generation  uint64
	handles     map[int]Marker
	visible     map[int]struct{}
	viewport    Rect
	hasViewport bool
	disposed    bool
}

// NewTracker returns a tracker that builds observers with factory. A nil
// factory uses NewViewportObserver.
func NewTracker(factory ObserverFactory, opts TrackerOptions) *Tracker {
	if factory == nil {
		factory = NewViewportObserver
	}
	return &Tracker{
		newObserver: factory,
		opts:        opts,
		handles:     make(map[int]Marker),
		visible:     make(map[int]struct{}),
	}
}

// Track replaces the observed subset. Markers from the previous subset are
// unobserved and their observer disconnected before the new ones are
// created. The visible set is left alone; see Reset.
func (t *Tracker) Track(nodes []Node, surface Surface) {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	stale := t.detachLocked()

	t.generation++
	gen := t.generation
	obs := t.newObserver(t.opts.Observer, func(entries []Entry) {
		t.deliver(gen, entries)
	})
	t.observer = obs
	markers := make([]Marker, 0, len(nodes))
	for _, n := range nodes {
		m := Marker{NodeID: n.ID, At: surface.Project(n.Position)}
		t.handles[n.ID] = m
		markers = append(markers, m)
	}
	t.mu.Unlock()

	stale.release()
	for _, m := range markers {
		obs.Observe(m)
	}
}

// Refresh re-applies the last known viewport to the current observer, the
// way a browser reports the initial state of freshly observed targets.
func (t *Tracker) Refresh() {
	t.mu.Lock()
	if t.disposed || !t.hasViewport {
		t.mu.Unlock()
		return
	}
	viewport, obs := t.viewport, t.observer
	t.mu.Unlock()

	if u, ok := obs.(ViewportUpdater); ok {
		u.UpdateViewport(viewport)
	}
}

// Scroll forwards a new viewport to the current observer, when it computes
// intersections itself.
func (t *Tracker) Scroll(viewport Rect) {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	t.viewport, t.hasViewport = viewport, true
	obs := t.observer
	t.mu.Unlock()

	if u, ok := obs.(ViewportUpdater); ok {
		u.UpdateViewport(viewport)
	}
}

// Reset empties the visible set, starting a new visibility epoch.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible = make(map[int]struct{})
}

// Dispose tears down the observation. Callbacks arriving afterwards are
// dropped.
func (t *Tracker) Dispose() {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	stale := t.detachLocked()
	t.disposed = true
	t.mu.Unlock()

	stale.release()
}

// Deliver feeds entries from the current observer generation. It is what
// observers call back into, exposed for observers driven from outside the
// process such as a browser reporting intersections.
func (t *Tracker) Deliver(entries []Entry) {
	t.mu.Lock()
	gen := t.generation
	t.mu.Unlock()
	t.deliver(gen, entries)
}

func (t *Tracker) deliver(gen uint64, entries []Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed || gen != t.generation {
		return
	}
	for _, e := range entries {
		if _, tracked := t.handles[e.NodeID]; !tracked {
			continue
		}
		if e.Intersecting {
			t.visible[e.NodeID] = struct{}{}
		} else if t.opts.RemoveOnExit {
			delete(t.visible, e.NodeID)
		}
	}
}

// observation is a detached observer with the ids it was watching.
type observation struct {
	observer Observer
	ids      []int
}

// detachLocked unhooks the current observation from the tracker. The caller
// releases it after dropping the lock so observers may call back freely.
func (t *Tracker) detachLocked() observation {
	old := observation{observer: t.observer}
	for id := range t.handles {
		old.ids = append(old.ids, id)
	}
	t.observer = nil
	t.handles = make(map[int]Marker)
	return old
}

func (o observation) release() {
	if o.observer == nil {
		return
	}
	for _, id := range o.ids {
		o.observer.Unobserve(id)
	}
	o.observer.Disconnect()
}

// IsVisible reports whether id has been revealed in the current epoch.
func (t *Tracker) IsVisible(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.visible[id]
	return ok
}

// Visible returns the revealed ids in ascending order.
func (t *Tracker) Visible() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]int, 0, len(t.visible))
	for id := range t.visible {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Markers returns the live marker handles in ascending id order.
func (t *Tracker) Markers() []Marker {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Marker, 0, len(t.handles))
	for _, m := range t.handles {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b Marker) int { return a.NodeID - b.NodeID })
	return out
}

// Disposed reports whether Dispose has run.
func (t *Tracker) Disposed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.disposed
}
