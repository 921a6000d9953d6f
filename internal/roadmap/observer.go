package roadmap

import "sync"

// ObserverOptions mirror the knobs of a browser intersection observer.
type ObserverOptions struct {
	// Threshold is the visible fraction at which a marker counts as
	// intersecting.
	Threshold float64
	// RootMargin expands the viewport on every side, in pixels.
	RootMargin float64
}

// DefaultObserverOptions reveal a node slightly before it scrolls in.
var DefaultObserverOptions = ObserverOptions{Threshold: 0.3, RootMargin: 50}

// Marker is a zero-size, non-interactive point placed at a node's projected
// page coordinate.
type Marker struct {
	NodeID int
	At     Point
}

// Entry reports the intersection state of one marker.
type Entry struct {
	NodeID       int
	Intersecting bool
	Ratio        float64
}

// Observer watches markers and reports intersection changes in batches.
type Observer interface {
	Observe(m Marker)
	Unobserve(nodeID int)
	Disconnect()
}

// ObserverFactory builds an observer that reports to callback.
type ObserverFactory func(opts ObserverOptions, callback func([]Entry)) Observer

// ViewportUpdater is implemented by observers that compute intersection
// themselves from a viewport rectangle.
type ViewportUpdater interface {
	UpdateViewport(viewport Rect)
}

// ViewportObserver computes intersections of point markers against a
// viewport. The first update after a marker is observed always reports it;
// later updates report only changes.
type ViewportObserver struct {
	mu           sync.Mutex
	opts         ObserverOptions
	callback     func([]Entry)
	order        []int
	markers      map[int]Marker
	state        map[int]bool
	disconnected bool
}

var _ Observer = (*ViewportObserver)(nil)
var _ ViewportUpdater = (*ViewportObserver)(nil)

// NewViewportObserver is an ObserverFactory.
func NewViewportObserver(opts ObserverOptions, callback func([]Entry)) Observer {
	return &ViewportObserver{
		opts:     opts,
		callback: callback,
		markers:  make(map[int]Marker),
		state:    make(map[int]bool),
	}
}

// Observe starts watching m. Observing an id twice moves its marker.
func (o *ViewportObserver) Observe(m Marker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disconnected {
		return
	}
	if _, ok := o.markers[m.NodeID]; !ok {
		o.order = append(o.order, m.NodeID)
	}
	o.markers[m.NodeID] = m
	delete(o.state, m.NodeID)
}

// Unobserve stops watching a marker.
func (o *ViewportObserver) Unobserve(nodeID int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.markers[nodeID]; !ok {
		return
	}
	delete(o.markers, nodeID)
	delete(o.state, nodeID)
	for i, id := range o.order {
		if id == nodeID {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// Disconnect drops every marker; later calls are no-ops.
func (o *ViewportObserver) Disconnect() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.disconnected = true
	o.order = nil
	o.markers = map[int]Marker{}
	o.state = map[int]bool{}
}

// Observing reports how many markers are watched.
func (o *ViewportObserver) Observing() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.order)
}

// UpdateViewport recomputes intersections and delivers one batch with the
// entries that are new or changed. The callback runs without the observer
// lock held.
func (o *ViewportObserver) UpdateViewport(viewport Rect) {
	o.mu.Lock()
	if o.disconnected {
		o.mu.Unlock()
		return
	}
	root := viewport.Expand(o.opts.RootMargin)
	var batch []Entry
	for _, id := range o.order {
		m := o.markers[id]
		ratio := 0.0
		if !viewport.Empty() && root.Contains(m.At) {
			ratio = 1
		}
		in := ratio > 0 && ratio >= o.opts.Threshold
		prev, seen := o.state[id]
		if seen && prev == in {
			continue
		}
		o.state[id] = in
		batch = append(batch, Entry{NodeID: id, Intersecting: in, Ratio: ratio})
	}
	cb := o.callback
	o.mu.Unlock()

	if len(batch) > 0 && cb != nil {
		cb(batch)
	}
}
