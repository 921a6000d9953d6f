package roadmap

import (
	"fmt"
	"sync"
	"time"
)

// DefaultScrollSettle is how long a filter change waits for layout to
// settle before scrolling the canvas into view.
const DefaultScrollSettle = 100 * time.Millisecond

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Options configure a View. The zero value is usable.
type Options struct {
	// Touch shows every revealed label instead of only the hovered one.
	Touch bool
	// Tracker configures visibility tracking.
	Tracker TrackerOptions
	// NewObserver builds intersection observers; nil uses
	// NewViewportObserver.
	NewObserver ObserverFactory
	// Document is the page locked while the modal is open.
	Document Document
	// Scheduler delays the scroll after a filter change; nil uses timers.
	Scheduler Scheduler
	// Scroller brings the canvas into view. Nil disables the scroll.
	Scroller func()
	// ScrollSettle defaults to DefaultScrollSettle.
	ScrollSettle time.Duration
	// Particles is the decorative particle count; negative disables them.
	Particles int
	// Seed drives the particle field.
	Seed uint64
}

// View is the runtime state of one mounted roadmap: active filter, revealed
// nodes, hovered node and the detail modal. Its methods are safe for
// concurrent use and each is one discrete UI event.
type View struct {
	mu        sync.Mutex
	store     *Store
	opts      Options
	filter    Filter
	surface   Surface
	hovered   int
	tracker   *Tracker
	lock      *ScrollLock
	selection *Selection
	particles []Particle
	mounted   bool
}

// NewView mounts a view on store with the "all" filter active and starts
// observing its markers.
func NewView(store *Store, opts Options) *View {
	if opts.Scheduler == nil {
		opts.Scheduler = timerScheduler{}
	}
	if opts.ScrollSettle <= 0 {
		opts.ScrollSettle = DefaultScrollSettle
	}
	if opts.Tracker.Observer == (ObserverOptions{}) {
		opts.Tracker.Observer = DefaultObserverOptions
	}
	particles := opts.Particles
	if particles == 0 {
		particles = DefaultParticles
	}

	lock := NewScrollLock(opts.Document)
	v := &View{
		store:     store,
		opts:      opts,
		filter:    FilterAll,
		surface:   UnitSurface,
		tracker:   NewTracker(opts.NewObserver, opts.Tracker),
		lock:      lock,
		selection: NewSelection(store, lock),
		particles: NewParticleField(particles, opts.Seed),
		mounted:   true,
	}
	v.tracker.Track(v.store.Filter(v.filter), v.surface)
	return v
}

// Store returns the content the view draws from.
func (v *View) Store() *Store { return v.store }

// ScrollSettle is the delay applied before the post-filter scroll.
func (v *View) ScrollSettle() time.Duration { return v.opts.ScrollSettle }

// Filter returns the active filter.
func (v *View) Filter() Filter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// FilteredNodes returns the displayed subset in declaration order.
func (v *View) FilteredNodes() []Node {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.Filter(v.filter)
}

// SetFilter switches the displayed subset. The visible set is cleared so
// the new subset plays its entrance again, observation restarts on the new
// markers, and the canvas is scrolled into view once layout settles. New
// markers report on the next Scroll.
func (v *View) SetFilter(f Filter) {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	v.filter = f
	v.tracker.Reset()
	v.tracker.Track(v.store.Filter(f), v.surface)
	scroll := v.opts.Scroller
	v.mu.Unlock()

	if scroll != nil {
		v.opts.Scheduler.AfterFunc(v.opts.ScrollSettle, scroll)
	}
}

// Resize places the drawing surface inside container and re-creates the
// markers at their new page coordinates.
func (v *View) Resize(container Rect) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}
	s := FitSurface(container)
	if s == v.surface {
		return
	}
	v.surface = s
	v.tracker.Track(v.store.Filter(v.filter), v.surface)
	v.tracker.Refresh()
}

// SectionEntered restarts observation when the roadmap section comes back
// into view. Revealed nodes stay revealed.
func (v *View) SectionEntered() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}
	v.tracker.Track(v.store.Filter(v.filter), v.surface)
	v.tracker.Refresh()
}

// Scroll reports the page viewport, in page pixels.
func (v *View) Scroll(viewport Rect) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}
	v.tracker.Scroll(viewport)
}

// Reveal records intersections reported from outside, such as a browser
// intersection observer.
func (v *View) Reveal(entries []Entry) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}
	v.tracker.Deliver(entries)
}

// Visible returns the ids revealed in the current filter epoch.
func (v *View) Visible() []int { return v.tracker.Visible() }

// Surface returns the current drawing surface placement.
func (v *View) Surface() Surface {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.surface
}

// Hover marks id as under the pointer; 0 clears it.
func (v *View) Hover(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}
	v.hovered = id
}

// Hovered returns the node under the pointer, or 0.
func (v *View) Hovered() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hovered
}

// SetTouch switches between hover labels and always-on labels.
func (v *View) SetTouch(touch bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}
	v.opts.Touch = touch
}

// Select opens the detail modal on id. An unmounted view returns
// ErrUnmounted and leaves the page unlocked.
func (v *View) Select(id int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return fmt.Errorf("select %d: %w", id, ErrUnmounted)
	}
	return v.selection.Select(id)
}

// CloseModal closes the detail modal and restores page scroll.
func (v *View) CloseModal() { v.selection.Close() }

// Selected returns the node open in the modal.
func (v *View) Selected() (Node, bool) { return v.selection.Current() }

// Links returns the connections listed in the open modal.
func (v *View) Links() []Node { return v.selection.Links() }

// ScrollLock exposes the lock guarding the page while the modal is open.
func (v *View) ScrollLock() *ScrollLock { return v.lock }

// Stats counts nodes per status over the full store.
func (v *View) Stats() Stats { return v.store.Stats() }

// Scene projects the current state into drawable primitives.
func (v *View) Scene() Scene {
	v.mu.Lock()
	nodes := v.store.Filter(v.filter)
	hovered, touch := v.hovered, v.opts.Touch
	v.mu.Unlock()

	visible := make(map[int]bool)
	for _, id := range v.tracker.Visible() {
		visible[id] = true
	}
	return Project(SceneInput{
		Nodes:     nodes,
		Visible:   visible,
		Hovered:   hovered,
		Touch:     touch,
		Particles: v.particles,
	})
}

// Unmount tears the view down: observation stops and the scroll lock is
// released even if the modal never opened.
func (v *View) Unmount() {
	v.mu.Lock()
	v.mounted = false
	v.mu.Unlock()

	v.tracker.Dispose()
	v.selection.Teardown()
}

// Mounted reports whether Unmount has not yet run.
func (v *View) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}
