package web

import (
	"math"
	"net/http"
	"strconv"
	"sync"
)

// Request headers the page script sets on every HTMX request.
const (
	headerScrollX        = "X-Scroll-X"
	headerScrollY        = "X-Scroll-Y"
	headerScrollbarWidth = "X-Scrollbar-Width"
)

// Client events sent back in HX-Trigger headers.
const (
	eventScrollLock    = "scroll:lock"
	eventScrollRestore = "scroll:restore"
	eventRoadmapScroll = "roadmap:scroll"
	eventAudioStart    = "audio:start"
)

// pageDocument stands in for a visitor's browser page. The page reports its
// scroll metrics in request headers; style and scroll changes made by the
// scroll lock queue events that the page applies when the response lands.
type pageDocument struct {
	mu      sync.Mutex
	x, y    int
	gutter  int
	hidden  bool
	padding int
	events  map[string]any
}

func newPageDocument() *pageDocument {
	return &pageDocument{events: make(map[string]any)}
}

// report records the metrics carried by r. Missing or malformed headers
// keep the previous value.
func (d *pageDocument) report(r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.x = headerInt(r, headerScrollX, d.x)
	d.y = headerInt(r, headerScrollY, d.y)
	d.gutter = headerInt(r, headerScrollbarWidth, d.gutter)
}

func (d *pageDocument) ScrollOffset() (x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.x, d.y
}

func (d *pageDocument) ScrollbarWidth() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gutter
}

func (d *pageDocument) SetOverflowHidden(hidden bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hidden = hidden
}

func (d *pageDocument) SetPaddingRight(px int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.padding = px
	if d.hidden {
		d.events[eventScrollLock] = map[string]int{"padding": px}
	}
}

func (d *pageDocument) ScrollTo(x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.x, d.y = x, y
	d.events[eventScrollRestore] = map[string]int{"x": x, "y": y}
}

// drain returns and clears the queued events.
func (d *pageDocument) drain() map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.events) == 0 {
		return nil
	}
	out := d.events
	d.events = make(map[string]any)
	return out
}

func headerInt(r *http.Request, name string, fallback int) int {
	raw := r.Header.Get(name)
	if raw == "" {
		return fallback
	}
	// Browsers report fractional scroll offsets.
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > math.MaxInt32 {
		return fallback
	}
	return int(v + 0.5)
}
