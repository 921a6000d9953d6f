package tui

import "sync"

// listDocument is the scrollable roadmap list. Its offset is the top of
// the viewport in logical surface units.
type listDocument struct {
	mu     sync.Mutex
	offset int
	frozen bool
}

func (d *listDocument) ScrollOffset() (x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return 0, d.offset
}

// ScrollbarWidth is zero; the terminal draws no scrollbar.
func (d *listDocument) ScrollbarWidth() int { return 0 }

func (d *listDocument) SetOverflowHidden(hidden bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frozen = hidden
}

func (d *listDocument) SetPaddingRight(int) {}

func (d *listDocument) ScrollTo(_, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.offset = y
}

func (d *listDocument) top() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.offset
}

func (d *listDocument) scroll(y int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frozen {
		return false
	}
	d.offset = y
	return true
}
