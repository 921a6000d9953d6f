package roadmap

import "sync"

// Document is the page the modal sits on: its scroll position, the width
// its scrollbar takes, and the styles a scroll lock toggles.
type Document interface {
	ScrollOffset() (x, y int)
	ScrollbarWidth() int
	SetOverflowHidden(hidden bool)
	SetPaddingRight(px int)
	ScrollTo(x, y int)
}

// ScrollLock freezes page scrolling while a modal is open and puts the page
// back exactly where it was when released. Lock and Unlock are idempotent.
type ScrollLock struct {
	mu     sync.Mutex
	doc    Document
	locked bool
	x, y   int
	gutter int
}

// NewScrollLock returns an unlocked lock over doc. A nil doc makes every
// call a no-op.
func NewScrollLock(doc Document) *ScrollLock {
	return &ScrollLock{doc: doc}
}

// Lock captures the scroll offset and scrollbar width, hides overflow and
// pads the page by the scrollbar width so content does not reflow.
func (l *ScrollLock) Lock() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locked || l.doc == nil {
		return
	}
	l.x, l.y = l.doc.ScrollOffset()
	l.gutter = l.doc.ScrollbarWidth()
	l.doc.SetOverflowHidden(true)
	l.doc.SetPaddingRight(l.gutter)
	l.locked = true
}

// Unlock removes the lock styles and scrolls back to the captured offset.
func (l *ScrollLock) Unlock() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.locked {
		return
	}
	l.doc.SetOverflowHidden(false)
	l.doc.SetPaddingRight(0)
	l.doc.ScrollTo(l.x, l.y)
	l.locked = false
}

// Locked reports whether the page is currently locked.
func (l *ScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.locked
}

// Captured returns the offset and scrollbar width recorded by the last Lock.
func (l *ScrollLock) Captured() (x, y, gutter int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.x, l.y, l.gutter
}
