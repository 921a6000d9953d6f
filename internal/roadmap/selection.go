package roadmap

import (
	"fmt"
	"sync"
)

// Selection is the detail modal: closed, or open on exactly one node.
// Opening from closed locks page scroll; closing releases it.
type Selection struct {
	mu       sync.Mutex
	store    *Store
	lock     *ScrollLock
	selected int
	open     bool
}

// NewSelection returns a closed selection over store. lock may be nil.
func NewSelection(store *Store, lock *ScrollLock) *Selection {
	if lock == nil {
		lock = NewScrollLock(nil)
	}
	return &Selection{store: store, lock: lock}
}

// Select opens the modal on id, or re-targets it when already open. Ids
// resolve against the full store, not the filtered subset. An unknown id
// leaves the modal as it was and returns ErrUnknownNode.
func (s *Selection) Select(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.store.Lookup(id); !ok {
		return fmt.Errorf("select %d: %w", id, ErrUnknownNode)
	}
	if !s.open {
		s.lock.Lock()
		s.open = true
	}
	s.selected = id
	return nil
}

// Close shuts the modal. Closing a closed modal does nothing.
func (s *Selection) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	s.open = false
	s.selected = 0
	s.lock.Unlock()
}

// Teardown closes the modal and releases the scroll lock unconditionally.
func (s *Selection) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.selected = 0
	s.lock.Unlock()
}

// IsOpen reports whether the modal is showing.
func (s *Selection) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Current returns the node the modal shows.
func (s *Selection) Current() (Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return Node{}, false
	}
	return s.store.Lookup(s.selected)
}

// Links returns the nodes listed under "Connected To" for the open node.
func (s *Selection) Links() []Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil
	}
	return s.store.Connections(s.selected)
}
