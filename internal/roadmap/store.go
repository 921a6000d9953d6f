package roadmap

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNode is returned when a node fails validation on load.
	ErrInvalidNode = errors.New("invalid roadmap node")
	// ErrDuplicateID is returned when two nodes share an id.
	ErrDuplicateID = errors.New("duplicate roadmap node id")
	// ErrUnknownNode is returned when an id does not resolve to a node.
	ErrUnknownNode = errors.New("unknown roadmap node")
	// ErrUnmounted is returned by view operations after Unmount.
	ErrUnmounted = errors.New("roadmap view unmounted")
)

// Store is the immutable list of roadmap nodes in declaration order.
type Store struct {
	nodes []Node
	index map[int]int
}

// Stats counts nodes per status over the whole store.
type Stats struct {
	Completed int
	Current   int
	Planned   int
}

// NewStore validates nodes and returns a store holding private copies of
// them. Connections to ids that do not exist are allowed.
func NewStore(nodes []Node) (*Store, error) {
	s := &Store{
		nodes: make([]Node, 0, len(nodes)),
		index: make(map[int]int, len(nodes)),
	}
	for _, n := range nodes {
		if err := n.validate(); err != nil {
			return nil, err
		}
		if _, dup := s.index[n.ID]; dup {
			return nil, fmt.Errorf("node %d (%s): %w", n.ID, n.Title, ErrDuplicateID)
		}
		s.index[n.ID] = len(s.nodes)
		s.nodes = append(s.nodes, n.clone())
	}
	return s, nil
}

// Len returns the number of nodes.
func (s *Store) Len() int { return len(s.nodes) }

// Nodes returns a copy of every node in declaration order.
func (s *Store) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = n.clone()
	}
	return out
}

// Lookup finds a node by id.
func (s *Store) Lookup(id int) (Node, bool) {
	i, ok := s.index[id]
	if !ok {
		return Node{}, false
	}
	return s.nodes[i].clone(), true
}

// Filter returns the nodes matching f, keeping declaration order.
func (s *Store) Filter(f Filter) []Node {
	out := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		if f.Matches(n) {
			out = append(out, n.clone())
		}
	}
	return out
}

// Connections resolves the declared connections of id against the full
// store. Dangling ids are skipped.
func (s *Store) Connections(id int) []Node {
	i, ok := s.index[id]
	if !ok {
		return nil
	}
	var out []Node
	for _, target := range s.nodes[i].Connections {
		if n, ok := s.Lookup(target); ok {
			out = append(out, n)
		}
	}
	return out
}

// Stats counts completed, current and planned nodes.
func (s *Store) Stats() Stats {
	var st Stats
	for _, n := range s.nodes {
		switch n.Status {
		case StatusCompleted:
			st.Completed++
		case StatusCurrent:
			st.Current++
		case StatusPlanned:
			st.Planned++
		}
	}
	return st
}
