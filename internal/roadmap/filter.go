package roadmap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFilter is returned by ParseFilter for values outside the tab set.
var ErrUnknownFilter = errors.New("unknown roadmap filter")

// Filter selects which kinds of node are displayed.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterLearning Filter = "learning"
	FilterProject  Filter = "project"
)

// Filters lists the tabs in display order.
var Filters = []Filter{FilterAll, FilterLearning, FilterProject}

// ParseFilter converts a tab value into a Filter.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Filters {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFilter)
}

// Matches reports whether n belongs to the filtered subset.
func (f Filter) Matches(n Node) bool {
	if f == FilterAll {
		return true
	}
	return Kind(f) == n.Kind
}

// Label is the tab caption.
func (f Filter) Label() string {
	switch f {
	case FilterLearning:
		return "Learning Path"
	case FilterProject:
		return "Major Projects"
	}
	return "All Items"
}
