// Package roadmap holds the learning/project timeline shown on the portfolio
// page: the node graph, which subset is on screen, which nodes have been
// revealed, and which node is open in the detail modal.
package roadmap

import (
	"fmt"
	"strconv"
)

// Status is the progress state of a timeline node.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusCurrent   Status = "current"
	StatusPlanned   Status = "planned"
)

// Label is the capitalised badge text used in the modal.
func (s Status) Label() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusCurrent:
		return "Current"
	case StatusPlanned:
		return "Planned"
	}
	return string(s)
}

func (s Status) valid() bool {
	return s == StatusCompleted || s == StatusCurrent || s == StatusPlanned
}

// Kind separates learning milestones from projects.
type Kind string

const (
	KindLearning Kind = "learning"
	KindProject  Kind = "project"
)

func (k Kind) valid() bool {
	return k == KindLearning || k == KindProject
}

// Point is a coordinate in the 100x100 logical drawing surface, or, after
// projection, in page pixels.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Node is one entry of the roadmap. Nodes are immutable once loaded.
type Node struct {
	ID          int      `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Status      Status   `yaml:"status" json:"status"`
	Kind        Kind     `yaml:"type" json:"type"`
	Category    string   `yaml:"category" json:"category"`
	Skills      []string `yaml:"skills" json:"skills,omitempty"`
	Features    []string `yaml:"features,omitempty" json:"features,omitempty"`
	TechStack   []string `yaml:"techStack,omitempty" json:"techStack,omitempty"`
	Duration    string   `yaml:"duration" json:"duration"`
	Date        string   `yaml:"date" json:"date"`
	Progress    *int     `yaml:"progress,omitempty" json:"progress,omitempty"`
	GitHub      string   `yaml:"github,omitempty" json:"github,omitempty"`
	Demo        string   `yaml:"demo,omitempty" json:"demo,omitempty"`
	Position    Point    `yaml:"position" json:"position"`
	Connections []int    `yaml:"connections" json:"connections"`
}

// IsProject reports whether the node is a project rather than a learning step.
func (n Node) IsProject() bool { return n.Kind == KindProject }

// HasProgress reports whether a progress ring and bar apply to the node.
func (n Node) HasProgress() bool { return n.IsProject() && n.Progress != nil }

// ProgressPercent returns the progress value, or 0 when none is set.
func (n Node) ProgressPercent() int {
	if n.Progress == nil {
		return 0
	}
	return *n.Progress
}

// Glyph is the character drawn inside the node marker. Learning nodes are
// numbered by their position in the displayed subset.
func (n Node) Glyph(index int) string {
	if n.IsProject() {
		return "★"
	}
	return strconv.Itoa(index + 1)
}

// Detail is the secondary label line: completion for projects, date otherwise.
func (n Node) Detail() string {
	if n.IsProject() {
		return fmt.Sprintf("%d%% Complete", n.ProgressPercent())
	}
	return n.Date
}

// HasLinks reports whether the modal shows a project links section.
func (n Node) HasLinks() bool {
	return n.IsProject() && (n.GitHub != "" || n.Demo != "")
}

func (n Node) clone() Node {
	c := n
	c.Skills = append([]string(nil), n.Skills...)
	c.Features = append([]string(nil), n.Features...)
	c.TechStack = append([]string(nil), n.TechStack...)
	c.Connections = append([]int(nil), n.Connections...)
	if n.Progress != nil {
		p := *n.Progress
		c.Progress = &p
	}
	return c
}

func (n Node) validate() error {
	if n.ID <= 0 {
		return fmt.Errorf("node %d: id must be positive: %w", n.ID, ErrInvalidNode)
	}
	if n.Title == "" {
		return fmt.Errorf("node %d: empty title: %w", n.ID, ErrInvalidNode)
	}
	if !n.Status.valid() {
		return fmt.Errorf("node %d: unknown status %q: %w", n.ID, n.Status, ErrInvalidNode)
	}
	if !n.Kind.valid() {
		return fmt.Errorf("node %d: unknown type %q: %w", n.ID, n.Kind, ErrInvalidNode)
	}
	if !inUnitRange(n.Position.X) || !inUnitRange(n.Position.Y) {
		return fmt.Errorf("node %d: position (%g,%g) outside 0-100: %w",
			n.ID, n.Position.X, n.Position.Y, ErrInvalidNode)
	}
	if n.Progress != nil && (*n.Progress < 0 || *n.Progress > 100) {
		return fmt.Errorf("node %d: progress %d outside 0-100: %w", n.ID, *n.Progress, ErrInvalidNode)
	}
	return nil
}

func inUnitRange(v float64) bool { return v >= 0 && v <= SurfaceSize }
