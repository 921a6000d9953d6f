package roadmap

import (
	"fmt"
	"math"
)

// Marker and ring geometry in logical units.
const (
	NodeRadius         = 1.2
	GlowRadius         = 3.0
	ProgressRingRadius = 2.2

	labelEdgeLow    = 20.0
	labelEdgeHigh   = 80.0
	labelInset      = 3.0
	labelTitleLift  = 4.0
	labelDetailLift = 2.5
	revealStagger   = 0.1
)

// Anchor is the horizontal text anchor of a label.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// SceneInput is everything the projector reads.
type SceneInput struct {
	Nodes     []Node
	Visible   map[int]bool
	Hovered   int
	Touch     bool
	Particles []Particle
}

// Scene is the set of primitives that make up one frame of the canvas.
type Scene struct {
	Edges     []Edge
	Nodes     []NodeMark
	Labels    []Label
	Particles []Particle
}

// Edge is one declared connection between two revealed nodes.
type Edge struct {
	From, To int
	A, B     Point
	Stroke   string
	Width    float64
	Dash     string
}

// NodeMark is a node marker and the rings drawn around it.
type NodeMark struct {
	ID           int
	Index        int
	At           Point
	Radius       float64
	Fill         string
	Outline      string
	OutlineWidth float64
	Status       Status
	Kind         Kind
	Glyph        string
	// Revealed is false until the node's marker has intersected the
	// viewport; unrevealed marks are drawn collapsed.
	Revealed bool
	// Delay staggers the entrance animation, in seconds.
	Delay    float64
	Glow     bool
	Pulse    bool
	Progress *ProgressRing
}

// ProgressRing is an arc around a project marker proportional to progress.
type ProgressRing struct {
	Percent       int
	Radius        float64
	Arc           float64
	Circumference float64
	Stroke        string
}

// Label is the floating title and detail line of a node.
type Label struct {
	NodeID      int
	Anchor      Anchor
	TitleAt     Point
	Title       string
	DetailAt    Point
	Detail      string
	TitleFill   string
	DetailColor string
}

// Project turns the filtered nodes and reveal state into drawable
// primitives. It does no I/O and keeps no state.
func Project(in SceneInput) Scene {
	members := make(map[int]Node, len(in.Nodes))
	for _, n := range in.Nodes {
		members[n.ID] = n
	}

	var sc Scene
	for _, n := range in.Nodes {
		for _, target := range n.Connections {
			t, ok := members[target]
			if !ok {
				continue
			}
			if !in.Visible[n.ID] || !in.Visible[target] {
				continue
			}
			sc.Edges = append(sc.Edges, edgeBetween(n, t))
		}
	}

	for i, n := range in.Nodes {
		revealed := in.Visible[n.ID]
		sc.Nodes = append(sc.Nodes, markFor(n, i, revealed))
		if revealed && (in.Touch || in.Hovered == n.ID) {
			sc.Labels = append(sc.Labels, labelFor(n))
		}
	}

	sc.Particles = append(sc.Particles, in.Particles...)
	return sc
}

func edgeBetween(from, to Node) Edge {
	e := Edge{
		From:   from.ID,
		To:     to.ID,
		A:      from.Position,
		B:      to.Position,
		Stroke: learningEdgeStroke,
		Width:  0.2,
		Dash:   "1 0.5",
	}
	if from.IsProject() {
		e.Stroke = projectEdgeStroke
		e.Width = 0.3
		e.Dash = "2 1"
	}
	return e
}

func markFor(n Node, index int, revealed bool) NodeMark {
	m := NodeMark{
		ID:           n.ID,
		Index:        index,
		At:           n.Position,
		Radius:       NodeRadius,
		Fill:         StatusColor(n.Status),
		Outline:      OutlineColor(n),
		OutlineWidth: 0.3,
		Status:       n.Status,
		Kind:         n.Kind,
		Glyph:        n.Glyph(index),
		Revealed:     revealed,
		Delay:        float64(index) * revealStagger,
		Glow:         n.IsProject(),
		Pulse:        revealed && n.Status == StatusCurrent,
	}
	if n.IsProject() {
		m.OutlineWidth = 0.4
	}
	if n.HasProgress() {
		m.Progress = progressRing(n.ProgressPercent())
	}
	return m
}

func progressRing(percent int) *ProgressRing {
	circ := 2 * math.Pi * ProgressRingRadius
	return &ProgressRing{
		Percent:       percent,
		Radius:        ProgressRingRadius,
		Arc:           circ * float64(percent) / 100,
		Circumference: circ,
		Stroke:        progressRingStroke,
	}
}

// DashArray renders the ring as an SVG stroke-dasharray value.
func (r ProgressRing) DashArray() string {
	return fmt.Sprintf("%.3f %.3f", r.Arc, r.Circumference)
}

func labelFor(n Node) Label {
	x, anchor := n.Position.X, AnchorMiddle
	switch {
	case n.Position.X < labelEdgeLow:
		x, anchor = n.Position.X+labelInset, AnchorStart
	case n.Position.X > labelEdgeHigh:
		x, anchor = n.Position.X-labelInset, AnchorEnd
	}
	return Label{
		NodeID:      n.ID,
		Anchor:      anchor,
		TitleAt:     Point{X: x, Y: n.Position.Y - labelTitleLift},
		Title:       n.Title,
		DetailAt:    Point{X: x, Y: n.Position.Y - labelDetailLift},
		Detail:      n.Detail(),
		TitleFill:   labelTitleFill,
		DetailColor: AccentColor(n),
	}
}
