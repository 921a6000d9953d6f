// Package render draws projected roadmap scenes as SVG.
package render

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/vacmar/portfolio/internal/roadmap"
)

// Scale maps one logical unit to this many SVG user units. svgo works in
// integers, so the 100x100 surface becomes a 1000x1000 viewBox.
const Scale = 10

// Options tune the SVG output.
type Options struct {
	// ID is the id of the root element.
	ID string
	// NodeAttrs returns extra attributes for the clickable marker of a node,
	// e.g. hx-get hooks. Each entry must be a complete name="value" pair.
	NodeAttrs func(id int) []string
	// Grid draws the background grid.
	Grid bool
	// Fragment omits the XML prolog so the output can be inlined in HTML.
	Fragment bool
}

const prolog = `<?xml version="1.0"?>`

// WriteSVG renders sc to w.
func WriteSVG(w io.Writer, sc roadmap.Scene, opts Options) error {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	side := int(roadmap.SurfaceSize * Scale)

	root := []string{
		fmt.Sprintf(`viewBox="0 0 %d %d"`, side, side),
		`class="roadmap-svg"`,
		`preserveAspectRatio="xMidYMid meet"`,
	}
	if opts.ID != "" {
		root = append(root, fmt.Sprintf(`id="%s"`, opts.ID))
	}
	canvas.Startunit(100, 100, "%", root...)

	canvas.Def()
	canvas.LinearGradient("projectGradient", 0, 0, 100, 100, []svg.Offcolor{
		{Offset: 0, Color: roadmap.ProjectAccent, Opacity: 0.8},
		{Offset: 100, Color: roadmap.LearningAccent, Opacity: 0.8},
	})
	canvas.DefEnd()

	if opts.Grid {
		drawGrid(canvas, side)
	}

	canvas.Group(`class="roadmap-edges"`)
	for _, e := range sc.Edges {
		canvas.Line(u(e.A.X), u(e.A.Y), u(e.B.X), u(e.B.Y),
			`class="roadmap-edge"`,
			attr("data-from", e.From),
			attr("data-to", e.To),
			attr("stroke", e.Stroke),
			attr("stroke-width", scaled(e.Width)),
			attr("stroke-dasharray", scaledDash(e.Dash)),
		)
	}
	canvas.Gend()

	for _, m := range sc.Nodes {
		drawNode(canvas, m, opts)
	}

	for _, l := range sc.Labels {
		drawLabel(canvas, l)
	}

	canvas.Group(`class="roadmap-particles"`)
	for i, p := range sc.Particles {
		canvas.Circle(u(p.From.X), u(p.From.Y), max(1, u(p.Radius)),
			`class="roadmap-particle"`,
			attr("fill", p.Color),
			fmt.Sprintf(`style="--dx:%dpx;--dy:%dpx;animation-duration:%.2fs;animation-delay:%.2fs"`,
				u(p.To.X-p.From.X), u(p.To.Y-p.From.Y), p.Duration, p.Delay),
			attr("data-particle", i),
		)
	}
	canvas.Gend()

	canvas.End()

	out := buf.Bytes()
	if opts.Fragment {
		out = bytes.TrimLeft(bytes.TrimPrefix(out, []byte(prolog)), "\n")
	}
	_, err := w.Write(out)
	return err
}

func drawGrid(canvas *svg.SVG, side int) {
	step := 10 * Scale
	canvas.Group(`class="roadmap-grid"`, `stroke="rgba(139, 92, 246, 0.1)"`, `stroke-width="5"`, `opacity="0.3"`)
	for v := 0; v <= side; v += step {
		canvas.Line(v, 0, v, side)
		canvas.Line(0, v, side, v)
	}
	canvas.Gend()
}

func drawNode(canvas *svg.SVG, m roadmap.NodeMark, opts Options) {
	cls := "roadmap-node"
	if m.Revealed {
		cls += " revealed"
	}
	canvas.Group(
		fmt.Sprintf(`class="%s"`, cls),
		attr("data-node-id", m.ID),
		attr("data-status", m.Status),
		attr("data-kind", m.Kind),
		fmt.Sprintf(`style="--reveal-delay:%.1fs"`, m.Delay),
	)
	x, y := u(m.At.X), u(m.At.Y)

	if m.Glow {
		canvas.Circle(x, y, u(roadmap.GlowRadius), `class="node-glow"`, `fill="url(#projectGradient)"`)
	}

	marker := []string{
		`class="node-marker"`,
		attr("fill", m.Fill),
		attr("stroke", m.Outline),
		attr("stroke-width", scaled(m.OutlineWidth)),
	}
	if opts.NodeAttrs != nil {
		marker = append(marker, opts.NodeAttrs(m.ID)...)
	}
	canvas.Circle(x, y, u(m.Radius), marker...)

	if r := m.Progress; r != nil {
		canvas.Circle(x, y, u(r.Radius),
			`class="node-progress"`,
			`fill="none"`,
			attr("stroke", r.Stroke),
			attr("stroke-width", scaled(0.2)),
			fmt.Sprintf(`stroke-dasharray="%.2f %.2f"`, r.Arc*Scale, r.Circumference*Scale),
			fmt.Sprintf(`transform="rotate(-90 %d %d)"`, x, y),
			attr("data-progress", r.Percent),
		)
	}

	if m.Pulse {
		canvas.Circle(x, y, u(m.Radius),
			`class="node-pulse"`,
			`fill="none"`,
			attr("stroke", m.Fill),
			attr("stroke-width", scaled(0.2)),
		)
	}

	size := 6
	if m.Kind == roadmap.KindProject {
		size = 8
	}
	canvas.Text(x, y+3, m.Glyph,
		`class="node-glyph"`,
		`text-anchor="middle"`,
		`fill="rgba(255, 255, 255, 0.8)"`,
		attr("font-size", size),
		`font-weight="600"`,
	)
	canvas.Gend()
}

func drawLabel(canvas *svg.SVG, l roadmap.Label) {
	canvas.Group(`class="roadmap-label"`, attr("data-node-id", l.NodeID))
	canvas.Text(u(l.TitleAt.X), u(l.TitleAt.Y), l.Title,
		attr("text-anchor", l.Anchor),
		attr("fill", l.TitleFill),
		`font-size="15"`,
		`font-weight="600"`,
	)
	canvas.Text(u(l.DetailAt.X), u(l.DetailAt.Y), l.Detail,
		attr("text-anchor", l.Anchor),
		attr("fill", l.DetailColor),
		`font-size="10"`,
		`font-weight="500"`,
	)
	canvas.Gend()
}

// u converts a logical coordinate to integer SVG units.
func u(v float64) int { return int(math.Round(v * Scale)) }

func scaled(v float64) string { return fmt.Sprintf("%g", v*Scale) }

func scaledDash(dash string) string {
	var a, b float64
	if _, err := fmt.Sscanf(dash, "%g %g", &a, &b); err != nil {
		return dash
	}
	return fmt.Sprintf("%g %g", a*Scale, b*Scale)
}

func attr(name string, value any) string {
	return fmt.Sprintf(`%s="%v"`, name, value)
}
