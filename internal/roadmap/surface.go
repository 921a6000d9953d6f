package roadmap

// SurfaceSize is the side of the logical drawing surface. Node positions are
// percentages of it.
const SurfaceSize = 100.0

// Rect is an axis-aligned rectangle in page pixels.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Expand grows the rectangle by m on every side, like a root margin.
func (r Rect) Expand(m float64) Rect {
	return Rect{Left: r.Left - m, Top: r.Top - m, Width: r.Width + 2*m, Height: r.Height + 2*m}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// Surface is the square the logical 100x100 space occupies on the page.
type Surface struct {
	Left float64
	Top  float64
	Side float64
}

// UnitSurface maps logical coordinates onto themselves. It is what a view
// uses until it learns the real container size.
var UnitSurface = Surface{Side: SurfaceSize}

// FitSurface places the largest square that fits container, centred, the
// way an SVG viewBox with xMidYMid meet does.
func FitSurface(container Rect) Surface {
	side := container.Width
	if container.Height < side {
		side = container.Height
	}
	if side < 0 {
		side = 0
	}
	return Surface{
		Left: container.Left + (container.Width-side)/2,
		Top:  container.Top + (container.Height-side)/2,
		Side: side,
	}
}

// Project maps a logical point to page coordinates.
func (s Surface) Project(p Point) Point {
	scale := s.Side / SurfaceSize
	return Point{X: s.Left + p.X*scale, Y: s.Top + p.Y*scale}
}
