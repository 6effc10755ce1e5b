package reveal

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp(c.R*c.A, 0, 1) * 255),
		G: uint8(clamp(c.G*c.A, 0, 1) * 255),
		B: uint8(clamp(c.B*c.A, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting,
// which gives a zero-area intersection threshold.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Expand grows the rectangle outward by the given margin on each side.
func (r Rect) Expand(m Margin) Rect {
	return Rect{
		X:      r.X - m.Left,
		Y:      r.Y - m.Top,
		Width:  r.Width + m.Left + m.Right,
		Height: r.Height + m.Top + m.Bottom,
	}
}

// Margin is a per-side extension of a rectangle, in pixels.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// VisibilityState is the observation state of a tracked node.
type VisibilityState uint8

const (
	VisibilityUnobserved VisibilityState = iota // not yet observed, or disconnected
	VisibilityHidden                            // outside the expanded viewport
	VisibilityVisible                           // inside the expanded viewport
)

// String returns the lower-case state name.
func (v VisibilityState) String() string {
	switch v {
	case VisibilityUnobserved:
		return "unobserved"
	case VisibilityHidden:
		return "hidden"
	case VisibilityVisible:
		return "visible"
	default:
		return "unknown"
	}
}

// Source identifies a process-wide input source that effects listen to.
type Source uint8

const (
	SourceScroll  Source = iota // viewport scroll position changed
	SourcePointer               // pointer moved
	numSources
)

// String returns the lower-case source name.
func (s Source) String() string {
	switch s {
	case SourceScroll:
		return "scroll"
	case SourcePointer:
		return "pointer"
	default:
		return "unknown"
	}
}
