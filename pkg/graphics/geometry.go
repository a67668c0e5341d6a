// Package graphics provides the geometry types shared by the event and
// visual layers. Layout, painting and hit testing live in the node
// collaborator; only positions, deltas and bounds flow through here.
package graphics

// Offset is a 2D point or displacement in logical pixels.
type Offset struct {
	X, Y float64
}

// Add returns o translated by other.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the displacement from other to o.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// Scale returns o with both components multiplied component-wise by s.
func (o Offset) Scale(s Offset) Offset {
	return Offset{X: o.X * s.X, Y: o.Y * s.Y}
}

// LengthSquared returns the squared magnitude of o. Threshold comparisons
// use the squared form to avoid the square root.
func (o Offset) LengthSquared() float64 {
	return o.X*o.X + o.Y*o.Y
}

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectFromSize builds a Rect from an origin and a size.
func RectFromSize(x, y, width, height float64) Rect {
	return Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

// Contains reports whether p lies inside the rectangle. Edges count as
// inside, matching hit-test conventions.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Offset {
	return Offset{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// IsValid reports whether the rect has positive dimensions.
func (r Rect) IsValid() bool {
	return r.Right > r.Left && r.Bottom > r.Top
}
