package model

import "math"

// Point represents a 2D point in page units
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in page coordinates.
// The origin is the top-left corner of the page and Y grows downward,
// so Top <= Bottom and Left <= Right for a well-formed rectangle.
type Rect struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// NewRect creates a rectangle from its four edges
func NewRect(top, bottom, left, right float64) Rect {
	return Rect{Top: top, Bottom: bottom, Left: left, Right: right}
}

// NewRectFromPoints creates the smallest rectangle containing both points
func NewRectFromPoints(p1, p2 Point) Rect {
	return Rect{
		Top:    math.Min(p1.Y, p2.Y),
		Bottom: math.Max(p1.Y, p2.Y),
		Left:   math.Min(p1.X, p2.X),
		Right:  math.Max(p1.X, p2.X),
	}
}

// Width returns the horizontal extent
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{
		X: r.Left + r.Width()/2,
		Y: r.Top + r.Height()/2,
	}
}

// Contains checks if a point is inside the rectangle (edges inclusive)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right &&
		p.Y >= r.Top && p.Y <= r.Bottom
}

// ContainsRect reports whether other lies entirely inside r
func (r Rect) ContainsRect(other Rect) bool {
	return other.Left >= r.Left && other.Right <= r.Right &&
		other.Top >= r.Top && other.Bottom <= r.Bottom
}

// Intersects checks if two rectangles overlap
func (r Rect) Intersects(other Rect) bool {
	return !(r.Right < other.Left ||
		r.Left > other.Right ||
		r.Bottom < other.Top ||
		r.Top > other.Bottom)
}

// Union returns the smallest rectangle covering both rectangles
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Top:    math.Min(r.Top, other.Top),
		Bottom: math.Max(r.Bottom, other.Bottom),
		Left:   math.Min(r.Left, other.Left),
		Right:  math.Max(r.Right, other.Right),
	}
}

// HorizontalOverlap returns the width shared by both rectangles, or 0
func (r Rect) HorizontalOverlap(other Rect) float64 {
	overlap := math.Min(r.Right, other.Right) - math.Max(r.Left, other.Left)
	if overlap < 0 {
		return 0
	}
	return overlap
}

// Area returns the area of the rectangle
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// IsValid returns true if every edge is a finite number and the rectangle is
// not inverted. Zero-width or zero-height rectangles are valid.
func (r Rect) IsValid() bool {
	for _, v := range [...]float64{r.Top, r.Bottom, r.Left, r.Right} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Top <= r.Bottom && r.Left <= r.Right
}

// Matrix represents a 2D affine transformation matrix [a b c d e f]
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply returns m × other, i.e. m applied first and other second
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// VerticalScale returns the length of the transformed unit Y vector, which is
// the factor a font size is scaled by when drawn through m.
func (m Matrix) VerticalScale() float64 {
	return math.Hypot(m[2], m[3])
}
