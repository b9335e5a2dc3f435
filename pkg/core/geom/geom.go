// Package geom provides the small geometry vocabulary shared by the layout
// and focus packages: points, rectangles, and bounding-box accumulation.
package geom

import "math"

// Point is a position in the global layout coordinate space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	W float64 `json:"width" bson:"width"`
	H float64 `json:"height" bson:"height"`
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// MaxX returns the rectangle's right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the rectangle's bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Bounds accumulates points and rectangles into a bounding box.
// The zero value is empty; IsEmpty reports whether anything was added.
type Bounds struct {
	minX, minY float64
	maxX, maxY float64
	any        bool
}

// AddPoint grows the bounds to include p.
func (b *Bounds) AddPoint(p Point) {
	if !b.any {
		b.minX, b.maxX = p.X, p.X
		b.minY, b.maxY = p.Y, p.Y
		b.any = true
		return
	}
	b.minX = math.Min(b.minX, p.X)
	b.maxX = math.Max(b.maxX, p.X)
	b.minY = math.Min(b.minY, p.Y)
	b.maxY = math.Max(b.maxY, p.Y)
}

// AddRect grows the bounds to include all four corners of r.
func (b *Bounds) AddRect(r Rect) {
	b.AddPoint(Point{X: r.X, Y: r.Y})
	b.AddPoint(Point{X: r.MaxX(), Y: r.MaxY()})
}

// IsEmpty reports whether nothing has been accumulated.
func (b *Bounds) IsEmpty() bool { return !b.any }

// Rect returns the accumulated bounding box. Empty bounds yield a zero Rect.
func (b *Bounds) Rect() Rect {
	if !b.any {
		return Rect{}
	}
	return Rect{X: b.minX, Y: b.minY, W: b.maxX - b.minX, H: b.maxY - b.minY}
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
