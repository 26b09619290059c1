// Package collision detects overlaps between objects: a separating-axis test
// for convex polygons and an axis-aligned test that classifies the side of
// contact.
package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// epsilon below which an edge is treated as zero-length.
const epsilon = 1e-9

// Transform places a shape in the world. A zero Scale means unit scale.
type Transform struct {
	Position mgl64.Vec2
	Origin   mgl64.Vec2
	Scale    mgl64.Vec2
	Rotation float64
}

// Matrix returns translate(Position) * rotate(Rotation) * scale(Scale) * translate(-Origin).
func (t Transform) Matrix() mgl64.Mat3 {
	scale := t.Scale
	if scale == (mgl64.Vec2{}) {
		scale = mgl64.Vec2{1, 1}
	}
	return mgl64.Translate2D(t.Position.X(), t.Position.Y()).
		Mul3(mgl64.HomogRotate2D(t.Rotation)).
		Mul3(mgl64.Scale2D(scale.X(), scale.Y())).
		Mul3(mgl64.Translate2D(-t.Origin.X(), -t.Origin.Y()))
}

// Shape is a convex polygon in local space. Points must share one winding order.
type Shape struct {
	Points    []mgl64.Vec2
	Transform Transform
}

// Rectangle returns a w by h box with its top-left corner at the local origin.
func Rectangle(w, h float64) Shape {
	return Polygon(
		mgl64.Vec2{0, 0},
		mgl64.Vec2{w, 0},
		mgl64.Vec2{w, h},
		mgl64.Vec2{0, h},
	)
}

// Polygon returns a shape over a copy of points.
func Polygon(points ...mgl64.Vec2) Shape {
	pts := make([]mgl64.Vec2, len(points))
	copy(pts, points)
	return Shape{Points: pts, Transform: Transform{Scale: mgl64.Vec2{1, 1}}}
}

// Clone copies the point list so stores cloned from a template never share it.
func (s Shape) Clone() Shape {
	pts := make([]mgl64.Vec2, len(s.Points))
	copy(pts, s.Points)
	return Shape{Points: pts, Transform: s.Transform}
}

// Empty reports whether the shape has no points.
func (s Shape) Empty() bool {
	return len(s.Points) == 0
}

// Translated returns a copy of s moved by offset. The point list is shared.
func (s Shape) Translated(offset mgl64.Vec2) Shape {
	s.Transform.Position = s.Transform.Position.Add(offset)
	return s
}

// WorldPoints returns the points with the transform applied.
func (s Shape) WorldPoints() []mgl64.Vec2 {
	m := s.Transform.Matrix()
	out := make([]mgl64.Vec2, len(s.Points))
	for i, p := range s.Points {
		out[i] = m.Mul3x1(p.Vec3(1)).Vec2()
	}
	return out
}

// Line is one polygon edge.
type Line struct {
	A, B mgl64.Vec2
}

// Normal returns the unit perpendicular of the edge and false for a zero-length edge.
func (l Line) Normal() (mgl64.Vec2, bool) {
	edge := l.B.Sub(l.A)
	if edge.Len() < epsilon {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{-edge.Y(), edge.X()}.Normalize(), true
}

// Lines returns the world-space edges, connecting consecutive points and
// wrapping from the last point back to the first.
func (s Shape) Lines() []Line {
	pts := s.WorldPoints()
	if len(pts) < 2 {
		return nil
	}
	lines := make([]Line, len(pts))
	for i := range pts {
		lines[i] = Line{A: pts[i], B: pts[(i+1)%len(pts)]}
	}
	return lines
}

// Axes returns the unit edge normals used as candidate separating axes.
func (s Shape) Axes() []mgl64.Vec2 {
	lines := s.Lines()
	axes := make([]mgl64.Vec2, 0, len(lines))
	for _, l := range lines {
		if n, ok := l.Normal(); ok {
			axes = append(axes, n)
		}
	}
	return axes
}

// Bounds returns the axis-aligned box around the world points.
func (s Shape) Bounds() Rect {
	pts := s.WorldPoints()
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X(), pts[0].Y()
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X())
		minY = math.Min(minY, p.Y())
		maxX = math.Max(maxX, p.X())
		maxY = math.Max(maxY, p.Y())
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func project(points []mgl64.Vec2, axis mgl64.Vec2) (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, p := range points {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// Intersection runs the separating-axis test against other. When the shapes
// overlap it returns the minimum translation vector: displacing s by it just
// separates s from other. Touching shapes do not intersect. Empty shapes and
// shapes without a usable edge never intersect.
func (s Shape) Intersection(other Shape) (mgl64.Vec2, bool) {
	a := s.WorldPoints()
	b := other.WorldPoints()
	if len(a) == 0 || len(b) == 0 {
		return mgl64.Vec2{}, false
	}

	axes := append(s.Axes(), other.Axes()...)
	if len(axes) == 0 {
		return mgl64.Vec2{}, false
	}

	best := math.Inf(1)
	var mtv mgl64.Vec2
	for _, axis := range axes {
		minA, maxA := project(a, axis)
		minB, maxB := project(b, axis)

		// s below other along the axis moves back; s above moves forward.
		forward := maxB - minA
		backward := maxA - minB
		overlap := math.Min(forward, backward)
		if overlap <= epsilon {
			return mgl64.Vec2{}, false
		}
		if overlap < best {
			best = overlap
			if backward < forward {
				mtv = axis.Mul(-overlap)
			} else {
				mtv = axis.Mul(overlap)
			}
		}
	}
	return mtv, true
}
