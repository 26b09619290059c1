package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Side is the side of the other object that was hit, seen from the receiver.
// SideTop means the receiver sits on top of the other object.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Opposite returns the side as seen from the other object.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideNone
	}
}

// Rect is an axis-aligned box; Y grows downward.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Penetration holds how far a mover reaches into another box along each axis
// direction. All four are positive exactly when the boxes overlap.
type Penetration struct {
	Above float64
	Below float64
	Left  float64
	Right float64
}

// Penetrate measures r moving against other.
func (r Rect) Penetrate(other Rect) Penetration {
	return Penetration{
		Above: r.Bottom() - other.Top(),
		Below: other.Bottom() - r.Top(),
		Left:  r.Right() - other.Left(),
		Right: other.Right() - r.Left(),
	}
}

// Overlaps reports whether r and other share area. Touching edges do not count.
func (r Rect) Overlaps(other Rect) bool {
	return r.Penetrate(other).Overlapping()
}

// Overlapping reports whether every distance is positive.
func (p Penetration) Overlapping() bool {
	return p.Above > 0 && p.Below > 0 && p.Left > 0 && p.Right > 0
}

// Side returns the side with the smallest penetration. Ties go to the first in
// the order top, bottom, left, right.
func (p Penetration) Side() Side {
	if !p.Overlapping() {
		return SideNone
	}
	side, best := SideTop, p.Above
	if p.Below < best {
		side, best = SideBottom, p.Below
	}
	if p.Left < best {
		side, best = SideLeft, p.Left
	}
	if p.Right < best {
		side = SideRight
	}
	return side
}

// Mirror returns the penetration as measured by the other object.
func (p Penetration) Mirror() Penetration {
	return Penetration{
		Above: p.Below,
		Below: p.Above,
		Left:  p.Right,
		Right: p.Left,
	}
}

// Resolve returns the displacement that moves the receiver out along side.
func (p Penetration) Resolve(side Side) mgl64.Vec2 {
	switch side {
	case SideTop:
		return mgl64.Vec2{0, -p.Above}
	case SideBottom:
		return mgl64.Vec2{0, p.Below}
	case SideLeft:
		return mgl64.Vec2{-p.Left, 0}
	case SideRight:
		return mgl64.Vec2{p.Right, 0}
	default:
		return mgl64.Vec2{}
	}
}

// sideOf classifies a translation vector by its dominant axis. Vertical wins a tie.
func sideOf(mtv mgl64.Vec2) Side {
	x, y := mtv.X(), mtv.Y()
	ax, ay := math.Abs(x), math.Abs(y)
	switch {
	case ax < epsilon && ay < epsilon:
		return SideNone
	case ay >= ax && y < 0:
		return SideTop
	case ay >= ax:
		return SideBottom
	case x < 0:
		return SideLeft
	default:
		return SideRight
	}
}
