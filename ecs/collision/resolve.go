package collision

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/stencil/ecs"
)

// PushOut is a Reaction that separates the pair along the hit's translation
// vector. When both objects are movable each moves half the distance.
func PushOut(frame *ecs.UpdateFrame, a, b *ecs.Object, hit Hit) {
	aMovable := ecs.Get[bool](a.Props(), PropMovable)
	bMovable := ecs.Get[bool](b.Props(), PropMovable)
	d := hit.Contact.MTV

	switch {
	case aMovable && bMovable:
		move(a, d.Mul(0.5))
		move(b, d.Mul(-0.5))
	case aMovable:
		move(a, d)
	case bMovable:
		move(b, d.Mul(-1))
	}
}

func move(o *ecs.Object, d mgl64.Vec2) {
	if pos := ecs.Ref[mgl64.Vec2](o.Props(), PropPosition); pos != nil {
		*pos = pos.Add(d)
	}
}
