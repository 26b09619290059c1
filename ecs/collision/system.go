package collision

import (
	"slices"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/kamstrup/intmap"

	"github.com/plus3/stencil/ecs"
)

// Property names declared by System.
const (
	PropPosition  = "position"
	PropSize      = "size"
	PropMovable   = "movable"
	PropLayer     = "layer"
	PropCollision = "collision"
	PropShape     = "shape"
)

// EventCollision is raised on the world bus with a Hit payload for every contact.
const EventCollision = "collision"

// Contact is one collision as seen from the object that stores it.
type Contact struct {
	Other       ecs.ObjectID
	Side        Side
	Penetration Penetration
	// MTV moves the receiver out of Other.
	MTV mgl64.Vec2
}

// Mirror returns the contact as seen from Other, where self is the receiver.
func (c Contact) Mirror(self ecs.ObjectID) Contact {
	return Contact{
		Other:       self,
		Side:        c.Side.Opposite(),
		Penetration: c.Penetration.Mirror(),
		MTV:         c.MTV.Mul(-1),
	}
}

// Contacts is the per-object collision data, rebuilt every fixed step.
type Contacts []Contact

func (c Contacts) Clone() Contacts {
	return slices.Clone(c)
}

// With returns the contact against other.
func (c Contacts) With(other ecs.ObjectID) (Contact, bool) {
	for _, ct := range c {
		if ct.Other == other {
			return ct, true
		}
	}
	return Contact{}, false
}

// Hit describes one colliding pair. Contact is A's view; B stores its mirror.
type Hit struct {
	A, B    ecs.ObjectID
	Contact Contact
}

// Reaction is called for every detected hit, after both objects received their
// contact data.
type Reaction func(frame *ecs.UpdateFrame, a, b *ecs.Object, hit Hit)

type layer struct {
	z       int
	objects []*ecs.Object
}

// System tests every movable member against every member of every layer in
// ascending z order. Changes to layer or movable are picked up at the start of
// the next fixed step. Members with a non-empty shape on both sides use the
// separating-axis test, all others use their position/size box.
type System struct {
	ecs.BaseSystem

	// EntityCollision reacts to hits. Detection never moves anything itself.
	EntityCollision Reaction

	layers []*layer
	zOf    *intmap.Map[ecs.ObjectID, int]
	moving *intmap.Map[ecs.ObjectID, bool]
	movers []*ecs.Object
	tested *intmap.Map[ecs.ObjectID, bool]
}

// NewSystem returns a collision system registered under the name "collision".
func NewSystem() *System {
	return &System{
		BaseSystem: ecs.NewBaseSystem("collision"),
		zOf:        intmap.New[ecs.ObjectID, int](64),
		moving:     intmap.New[ecs.ObjectID, bool](64),
		tested:     intmap.New[ecs.ObjectID, bool](64),
	}
}

func (s *System) AddProperties(store *ecs.PropertyStore) {
	ecs.Ensure(store, PropPosition, mgl64.Vec2{})
	ecs.Ensure(store, PropSize, mgl64.Vec2{})
	ecs.Ensure(store, PropMovable, false)
	ecs.Ensure(store, PropLayer, 0)
	ecs.Ensure(store, PropCollision, Contacts(nil))
}

func (s *System) HandleInit(o *ecs.Object) {
	s.insert(o)
}

func (s *System) HandleCleanup(o *ecs.Object) {
	if !s.remove(o) {
		o.World().Logger().Warn("collision: cleanup of untracked object", "object", o.ID())
	}
}

func (s *System) insert(o *ecs.Object) {
	z := ecs.Get[int](o.Props(), PropLayer)
	s.zOf.Put(o.ID(), z)

	i := sort.Search(len(s.layers), func(i int) bool { return s.layers[i].z >= z })
	if i == len(s.layers) || s.layers[i].z != z {
		s.layers = slices.Insert(s.layers, i, &layer{z: z})
	}
	s.layers[i].objects = append(s.layers[i].objects, o)

	if ecs.Get[bool](o.Props(), PropMovable) {
		s.moving.Put(o.ID(), true)
		s.movers = append(s.movers, o)
	}
}

func (s *System) remove(o *ecs.Object) bool {
	z, ok := s.zOf.Get(o.ID())
	if !ok {
		return false
	}
	s.zOf.Del(o.ID())

	for i, l := range s.layers {
		if l.z != z {
			continue
		}
		l.objects = slices.DeleteFunc(l.objects, func(m *ecs.Object) bool { return m == o })
		if len(l.objects) == 0 {
			s.layers = slices.Delete(s.layers, i, i+1)
		}
		break
	}
	if s.moving.Has(o.ID()) {
		s.moving.Del(o.ID())
		s.movers = slices.DeleteFunc(s.movers, func(m *ecs.Object) bool { return m == o })
	}
	return true
}

// reindex moves o to its current layer and mover status when either property
// changed since it was last indexed.
func (s *System) reindex(o *ecs.Object) {
	z, ok := s.zOf.Get(o.ID())
	if !ok {
		return
	}
	layer, _ := ecs.Lookup[int](o.Props(), PropLayer)
	movable, _ := ecs.Lookup[bool](o.Props(), PropMovable)
	if layer == z && movable == s.moving.Has(o.ID()) {
		return
	}
	s.remove(o)
	s.insert(o)
}

// Layers returns the z values in use, ascending.
func (s *System) Layers() []int {
	zs := make([]int, len(s.layers))
	for i, l := range s.layers {
		zs[i] = l.z
	}
	return zs
}

// Movers returns the number of movable members.
func (s *System) Movers() int {
	return len(s.movers)
}

func (s *System) UpdateFixed(frame *ecs.UpdateFrame) {
	for o := range s.Members().Each() {
		if c := ecs.Ref[Contacts](o.Props(), PropCollision); c != nil {
			*c = (*c)[:0]
		}
		s.reindex(o)
	}

	s.tested.Clear()
	for _, mover := range s.movers {
		s.tested.Put(mover.ID(), true)
		for _, l := range s.layers {
			for _, other := range l.objects {
				if other == mover || s.tested.Has(other.ID()) {
					continue
				}
				s.test(frame, mover, other)
			}
		}
	}
}

func (s *System) test(frame *ecs.UpdateFrame, a, b *ecs.Object) {
	contact, ok := Detect(a.Props(), b.Props())
	if !ok {
		return
	}
	contact.Other = b.ID()

	if c := ecs.Ref[Contacts](a.Props(), PropCollision); c != nil {
		*c = append(*c, contact)
	}
	if c := ecs.Ref[Contacts](b.Props(), PropCollision); c != nil {
		*c = append(*c, contact.Mirror(a.ID()))
	}

	hit := Hit{A: a.ID(), B: b.ID(), Contact: contact}
	if s.EntityCollision != nil {
		s.EntityCollision(frame, a, b, hit)
	}
	if frame != nil && frame.World != nil {
		ecs.Raise(frame.World.Events(), EventCollision, hit)
	}
}

// Detect tests the object stored in a against the one stored in b and returns
// a's contact. Other is left unset.
func Detect(a, b *ecs.PropertyStore) (Contact, bool) {
	posA := ecs.Get[mgl64.Vec2](a, PropPosition)
	posB := ecs.Get[mgl64.Vec2](b, PropPosition)

	shapeA, okA := ecs.Lookup[Shape](a, PropShape)
	shapeB, okB := ecs.Lookup[Shape](b, PropShape)
	if okA && okB && !shapeA.Empty() && !shapeB.Empty() {
		wa := shapeA.Translated(posA)
		wb := shapeB.Translated(posB)
		mtv, hit := wa.Intersection(wb)
		if !hit {
			return Contact{}, false
		}
		return Contact{
			Side:        sideOf(mtv),
			Penetration: wa.Bounds().Penetrate(wb.Bounds()),
			MTV:         mtv,
		}, true
	}

	ra := boxOf(posA, ecs.Get[mgl64.Vec2](a, PropSize))
	rb := boxOf(posB, ecs.Get[mgl64.Vec2](b, PropSize))
	p := ra.Penetrate(rb)
	if !p.Overlapping() {
		return Contact{}, false
	}
	side := p.Side()
	return Contact{Side: side, Penetration: p, MTV: p.Resolve(side)}, true
}

func boxOf(pos, size mgl64.Vec2) Rect {
	return Rect{X: pos.X(), Y: pos.Y(), W: size.X(), H: size.Y()}
}
