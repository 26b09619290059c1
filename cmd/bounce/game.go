package main

import (
	"math"
	"math/rand"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/stencil/ecs"
	"github.com/plus3/stencil/ecs/collision"
)

const (
	PropVelocity = "velocity"
	PropGlyph    = "glyph"
	PropStyle    = "style"

	// EventKick is posted by the input loop to scatter every ball.
	EventKick = "kick"

	maxSpeed = 20.0
)

// MotionSystem integrates velocity into position every fixed step and answers
// kicks by drawing a new random velocity for each member.
type MotionSystem struct {
	ecs.BaseSystem
	rng *rand.Rand
}

func NewMotionSystem(rng *rand.Rand) *MotionSystem {
	return &MotionSystem{BaseSystem: ecs.NewBaseSystem("motion"), rng: rng}
}

func (s *MotionSystem) AddProperties(store *ecs.PropertyStore) {
	ecs.Ensure(store, collision.PropPosition, mgl64.Vec2{})
	ecs.Ensure(store, PropVelocity, mgl64.Vec2{})
}

func (s *MotionSystem) HandleEvents(ev ecs.Event) {
	if ev.Name != EventKick {
		return
	}
	for o := range s.Members().Each() {
		ecs.Set(o.Props(), PropVelocity, s.randomVelocity())
	}
}

func (s *MotionSystem) UpdateFixed(frame *ecs.UpdateFrame) {
	for o := range s.Members().Each() {
		pos := ecs.Ref[mgl64.Vec2](o.Props(), collision.PropPosition)
		if pos == nil {
			continue
		}
		vel := ecs.Get[mgl64.Vec2](o.Props(), PropVelocity)
		*pos = pos.Add(vel.Mul(frame.DeltaTime))
	}
}

func (s *MotionSystem) randomVelocity() mgl64.Vec2 {
	angle := s.rng.Float64() * 2 * math.Pi
	speed := maxSpeed/2 + s.rng.Float64()*maxSpeed/2
	return mgl64.Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed / 2}
}

// TerminalSystem paints one glyph per member at its rounded position.
type TerminalSystem struct {
	ecs.BaseSystem
	screen tcell.Screen
}

func NewTerminalSystem(screen tcell.Screen) *TerminalSystem {
	return &TerminalSystem{BaseSystem: ecs.NewBaseSystem("terminal"), screen: screen}
}

func (s *TerminalSystem) AddProperties(store *ecs.PropertyStore) {
	ecs.Ensure(store, collision.PropPosition, mgl64.Vec2{})
	ecs.Ensure(store, PropGlyph, '?')
	ecs.Ensure(store, PropStyle, tcell.StyleDefault)
}

func (s *TerminalSystem) Draw(frame *ecs.UpdateFrame) {
	s.screen.Clear()
	for o := range s.Members().Each() {
		pos := ecs.Get[mgl64.Vec2](o.Props(), collision.PropPosition)
		glyph := ecs.Get[rune](o.Props(), PropGlyph)
		style := ecs.Get[tcell.Style](o.Props(), PropStyle)
		s.screen.SetContent(int(math.Round(pos.X())), int(math.Round(pos.Y())), glyph, nil, style)
	}
	s.screen.Show()
}

// Bounce separates the pair and turns each movable object's velocity away from
// the side it was hit on.
func Bounce(frame *ecs.UpdateFrame, a, b *ecs.Object, hit collision.Hit) {
	collision.PushOut(frame, a, b, hit)
	deflect(a, hit.Contact.Side)
	deflect(b, hit.Contact.Side.Opposite())
}

func deflect(o *ecs.Object, side collision.Side) {
	if !ecs.Get[bool](o.Props(), collision.PropMovable) {
		return
	}
	vel := ecs.Ref[mgl64.Vec2](o.Props(), PropVelocity)
	if vel == nil {
		return
	}
	switch side {
	case collision.SideTop:
		vel[1] = -math.Abs(vel[1])
	case collision.SideBottom:
		vel[1] = math.Abs(vel[1])
	case collision.SideLeft:
		vel[0] = -math.Abs(vel[0])
	case collision.SideRight:
		vel[0] = math.Abs(vel[0])
	}
}

// Arena holds the systems and templates of one bouncing-ball playfield.
type Arena struct {
	Scheduler *ecs.Scheduler
	Motion    *MotionSystem
	Terminal  *TerminalSystem
	Collision *collision.System

	ball    *ecs.Template
	diamond *ecs.Template
	wall    *ecs.Template
}

// NewArena registers the systems and defines the "ball" and "wall" templates.
func NewArena(scheduler *ecs.Scheduler, screen tcell.Screen, rng *rand.Rand) *Arena {
	a := &Arena{
		Scheduler: scheduler,
		Motion:    NewMotionSystem(rng),
		Terminal:  NewTerminalSystem(screen),
		Collision: collision.NewSystem(),
	}
	a.Collision.EntityCollision = Bounce

	scheduler.Register(a.Motion)
	scheduler.Register(a.Collision)
	scheduler.Register(a.Terminal)

	w := scheduler.World()
	a.wall = w.DefineTemplate("wall")
	a.wall.AddSystem(a.Collision)
	a.wall.AddSystem(a.Terminal)
	ecs.Set(a.wall.Props(), collision.PropSize, mgl64.Vec2{1, 1})
	ecs.Set(a.wall.Props(), PropGlyph, '#')
	ecs.Set(a.wall.Props(), PropStyle, tcell.StyleDefault.Foreground(tcell.ColorGray))

	a.ball = w.DefineTemplate("ball")
	a.ball.AddSystem(a.Motion)
	a.ball.AddSystem(a.Collision)
	a.ball.AddSystem(a.Terminal)
	ecs.Set(a.ball.Props(), collision.PropSize, mgl64.Vec2{1, 1})
	ecs.Set(a.ball.Props(), collision.PropMovable, true)
	ecs.Set(a.ball.Props(), collision.PropLayer, 1)
	ecs.Set(a.ball.Props(), PropGlyph, 'o')
	ecs.Set(a.ball.Props(), PropStyle, tcell.StyleDefault.Foreground(tcell.ColorYellow))

	// Diamonds carry a polygon, so diamond pairs resolve through the
	// separating-axis test and everything else through their boxes.
	a.diamond = w.DefineTemplate("diamond")
	a.diamond.AddSystem(a.Motion)
	a.diamond.AddSystem(a.Collision)
	a.diamond.AddSystem(a.Terminal)
	ecs.Set(a.diamond.Props(), collision.PropSize, mgl64.Vec2{1, 1})
	ecs.Set(a.diamond.Props(), collision.PropMovable, true)
	ecs.Set(a.diamond.Props(), collision.PropLayer, 1)
	ecs.Add(a.diamond.Props(), collision.PropShape, collision.Polygon(
		mgl64.Vec2{0.5, 0}, mgl64.Vec2{1, 0.5}, mgl64.Vec2{0.5, 1}, mgl64.Vec2{0, 0.5},
	))
	ecs.Set(a.diamond.Props(), PropGlyph, '◆')
	ecs.Set(a.diamond.Props(), PropStyle, tcell.StyleDefault.Foreground(tcell.ColorAqua))
	return a
}

// Walls lines the border of a width x height field with wall objects.
func (a *Arena) Walls(width, height int) {
	for x := range width {
		a.wallAt(x, 0)
		a.wallAt(x, height-1)
	}
	for y := 1; y < height-1; y++ {
		a.wallAt(0, y)
		a.wallAt(width-1, y)
	}
}

func (a *Arena) wallAt(x, y int) {
	o := a.wall.MakeInstance()
	ecs.Set(o.Props(), collision.PropPosition, mgl64.Vec2{float64(x), float64(y)})
}

// Balls drops n balls at random free cells inside the walls.
func (a *Arena) Balls(n, width, height int) []*ecs.Object {
	return a.drop(a.ball, n, width, height)
}

// Diamonds drops n diamonds at random free cells inside the walls.
func (a *Arena) Diamonds(n, width, height int) []*ecs.Object {
	return a.drop(a.diamond, n, width, height)
}

func (a *Arena) drop(tpl *ecs.Template, n, width, height int) []*ecs.Object {
	objs := make([]*ecs.Object, n)
	for i := range objs {
		o := tpl.MakeInstance()
		ecs.Set(o.Props(), collision.PropPosition, mgl64.Vec2{
			float64(2 + a.Motion.rng.Intn(max(1, width-4))),
			float64(2 + a.Motion.rng.Intn(max(1, height-4))),
		})
		ecs.Set(o.Props(), PropVelocity, a.Motion.randomVelocity())
		objs[i] = o
	}
	return objs
}
