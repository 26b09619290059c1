package collision_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stencil/ecs"
	"github.com/plus3/stencil/ecs/collision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	system    *collision.System
	logs      *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logs := &bytes.Buffer{}
	world := ecs.NewWorld(
		ecs.WithLogger(slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		ecs.WithFixedStep(100*time.Millisecond),
	)
	scheduler := ecs.NewScheduler(world)
	system := collision.NewSystem()
	require.True(t, scheduler.Register(system))
	return &fixture{world: world, scheduler: scheduler, system: system, logs: logs}
}

func (f *fixture) box(name string, x, y, w, h float64, movable bool, z int) *ecs.Object {
	o := f.world.NewObject(name)
	o.AddSystem(f.system)
	ecs.Set(o.Props(), collision.PropPosition, mgl64.Vec2{x, y})
	ecs.Set(o.Props(), collision.PropSize, mgl64.Vec2{w, h})
	ecs.Set(o.Props(), collision.PropMovable, movable)
	ecs.Set(o.Props(), collision.PropLayer, z)
	return o
}

func (f *fixture) step() {
	f.scheduler.Once(0.1)
}

func contactsOf(o *ecs.Object) collision.Contacts {
	return ecs.Get[collision.Contacts](o.Props(), collision.PropCollision)
}

func TestSystemDeclaresProperties(t *testing.T) {
	f := newFixture(t)
	o := f.world.NewObject("thing")
	o.AddSystem(f.system)

	assert.Equal(t,
		[]string{"position", "size", "movable", "layer", "collision"},
		o.Props().Names())
}

func TestCollisionSymmetry(t *testing.T) {
	f := newFixture(t)
	ball := f.box("ball", 2, 0, 2, 2, true, 0)
	floor := f.box("floor", 0, 1.5, 10, 1, false, 0)

	f.step()

	ca := contactsOf(ball)
	cb := contactsOf(floor)
	require.Len(t, ca, 1)
	require.Len(t, cb, 1)

	assert.Equal(t, floor.ID(), ca[0].Other)
	assert.Equal(t, collision.SideTop, ca[0].Side)
	assert.Equal(t, collision.Penetration{Above: 0.5, Below: 2.5, Left: 4, Right: 8}, ca[0].Penetration)
	assert.Equal(t, mgl64.Vec2{0, -0.5}, ca[0].MTV)

	assert.Equal(t, ball.ID(), cb[0].Other)
	assert.Equal(t, collision.SideBottom, cb[0].Side)
	assert.Equal(t, ca[0].Penetration.Mirror(), cb[0].Penetration)
	assert.Equal(t, ca[0].MTV.Mul(-1), cb[0].MTV)
}

func TestStaticPairsAreNotTested(t *testing.T) {
	f := newFixture(t)
	a := f.box("a", 0, 0, 2, 2, false, 0)
	b := f.box("b", 1, 1, 2, 2, false, 0)

	f.step()

	assert.Empty(t, contactsOf(a))
	assert.Empty(t, contactsOf(b))
}

func TestMovablePairTestedOnce(t *testing.T) {
	f := newFixture(t)
	a := f.box("a", 0, 0, 2, 2, true, 0)
	b := f.box("b", 1.5, 0, 2, 2, true, 3)

	calls := 0
	f.system.EntityCollision = func(frame *ecs.UpdateFrame, x, y *ecs.Object, hit collision.Hit) {
		calls++
		assert.Same(t, a, x)
		assert.Same(t, b, y)
		assert.Equal(t, collision.SideLeft, hit.Contact.Side)
	}

	f.step()

	assert.Equal(t, 1, calls)
	assert.Len(t, contactsOf(a), 1)
	assert.Len(t, contactsOf(b), 1)
	assert.Equal(t, collision.SideRight, contactsOf(b)[0].Side)
}

func TestCollisionEventRaised(t *testing.T) {
	f := newFixture(t)
	ball := f.box("ball", 0, 0, 1, 1, true, 0)
	wall := f.box("wall", 0.5, 0, 1, 1, false, 0)

	var hits []collision.Hit
	ecs.On(f.world.Events(), collision.EventCollision, func(h collision.Hit) { hits = append(hits, h) })

	f.step()
	assert.Empty(t, hits, "delivered on the next dispatch")

	f.step()
	require.NotEmpty(t, hits)
	assert.Equal(t, ball.ID(), hits[0].A)
	assert.Equal(t, wall.ID(), hits[0].B)
}

func TestPushOutSeparates(t *testing.T) {
	f := newFixture(t)
	f.system.EntityCollision = collision.PushOut
	ball := f.box("ball", 2, 0, 2, 2, true, 0)
	floor := f.box("floor", 0, 1.5, 10, 1, false, 0)

	f.step()
	assert.Equal(t, mgl64.Vec2{2, -0.5}, ecs.Get[mgl64.Vec2](ball.Props(), collision.PropPosition))
	assert.Equal(t, mgl64.Vec2{0, 1.5}, ecs.Get[mgl64.Vec2](floor.Props(), collision.PropPosition))

	f.step()
	assert.Empty(t, contactsOf(ball), "contacts are rebuilt every step")
	assert.Empty(t, contactsOf(floor))
}

func TestPushOutSplitsBetweenMovables(t *testing.T) {
	f := newFixture(t)
	f.system.EntityCollision = collision.PushOut
	a := f.box("a", 0, 0, 2, 2, true, 0)
	b := f.box("b", 1, 0, 2, 2, true, 0)

	f.step()

	assert.Equal(t, mgl64.Vec2{-0.5, 0}, ecs.Get[mgl64.Vec2](a.Props(), collision.PropPosition))
	assert.Equal(t, mgl64.Vec2{1.5, 0}, ecs.Get[mgl64.Vec2](b.Props(), collision.PropPosition))
}

func TestShapesUseSeparatingAxis(t *testing.T) {
	f := newFixture(t)
	a := f.box("a", 0, 0, 0, 0, true, 0)
	b := f.box("b", 0.5, 0, 0, 0, false, 0)
	ecs.Add(a.Props(), collision.PropShape, collision.Rectangle(1, 1))
	ecs.Add(b.Props(), collision.PropShape, collision.Rectangle(1, 1))

	f.step()

	c, ok := contactsOf(a).With(b.ID())
	require.True(t, ok, "zero-size boxes only collide through their shapes")
	assert.Equal(t, collision.SideLeft, c.Side)
	assert.InDelta(t, -0.5, c.MTV.X(), 1e-9)

	mirror, ok := contactsOf(b).With(a.ID())
	require.True(t, ok)
	assert.Equal(t, collision.SideRight, mirror.Side)
}

func TestLayersAreZOrdered(t *testing.T) {
	f := newFixture(t)
	f.box("mid", 0, 0, 1, 1, false, 0)
	top := f.box("top", 0, 0, 1, 1, false, 2)
	f.box("bottom", 0, 0, 1, 1, true, -1)

	f.step()
	assert.Equal(t, []int{-1, 0, 2}, f.system.Layers())
	assert.Equal(t, 1, f.system.Movers())

	f.world.Destroy(top)
	f.step()
	assert.Equal(t, []int{-1, 0}, f.system.Layers())
}

func TestMoverCleanup(t *testing.T) {
	f := newFixture(t)
	ball := f.box("ball", 0, 0, 1, 1, true, 0)
	wall := f.box("wall", 0.5, 0, 1, 1, false, 0)

	f.step()
	require.Equal(t, 1, f.system.Movers())

	f.world.Destroy(ball)
	f.step()
	f.step()

	assert.Equal(t, 0, f.system.Movers())
	assert.Empty(t, contactsOf(wall))
}

func TestLayerAndMovableChangesAreReindexed(t *testing.T) {
	f := newFixture(t)
	crate := f.box("crate", 0, 0, 1, 1, false, 0)
	wall := f.box("wall", 0.5, 0, 1, 1, false, 0)

	f.step()
	require.Equal(t, 0, f.system.Movers())
	require.Empty(t, contactsOf(wall))

	ecs.Set(crate.Props(), collision.PropMovable, true)
	ecs.Set(crate.Props(), collision.PropLayer, 3)
	f.step()

	assert.Equal(t, []int{0, 3}, f.system.Layers())
	assert.Equal(t, 1, f.system.Movers())
	assert.Len(t, contactsOf(wall), 1)

	ecs.Set(crate.Props(), collision.PropMovable, false)
	f.step()
	assert.Equal(t, 0, f.system.Movers())
	assert.Empty(t, contactsOf(wall))

	f.world.Destroy(crate)
	f.step()
	assert.Equal(t, []int{0}, f.system.Layers(), "cleanup uses the current layer")
	assert.NotContains(t, f.logs.String(), "untracked object")
}
