package ecs_test

import (
	"testing"

	"github.com/plus3/stencil/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commandSystem runs fn on its first variable update only.
type commandSystem struct {
	ecs.BaseSystem
	fn       func(frame *ecs.UpdateFrame)
	executed bool
}

func newCommandSystem(fn func(frame *ecs.UpdateFrame)) *commandSystem {
	return &commandSystem{BaseSystem: ecs.NewBaseSystem("commands"), fn: fn}
}

func (s *commandSystem) UpdateVariable(frame *ecs.UpdateFrame) {
	if s.executed {
		return
	}
	s.executed = true
	s.fn(frame)
}

func TestCommands(t *testing.T) {
	t.Run("instantiate templates", func(t *testing.T) {
		world, _ := newTestWorld(t)
		scheduler := ecs.NewScheduler(world)
		world.DefineTemplate("spark")

		system := newCommandSystem(func(frame *ecs.UpdateFrame) {
			frame.Commands.Instantiate("spark")
			frame.Commands.Instantiate("spark")
			assert.Equal(t, 0, frame.World.Len(), "nothing created during iteration")
		})
		scheduler.Register(system)

		scheduler.Once(0)

		assert.True(t, system.executed)
		assert.Equal(t, 2, world.Len())
		assert.Equal(t, 0, scheduler.Commands().Len())
		for _, o := range world.Objects() {
			assert.Equal(t, "spark", o.Template())
		}
	})

	t.Run("destroy objects", func(t *testing.T) {
		world, _ := newTestWorld(t)
		scheduler := ecs.NewScheduler(world)

		keep := world.NewObject("keep")
		drop := world.NewObject("drop")

		scheduler.Register(newCommandSystem(func(frame *ecs.UpdateFrame) {
			frame.Commands.Destroy(drop)
		}))

		scheduler.Once(0)
		assert.Equal(t, ecs.StatePendingCleanup, drop.State())
		assert.Equal(t, 2, world.Len(), "evicted at the end of the next frame")

		scheduler.Once(0)
		assert.Equal(t, []*ecs.Object{keep}, world.Objects())
	})

	t.Run("defer runs after structural changes", func(t *testing.T) {
		world, _ := newTestWorld(t)
		scheduler := ecs.NewScheduler(world)
		world.DefineTemplate("spark")

		var seen int
		scheduler.Register(newCommandSystem(func(frame *ecs.UpdateFrame) {
			frame.Commands.Defer(func() { seen = frame.World.Len() })
			frame.Commands.Instantiate("spark")
		}))

		scheduler.Once(0)
		assert.Equal(t, 1, seen)
	})

	t.Run("unknown template is logged", func(t *testing.T) {
		world, logs := newTestWorld(t)
		scheduler := ecs.NewScheduler(world)

		scheduler.Register(newCommandSystem(func(frame *ecs.UpdateFrame) {
			frame.Commands.Instantiate("ghost")
		}))

		scheduler.Once(0)
		assert.Equal(t, 0, world.Len())
		assert.Contains(t, logs.String(), "template not found")
	})

	t.Run("direct flush", func(t *testing.T) {
		world, _ := newTestWorld(t)
		tpl := world.DefineTemplate("crate")
		o := world.NewObject("old")
		o.DoInit()

		cmds := ecs.NewScheduler(world).Commands()
		cmds.Destroy(o)
		cmds.Instantiate("crate")
		require.Equal(t, 2, cmds.Len())

		cmds.Flush(world)
		assert.Equal(t, 0, cmds.Len())
		assert.Equal(t, 1, tpl.Instances())
		assert.Equal(t, ecs.StatePendingCleanup, o.State())
	})
}
