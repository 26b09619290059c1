package main

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/stencil/ecs"
	"github.com/plus3/stencil/ecs/collision"
)

const arenaSize = 1000.0

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Templates int
	Instances int
	Systems   int
	Churn     int
	Collision bool
	Seed      int64
}

func (c Config) validate() error {
	switch {
	case c.Templates <= 0:
		return fmt.Errorf("%w: templates must be positive, got %d", ErrInvalidConfig, c.Templates)
	case c.Systems <= 0:
		return fmt.Errorf("%w: systems must be positive, got %d", ErrInvalidConfig, c.Systems)
	case c.Instances < 0:
		return fmt.Errorf("%w: instances must not be negative, got %d", ErrInvalidConfig, c.Instances)
	case c.Churn < 0:
		return fmt.Errorf("%w: churn must not be negative, got %d", ErrInvalidConfig, c.Churn)
	}
	return nil
}

// workerSystem bumps its own counter property on every member each fixed step.
type workerSystem struct {
	ecs.BaseSystem
	prop string
}

func newWorkerSystem(i int) *workerSystem {
	name := fmt.Sprintf("worker%03d", i)
	return &workerSystem{BaseSystem: ecs.NewBaseSystem(name), prop: name + ".ticks"}
}

func (s *workerSystem) AddProperties(store *ecs.PropertyStore) {
	ecs.Ensure(store, s.prop, 0)
}

func (s *workerSystem) UpdateFixed(frame *ecs.UpdateFrame) {
	for o := range s.Members().Each() {
		if n := ecs.Ref[int](o.Props(), s.prop); n != nil {
			*n++
		}
	}
}

// Stress owns the generated templates and the churn driver.
type Stress struct {
	world     *ecs.World
	rng       *rand.Rand
	cfg       Config
	templates []*ecs.Template
	hits      int
}

// Setup generates systems and templates and registers them with scheduler.
func Setup(scheduler *ecs.Scheduler, cfg Config) (*Stress, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	w := scheduler.World()
	s := &Stress{
		world: w,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		cfg:   cfg,
	}

	workers := make([]*workerSystem, cfg.Systems)
	for i := range workers {
		workers[i] = newWorkerSystem(i)
		if !scheduler.Register(workers[i]) {
			return nil, fmt.Errorf("register %s: name taken", workers[i].Name())
		}
	}

	var coll *collision.System
	if cfg.Collision {
		coll = collision.NewSystem()
		coll.EntityCollision = collision.PushOut
		if !scheduler.Register(coll) {
			return nil, fmt.Errorf("register %s: name taken", coll.Name())
		}
		ecs.On(w.Events(), collision.EventCollision, func(collision.Hit) { s.hits++ })
	}

	for i := range cfg.Templates {
		tpl := w.DefineTemplate(fmt.Sprintf("t%03d", i))
		if tpl == nil {
			return nil, fmt.Errorf("define template %d: name taken", i)
		}
		for _, idx := range s.rng.Perm(len(workers))[:1+s.rng.Intn(min(5, len(workers)))] {
			tpl.AddSystem(workers[idx])
		}
		if coll != nil {
			tpl.AddSystem(coll)
			side := 2 + s.rng.Float64()*8
			ecs.Set(tpl.Props(), collision.PropSize, mgl64.Vec2{side, side})
			ecs.Set(tpl.Props(), collision.PropMovable, s.rng.Intn(3) == 0)
			ecs.Set(tpl.Props(), collision.PropLayer, s.rng.Intn(3))
		}
		s.templates = append(s.templates, tpl)
	}
	return s, nil
}

// Populate instantiates n objects from random templates.
func (s *Stress) Populate(n int) {
	for range n {
		s.spawn()
	}
}

// Churn queues the destruction of random live objects and the creation of as
// many new ones, all applied at the end of the next frame.
func (s *Stress) Churn(cmds *ecs.Commands) {
	if s.cfg.Churn == 0 {
		return
	}
	live := s.world.Objects()
	for range min(s.cfg.Churn, len(live)) {
		cmds.Destroy(live[s.rng.Intn(len(live))])
	}
	for range s.cfg.Churn {
		cmds.Defer(func() { s.spawn() })
	}
}

// Collisions returns the number of collision events delivered so far.
func (s *Stress) Collisions() int {
	return s.hits
}

func (s *Stress) spawn() *ecs.Object {
	o := s.templates[s.rng.Intn(len(s.templates))].MakeInstance()
	if s.cfg.Collision {
		ecs.Set(o.Props(), collision.PropPosition, mgl64.Vec2{
			s.rng.Float64() * arenaSize,
			s.rng.Float64() * arenaSize,
		})
	}
	return o
}
