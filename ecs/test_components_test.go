package ecs_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/plus3/stencil/ecs"
)

// Common test property types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Score int32

// Inventory holds a slice and implements Cloner so instances get their own copy.
type Inventory struct {
	Items []string
}

func (i Inventory) Clone() Inventory {
	items := make([]string, len(i.Items))
	copy(items, i.Items)
	return Inventory{Items: items}
}

// Bag holds reference types without a Clone method.
type Bag struct {
	Items  []string
	Counts map[string]int
	Owner  *Health
}

// newTestWorld returns a world whose log output is captured in the returned buffer.
func newTestWorld(tb testing.TB, opts ...ecs.Option) (*ecs.World, *bytes.Buffer) {
	tb.Helper()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]ecs.Option{ecs.WithLogger(logger), ecs.WithFixedStep(100 * time.Millisecond)}, opts...)
	return ecs.NewWorld(opts...), buf
}

func newTestStore() (*ecs.PropertyStore, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ecs.NewPropertyStore(logger), buf
}

// MovementSystem integrates velocity into position every fixed step.
type MovementSystem struct {
	ecs.BaseSystem
	FixedCount int
}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{BaseSystem: ecs.NewBaseSystem("movement")}
}

func (s *MovementSystem) AddProperties(store *ecs.PropertyStore) {
	ecs.Ensure(store, "position", Position{})
	ecs.Ensure(store, "velocity", Velocity{})
}

func (s *MovementSystem) UpdateFixed(frame *ecs.UpdateFrame) {
	s.FixedCount++
	for o := range s.Members().Each() {
		pos := ecs.Ref[Position](o.Props(), "position")
		vel := ecs.Get[Velocity](o.Props(), "velocity")
		pos.X += vel.DX * float32(frame.DeltaTime)
		pos.Y += vel.DY * float32(frame.DeltaTime)
	}
}

// HealthSystem records joins/leaves and sums health every variable update.
type HealthSystem struct {
	ecs.BaseSystem
	Joined      []ecs.ObjectID
	Left        []ecs.ObjectID
	TotalHealth int
	Events      []string
	Draws       int
}

func NewHealthSystem() *HealthSystem {
	return &HealthSystem{BaseSystem: ecs.NewBaseSystem("health")}
}

func (s *HealthSystem) AddProperties(store *ecs.PropertyStore) {
	ecs.Ensure(store, "health", Health{Current: 100, Max: 100})
}

func (s *HealthSystem) HandleInit(o *ecs.Object)    { s.Joined = append(s.Joined, o.ID()) }
func (s *HealthSystem) HandleCleanup(o *ecs.Object) { s.Left = append(s.Left, o.ID()) }
func (s *HealthSystem) HandleEvents(ev ecs.Event)   { s.Events = append(s.Events, ev.Name) }
func (s *HealthSystem) Draw(frame *ecs.UpdateFrame) { s.Draws++ }

func (s *HealthSystem) UpdateVariable(frame *ecs.UpdateFrame) {
	s.TotalHealth = 0
	for o := range s.Members().Each() {
		s.TotalHealth += ecs.Get[Health](o.Props(), "health").Current
	}
}
