package ecs_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/plus3/stencil/ecs"
	"github.com/stretchr/testify/assert"
)

type DamageEvent struct {
	Target ecs.ObjectID
	Amount int
}

func newTestBus() (*ecs.EventBus, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ecs.NewEventBus(logger), buf
}

func TestEventBusDispatchFIFO(t *testing.T) {
	bus, _ := newTestBus()

	var got []int
	assert.True(t, ecs.On(bus, "damage", func(ev DamageEvent) {
		got = append(got, ev.Amount)
	}))

	ecs.Raise(bus, "damage", DamageEvent{Target: 1, Amount: 3})
	ecs.Raise(bus, "damage", DamageEvent{Target: 1, Amount: 5})
	assert.Equal(t, 2, bus.Pending())
	assert.Empty(t, got, "nothing delivered before Dispatch")

	assert.Equal(t, 2, bus.Dispatch())
	assert.Equal(t, []int{3, 5}, got)
	assert.Equal(t, 0, bus.Pending())
}

func TestEventBusOneHandlerPerName(t *testing.T) {
	bus, logs := newTestBus()

	first := 0
	ecs.On(bus, "ping", func(struct{}) { first++ })
	assert.False(t, ecs.On(bus, "ping", func(struct{}) { t.Fatal("second handler must not run") }))
	assert.Contains(t, logs.String(), "event handler already registered")

	ecs.Raise(bus, "ping", struct{}{})
	bus.Dispatch()
	assert.Equal(t, 1, first)

	assert.True(t, bus.Off("ping"))
	assert.False(t, bus.Off("ping"))
}

func TestEventBusPayloadMismatchIsDropped(t *testing.T) {
	bus, logs := newTestBus()

	called := false
	ecs.On(bus, "damage", func(DamageEvent) { called = true })

	ecs.Raise(bus, "damage", 12)
	assert.Equal(t, 0, bus.Dispatch())
	assert.False(t, called)
	assert.Contains(t, logs.String(), "event payload type mismatch")
}

func TestEventBusUnhandledName(t *testing.T) {
	bus, logs := newTestBus()

	ecs.Raise(bus, "nobody", "hello")
	assert.Equal(t, 0, bus.Dispatch())
	assert.Contains(t, logs.String(), "event has no handler")
}

func TestEventBusRaiseDuringDispatch(t *testing.T) {
	bus, _ := newTestBus()

	var order []string
	ecs.On(bus, "a", func(string) {
		order = append(order, "a")
		ecs.Raise(bus, "b", "")
	})
	ecs.On(bus, "b", func(string) { order = append(order, "b") })

	ecs.Raise(bus, "a", "")
	bus.Dispatch()
	assert.Equal(t, []string{"a"}, order)

	bus.Dispatch()
	assert.Equal(t, []string{"a", "b"}, order)
}
