package ecs

import (
	"log/slog"
	"reflect"
)

// Event is a named occurrence with an opaque payload. Events posted by the loop
// driver reach every system through System.HandleEvents; events raised on an
// EventBus reach the single handler subscribed to their name.
type Event struct {
	Name    string
	Payload any
}

type busHandler struct {
	typ reflect.Type
	fn  func(any)
}

type queuedEvent struct {
	Event
	typ reflect.Type
}

// EventBus is a string-keyed event queue with one handler per name. Payloads are
// typed: a handler declares the payload type it accepts and events raised with a
// different type are logged and dropped instead of being reinterpreted.
type EventBus struct {
	handlers map[string]busHandler
	queue    []queuedEvent
	logger   *slog.Logger
}

// NewEventBus creates an empty bus. A nil logger falls back to slog.Default().
func NewEventBus(logger *slog.Logger) *EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventBus{
		handlers: make(map[string]busHandler),
		logger:   logger,
	}
}

// On subscribes fn to events named name carrying a T payload. A name can only
// have one handler; later subscriptions are rejected and logged.
func On[T any](b *EventBus, name string, fn func(T)) bool {
	if _, ok := b.handlers[name]; ok {
		b.logger.Warn("ecs: event handler already registered", "event", name)
		return false
	}
	b.handlers[name] = busHandler{
		typ: reflect.TypeFor[T](),
		fn: func(payload any) {
			v, _ := payload.(T)
			fn(v)
		},
	}
	return true
}

// Off removes the handler for name.
func (b *EventBus) Off(name string) bool {
	if _, ok := b.handlers[name]; !ok {
		return false
	}
	delete(b.handlers, name)
	return true
}

// Raise queues an event. It is delivered by the next Dispatch.
func Raise[T any](b *EventBus, name string, payload T) {
	b.queue = append(b.queue, queuedEvent{
		Event: Event{Name: name, Payload: payload},
		typ:   reflect.TypeFor[T](),
	})
}

// Pending returns the number of queued events.
func (b *EventBus) Pending() int {
	return len(b.queue)
}

// Dispatch delivers every queued event in FIFO order and returns how many reached
// a handler. Events raised by handlers are kept for the next Dispatch.
func (b *EventBus) Dispatch() int {
	if len(b.queue) == 0 {
		return 0
	}
	queue := b.queue
	b.queue = nil

	delivered := 0
	for _, ev := range queue {
		h, ok := b.handlers[ev.Name]
		if !ok {
			b.logger.Debug("ecs: event has no handler", "event", ev.Name)
			continue
		}
		if h.typ != ev.typ {
			b.logger.Warn("ecs: event payload type mismatch",
				"event", ev.Name,
				"want", typeName(h.typ),
				"got", typeName(ev.typ))
			continue
		}
		h.fn(ev.Payload)
		delivered++
	}
	return delivered
}
