package ecs

import (
	"log/slog"
	"time"

	"github.com/kamstrup/intmap"
)

const (
	DefaultFixedStep     = time.Second / 60
	DefaultMaxFixedSteps = 5
)

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for every miss, mismatch and duplicate report.
func WithLogger(logger *slog.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithFixedStep sets the simulation step used for UpdateFixed.
func WithFixedStep(step time.Duration) Option {
	return func(w *World) {
		if step > 0 {
			w.fixedStep = step
		}
	}
}

// WithMaxFixedSteps caps the number of UpdateFixed calls per frame so a long
// frame cannot spiral.
func WithMaxFixedSteps(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.maxFixedSteps = n
		}
	}
}

// World is the explicit context shared by systems, templates and objects: it owns
// both registries, the instance id counter, the live object table and the event bus.
type World struct {
	logger *slog.Logger

	nextID  ObjectID
	objects *intmap.Map[ObjectID, *Object]
	live    []*Object

	systems   *SystemRegistry
	templates *TemplateRegistry
	events    *EventBus
	resources *PropertyStore

	fixedStep     time.Duration
	maxFixedSteps int
}

// NewWorld creates an empty world.
func NewWorld(opts ...Option) *World {
	w := &World{
		logger:        slog.Default(),
		objects:       intmap.New[ObjectID, *Object](256),
		fixedStep:     DefaultFixedStep,
		maxFixedSteps: DefaultMaxFixedSteps,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.systems = newSystemRegistry(w.logger)
	w.templates = newTemplateRegistry(w.logger)
	w.events = NewEventBus(w.logger)
	w.resources = NewPropertyStore(w.logger)
	return w
}

// Logger returns the world's logger.
func (w *World) Logger() *slog.Logger { return w.logger }

// Systems returns the system registry.
func (w *World) Systems() *SystemRegistry { return w.systems }

// Templates returns the template registry.
func (w *World) Templates() *TemplateRegistry { return w.templates }

// Events returns the world event bus.
func (w *World) Events() *EventBus { return w.events }

// FixedStep returns the configured fixed simulation step.
func (w *World) FixedStep() time.Duration { return w.fixedStep }

// RegisterSystem adds sys to the system registry.
func (w *World) RegisterSystem(sys System) bool {
	return w.systems.Register(sys)
}

// DefineTemplate creates and registers a template. Returns nil if the name is taken.
func (w *World) DefineTemplate(name string) *Template {
	t := &Template{Object: newObject(w, w.allocID(), name)}
	if !w.templates.add(t) {
		return nil
	}
	return t
}

// Instantiate makes an instance of the named template. An unknown name is logged
// and nil is returned.
func (w *World) Instantiate(name string) *Object {
	t, ok := w.templates.Get(name)
	if !ok {
		w.logger.Warn("ecs: template not found", "template", name)
		return nil
	}
	return t.MakeInstance()
}

// NewObject creates a standalone object that is not derived from a template.
func (w *World) NewObject(name string) *Object {
	return w.spawn(name)
}

// Object returns the live object with the given id.
func (w *World) Object(id ObjectID) (*Object, bool) {
	return w.objects.Get(id)
}

// Objects returns the live objects in creation order.
func (w *World) Objects() []*Object {
	out := make([]*Object, len(w.live))
	copy(out, w.live)
	return out
}

// Len returns the number of live objects.
func (w *World) Len() int {
	return len(w.live)
}

// Destroy starts the removal of o. The object is cleaned up and evicted at the
// end of the current frame; until then it stays visible to systems.
func (w *World) Destroy(o *Object) {
	if o == nil {
		return
	}
	if _, ok := w.objects.Get(o.id); !ok {
		w.logger.Warn("ecs: destroy of unknown object", "object", o.id)
		return
	}
	if o.initialized {
		o.DeInit()
		return
	}
	if !o.removable && !o.pendingCleanup {
		// Never initialized: cancel queued joins so systems never see it.
		o.detach()
		o.pendingCleanup = true
	}
}

func (w *World) allocID() ObjectID {
	w.nextID++
	return w.nextID
}

func (w *World) spawn(name string) *Object {
	o := newObject(w, w.allocID(), name)
	w.objects.Put(o.id, o)
	w.live = append(w.live, o)
	return o
}

// Flush applies queued joins and leaves for every registered system and
// initializes objects created since the last frame. Loop drivers other than
// Scheduler call it at the start of a frame.
func (w *World) Flush() {
	for _, sys := range w.systems.order {
		sys.Members().Flush(sys)
	}
	for _, o := range w.live {
		if o.State() == StateUninitialized {
			o.DoInit()
		}
	}
}

// Cleanup runs HandleCleanup on every live object and evicts the removable ones.
// Their queued leaves are flushed first, so systems see the store before it is
// cleared. Returns the number of evicted objects.
func (w *World) Cleanup() int {
	var evicted []*Object
	for _, o := range w.live {
		o.HandleCleanup()
		if o.removable {
			evicted = append(evicted, o)
		}
	}
	if len(evicted) == 0 {
		return 0
	}

	for _, sys := range w.systems.order {
		sys.Members().Flush(sys)
	}

	kept := w.live[:0]
	for _, o := range w.live {
		if o.removable {
			w.objects.Del(o.id)
			o.props.Clear()
			continue
		}
		kept = append(kept, o)
	}
	clear(w.live[len(kept):])
	w.live = kept
	return len(evicted)
}
