package ecs

import (
	"log/slog"
	"strconv"

	"github.com/google/uuid"
)

// ObjectID is the process-unique numeric identity of an Object. IDs come from a
// monotonically increasing counter owned by the World and are never reused.
type ObjectID uint64

// NoObject is the zero ObjectID; no live object ever carries it.
const NoObject ObjectID = 0

func (id ObjectID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Object is an entity: an identity, the PropertyStore it owns and the ordered list
// of systems it participates in. The system list is a back-reference only; systems
// are owned by the World's SystemRegistry.
type Object struct {
	id       ObjectID
	guid     uuid.UUID
	name     string
	template string
	props    *PropertyStore
	systems  []System
	world    *World
	logger   *slog.Logger

	lifecycle

	// OnInit runs when the object transitions to Initialized.
	OnInit func(o *Object)
	// OnCleanup runs when pending cleanup is handled.
	OnCleanup func(o *Object)
}

func newObject(w *World, id ObjectID, name string) *Object {
	return &Object{
		id:     id,
		guid:   uuid.New(),
		name:   name,
		props:  newOwnedStore(id, w.logger),
		world:  w,
		logger: w.logger,
	}
}

// ID returns the numeric identity.
func (o *Object) ID() ObjectID { return o.id }

// GUID returns the stable external identity used by tooling and logs.
func (o *Object) GUID() uuid.UUID { return o.guid }

// Name returns the display name. Instances are named after their template.
func (o *Object) Name() string { return o.name }

// Template returns the name of the template this object was instantiated from,
// or "" for standalone objects and templates themselves.
func (o *Object) Template() string { return o.template }

// Props returns the object's property store.
func (o *Object) Props() *PropertyStore { return o.props }

// World returns the world the object lives in.
func (o *Object) World() *World { return o.world }

// Systems returns the systems the object is registered with, in registration order.
func (o *Object) Systems() []System {
	out := make([]System, len(o.systems))
	copy(out, o.systems)
	return out
}

// InSystem reports whether the object is registered with the named system.
func (o *Object) InSystem(name string) bool {
	for _, s := range o.systems {
		if s.Name() == name {
			return true
		}
	}
	return false
}

// AddSystem registers the object with sys. See AddProperties.
func (o *Object) AddSystem(sys System) bool {
	return AddProperties(sys, o)
}

// DoInit marks the object initialized. If a cleanup is still pending it runs
// first, so a re-initialized object never carries state from before DeInit.
func (o *Object) DoInit() {
	if o.pendingCleanup {
		o.HandleCleanup()
	}
	o.removable = false
	o.initialized = true
	if o.OnInit != nil {
		o.OnInit(o)
	}
}

// DeInit schedules cleanup. It is a no-op unless the object is initialized.
func (o *Object) DeInit() {
	if !o.initialized {
		return
	}
	o.initialized = false
	o.pendingCleanup = true
}

// HandleCleanup handles a pending cleanup: the object leaves every system it
// participates in (queued until the next membership flush), OnCleanup runs and
// the object becomes removable. Owners call it once per tick.
func (o *Object) HandleCleanup() {
	if !o.pendingCleanup {
		return
	}
	o.detach()
	if o.OnCleanup != nil {
		o.OnCleanup(o)
	}
	o.pendingCleanup = false
	o.removable = true
}

func (o *Object) detach() {
	for _, s := range o.systems {
		s.Members().leave(o.id)
	}
	o.systems = nil
}

func (o *Object) String() string {
	return o.name + "#" + o.id.String()
}
