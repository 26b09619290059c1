package ecs

// System is per-tick logic over every Object registered with it. Registration is
// structural: any object whose store receives the properties the system declares
// in AddProperties can participate.
//
// User-defined systems embed BaseSystem and override the hooks they need.
type System interface {
	Name() string
	Members() *Members

	// AddProperties declares the properties the system needs, with defaults.
	// Implementations should use Ensure so values seeded by a template survive.
	AddProperties(store *PropertyStore)

	// HandleInit is called when an object joins the system.
	HandleInit(o *Object)
	// HandleCleanup is called when an object leaves the system.
	HandleCleanup(o *Object)

	HandleEvents(ev Event)
	UpdateFixed(frame *UpdateFrame)
	UpdateVariable(frame *UpdateFrame)
	Draw(frame *UpdateFrame)
}

// BaseSystem provides the name, the member collection and no-op hooks.
type BaseSystem struct {
	name    string
	members Members
}

// NewBaseSystem returns a BaseSystem with the given registry name.
func NewBaseSystem(name string) BaseSystem {
	return BaseSystem{name: name}
}

func (b *BaseSystem) Name() string                      { return b.name }
func (b *BaseSystem) Members() *Members                 { return &b.members }
func (b *BaseSystem) AddProperties(store *PropertyStore) {}
func (b *BaseSystem) HandleInit(o *Object)               {}
func (b *BaseSystem) HandleCleanup(o *Object)            {}
func (b *BaseSystem) HandleEvents(ev Event)              {}
func (b *BaseSystem) UpdateFixed(frame *UpdateFrame)     {}
func (b *BaseSystem) UpdateVariable(frame *UpdateFrame)  {}
func (b *BaseSystem) Draw(frame *UpdateFrame)            {}

// AddProperties registers o with sys: the system declares its properties on the
// object's store, the object is queued to join the system's members at the next
// frame boundary and the system is appended to the object's system list.
//
// Registering an object that is already a member (or already queued to join) is
// rejected by ObjectID and logged; the first registration wins.
func AddProperties(sys System, o *Object) bool {
	if sys == nil || o == nil {
		return false
	}
	logger := o.logger
	if sys.Members().Contains(o.id) {
		logger.Warn("ecs: object already registered with system",
			"object", o.id,
			"system", sys.Name())
		return false
	}
	if o.world != nil && !o.world.systems.adopt(sys) {
		return false
	}

	sys.AddProperties(o.props)
	sys.Members().join(o)
	o.systems = append(o.systems, sys)
	return true
}
