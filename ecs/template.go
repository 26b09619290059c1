package ecs

// Template is a stencil Object. Systems populate its store once through AddSystem;
// MakeInstance then clones that store into new Objects and registers them with
// the same systems, in the same order. A template never joins a system's members
// and never runs game logic.
type Template struct {
	*Object
	instances int
}

// AddSystem lets sys declare its properties on the template and records sys for
// every future instance. Adding the same system name twice is rejected.
func (t *Template) AddSystem(sys System) bool {
	if sys == nil {
		return false
	}
	if t.InSystem(sys.Name()) {
		t.logger.Warn("ecs: system already registered with template",
			"template", t.name,
			"system", sys.Name())
		return false
	}
	if !t.world.systems.adopt(sys) {
		return false
	}
	sys.AddProperties(t.props)
	t.systems = append(t.systems, sys)
	return true
}

// MakeInstance creates a new Object with a fresh ID, a deep copy of the
// template's properties and a queued registration with each of the template's
// systems. The instance takes part in ticks from the next frame on.
func (t *Template) MakeInstance() *Object {
	o := t.world.spawn(t.name)
	o.template = t.name
	o.props.Clone(t.props)
	for _, sys := range t.systems {
		AddProperties(sys, o)
	}
	t.instances++
	return o
}

// Instances returns how many objects were made from the template.
func (t *Template) Instances() int {
	return t.instances
}
