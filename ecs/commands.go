package ecs

// Commands provides a buffer for deferred world operations that are executed at the
// end of a frame. This keeps structural changes out of system iteration.
type Commands struct {
	instantiates []string
	destroys     []*Object
	defers       []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Instantiate queues the creation of an instance of the named template.
func (c *Commands) Instantiate(template string) {
	c.instantiates = append(c.instantiates, template)
}

// Destroy queues the destruction of an object.
func (c *Commands) Destroy(o *Object) {
	c.destroys = append(c.destroys, o)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.instantiates) + len(c.destroys) + len(c.defers)
}

// Flush applies all commands to the world, resetting the buffer state.
// Destroys run first so a queued instantiate never collides with a dying object.
func (c *Commands) Flush(w *World) {
	for _, o := range c.destroys {
		w.Destroy(o)
	}

	for _, name := range c.instantiates {
		w.Instantiate(name)
	}

	for _, df := range c.defers {
		df.fn()
	}

	clear(c.destroys)
	c.instantiates = c.instantiates[:0]
	c.destroys = c.destroys[:0]
	c.defers = c.defers[:0]
}
