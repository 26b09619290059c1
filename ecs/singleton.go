package ecs

// Singleton provides typed access to a world resource: a named value that is not
// attached to any object, such as configuration or arena bounds. Resources live in
// the world's own PropertyStore and follow the same miss/mismatch policy.
type Singleton[T any] struct {
	world *World
	name  string
	ptr   *T
}

// NewSingleton returns an accessor for the resource called name. If the resource
// does not exist yet it is created with initializer, or the zero value of T.
// This guarantees the resource exists after the call unless name is already
// bound to a different type, in which case Get returns nil.
func NewSingleton[T any](w *World, name string, initializer ...T) *Singleton[T] {
	if !w.resources.Has(name) {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		Add(w.resources, name, value)
	}
	s := &Singleton[T]{world: w, name: name}
	s.updateCache()
	return s
}

// Get returns a pointer to the resource, or nil if it holds a different type.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.updateCache()
	}
	return s.ptr
}

// Exists reports whether the resource is present with type T.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

// Name returns the resource name.
func (s *Singleton[T]) Name() string {
	return s.name
}

func (s *Singleton[T]) updateCache() {
	if s.world == nil {
		return
	}
	s.ptr = Ref[T](s.world.resources, s.name)
}

// Resources returns the world's resource store.
func (w *World) Resources() *PropertyStore {
	return w.resources
}
