package ecs

import (
	"iter"
	"log/slog"
	"reflect"
)

// PropertyStore is the ordered name -> Property mapping owned by exactly one Object.
// Lookups and writes never fail loudly: misses and type mismatches are logged and
// degrade to zero values or no-ops so a bad access cannot abort a tick.
type PropertyStore struct {
	props  []Property
	index  map[string]int
	owner  ObjectID
	logger *slog.Logger
}

// NewPropertyStore creates an empty store. A nil logger falls back to slog.Default().
func NewPropertyStore(logger *slog.Logger) *PropertyStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PropertyStore{
		index:  make(map[string]int),
		logger: logger,
	}
}

func newOwnedStore(owner ObjectID, logger *slog.Logger) *PropertyStore {
	s := NewPropertyStore(logger)
	s.owner = owner
	return s
}

// Len returns the number of properties in the store.
func (s *PropertyStore) Len() int {
	return len(s.props)
}

// Has reports whether a property with the given name exists.
func (s *PropertyStore) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// TypeOf returns the type tag of the named property, or nil if it does not exist.
func (s *PropertyStore) TypeOf(name string) reflect.Type {
	p := s.property(name)
	if p == nil {
		return nil
	}
	return p.Type()
}

// Property returns the type-erased property, or nil.
func (s *PropertyStore) Property(name string) Property {
	return s.property(name)
}

// Names returns property names in insertion order.
func (s *PropertyStore) Names() []string {
	names := make([]string, len(s.props))
	for i, p := range s.props {
		names[i] = p.Name()
	}
	return names
}

// Each iterates over the properties in insertion order.
func (s *PropertyStore) Each() iter.Seq[Property] {
	return func(yield func(Property) bool) {
		for _, p := range s.props {
			if !yield(p) {
				return
			}
		}
	}
}

// Remove deletes the named property. Returns false if it did not exist.
func (s *PropertyStore) Remove(name string) bool {
	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.props = append(s.props[:i], s.props[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.props); j++ {
		s.index[s.props[j].Name()] = j
	}
	return true
}

// Clear drops every property.
func (s *PropertyStore) Clear() {
	s.props = nil
	clear(s.index)
}

// Clone deep-copies every property of src into s. Properties already present in s
// under the same name are replaced by the copy.
func (s *PropertyStore) Clone(src *PropertyStore) {
	if src == nil || src == s {
		return
	}
	for _, p := range src.props {
		c := p.clone()
		if i, ok := s.index[c.Name()]; ok {
			s.props[i] = c
			continue
		}
		s.insert(c)
	}
}

func (s *PropertyStore) property(name string) Property {
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return s.props[i]
}

func (s *PropertyStore) insert(p Property) {
	s.index[p.Name()] = len(s.props)
	s.props = append(s.props, p)
}

// Add stores value under name. Adding a name that already exists is rejected
// and the first value is kept.
func Add[T any](s *PropertyStore, name string, value T) bool {
	if existing := s.property(name); existing != nil {
		s.logger.Warn("ecs: property already exists",
			"object", s.owner,
			"property", name,
			"have", typeName(existing.Type()),
			"add", typeName(reflect.TypeFor[T]()))
		return false
	}
	s.insert(NewProperty(name, value))
	return true
}

// Ensure adds value under name unless a property of the same type already exists.
// Systems use it to declare the properties they need without clobbering values
// seeded by templates or by other systems. A type conflict is logged and the
// existing property wins.
func Ensure[T any](s *PropertyStore, name string, value T) bool {
	existing := s.property(name)
	if existing == nil {
		s.insert(NewProperty(name, value))
		return true
	}
	if want := reflect.TypeFor[T](); existing.Type() != want {
		s.logger.Warn("ecs: property type conflict",
			"object", s.owner,
			"property", name,
			"have", typeName(existing.Type()),
			"want", typeName(want))
		return false
	}
	return true
}

// Get returns the value stored under name. A missing name or a type mismatch
// is logged and the zero value of T is returned.
func Get[T any](s *PropertyStore, name string) T {
	p, ok := typed[T](s, name, true)
	if !ok {
		var zero T
		return zero
	}
	return p.value
}

// Lookup is Get without logging, for properties that are optional.
func Lookup[T any](s *PropertyStore, name string) (T, bool) {
	p, ok := typed[T](s, name, false)
	if !ok {
		var zero T
		return zero, false
	}
	return p.value, true
}

// Ref returns a pointer to the stored value for in-place mutation, or nil if
// the name is missing or holds a different type.
func Ref[T any](s *PropertyStore, name string) *T {
	p, ok := typed[T](s, name, true)
	if !ok {
		return nil
	}
	return &p.value
}

// Set overwrites the value stored under name. It is a logged no-op when the
// name is missing or the stored type differs from T.
func Set[T any](s *PropertyStore, name string, value T) bool {
	p := s.property(name)
	if p == nil {
		s.logger.Error("ecs: set on missing property",
			"object", s.owner,
			"property", name)
		return false
	}
	tp, ok := p.(*TypedProperty[T])
	if !ok {
		s.logger.Error("ecs: set with mismatched type",
			"object", s.owner,
			"property", name,
			"have", typeName(p.Type()),
			"got", typeName(reflect.TypeFor[T]()))
		return false
	}
	tp.value = value
	return true
}

func typed[T any](s *PropertyStore, name string, report bool) (*TypedProperty[T], bool) {
	p := s.property(name)
	if p == nil {
		if report {
			s.logger.Warn("ecs: property not found",
				"object", s.owner,
				"property", name)
		}
		return nil, false
	}
	tp, ok := p.(*TypedProperty[T])
	if !ok {
		if report {
			s.logger.Warn("ecs: property type mismatch",
				"object", s.owner,
				"property", name,
				"have", typeName(p.Type()),
				"want", typeName(reflect.TypeFor[T]()))
		}
		return nil, false
	}
	return tp, true
}
