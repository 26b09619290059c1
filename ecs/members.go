package ecs

import (
	"iter"

	"github.com/kamstrup/intmap"
)

// Members is the ordered collection of objects registered with a System.
// Joins and leaves are queued and only applied by Flush, which the World calls at
// frame boundaries, so a system can iterate its members while objects are being
// created or destroyed. The zero value is ready to use.
type Members struct {
	objects []*Object
	index   *intmap.Map[ObjectID, int]

	joining []*Object
	leaving []ObjectID
}

func (m *Members) ensure() {
	if m.index == nil {
		m.index = intmap.New[ObjectID, int](64)
	}
}

// Len returns the number of current members. Queued joins are not counted.
func (m *Members) Len() int {
	return len(m.objects)
}

// Pending returns the number of queued joins and leaves.
func (m *Members) Pending() int {
	return len(m.joining) + len(m.leaving)
}

// Contains reports whether id is a member or queued to join, and not queued to leave.
func (m *Members) Contains(id ObjectID) bool {
	for _, l := range m.leaving {
		if l == id {
			return false
		}
	}
	if m.index != nil && m.index.Has(id) {
		return true
	}
	for _, o := range m.joining {
		if o.id == id {
			return true
		}
	}
	return false
}

// Get returns the member with the given id.
func (m *Members) Get(id ObjectID) (*Object, bool) {
	if m.index == nil {
		return nil, false
	}
	i, ok := m.index.Get(id)
	if !ok {
		return nil, false
	}
	return m.objects[i], true
}

// Each iterates over members in join order.
func (m *Members) Each() iter.Seq[*Object] {
	return func(yield func(*Object) bool) {
		for _, o := range m.objects {
			if !yield(o) {
				return
			}
		}
	}
}

// Objects returns a snapshot of the members in join order.
func (m *Members) Objects() []*Object {
	out := make([]*Object, len(m.objects))
	copy(out, m.objects)
	return out
}

func (m *Members) join(o *Object) {
	m.joining = append(m.joining, o)
}

func (m *Members) leave(id ObjectID) {
	for i, o := range m.joining {
		if o.id == id {
			m.joining = append(m.joining[:i], m.joining[i+1:]...)
			return
		}
	}
	m.leaving = append(m.leaving, id)
}

// Flush applies queued leaves, then queued joins, calling sys.HandleCleanup and
// sys.HandleInit for each. Must not be called while the members are iterated.
func (m *Members) Flush(sys System) {
	m.ensure()

	if len(m.leaving) > 0 {
		leaving := m.leaving
		m.leaving = nil

		var left []*Object
		for _, id := range leaving {
			if i, ok := m.index.Get(id); ok {
				left = append(left, m.objects[i])
				m.objects[i] = nil
				m.index.Del(id)
			}
		}

		kept := m.objects[:0]
		for _, o := range m.objects {
			if o != nil {
				kept = append(kept, o)
			}
		}
		clear(m.objects[len(kept):])
		m.objects = kept
		for i, o := range m.objects {
			m.index.Put(o.id, i)
		}

		for _, o := range left {
			sys.HandleCleanup(o)
		}
	}

	if len(m.joining) > 0 {
		joining := m.joining
		m.joining = nil

		for _, o := range joining {
			if m.index.Has(o.id) {
				continue
			}
			m.index.Put(o.id, len(m.objects))
			m.objects = append(m.objects, o)
			sys.HandleInit(o)
		}
	}
}
