package ecs

import (
	"reflect"

	"github.com/huandu/go-clone"
)

// Property is a single named, type-tagged value slot owned by a PropertyStore.
// The tag is the reflect.Type of the stored value and never changes once the
// property is constructed.
type Property interface {
	Name() string
	Type() reflect.Type
	// Value returns a copy of the stored value boxed in an interface.
	Value() any
	// Addr returns a pointer to the stored value. Intended for tooling that
	// edits properties without knowing their concrete type.
	Addr() any

	clone() Property
}

// Cloner lets a property value control its own copy when a template is
// instantiated. Values without it are deep-copied generically.
type Cloner[T any] interface {
	Clone() T
}

// TypedProperty is the concrete Property variant for values of type T.
type TypedProperty[T any] struct {
	name  string
	value T
}

// NewProperty creates a property holding value under name.
func NewProperty[T any](name string, value T) *TypedProperty[T] {
	return &TypedProperty[T]{name: name, value: value}
}

func (p *TypedProperty[T]) Name() string       { return p.name }
func (p *TypedProperty[T]) Type() reflect.Type { return reflect.TypeFor[T]() }
func (p *TypedProperty[T]) Value() any         { return p.value }
func (p *TypedProperty[T]) Addr() any          { return &p.value }

// Get returns the stored value.
func (p *TypedProperty[T]) Get() T { return p.value }

// Set replaces the stored value.
func (p *TypedProperty[T]) Set(value T) { p.value = value }

func (p *TypedProperty[T]) clone() Property {
	return &TypedProperty[T]{name: p.name, value: cloneValue(p.value)}
}

// cloneValue returns a copy of v that shares no slices or maps with it.
// Top-level pointers, funcs, channels and interfaces are handles and stay shared.
func cloneValue[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Interface:
		return v
	}
	if out, ok := clone.Clone(v).(T); ok {
		return out
	}
	return v
}

// typeName is used in log attributes.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
