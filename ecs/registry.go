package ecs

import "log/slog"

// SystemRegistry catalogs systems by name, in registration order.
// Each World has its own registry.
type SystemRegistry struct {
	byName map[string]System
	order  []System
	logger *slog.Logger
}

func newSystemRegistry(logger *slog.Logger) *SystemRegistry {
	return &SystemRegistry{
		byName: make(map[string]System),
		logger: logger,
	}
}

// Register adds sys under its name. A second system with an already registered
// name is rejected and logged.
func (r *SystemRegistry) Register(sys System) bool {
	if existing, ok := r.byName[sys.Name()]; ok {
		if existing != sys {
			r.logger.Warn("ecs: system name already registered", "system", sys.Name())
		}
		return false
	}
	r.byName[sys.Name()] = sys
	r.order = append(r.order, sys)
	return true
}

// adopt registers sys if its name is free. Returns false only when the name is
// taken by a different system.
func (r *SystemRegistry) adopt(sys System) bool {
	if existing, ok := r.byName[sys.Name()]; ok {
		if existing != sys {
			r.logger.Warn("ecs: system name bound to a different system", "system", sys.Name())
			return false
		}
		return true
	}
	r.byName[sys.Name()] = sys
	r.order = append(r.order, sys)
	return true
}

// Get returns the system registered under name.
func (r *SystemRegistry) Get(name string) (System, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// All returns the systems in registration order.
func (r *SystemRegistry) All() []System {
	out := make([]System, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered systems.
func (r *SystemRegistry) Len() int {
	return len(r.order)
}

// TemplateRegistry owns every Template of a World for its whole lifetime.
type TemplateRegistry struct {
	byName map[string]*Template
	order  []*Template
	logger *slog.Logger
}

func newTemplateRegistry(logger *slog.Logger) *TemplateRegistry {
	return &TemplateRegistry{
		byName: make(map[string]*Template),
		logger: logger,
	}
}

func (r *TemplateRegistry) add(t *Template) bool {
	if _, ok := r.byName[t.Name()]; ok {
		r.logger.Warn("ecs: template already defined", "template", t.Name())
		return false
	}
	r.byName[t.Name()] = t
	r.order = append(r.order, t)
	return true
}

// Get returns the template registered under name.
func (r *TemplateRegistry) Get(name string) (*Template, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// All returns the templates in definition order.
func (r *TemplateRegistry) All() []*Template {
	out := make([]*Template, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of templates.
func (r *TemplateRegistry) Len() int {
	return len(r.order)
}
