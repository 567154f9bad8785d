// Package pane resolves logical layer names to engine panes.
package pane

import (
	"strings"
	"sync"

	"geoverlay/internal/engine"
)

// Creator is the slice of engine.Engine the registry needs.
type Creator interface {
	CreatePane(name string) engine.Pane
}

// Registry hands out one pane per name, creating it on first use.
type Registry struct {
	mu    sync.Mutex
	eng   Creator
	panes map[string]engine.Pane
	order []string
}

func NewRegistry(eng Creator) *Registry {
	return &Registry{eng: eng, panes: make(map[string]engine.Pane)}
}

// Resolve returns the pane called name, creating and attaching it when absent.
func (r *Registry) Resolve(name string) engine.Pane {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.panes[name]; ok {
		return p
	}
	p := r.eng.CreatePane(name)
	r.panes[name] = p
	r.order = append(r.order, name)
	return p
}

// Lookup returns an existing pane without creating one.
func (r *Registry) Lookup(name string) (engine.Pane, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.panes[name]
	return p, ok
}

// Names lists resolved panes in creation order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// ID derives the placement identifier from a pane's class name: the segment
// right after the first hyphen. "leaflet-roads-pane" gives "roads".
func ID(p engine.Pane) string {
	parts := strings.Split(p.ClassName(), "-")
	if len(parts) < 2 {
		return p.ClassName()
	}
	return parts[1]
}
