// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"slices"
	"strings"
	"sync"
)

// ErrNoBackendAvailable is returned when no backend is registered, or every
// registered backend failed to allocate.
var ErrNoBackendAvailable = errors.New("surface: no backend available")

// backend is one registered Factory.
type backend struct {
	name     string
	priority int
	factory  Factory
}

// Registry maps backend names to factories. The zero value is empty and ready
// to use; the package-level functions operate on a global registry that
// holds the built-in "image" and "deep" backends.
//
// A host with its own render targets registers above "image":
//
//	func init() {
//	    surface.Register("host", 100, hostFactory)
//	}
type Registry struct {
	mu       sync.RWMutex
	backends []backend // priority order, highest first
}

var globalRegistry Registry

// Register adds a backend to the global registry. Registering an existing
// name replaces it.
func Register(name string, priority int, factory Factory) {
	globalRegistry.Register(name, priority, factory)
}

// Backends returns the globally registered backend names, highest priority
// first.
func Backends() []string {
	return globalRegistry.Names()
}

// NewSurface allocates from the highest priority global backend that
// succeeds. NewSurface is a Factory.
func NewSurface(width, height int) (Surface, error) {
	return globalRegistry.NewSurface(width, height)
}

// NewSurfaceByName allocates from the named global backend.
func NewSurfaceByName(name string, width, height int) (Surface, error) {
	return globalRegistry.NewSurfaceByName(name, width, height)
}

// FactoryFor returns a Factory bound to a named global backend. The name is
// resolved on every call, so an unknown name fails at allocation time with
// *BackendNotFoundError.
func FactoryFor(name string) Factory {
	return globalRegistry.FactoryFor(name)
}

// Register adds a backend to r, replacing any backend with the same name.
// Backends of equal priority keep registration order.
func (r *Registry) Register(name string, priority int, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backends = slices.DeleteFunc(r.backends, func(b backend) bool { return b.name == name })
	r.backends = append(r.backends, backend{name: name, priority: priority, factory: factory})
	slices.SortStableFunc(r.backends, func(a, b backend) int { return b.priority - a.priority })
}

// Names returns the registered backend names, highest priority first.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.backends))
	for i, b := range r.backends {
		names[i] = b.name
	}
	return names
}

// NewSurface tries each backend in priority order and returns the first
// surface allocated. If all fail, the last error is returned.
func (r *Registry) NewSurface(width, height int) (Surface, error) {
	r.mu.RLock()
	backends := slices.Clone(r.backends)
	r.mu.RUnlock()

	err := ErrNoBackendAvailable
	for _, b := range backends {
		var s Surface
		if s, err = b.factory(width, height); err == nil {
			return s, nil
		}
	}
	return nil, err
}

// NewSurfaceByName allocates from the named backend.
func (r *Registry) NewSurfaceByName(name string, width, height int) (Surface, error) {
	r.mu.RLock()
	i := slices.IndexFunc(r.backends, func(b backend) bool { return b.name == name })
	var factory Factory
	if i >= 0 {
		factory = r.backends[i].factory
	}
	r.mu.RUnlock()

	if factory == nil {
		return nil, &BackendNotFoundError{Name: name, Known: r.Names()}
	}
	return factory(width, height)
}

// FactoryFor returns a Factory bound to the named backend of r.
func (r *Registry) FactoryFor(name string) Factory {
	return func(width, height int) (Surface, error) {
		return r.NewSurfaceByName(name, width, height)
	}
}

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string

	// Known lists the registered backends at lookup time.
	Known []string
}

func (e *BackendNotFoundError) Error() string {
	msg := "surface: backend not found: " + e.Name
	if len(e.Known) > 0 {
		msg += " (registered: " + strings.Join(e.Known, ", ") + ")"
	}
	return msg
}

// init registers the built-in ImageSurface backends. The 8-bit "image"
// backend is preferred; "deep" is selected by name for brush synthesis.
func init() {
	Register("image", 10, NewImage)
	Register("deep", 5, NewDeepImage)
}
