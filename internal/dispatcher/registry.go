package dispatcher

import (
	"sort"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/dispatcher/handler"
)

// Registry maps action kinds to handlers.
type Registry struct {
	handlers map[action.Kind]handler.Handler
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[action.Kind]handler.Handler)}
}

// Register sets the handler for kind, replacing any previous one.
func (r *Registry) Register(kind action.Kind, h handler.Handler) {
	r.handlers[kind] = h
}

// RegisterFunc registers a handler function for kind.
func (r *Registry) RegisterFunc(kind action.Kind, fn handler.HandlerFunc) {
	r.handlers[kind] = fn
}

// RegisterKinds registers h for every kind it declares.
func (r *Registry) RegisterKinds(h handler.KindHandler) {
	for _, k := range h.Kinds() {
		r.handlers[k] = h
	}
}

// Unregister removes the handler for kind.
func (r *Registry) Unregister(kind action.Kind) {
	delete(r.handlers, kind)
}

// Get returns the handler for kind, or nil.
func (r *Registry) Get(kind action.Kind) handler.Handler {
	return r.handlers[kind]
}

// Has returns true if a handler is registered for kind.
func (r *Registry) Has(kind action.Kind) bool {
	_, ok := r.handlers[kind]
	return ok
}

// List returns the registered kinds in declaration order.
func (r *Registry) List() []action.Kind {
	kinds := make([]action.Kind, 0, len(r.handlers))
	for k := range r.handlers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Count returns the number of registered kinds.
func (r *Registry) Count() int {
	return len(r.handlers)
}

// Clear removes all registered handlers.
func (r *Registry) Clear() {
	r.handlers = make(map[action.Kind]handler.Handler)
}
