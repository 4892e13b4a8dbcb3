package dialogue

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownAction is returned when no handler is registered for an action.
var ErrUnknownAction = errors.New("unknown action")

// Dispatcher runs actions on behalf of the host.
type Dispatcher interface {
	Dispatch(id ActionID) error
}

// DispatcherFunc adapts a function to a Dispatcher.
type DispatcherFunc func(id ActionID) error

// Dispatch calls f(id).
func (f DispatcherFunc) Dispatch(id ActionID) error {
	return f(id)
}

// Handler runs an action against host state S. Arg is the text after the
// first ':' in the action id, or "" when there is none.
type Handler[S any] func(state S, arg string) error

// Registry maps action names to handlers working on host state S.
//
// An action id is either a bare name ("quit") or a name with an argument
// ("background:#572268"). Exact matches win over name:arg lookups.
type Registry[S any] struct {
	handlers map[string]Handler[S]
}

// NewRegistry returns an empty registry.
func NewRegistry[S any]() *Registry[S] {
	return &Registry[S]{handlers: make(map[string]Handler[S])}
}

// Register adds or replaces the handler for name.
func (r *Registry[S]) Register(name string, h Handler[S]) {
	r.handlers[name] = h
}

// Has reports whether id resolves to a handler.
func (r *Registry[S]) Has(id ActionID) bool {
	_, _, ok := r.lookup(id)
	return ok
}

// Names returns the registered action names, sorted.
func (r *Registry[S]) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the handler for id against state.
func (r *Registry[S]) Dispatch(state S, id ActionID) error {
	h, arg, ok := r.lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, id)
	}
	if err := h(state, arg); err != nil {
		return fmt.Errorf("action %q: %w", id, err)
	}
	return nil
}

// Bind returns a Dispatcher that runs actions against state.
func (r *Registry[S]) Bind(state S) Dispatcher {
	return DispatcherFunc(func(id ActionID) error {
		return r.Dispatch(state, id)
	})
}

func (r *Registry[S]) lookup(id ActionID) (Handler[S], string, bool) {
	if h, ok := r.handlers[string(id)]; ok {
		return h, "", true
	}
	name, arg, found := strings.Cut(string(id), ":")
	if !found {
		return nil, "", false
	}
	h, ok := r.handlers[name]
	return h, arg, ok
}
