package workers

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/dsplab/pkg/flow"
	"github.com/randalmurphal/dsplab/pkg/flow/config"
)

// Errors returned by worker resolution.
var (
	// ErrWorkerNotFound is returned when no function or class has the requested name.
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrParamsForFunction is returned when parameters are given for a plain function.
	ErrParamsForFunction = errors.New("function workers take no parameters")

	// ErrNilFactory is returned when a class factory returns a nil worker.
	ErrNilFactory = errors.New("factory returned nil worker")
)

// Kind says how a worker name is resolved.
type Kind int

const (
	// KindFunction names a registered flow.Worker used as is.
	KindFunction Kind = iota

	// KindClass names a Factory that builds a worker from parameters.
	KindClass
)

// String returns the description key for the kind.
func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	default:
		return "unknown"
	}
}

// Factory builds a worker from parameters.
// A Factory is called once per Work that names it.
type Factory func(params config.Params) (flow.Worker, error)

// Registry resolves worker names from plan descriptions.
// Functions and classes live in separate namespaces.
// All methods are safe for concurrent use.
type Registry struct {
	functions *table[flow.Worker]
	classes   *table[Factory]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		functions: newTable[flow.Worker](),
		classes:   newTable[Factory](),
	}
}

// RegisterFunction adds or replaces a plain worker function.
func (r *Registry) RegisterFunction(name string, w flow.Worker) {
	r.functions.set(name, w)
}

// RegisterClass adds or replaces a parameterized worker factory.
func (r *Registry) RegisterClass(name string, f Factory) {
	r.classes.set(name, f)
}

// Function returns the worker function registered under name.
func (r *Registry) Function(name string) (flow.Worker, bool) {
	return r.functions.get(name)
}

// Class returns the factory registered under name.
func (r *Registry) Class(name string) (Factory, bool) {
	return r.classes.get(name)
}

// Unregister removes name from both namespaces.
func (r *Registry) Unregister(name string) {
	r.functions.delete(name)
	r.classes.delete(name)
}

// Names returns the registered names of a kind in sorted order.
func (r *Registry) Names(kind Kind) []string {
	if kind == KindClass {
		return r.classes.names()
	}
	return r.functions.names()
}

// Len returns the total number of registered functions and classes.
func (r *Registry) Len() int {
	return r.functions.len() + r.classes.len()
}

// Resolve returns a worker for name.
//
// Function workers are returned as registered and reject non-empty params
// with ErrParamsForFunction. Class workers are built by calling the factory
// with params. Unknown names return ErrWorkerNotFound.
func (r *Registry) Resolve(kind Kind, name string, params map[string]any) (flow.Worker, error) {
	switch kind {
	case KindFunction:
		if len(params) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrParamsForFunction, name)
		}
		w, ok := r.functions.get(name)
		if !ok || w == nil {
			return nil, fmt.Errorf("%w: function %s", ErrWorkerNotFound, name)
		}
		return w, nil

	case KindClass:
		f, ok := r.classes.get(name)
		if !ok || f == nil {
			return nil, fmt.Errorf("%w: class %s", ErrWorkerNotFound, name)
		}
		w, err := f(config.New(params))
		if err != nil {
			return nil, fmt.Errorf("build worker %s: %w", name, err)
		}
		if w == nil {
			return nil, fmt.Errorf("build worker %s: %w", name, ErrNilFactory)
		}
		return w, nil

	default:
		return nil, fmt.Errorf("unknown worker kind %d", kind)
	}
}
