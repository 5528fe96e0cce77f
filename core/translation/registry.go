// ABOUTME: Thread-safe registries for model translators and reflectively built model types
// ABOUTME: Recipes look models up by name; the registry supplies fresh instances

package translation

import (
	"sort"
	"sync"

	"recipe-cook-api/core/errors"
)

// TranslatorRegistry holds translators by name.
type TranslatorRegistry struct {
	mu          sync.RWMutex
	translators map[string]ModelTranslator
}

// NewTranslatorRegistry creates an empty registry.
func NewTranslatorRegistry() *TranslatorRegistry {
	return &TranslatorRegistry{translators: make(map[string]ModelTranslator)}
}

// Register adds t under its Name. An existing entry is kept and false is
// returned.
func (r *TranslatorRegistry) Register(t ModelTranslator) bool {
	if t == nil || t.Name() == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.translators[t.Name()]; exists {
		return false
	}
	r.translators[t.Name()] = t
	return true
}

// Lookup returns the translator registered under name.
func (r *TranslatorRegistry) Lookup(name string) (ModelTranslator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.translators[name]
	if !ok {
		return nil, &errors.TranslatorNotFoundError{Name: name}
	}
	return t, nil
}

// Names lists registered translator names in sorted order.
func (r *TranslatorRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.translators)
}

// Len returns the number of registered translators.
func (r *TranslatorRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.translators)
}

// Constructor returns a new pointer to a model, ready for field assignment.
type Constructor func() interface{}

// ModelRegistry maps recipe model names onto constructors for reflective
// population.
type ModelRegistry struct {
	mu     sync.RWMutex
	models map[string]Constructor
}

// NewModelRegistry creates a registry preloaded with the scalar models
// "string", "int", "int64", "float64" and "bool".
func NewModelRegistry() *ModelRegistry {
	r := &ModelRegistry{models: make(map[string]Constructor)}
	RegisterType[string](r, "string")
	RegisterType[int](r, "int")
	RegisterType[int64](r, "int64")
	RegisterType[float64](r, "float64")
	RegisterType[bool](r, "bool")
	return r
}

// Register adds a constructor. An existing entry is kept and false is
// returned.
func (r *ModelRegistry) Register(name string, ctor Constructor) bool {
	if name == "" || ctor == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.models[name]; exists {
		return false
	}
	r.models[name] = ctor
	return true
}

// RegisterType registers T under name; instances are *T.
func RegisterType[T any](r *ModelRegistry, name string) bool {
	return r.Register(name, func() interface{} { return new(T) })
}

// Lookup returns the constructor registered under name.
func (r *ModelRegistry) Lookup(name string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.models[name]
	if !ok {
		return nil, &errors.ClassNotFoundError{Model: name}
	}
	return ctor, nil
}

// Names lists registered model names in sorted order.
func (r *ModelRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.models)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
