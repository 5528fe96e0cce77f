// ABOUTME: Model translator contract and the typed adapter used to register translators
// ABOUTME: Translators create, populate and validate models without reflection

package translation

import (
	"fmt"

	"recipe-cook-api/core/errors"
)

// ModelTranslator builds one model type from extracted values. It is the
// registry-facing form; implementations usually write a Translator[T] and
// register Adapt(t).
type ModelTranslator interface {
	// InstantiateModel returns a fresh, empty model.
	InstantiateModel() interface{}

	// SetMemberVariable assigns value to the symbolic field name. It returns
	// false, or an error such as TranslationError or NoSuchFieldError, when
	// the field is unknown or the value is rejected.
	SetMemberVariable(model interface{}, field string, value interface{}) (bool, error)

	// ValidateModel reports whether a fully populated model is usable.
	ValidateModel(model interface{}) bool

	// Name is the registry key recipes refer to.
	Name() string
}

// Translator is the typed form of ModelTranslator.
type Translator[T any] interface {
	InstantiateModel() T
	SetMemberVariable(model T, field string, value interface{}) (bool, error)
	ValidateModel(model T) bool
	Name() string
}

// Adapt exposes a typed translator through the untyped registry contract.
func Adapt[T any](t Translator[T]) ModelTranslator {
	return &adapter[T]{t: t}
}

type adapter[T any] struct {
	t Translator[T]
}

func (a *adapter[T]) InstantiateModel() interface{} {
	return a.t.InstantiateModel()
}

func (a *adapter[T]) SetMemberVariable(model interface{}, field string, value interface{}) (bool, error) {
	typed, ok := model.(T)
	if !ok {
		return false, &errors.TranslationError{
			Translator: a.t.Name(),
			Field:      field,
			Message:    fmt.Sprintf("model of type %T is not handled by this translator", model),
		}
	}
	return a.t.SetMemberVariable(typed, field, value)
}

func (a *adapter[T]) ValidateModel(model interface{}) bool {
	typed, ok := model.(T)
	return ok && a.t.ValidateModel(typed)
}

func (a *adapter[T]) Name() string {
	return a.t.Name()
}
