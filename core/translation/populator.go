// ABOUTME: Builds one model from one matched node using a compiled plan
// ABOUTME: Two strategies: a registered translator or reflective field assignment

package translation

import (
	"fmt"

	"recipe-cook-api/core/datapath"
	"recipe-cook-api/core/domain"
	"recipe-cook-api/core/errors"
)

// ModelPopulator turns a matched node into a model. A nil model with a nil
// error means the model was built but rejected by validation and should be
// dropped.
type ModelPopulator interface {
	Populate(node *domain.Node, plan *Plan) (interface{}, error)
}

// TranslatorPopulator delegates every assignment to a ModelTranslator.
type TranslatorPopulator struct {
	Translator ModelTranslator
}

// Populate implements ModelPopulator.
func (p *TranslatorPopulator) Populate(node *domain.Node, plan *Plan) (interface{}, error) {
	if node == nil || plan == nil {
		return nil, &errors.IllegalArgumentError{Argument: "node", Message: "node and plan are required"}
	}
	t := p.Translator
	model := t.InstantiateModel()

	for _, m := range plan.Mappings {
		value, err := datapath.GetValue(node, m.Path)
		if err != nil {
			return nil, err
		}
		if err := p.set(model, m.Field, value.Interface()); err != nil {
			return nil, err
		}
	}

	if plan.KeyData != nil {
		value, err := datapath.GetValue(node, plan.KeyData.Path)
		if err != nil {
			return nil, err
		}
		if err := p.set(model, KeyDataTypeField, value.Interface()); err != nil {
			return nil, err
		}
	}

	if plan.Live != nil {
		// A translator that ignores the live flag is not an error.
		_, _ = t.SetMemberVariable(model, LiveField, *plan.Live)
	}

	if plan.ContentType != nil {
		value, err := datapath.GetValue(node, plan.ContentType.Path)
		if err == nil && value.Interface() != nil {
			if err := p.set(model, ContentTypeField, value.Interface()); err != nil {
				return nil, err
			}
		}
	}

	if !t.ValidateModel(model) {
		return nil, nil
	}
	return model, nil
}

func (p *TranslatorPopulator) set(model interface{}, field string, value interface{}) error {
	ok, err := p.Translator.SetMemberVariable(model, field, value)
	if err != nil {
		return err
	}
	if !ok {
		return &errors.TranslationError{
			Translator: p.Translator.Name(),
			Field:      field,
			Message:    "tried to set an invalid member variable during translation",
		}
	}
	return nil
}

// ReflectivePopulator builds models registered in a ModelRegistry and assigns
// fields by name.
type ReflectivePopulator struct {
	Models *ModelRegistry
}

// Populate implements ModelPopulator.
func (p *ReflectivePopulator) Populate(node *domain.Node, plan *Plan) (interface{}, error) {
	if node == nil || plan == nil {
		return nil, &errors.IllegalArgumentError{Argument: "node", Message: "node and plan are required"}
	}
	ctor, err := p.Models.Lookup(plan.Model)
	if err != nil {
		return nil, err
	}
	model := ctor()
	if model == nil {
		return nil, &errors.ClassNotFoundError{Model: plan.Model}
	}

	for _, m := range plan.Mappings {
		value, err := datapath.GetValue(node, m.Path)
		if err != nil {
			return nil, err
		}
		if m.Field == ModelValueField {
			err = SetModelValue(model, value.Interface())
		} else {
			err = SetField(model, m.Field, value.Interface())
		}
		if err != nil {
			return nil, err
		}
	}

	if plan.KeyData != nil {
		value, err := datapath.GetValue(node, plan.KeyData.Path)
		if err != nil {
			return nil, err
		}
		if err := SetExtra(model, KeyDataTypeField, value.Interface()); err != nil {
			return nil, err
		}
	}

	if plan.Live != nil {
		if err := SetExtra(model, LiveField, *plan.Live); err != nil {
			return nil, err
		}
	}

	if plan.ContentType != nil {
		if value, err := datapath.GetValue(node, plan.ContentType.Path); err == nil {
			if err := SetExtra(model, ContentTypeField, value.Interface()); err != nil {
				return nil, err
			}
		}
	}

	return Unwrap(model), nil
}

// NewPopulator picks the strategy a recipe asks for: the named translator
// when one is set, reflection otherwise.
func NewPopulator(translatorName string, translators *TranslatorRegistry, models *ModelRegistry) (ModelPopulator, error) {
	if translatorName != "" {
		if translators == nil {
			return nil, &errors.TranslatorNotFoundError{Name: translatorName}
		}
		t, err := translators.Lookup(translatorName)
		if err != nil {
			return nil, err
		}
		return &TranslatorPopulator{Translator: t}, nil
	}
	if models == nil {
		return nil, fmt.Errorf("no model registry configured")
	}
	return &ReflectivePopulator{Models: models}, nil
}
