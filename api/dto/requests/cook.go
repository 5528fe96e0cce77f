// ABOUTME: Request DTOs for the cook and recipe endpoints
// ABOUTME: Inline recipes arrive as JSON objects or as JSON/YAML documents in a string

package requests

import (
	"encoding/json"
	"fmt"

	"recipe-cook-api/core/cook"
	coreerrors "recipe-cook-api/core/errors"
	"recipe-cook-api/core/recipe"
)

// CookRequest represents the request body for cooking a recipe
type CookRequest struct {
	// RecipeName selects a stored recipe
	RecipeName string `json:"recipeName,omitempty" maxLength:"128" doc:"Name of a stored recipe"`

	// Recipe is an inline recipe
	Recipe interface{} `json:"recipe,omitempty" doc:"Inline recipe object, or a JSON/YAML recipe document as a string"`

	// Data is the raw document
	Data string `json:"data,omitempty" doc:"Raw JSON or XML document to cook"`

	// DataURL is fetched when Data is empty
	DataURL string `json:"dataUrl,omitempty" doc:"URL of the document to cook"`

	// Params fill $$parN$$ injection points in the query
	Params []string `json:"params,omitempty" maxItems:"64" doc:"Query parameters, in injection point order"`

	// Multithread populates models in parallel
	Multithread bool `json:"multithread,omitempty" doc:"Populate models in parallel"`
}

// ToServiceRequest converts the DTO into a cook request.
func (r *CookRequest) ToServiceRequest() (cook.Request, error) {
	rec, err := ParseRecipe(r.Recipe)
	if err != nil {
		return cook.Request{}, err
	}
	return cook.Request{
		RecipeName:  r.RecipeName,
		Recipe:      rec,
		Data:        r.Data,
		DataURL:     r.DataURL,
		Params:      r.Params,
		Multithread: r.Multithread,
	}, nil
}

// ValidateRecipeRequest carries a recipe to check without cooking it
type ValidateRecipeRequest struct {
	Recipe interface{} `json:"recipe" doc:"Recipe object, or a JSON/YAML recipe document as a string"`
}

// ParseRecipe turns the decoded "recipe" member into a Recipe. A nil value
// yields a nil recipe.
func ParseRecipe(v interface{}) (*recipe.Recipe, error) {
	var doc []byte
	switch value := v.(type) {
	case nil:
		return nil, nil
	case string:
		doc = []byte(value)
	case map[string]interface{}:
		b, err := json.Marshal(value)
		if err != nil {
			return nil, &coreerrors.ValidationError{Field: "recipe", Message: err.Error()}
		}
		doc = b
	default:
		return nil, &coreerrors.ValidationError{Field: "recipe", Message: fmt.Sprintf("must be an object or a string, got %T", v)}
	}

	r, err := recipe.Parse(doc)
	if err != nil {
		return nil, &coreerrors.ValidationError{Field: "recipe", Message: err.Error()}
	}
	return r, nil
}
