// ABOUTME: Public request and result types for the recipecook library
// ABOUTME: Results carry the JSON encoding of the cooked models

package recipecook

import (
	"encoding/json"
	"time"

	"recipe-cook-api/core/cook"
	"recipe-cook-api/core/recipe"
)

// Recipe is a parsed extraction recipe.
type Recipe = recipe.Recipe

// Request describes a cook whose result is returned as JSON. Exactly one of
// RecipeName and Recipe, and exactly one of Data and DataURL, must be set.
type Request struct {
	RecipeName string
	Recipe     *Recipe
	Data       string
	DataURL    string
	Params     []string
}

// Result holds the encoded models of a cook.
type Result struct {
	Recipe   string          `json:"recipe"`
	Model    string          `json:"model"`
	Count    int             `json:"count"`
	Models   json.RawMessage `json:"models"`
	Cached   bool            `json:"cached"`
	Duration time.Duration   `json:"duration"`
}

// Decode unmarshals the models into v, typically a pointer to a slice.
func (r *Result) Decode(v interface{}) error {
	return json.Unmarshal(r.Models, v)
}

// ParseRecipe reads a JSON (comments allowed) or YAML recipe.
func ParseRecipe(data []byte) (*Recipe, error) {
	r, err := recipe.Parse(data)
	if err != nil {
		return nil, NewError(ErrorTypeValidation, "invalid recipe").WithCause(err)
	}
	return r, nil
}

func (req Request) toService(multithread bool) cook.Request {
	return cook.Request{
		RecipeName:  req.RecipeName,
		Recipe:      req.Recipe,
		Data:        req.Data,
		DataURL:     req.DataURL,
		Params:      req.Params,
		Multithread: multithread,
	}
}

func resultFromService(r *cook.Result) *Result {
	return &Result{
		Recipe:   r.Recipe,
		Model:    r.Model,
		Count:    r.Count,
		Models:   r.Models,
		Cached:   r.Cached,
		Duration: r.Duration,
	}
}
