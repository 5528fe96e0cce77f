package translation

import (
	"strconv"

	"recipe-cook-api/core/datapath"
	"recipe-cook-api/core/errors"
	"recipe-cook-api/core/recipe"
)

// Field names with special meaning during population.
const (
	// ModelValueField builds the model from the matched value itself.
	ModelValueField = "ModelValue"
	// KeyDataTypeField receives the value addressed by the recipe's keyDataPath.
	KeyDataTypeField = "keyDataType"
	// LiveField receives the recipe's live flag.
	LiveField = "live"
	// ContentTypeField receives the value addressed by the recipe's contentType.
	ContentTypeField = "contentType"
)

// Mapping is one parsed match-list entry.
type Mapping struct {
	Path  string
	Field string
}

// Plan is the population work derived once per recipe and shared by every
// matched node.
type Plan struct {
	Model       string
	Mappings    []Mapping
	KeyData     *Mapping
	ContentType *Mapping
	Live        *bool
}

// NewPlan compiles the match list and optional extras tags of r.
func NewPlan(r *recipe.Recipe) (*Plan, error) {
	plan := &Plan{Model: r.GetString(recipe.TagModel)}

	for _, entry := range r.GetStringList(recipe.TagMatchList) {
		path, field, err := datapath.SplitMatchEntry(entry)
		if err != nil {
			return nil, err
		}
		plan.Mappings = append(plan.Mappings, Mapping{Path: path, Field: field})
	}

	keyTag := recipe.TagKeyDataPath
	if !r.Contains(keyTag) {
		keyTag = recipe.TagKeyDataType
	}
	if r.Contains(keyTag) {
		m, err := optionalMapping(r.GetString(keyTag), KeyDataTypeField)
		if err != nil {
			return nil, err
		}
		plan.KeyData = m
	}

	if r.Contains(recipe.TagContentType) {
		m, err := optionalMapping(r.GetString(recipe.TagContentType), ContentTypeField)
		if err != nil {
			return nil, err
		}
		plan.ContentType = m
	}

	if raw, ok := r.Get(recipe.TagLive); ok {
		live, err := parseBool(raw)
		if err != nil {
			return nil, &errors.InvalidParserRecipeError{Reason: "live must be a boolean", Cause: err}
		}
		plan.Live = &live
	}

	return plan, nil
}

// optionalMapping accepts "<path>@<anything>" or a bare path. The field is
// always fixed by the tag.
func optionalMapping(entry, field string) (*Mapping, error) {
	if entry == "" {
		return nil, &errors.InvalidParserRecipeError{Reason: field + " path cannot be empty"}
	}
	path := entry
	if p, _, err := datapath.SplitMatchEntry(entry); err == nil {
		path = p
	}
	return &Mapping{Path: path, Field: field}, nil
}

func parseBool(v interface{}) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(b)
	}
	return strconv.ParseBool(toString(v))
}
