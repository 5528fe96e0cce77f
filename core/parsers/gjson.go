// ABOUTME: JSON parser using GJSON path syntax instead of JSONPath
// ABOUTME: Suited to recipes written as categories.#(type=="category")#

package parsers

import (
	"fmt"

	"github.com/tidwall/gjson"

	"recipe-cook-api/core/domain"
	"recipe-cook-api/core/errors"
)

// GJSONParser evaluates GJSON paths directly on the raw document.
type GJSONParser struct{}

// NewGJSONParser creates a GJSON parser.
func NewGJSONParser() *GJSONParser {
	return &GJSONParser{}
}

// Name returns the parser name.
func (p *GJSONParser) Name() string { return "GJSONParser" }

// Parse decodes the whole document.
func (p *GJSONParser) Parse(data string) (*domain.Node, error) {
	if err := checkData(data); err != nil {
		return nil, err
	}
	if !gjson.Valid(data) {
		return nil, &errors.InvalidDataError{Format: FormatGJSON, Cause: fmt.Errorf("malformed json")}
	}
	return nodeFromGJSON(gjson.Parse(data)), nil
}

// ParseWithQuery evaluates a GJSON path. A path that does not exist is an
// InvalidQueryError; an array result yields one node per element.
func (p *GJSONParser) ParseWithQuery(data, query string) ([]*domain.Node, error) {
	if err := checkData(data); err != nil {
		return nil, err
	}
	if err := checkQuery(query); err != nil {
		return nil, err
	}
	if !gjson.Valid(data) {
		return nil, &errors.InvalidDataError{Format: FormatGJSON, Cause: fmt.Errorf("malformed json")}
	}

	result := gjson.Get(data, query)
	if !result.Exists() {
		return nil, &errors.InvalidQueryError{Format: FormatGJSON, Query: query}
	}
	if !result.IsArray() {
		return []*domain.Node{nodeFromGJSON(result)}, nil
	}

	items := result.Array()
	nodes := make([]*domain.Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, nodeFromGJSON(item))
	}
	return nodes, nil
}
