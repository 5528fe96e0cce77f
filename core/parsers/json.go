// ABOUTME: JSON parser evaluating JSONPath queries with PaesslerAG/jsonpath
// ABOUTME: Accepts the Jayway dialect (single-quoted literals, implicit root)

package parsers

import (
	"context"
	"strconv"
	"strings"

	"github.com/PaesslerAG/gval"
	"github.com/PaesslerAG/jsonpath"

	"recipe-cook-api/core/domain"
	"recipe-cook-api/core/errors"
)

// DefaultJSONQuery selects the whole document.
const DefaultJSONQuery = "$"

// jsonPathLanguage adds comparison and logic operators for filter expressions.
var jsonPathLanguage = gval.Full(jsonpath.Language())

// JSONParser parses JSON documents and evaluates JSONPath queries.
type JSONParser struct {
	opts options
}

// NewJSONParser creates a JSON parser.
func NewJSONParser(opts ...Option) *JSONParser {
	return &JSONParser{opts: buildOptions(opts)}
}

// Name returns the parser name.
func (p *JSONParser) Name() string { return "JSONParser" }

// Parse decodes the whole document.
func (p *JSONParser) Parse(data string) (*domain.Node, error) {
	if err := checkData(data); err != nil {
		return nil, err
	}
	doc, err := p.decode(data)
	if err != nil {
		return nil, err
	}
	return domain.FromInterface(doc), nil
}

// ParseWithQuery decodes data and returns the nodes selected by a JSONPath
// query. An array result yields one node per element. A filter with no
// matches yields an empty slice; a path through a missing key is an
// InvalidQueryError.
func (p *JSONParser) ParseWithQuery(data, query string) ([]*domain.Node, error) {
	if err := checkData(data); err != nil {
		return nil, err
	}
	if err := checkQuery(query); err != nil {
		return nil, err
	}
	doc, err := p.decode(data)
	if err != nil {
		return nil, err
	}
	return evalJSONPath(FormatJSON, doc, query)
}

func (p *JSONParser) decode(data string) (interface{}, error) {
	return p.opts.docs.Load(FormatJSON, data, func() (interface{}, error) {
		doc, err := decodeJSON([]byte(data))
		if err != nil {
			return nil, &errors.InvalidDataError{Format: FormatJSON, Cause: err}
		}
		return doc, nil
	})
}

// evalJSONPath runs query against a document decoded into plain Go values.
func evalJSONPath(format string, doc interface{}, query string) ([]*domain.Node, error) {
	normalized := NormalizeJSONPath(query)
	eval, err := jsonPathLanguage.NewEvaluable(normalized)
	if err != nil {
		return nil, &errors.InvalidQueryError{Format: format, Query: query, Cause: err}
	}
	result, err := eval(context.Background(), doc)
	if err != nil {
		return nil, &errors.InvalidQueryError{Format: format, Query: query, Cause: err}
	}
	if result == nil {
		return nil, &errors.InvalidQueryError{Format: format, Query: query}
	}

	if list, ok := result.([]interface{}); ok {
		nodes := make([]*domain.Node, 0, len(list))
		for _, item := range list {
			nodes = append(nodes, domain.FromInterface(item))
		}
		return nodes, nil
	}
	return []*domain.Node{domain.FromInterface(result)}, nil
}

// NormalizeJSONPath rewrites Jayway-style expressions for the evaluator:
// single-quoted literals become double-quoted and a missing root is added.
func NormalizeJSONPath(query string) string {
	q := strings.TrimSpace(query)
	switch {
	case strings.HasPrefix(q, "$"):
	case strings.HasPrefix(q, "["):
		q = "$" + q
	default:
		q = "$." + q
	}
	if !strings.Contains(q, "'") {
		return q
	}

	var b strings.Builder
	inDouble := false
	for i := 0; i < len(q); i++ {
		c := q[i]
		switch {
		case inDouble:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(q) {
				i++
				b.WriteByte(q[i])
			} else if c == '"' {
				inDouble = false
			}
		case c == '"':
			inDouble = true
			b.WriteByte(c)
		case c == '\'':
			var lit strings.Builder
			j := i + 1
			for ; j < len(q) && q[j] != '\''; j++ {
				if q[j] == '\\' && j+1 < len(q) {
					j++
				}
				lit.WriteByte(q[j])
			}
			b.WriteString(strconv.Quote(lit.String()))
			i = j
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
