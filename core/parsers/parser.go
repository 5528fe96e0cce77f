// ABOUTME: Format parser contract and shared options for all document formats
// ABOUTME: Parsers turn raw text into the generic tree and evaluate queries on it

package parsers

import (
	"recipe-cook-api/core/domain"
	"recipe-cook-api/core/errors"
)

// Format tags used to register parsers with the engine.
const (
	FormatJSON  = "json"
	FormatXML   = "xml"
	FormatRSS   = "rss"
	FormatHTML  = "html"
	FormatGJSON = "gjson"
)

// Parser converts raw documents of one format into the generic tree.
//
// Parse returns the whole document. ParseWithQuery returns every node the
// query matches, in document order; a single match is still a one-element
// slice.
//
// Both fail with IllegalArgumentError on empty input, InvalidDataError on
// malformed documents and, for ParseWithQuery, InvalidQueryError on queries
// that do not compile or match nothing where the format requires a match.
type Parser interface {
	Parse(data string) (*domain.Node, error)
	ParseWithQuery(data, query string) ([]*domain.Node, error)
	Name() string
}

// Option configures a parser.
type Option func(*options)

type options struct {
	docs *DocumentCache
}

// WithDocumentCache shares decoded documents between calls with the same
// payload.
func WithDocumentCache(cache *DocumentCache) Option {
	return func(o *options) {
		o.docs = cache
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func checkData(data string) error {
	if data == "" {
		return &errors.IllegalArgumentError{Argument: "data", Message: "data cannot be null or empty"}
	}
	return nil
}

func checkQuery(query string) error {
	if query == "" {
		return &errors.IllegalArgumentError{Argument: "query", Message: "query cannot be null or empty"}
	}
	return nil
}

// Builtin returns the parsers every engine starts with.
func Builtin(opts ...Option) map[string]Parser {
	return map[string]Parser{
		FormatJSON: NewJSONParser(opts...),
		FormatXML:  NewXMLParser(opts...),
	}
}

// Extras returns the optional parsers that callers register on demand.
func Extras(opts ...Option) map[string]Parser {
	return map[string]Parser{
		FormatRSS:   NewFeedParser(opts...),
		FormatHTML:  NewHTMLParser(),
		FormatGJSON: NewGJSONParser(),
	}
}
