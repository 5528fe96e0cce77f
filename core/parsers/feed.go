// ABOUTME: RSS/Atom/JSON Feed parser normalized through gofeed
// ABOUTME: Queries run as JSONPath over the normalized feed structure

package parsers

import (
	"encoding/json"
	"strings"

	"github.com/mmcdole/gofeed"

	"recipe-cook-api/core/domain"
	"recipe-cook-api/core/errors"
)

// FeedParser normalizes any feed flavour gofeed understands into one tree
// shape (title, link, items[*].title, items[*].enclosures, ...).
type FeedParser struct {
	opts options
}

// NewFeedParser creates a feed parser.
func NewFeedParser(opts ...Option) *FeedParser {
	return &FeedParser{opts: buildOptions(opts)}
}

// Name returns the parser name.
func (p *FeedParser) Name() string { return "FeedParser" }

// Parse returns the normalized feed.
func (p *FeedParser) Parse(data string) (*domain.Node, error) {
	if err := checkData(data); err != nil {
		return nil, err
	}
	doc, err := p.decode(data)
	if err != nil {
		return nil, err
	}
	return domain.FromInterface(doc), nil
}

// ParseWithQuery evaluates a JSONPath query such as "$.items[*]" over the
// normalized feed.
func (p *FeedParser) ParseWithQuery(data, query string) ([]*domain.Node, error) {
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
	return evalJSONPath(FormatRSS, doc, query)
}

func (p *FeedParser) decode(data string) (interface{}, error) {
	return p.opts.docs.Load(FormatRSS, data, func() (interface{}, error) {
		feed, err := gofeed.NewParser().Parse(strings.NewReader(data))
		if err != nil {
			return nil, &errors.InvalidDataError{Format: FormatRSS, Cause: err}
		}
		// Round trip through JSON to get plain maps with the feed's json tags.
		raw, err := json.Marshal(feed)
		if err != nil {
			return nil, &errors.InvalidDataError{Format: FormatRSS, Cause: err}
		}
		doc, err := decodeJSON(raw)
		if err != nil {
			return nil, &errors.InvalidDataError{Format: FormatRSS, Cause: err}
		}
		return doc, nil
	})
}
