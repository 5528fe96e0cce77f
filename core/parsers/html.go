// ABOUTME: HTML parser selecting elements with CSS selectors via goquery
// ABOUTME: Elements map to the same #text/#attributes tree shape as XML

package parsers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"recipe-cook-api/core/domain"
	"recipe-cook-api/core/errors"
)

// HTMLParser parses HTML pages and evaluates CSS selectors.
type HTMLParser struct{}

// NewHTMLParser creates an HTML parser.
func NewHTMLParser() *HTMLParser {
	return &HTMLParser{}
}

// Name returns the parser name.
func (p *HTMLParser) Name() string { return "HTMLParser" }

// Parse returns the page as a map keyed by "html".
func (p *HTMLParser) Parse(data string) (*domain.Node, error) {
	if err := checkData(data); err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(data))
	if err != nil {
		return nil, &errors.InvalidDataError{Format: FormatHTML, Cause: err}
	}
	root := domain.NewMap()
	doc.Children().Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			root.Add(n.Data, htmlToNode(n))
		}
	})
	return root, nil
}

// ParseWithQuery returns the elements matched by a CSS selector. An invalid
// selector or an empty selection is an InvalidQueryError.
func (p *HTMLParser) ParseWithQuery(data, query string) ([]*domain.Node, error) {
	if err := checkData(data); err != nil {
		return nil, err
	}
	if err := checkQuery(query); err != nil {
		return nil, err
	}
	matcher, err := cascadia.Compile(query)
	if err != nil {
		return nil, &errors.InvalidQueryError{Format: FormatHTML, Query: query, Cause: err}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(data))
	if err != nil {
		return nil, &errors.InvalidDataError{Format: FormatHTML, Cause: err}
	}

	selection := doc.FindMatcher(matcher)
	if selection.Length() == 0 {
		return nil, &errors.InvalidQueryError{Format: FormatHTML, Query: query}
	}
	nodes := make([]*domain.Node, 0, selection.Length())
	for _, n := range selection.Nodes {
		nodes = append(nodes, htmlToNode(n))
	}
	return nodes, nil
}

func htmlToNode(n *html.Node) *domain.Node {
	node := domain.NewMap()
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			node.Add(c.Data, htmlToNode(c))
		case html.TextNode:
			text.WriteString(c.Data)
		}
	}
	node.Set(domain.TextKey, domain.NewScalar(strings.TrimSpace(text.String())))

	if len(n.Attr) > 0 {
		attrs := domain.NewMap()
		for _, a := range n.Attr {
			attrs.Set(a.Key, domain.NewScalar(a.Val))
		}
		node.Set(domain.AttributesKey, attrs)
	}
	return node
}
