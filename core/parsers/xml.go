// ABOUTME: XML parser evaluating XPath queries with antchfx/xmlquery
// ABOUTME: Elements map to the generic tree with #text and #attributes children

package parsers

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"recipe-cook-api/core/domain"
	"recipe-cook-api/core/errors"
)

// DefaultXMLQuery selects the root element.
const DefaultXMLQuery = "*"

// XMLParser parses XML documents and evaluates XPath 1.0 queries.
type XMLParser struct {
	opts options
}

// NewXMLParser creates an XML parser.
func NewXMLParser(opts ...Option) *XMLParser {
	return &XMLParser{opts: buildOptions(opts)}
}

// Name returns the parser name.
func (p *XMLParser) Name() string { return "XMLParser" }

// Parse returns the document as a map keyed by the root element name.
func (p *XMLParser) Parse(data string) (*domain.Node, error) {
	if err := checkData(data); err != nil {
		return nil, err
	}
	doc, err := p.decode(data)
	if err != nil {
		return nil, err
	}
	return xmlToNode(doc), nil
}

// ParseWithQuery returns the nodes selected by an XPath expression. An empty
// selection is an InvalidQueryError.
func (p *XMLParser) ParseWithQuery(data, query string) ([]*domain.Node, error) {
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

	expr, err := xpath.Compile(query)
	if err != nil {
		return nil, &errors.InvalidQueryError{Format: FormatXML, Query: query, Cause: err}
	}
	matches := xmlquery.QuerySelectorAll(doc, expr)
	if len(matches) == 0 {
		return nil, &errors.InvalidQueryError{Format: FormatXML, Query: query}
	}

	nodes := make([]*domain.Node, 0, len(matches))
	for _, m := range matches {
		nodes = append(nodes, xmlToNode(m))
	}
	return nodes, nil
}

func (p *XMLParser) decode(data string) (*xmlquery.Node, error) {
	doc, err := p.opts.docs.Load(FormatXML, data, func() (interface{}, error) {
		if err := checkWellFormed(data); err != nil {
			return nil, &errors.InvalidDataError{Format: FormatXML, Cause: err}
		}
		doc, err := xmlquery.Parse(strings.NewReader(data))
		if err != nil {
			return nil, &errors.InvalidDataError{Format: FormatXML, Cause: err}
		}
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return doc.(*xmlquery.Node), nil
}

// checkWellFormed runs a strict tokenizer pass. It rejects unclosed elements
// and documents without a root element.
func checkWellFormed(data string) error {
	dec := xml.NewDecoder(strings.NewReader(data))
	dec.Strict = true
	roots := 0
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	if roots == 0 {
		return fmt.Errorf("document has no root element")
	}
	return nil
}

func xmlToNode(n *xmlquery.Node) *domain.Node {
	switch n.Type {
	case xmlquery.DocumentNode:
		root := domain.NewMap()
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xmlquery.ElementNode {
				root.Add(qualifiedName(c), elementToNode(c))
			}
		}
		return root
	case xmlquery.ElementNode:
		return elementToNode(n)
	case xmlquery.TextNode, xmlquery.CharDataNode:
		return domain.NewScalar(strings.TrimSpace(n.Data))
	default:
		return domain.NewScalar(n.InnerText())
	}
}

func elementToNode(e *xmlquery.Node) *domain.Node {
	node := domain.NewMap()
	var text strings.Builder
	for c := e.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			node.Add(qualifiedName(c), elementToNode(c))
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(c.Data)
		}
	}
	node.Set(domain.TextKey, domain.NewScalar(strings.TrimSpace(text.String())))

	if len(e.Attr) > 0 {
		attrs := domain.NewMap()
		for _, a := range e.Attr {
			name := a.Name.Local
			if a.Name.Space != "" {
				name = a.Name.Space + ":" + name
			}
			attrs.Set(name, domain.NewScalar(a.Value))
		}
		node.Set(domain.AttributesKey, attrs)
	}
	return node
}

func qualifiedName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}
