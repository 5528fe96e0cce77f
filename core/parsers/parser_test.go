package parsers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-cook-api/core/datapath"
	"recipe-cook-api/core/domain"
	"recipe-cook-api/core/errors"
)

const sampleJSON = `{
  "categories": [
    {"type": "category", "title": "Comedy", "id": 1},
    {"type": "promo", "title": "Featured", "id": 9},
    {"type": "category", "title": "Drama", "id": 2},
    {"type": "category", "title": "Nature", "id": 3}
  ],
  "users": [
    {"id": 1, "name": "Leanne", "address": {"city": "Gwenborough"}},
    {"id": 2, "name": "Ervin", "address": {"city": "Wisokyburgh"}}
  ],
  "tags": ["a", "b"],
  "meta": {"count": 4}
}`

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<sample>
  <categories><type>category</type><title>Comedy</title></categories>
  <categories><type>promo</type><title>Featured</title></categories>
  <categories><type>category</type><title>Drama</title></categories>
  <categories><type>category</type><title><![CDATA[Nature & Wildlife]]></title></categories>
  <photos>
    <photo id="10" album="1"><title>First</title></photo>
    <photo id="11" album="1"><title>Second</title></photo>
  </photos>
</sample>`

func TestJSONParser_ParseWithQuery_Filter(t *testing.T) {
	p := NewJSONParser()

	nodes, err := p.ParseWithQuery(sampleJSON, "$.categories[?(@.type == 'category')]")
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	title, err := datapath.GetValue(nodes[2], "title")
	require.NoError(t, err)
	assert.Equal(t, "Nature", title.String())
}

func TestJSONParser_ParseWithQuery_Shapes(t *testing.T) {
	p := NewJSONParser()

	tests := []struct {
		query string
		count int
		kind  domain.Kind
	}{
		{"$.users", 2, domain.KindMap},
		{"$.users[*]", 2, domain.KindMap},
		{"users", 2, domain.KindMap},
		{"$.meta", 1, domain.KindMap},
		{"$.tags", 2, domain.KindScalar},
		{"$.users[1].name", 1, domain.KindScalar},
		{"$.categories[?(@.type == 'missing')]", 0, domain.KindMap},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			nodes, err := p.ParseWithQuery(sampleJSON, tt.query)
			require.NoError(t, err)
			assert.Len(t, nodes, tt.count)
			for _, n := range nodes {
				assert.Equal(t, tt.kind, n.Kind())
			}
		})
	}
}

func TestJSONParser_Errors(t *testing.T) {
	p := NewJSONParser()

	_, err := p.ParseWithQuery(`{"json"}`, "$")
	assert.True(t, errors.IsInvalidData(err), "malformed json: %v", err)

	_, err = p.ParseWithQuery(sampleJSON, "badQuery")
	assert.True(t, errors.IsInvalidQuery(err), "missing key: %v", err)

	_, err = p.ParseWithQuery(sampleJSON, "$.categories[?(@.type ==")
	assert.True(t, errors.IsInvalidQuery(err), "broken expression: %v", err)

	_, err = p.ParseWithQuery("", "$")
	assert.True(t, errors.IsIllegalArgument(err))

	_, err = p.ParseWithQuery(sampleJSON, "")
	assert.True(t, errors.IsIllegalArgument(err))

	_, err = p.Parse("")
	assert.True(t, errors.IsIllegalArgument(err))
}

func TestJSONParser_Parse(t *testing.T) {
	p := NewJSONParser()

	root, err := p.Parse(sampleJSON)
	require.NoError(t, err)
	assert.True(t, root.IsMap())

	city, err := datapath.GetValue(root, "users/1/address/city")
	require.NoError(t, err)
	assert.Equal(t, "Wisokyburgh", city.String())
}

const bigIDsJSON = `{"items": [
  {"id": 9007199254740993, "price": 2.5, "name": "big"},
  {"id": 3, "price": 10, "name": "small"}
]}`

func TestJSONParser_KeepsIntegersExact(t *testing.T) {
	p := NewJSONParser()

	nodes, err := p.ParseWithQuery(bigIDsJSON, "$.items[*]")
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	id, err := datapath.GetValue(nodes[0], "id")
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), id.Value())
	assert.Equal(t, "9007199254740993", id.String())

	price, err := datapath.GetValue(nodes[0], "price")
	require.NoError(t, err)
	assert.Equal(t, 2.5, price.Value())

	// Filters still compare integers and floats numerically.
	matched, err := p.ParseWithQuery(bigIDsJSON, "$.items[?(@.id > 5)]")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	name, _ := datapath.GetValue(matched[0], "name")
	assert.Equal(t, "big", name.String())

	matched, err = p.ParseWithQuery(bigIDsJSON, "$.items[?(@.price == 10)]")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	name, _ = datapath.GetValue(matched[0], "name")
	assert.Equal(t, "small", name.String())

	_, err = p.Parse(`{"a": 1} {"b": 2}`)
	assert.True(t, errors.IsInvalidData(err), "trailing data: %v", err)
}

func TestNormalizeJSONPath(t *testing.T) {
	tests := map[string]string{
		"$.a":                           "$.a",
		"a.b":                           "$.a.b",
		"[0]":                           "$[0]",
		"$.v[?(@.type == 'video')]":     `$.v[?(@.type == "video")]`,
		`$.v[?(@.t == "it's")]`:         `$.v[?(@.t == "it's")]`,
		"$['key with space']":           `$["key with space"]`,
		"  $.trimmed  ":                 "$.trimmed",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeJSONPath(in), in)
	}
}

func TestXMLParser_ParseWithQuery(t *testing.T) {
	p := NewXMLParser()

	nodes, err := p.ParseWithQuery(sampleXML, "sample/categories[type='category']")
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	title, err := datapath.GetValue(nodes[2], "title/#text")
	require.NoError(t, err)
	assert.Equal(t, "Nature & Wildlife", title.String(), "CDATA is part of #text")

	empty, err := datapath.GetValue(nodes[0], "#text")
	require.NoError(t, err)
	assert.Equal(t, "", empty.String(), "container elements carry an empty #text")
}

func TestXMLParser_AttributesAndPositions(t *testing.T) {
	p := NewXMLParser()

	nodes, err := p.ParseWithQuery(sampleXML, "sample/photos/photo[2]")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	id, err := datapath.GetValue(nodes[0], "#attributes/id")
	require.NoError(t, err)
	assert.Equal(t, "11", id.String())

	attrs, err := p.ParseWithQuery(sampleXML, "sample/photos/photo/@id")
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, "10", attrs[0].String())
}

func TestXMLParser_Parse_MergesSiblings(t *testing.T) {
	p := NewXMLParser()

	root, err := p.Parse(sampleXML)
	require.NoError(t, err)

	cats, err := datapath.GetValue(root, "sample/categories")
	require.NoError(t, err)
	assert.True(t, cats.IsList())
	assert.Equal(t, 4, cats.Len())

	second, err := datapath.GetValue(root, "sample/categories/1/title/#text")
	require.NoError(t, err)
	assert.Equal(t, "Featured", second.String())
}

func TestXMLParser_Errors(t *testing.T) {
	p := NewXMLParser()

	_, err := p.ParseWithQuery("<xml>", "*")
	assert.True(t, errors.IsInvalidData(err), "unclosed element: %v", err)

	_, err = p.Parse("just text")
	assert.True(t, errors.IsInvalidData(err), "no root: %v", err)

	_, err = p.ParseWithQuery(sampleXML, "badQuery")
	assert.True(t, errors.IsInvalidQuery(err), "empty result: %v", err)

	_, err = p.ParseWithQuery(sampleXML, "sample/categories[")
	assert.True(t, errors.IsInvalidQuery(err), "syntax error: %v", err)

	_, err = p.ParseWithQuery(sampleXML, "")
	assert.True(t, errors.IsIllegalArgument(err))
}

func TestDocumentCache_SharesDecodedDocuments(t *testing.T) {
	cache := NewDocumentCache(time.Minute)
	jsonParser := NewJSONParser(WithDocumentCache(cache))
	xmlParser := NewXMLParser(WithDocumentCache(cache))

	_, err := jsonParser.ParseWithQuery(sampleJSON, "$.users")
	require.NoError(t, err)
	_, err = jsonParser.ParseWithQuery(sampleJSON, "$.categories")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	_, err = xmlParser.ParseWithQuery(sampleXML, "sample/photos/photo")
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	_, err = jsonParser.ParseWithQuery(`{"json"}`, "$")
	require.Error(t, err)
	assert.Equal(t, 2, cache.Len(), "decode failures are not cached")

	cache.Flush()
	assert.Equal(t, 0, cache.Len())
}

func TestBuiltinAndExtras(t *testing.T) {
	builtin := Builtin()
	assert.Len(t, builtin, 2)
	assert.Equal(t, "JSONParser", builtin[FormatJSON].Name())
	assert.Equal(t, "XMLParser", builtin[FormatXML].Name())

	extras := Extras()
	assert.Contains(t, extras, FormatRSS)
	assert.Contains(t, extras, FormatHTML)
	assert.Contains(t, extras, FormatGJSON)
}
