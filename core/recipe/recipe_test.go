package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const categoriesRecipeJSON = `{
  // Categories out of the sample feed.
  "cooker": "DynamicParser",
  "format": "json",
  "model": "ContentContainer",
  "translator": "ContentContainerTranslator",
  "modelType": "array",
  "query": "$.categories[?(@.type == 'category')]",
  /* matchList maps the category title
     onto the container name */
  "matchList": ["title@mName", "url@http://example.com/a//b"]
}`

const categoriesRecipeYAML = `
cooker: DynamicParser
format: xml
model: ContentContainer
modelType: array
query: sample/categories[type='category']
# title text becomes the name
matchList:
  - title/#text@mName
keyDataPath: id/#text@keyDataType
`

func TestParse_JSONWithComments(t *testing.T) {
	r, err := Parse([]byte(categoriesRecipeJSON))
	require.NoError(t, err)

	assert.Equal(t, []string{"cooker", "format", "model", "translator", "modelType", "query", "matchList"}, r.Keys())
	assert.Equal(t, "DynamicParser", r.GetString(TagCooker))
	assert.Equal(t, "$.categories[?(@.type == 'category')]", r.GetString(TagQuery))
	assert.Equal(t, []string{"title@mName", "url@http://example.com/a//b"}, r.GetStringList(TagMatchList),
		"double slashes inside strings are not comments")
}

func TestParse_YAML(t *testing.T) {
	r, err := Parse([]byte(categoriesRecipeYAML))
	require.NoError(t, err)

	assert.Equal(t, 7, r.Len())
	assert.Equal(t, "xml", r.GetString(TagFormat))
	assert.Equal(t, []string{"title/#text@mName"}, r.GetStringList(TagMatchList))
	assert.Equal(t, TagKeyDataPath, r.Keys()[6])
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":        "   ",
		"json array":   `["a"]`,
		"broken json":  `{"cooker": }`,
		"yaml scalar":  "just text",
		"broken yaml":  "a: [1, 2",
		"trailing key": `{"a": "b", 3: 4}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestRecipe_SetDeleteClone(t *testing.T) {
	r := New()
	r.Set(TagFormat, "json")
	r.Set(TagQuery, "$.users")
	r.Set(TagMatchList, []string{"name@mName"})

	c := r.Clone()
	c.Set(TagQuery, "$.albums")
	c.Delete(TagFormat)

	assert.Equal(t, "$.users", r.GetString(TagQuery), "clone edits must not leak")
	assert.True(t, r.Contains(TagFormat))
	assert.False(t, c.Contains(TagFormat))
	assert.Equal(t, []string{TagQuery, TagMatchList}, c.Keys())

	c.Delete("missing")
	assert.Equal(t, 2, c.Len())
}

func TestRecipe_ZeroValueSet(t *testing.T) {
	var r Recipe
	r.Set(TagFormat, "xml")
	r.Set(TagModel, "ContentContainer")

	assert.Equal(t, "xml", r.GetString(TagFormat))
	assert.Equal(t, []string{TagFormat, TagModel}, r.Keys())

	p := &Recipe{}
	p.Set(TagQuery, "//category")
	assert.Equal(t, 1, p.Len())
}

func TestParse_JSONKeepsDocumentOrder(t *testing.T) {
	r, err := Parse([]byte(`{"query": "$.a", "cooker": "DynamicParser", "query": "$.b", "matchList": ["x@y"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{TagQuery, TagCooker, TagMatchList}, r.Keys())
	assert.Equal(t, "$.b", r.GetString(TagQuery), "a repeated tag keeps its first position and last value")
	assert.Equal(t, []string{"x@y"}, r.GetStringList(TagMatchList))
}

func TestRecipe_JSONRoundTripKeepsOrder(t *testing.T) {
	r := New()
	r.Set(TagQuery, "users/user")
	r.Set(TagCooker, "DynamicParser")
	r.Set(TagMatchList, []interface{}{"id/#text@mId"})

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"query":"users/user","cooker":"DynamicParser","matchList":["id/#text@mId"]}`, string(b))

	var back Recipe
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, r.Keys(), back.Keys())
	assert.Equal(t, r.GetStringList(TagMatchList), back.GetStringList(TagMatchList))
}

func TestFromMap_SortsKeys(t *testing.T) {
	r := FromMap(map[string]interface{}{"query": "q", "cooker": "c", "format": "json"})
	assert.Equal(t, []string{"cooker", "format", "query"}, r.Keys())
}

func TestGetStringList_Shapes(t *testing.T) {
	r := New()
	r.Set("single", "a@b")
	r.Set("mixed", []interface{}{"a@b", 3})

	assert.Equal(t, []string{"a@b"}, r.GetStringList("single"))
	assert.Equal(t, []string{"a@b", "3"}, r.GetStringList("mixed"))
	assert.Nil(t, r.GetStringList("absent"))
}

func TestNilRecipeAccessors(t *testing.T) {
	var r *Recipe
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Contains(TagCooker))
	assert.Equal(t, "", r.GetString(TagCooker))
}

func TestNameFromFile(t *testing.T) {
	assert.Equal(t, "categories", NameFromFile("/etc/recipes/categories.json"))
	assert.Equal(t, "contents.v2", NameFromFile("contents.v2.yaml"))
	assert.Equal(t, "plain", NameFromFile("plain"))
}
