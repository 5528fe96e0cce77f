// ABOUTME: Ordered key/value recipe describing a query and its field mappings
// ABOUTME: Loads from JSON (comments allowed) or YAML and preserves tag order

package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Recognized recipe tags.
const (
	TagCooker          = "cooker"
	TagFormat          = "format"
	TagModel           = "model"
	TagModelType       = "modelType"
	TagTranslator      = "translator"
	TagQuery           = "query"
	TagQueryResultType = "queryResultType"
	TagKeyDataPath     = "keyDataPath"
	TagMatchList       = "matchList"

	// TagKeyDataType is the older spelling of TagKeyDataPath, still accepted.
	TagKeyDataType = "keyDataType"

	// TagLive marks every model of the recipe as live content.
	TagLive = "live"
	// TagContentType is a "<path>@<name>" entry copied into model extras.
	TagContentType = "contentType"
)

// Model cardinalities for TagModelType.
const (
	ModelTypeSingle = "single"
	ModelTypeArray  = "array"
)

// RequiredTags lists the tags every recipe must carry, in validation order.
var RequiredTags = []string{TagFormat, TagMatchList, TagModel, TagModelType, TagCooker, TagQuery}

// Recipe is an ordered mapping from tag name to value. Values are strings,
// lists of strings, or whatever the source document decoded to.
type Recipe struct {
	keys   []string
	values map[string]interface{}
}

// New creates an empty recipe.
func New() *Recipe {
	return &Recipe{values: make(map[string]interface{})}
}

// FromMap builds a recipe from an unordered map. Keys are sorted.
func FromMap(m map[string]interface{}) *Recipe {
	r := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.Set(k, m[k])
	}
	return r
}

// Parse reads a recipe document. A document starting with '{' is JSON and may
// contain // and /* */ comments; anything else is YAML.
func Parse(data []byte) (*Recipe, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("recipe document is empty")
	}
	if trimmed[0] == '{' {
		r := New()
		if err := r.decodeJSON(StripComments(trimmed)); err != nil {
			return nil, err
		}
		return r, nil
	}
	return parseYAML(trimmed)
}

// Get returns the raw value for a tag.
func (r *Recipe) Get(key string) (interface{}, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// GetString returns a tag as a string, or "" when absent or not textual.
func (r *Recipe) GetString(key string) string {
	v, ok := r.Get(key)
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case bool, int, int64, float64:
		return fmt.Sprint(s)
	}
	return ""
}

// GetStringList returns a list tag. A single string is treated as a
// one-element list.
func (r *Recipe) GetStringList(key string) []string {
	v, ok := r.Get(key)
	if !ok || v == nil {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		return []string{list}
	}
	return nil
}

// Contains reports whether the tag is present.
func (r *Recipe) Contains(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Set adds or replaces a tag. Replacing keeps the original position.
func (r *Recipe) Set(key string, value interface{}) {
	if r.values == nil {
		r.values = make(map[string]interface{})
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Delete removes a tag.
func (r *Recipe) Delete(key string) {
	if _, exists := r.values[key]; !exists {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns tags in insertion order.
func (r *Recipe) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Len returns the number of tags.
func (r *Recipe) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Clone copies the recipe. List values are copied so the clone can be edited
// without touching the original.
func (r *Recipe) Clone() *Recipe {
	c := New()
	for _, k := range r.keys {
		v := r.values[k]
		switch list := v.(type) {
		case []string:
			v = append([]string(nil), list...)
		case []interface{}:
			v = append([]interface{}(nil), list...)
		}
		c.Set(k, v)
	}
	return c
}

// String renders the recipe as compact JSON.
func (r *Recipe) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("recipe(%d tags)", r.Len())
	}
	return string(b)
}

// MarshalJSON writes tags in order.
func (r *Recipe) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping tag order.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	r.keys = nil
	r.values = make(map[string]interface{})
	return r.decodeJSON(data)
}

func (r *Recipe) decodeJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("failed to read recipe: malformed json")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return fmt.Errorf("recipe must be a JSON object")
	}
	// ForEach walks the object in document order.
	doc.ForEach(func(key, value gjson.Result) bool {
		r.Set(key.String(), value.Value())
		return true
	})
	return nil
}

func parseYAML(data []byte) (*Recipe, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse recipe yaml: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("recipe must be a mapping")
	}

	r := New()
	for i := 0; i+1 < len(root.Content); i += 2 {
		var value interface{}
		if err := root.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to decode recipe tag %q: %w", root.Content[i].Value, err)
		}
		r.Set(root.Content[i].Value, value)
	}
	return r, nil
}

// StripComments removes // line comments and /* */ block comments that are
// outside of string literals.
func StripComments(data []byte) []byte {
	var out bytes.Buffer
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out.WriteByte(c)
			if c == '\\' && i+1 < len(data) {
				i++
				out.WriteByte(data[i])
			} else if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out.WriteByte(c)
			continue
		}
		if c == '/' && i+1 < len(data) {
			switch data[i+1] {
			case '/':
				for i < len(data) && data[i] != '\n' {
					i++
				}
				if i < len(data) {
					out.WriteByte('\n')
				}
				continue
			case '*':
				end := bytes.Index(data[i+2:], []byte("*/"))
				if end < 0 {
					return out.Bytes()
				}
				i += end + 3
				continue
			}
		}
		out.WriteByte(c)
	}
	return out.Bytes()
}

// NameFromFile derives a recipe name from a file name by dropping the
// directory and extension.
func NameFromFile(path string) string {
	base := path
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}
