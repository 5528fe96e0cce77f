// ABOUTME: Format-neutral document tree produced by every parser
// ABOUTME: A node is exactly one of an ordered map, an ordered list or a scalar leaf

package domain

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Pseudo-children added by the markup tree builders (XML, HTML).
const (
	TextKey       = "#text"
	AttributesKey = "#attributes"
)

// Kind identifies which variant a Node holds.
type Kind int

const (
	KindScalar Kind = iota
	KindMap
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "scalar"
	}
}

// Node is the generic tree shared by JSON, XML and the other formats so that
// path resolution and match lists do not depend on the source format.
//
// Scalars hold a string, float64, int64, bool or nil. Map keys keep insertion
// order.
type Node struct {
	kind   Kind
	keys   []string
	fields map[string]*Node
	items  []*Node
	value  interface{}

	// merged marks a list built by Add from repeated keys.
	merged bool
}

// NewMap creates an empty map node.
func NewMap() *Node {
	return &Node{kind: KindMap, fields: make(map[string]*Node)}
}

// NewList creates a list node holding items in order.
func NewList(items ...*Node) *Node {
	return &Node{kind: KindList, items: append([]*Node(nil), items...)}
}

// NewScalar creates a leaf. Integer types are widened to int64, other numeric
// types to float64.
func NewScalar(v interface{}) *Node {
	switch x := v.(type) {
	case int:
		v = int64(x)
	case int32:
		v = int64(x)
	case float32:
		v = float64(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			v = i
		} else if f, err := x.Float64(); err == nil {
			v = f
		} else {
			v = x.String()
		}
	}
	return &Node{kind: KindScalar, value: v}
}

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

func (n *Node) IsMap() bool    { return n != nil && n.kind == KindMap }
func (n *Node) IsList() bool   { return n != nil && n.kind == KindList }
func (n *Node) IsScalar() bool { return n != nil && n.kind == KindScalar }

// Set adds or replaces a map entry. Replacing keeps the original position.
func (n *Node) Set(key string, child *Node) {
	if n.kind != KindMap {
		return
	}
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = child
}

// Add inserts child under key, turning repeated keys into a list in
// insertion order. Used for same-named sibling elements.
func (n *Node) Add(key string, child *Node) {
	existing, ok := n.Get(key)
	if !ok {
		n.Set(key, child)
		return
	}
	if existing.IsList() && existing.merged {
		existing.items = append(existing.items, child)
		return
	}
	merged := NewList(existing, child)
	merged.merged = true
	n.Set(key, merged)
}

// Get looks up a map entry.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.kind != KindMap {
		return nil, false
	}
	child, ok := n.fields[key]
	return child, ok
}

// Keys returns the map keys in insertion order.
func (n *Node) Keys() []string {
	if n == nil || n.kind != KindMap {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Append adds an item to a list node.
func (n *Node) Append(child *Node) {
	if n.kind == KindList {
		n.items = append(n.items, child)
	}
}

// Items returns the list items.
func (n *Node) Items() []*Node {
	if n == nil || n.kind != KindList {
		return nil
	}
	return n.items
}

// Index returns the i-th list item.
func (n *Node) Index(i int) (*Node, bool) {
	if n == nil || n.kind != KindList || i < 0 || i >= len(n.items) {
		return nil, false
	}
	return n.items[i], true
}

// Len returns the number of map entries or list items; 0 for scalars.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.kind {
	case KindMap:
		return len(n.keys)
	case KindList:
		return len(n.items)
	}
	return 0
}

// Value returns the scalar value, or nil for containers.
func (n *Node) Value() interface{} {
	if n == nil || n.kind != KindScalar {
		return nil
	}
	return n.value
}

// ScalarType names the scalar's type: String, Number, Boolean or Null.
func (n *Node) ScalarType() string {
	switch n.Value().(type) {
	case string:
		return "String"
	case float64, int64:
		return "Number"
	case bool:
		return "Boolean"
	default:
		return "Null"
	}
}

// String renders a scalar in its textual form and containers as JSON.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	if n.kind != KindScalar {
		b, err := json.Marshal(n)
		if err != nil {
			return ""
		}
		return string(b)
	}
	switch v := n.value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

// Interface converts the tree into plain Go values: map[string]interface{},
// []interface{} and scalars.
func (n *Node) Interface() interface{} {
	if n == nil {
		return nil
	}
	switch n.kind {
	case KindMap:
		out := make(map[string]interface{}, len(n.keys))
		for _, k := range n.keys {
			out[k] = n.fields[k].Interface()
		}
		return out
	case KindList:
		out := make([]interface{}, len(n.items))
		for i, item := range n.items {
			out[i] = item.Interface()
		}
		return out
	}
	return n.value
}

// FromInterface builds a tree from decoded JSON-like values. Keys of plain Go
// maps have no order, so they are sorted.
func FromInterface(v interface{}) *Node {
	switch x := v.(type) {
	case *Node:
		return x
	case map[string]interface{}:
		node := NewMap()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			node.Set(k, FromInterface(x[k]))
		}
		return node
	case []interface{}:
		node := NewList()
		for _, item := range x {
			node.Append(FromInterface(item))
		}
		return node
	case []string:
		node := NewList()
		for _, item := range x {
			node.Append(NewScalar(item))
		}
		return node
	default:
		return NewScalar(v)
	}
}

// Equal reports deep equality. Map order is ignored.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case KindMap:
		if len(n.keys) != len(o.keys) {
			return false
		}
		for _, k := range n.keys {
			other, ok := o.fields[k]
			if !ok || !n.fields[k].Equal(other) {
				return false
			}
		}
		return true
	case KindList:
		if len(n.items) != len(o.items) {
			return false
		}
		for i := range n.items {
			if !n.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	}
	return n.value == o.value
}

// MarshalJSON writes maps with their keys in insertion order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	switch n.kind {
	case KindMap:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := n.fields[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			val, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}
	return json.Marshal(n.value)
}
