// ABOUTME: JSON decoding that keeps integers exact instead of rounding through float64
// ABOUTME: Numbers become int64 when they fit and float64 otherwise

package parsers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/tidwall/gjson"

	"recipe-cook-api/core/domain"
)

// decodeJSON decodes a single JSON value. Integers that fit in int64 stay
// int64 so filter comparisons and field assignment see the exact value.
func decodeJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return normalizeNumbers(doc), nil
}

// normalizeNumbers replaces json.Number values in place.
func normalizeNumbers(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		for k, item := range x {
			x[k] = normalizeNumbers(item)
		}
		return x
	case []interface{}:
		for i, item := range x {
			x[i] = normalizeNumbers(item)
		}
		return x
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	}
	return v
}

// nodeFromGJSON converts a gjson result into a tree, keeping object key
// order and exact integers.
func nodeFromGJSON(r gjson.Result) *domain.Node {
	switch {
	case r.IsObject():
		node := domain.NewMap()
		r.ForEach(func(key, value gjson.Result) bool {
			node.Set(key.String(), nodeFromGJSON(value))
			return true
		})
		return node
	case r.IsArray():
		node := domain.NewList()
		r.ForEach(func(_, value gjson.Result) bool {
			node.Append(nodeFromGJSON(value))
			return true
		})
		return node
	}

	switch r.Type {
	case gjson.Null:
		return domain.NewScalar(nil)
	case gjson.True, gjson.False:
		return domain.NewScalar(r.Bool())
	case gjson.Number:
		if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return domain.NewScalar(i)
		}
		return domain.NewScalar(r.Num)
	}
	return domain.NewScalar(r.String())
}
