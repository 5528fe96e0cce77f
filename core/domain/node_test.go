package domain

import (
	"encoding/json"
	"testing"
)

func TestNode_MapKeepsInsertionOrder(t *testing.T) {
	n := NewMap()
	n.Set("zeta", NewScalar("1"))
	n.Set("alpha", NewScalar("2"))
	n.Set("zeta", NewScalar("3"))

	keys := n.Keys()
	if len(keys) != 2 || keys[0] != "zeta" || keys[1] != "alpha" {
		t.Errorf("Keys() = %v, want [zeta alpha]", keys)
	}

	got, _ := n.Get("zeta")
	if got.String() != "3" {
		t.Errorf("replaced value = %q, want 3", got.String())
	}
}

func TestNode_AddMergesRepeatedKeys(t *testing.T) {
	n := NewMap()
	n.Add("user", NewScalar("a"))
	n.Add("user", NewScalar("b"))
	n.Add("user", NewScalar("c"))

	users, ok := n.Get("user")
	if !ok || !users.IsList() {
		t.Fatalf("repeated key should merge into a list, got %v", users)
	}
	if users.Len() != 3 {
		t.Errorf("merged list length = %d, want 3", users.Len())
	}
	last, _ := users.Index(2)
	if last.String() != "c" {
		t.Errorf("merged order broken, last = %q", last.String())
	}
}

func TestNode_AddDoesNotFlattenRealLists(t *testing.T) {
	n := NewMap()
	n.Add("tags", NewList(NewScalar("x")))
	n.Add("tags", NewScalar("y"))

	tags, _ := n.Get("tags")
	if tags.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (original list plus new item)", tags.Len())
	}
}

func TestNode_ScalarString(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{"hello", "hello"},
		{float64(3), "3"},
		{1.5, "1.5"},
		{int64(42), "42"},
		{7, "7"},
		{true, "true"},
		{nil, ""},
		{json.Number("12"), "12"},
	}

	for _, tt := range tests {
		if got := NewScalar(tt.in).String(); got != tt.want {
			t.Errorf("NewScalar(%v).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNode_ScalarType(t *testing.T) {
	tests := map[string]*Node{
		"String":  NewScalar("s"),
		"Number":  NewScalar(1.0),
		"Boolean": NewScalar(false),
		"Null":    NewScalar(nil),
	}
	for want, n := range tests {
		if got := n.ScalarType(); got != want {
			t.Errorf("ScalarType() = %s, want %s", got, want)
		}
	}
}

func TestFromInterface_RoundTrip(t *testing.T) {
	var doc interface{}
	raw := `{"b":{"title":"x","n":2},"a":[1,"two",true,null]}`
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatal(err)
	}

	n := FromInterface(doc)
	if !n.IsMap() || n.Len() != 2 {
		t.Fatalf("expected map with 2 keys, got %v", n.Kind())
	}
	if n.Keys()[0] != "a" {
		t.Errorf("keys of Go maps should be sorted, got %v", n.Keys())
	}

	a, _ := n.Get("a")
	if a.Len() != 4 {
		t.Errorf("list length = %d, want 4", a.Len())
	}

	back, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":[1,"two",true,null],"b":{"n":2,"title":"x"}}`
	if string(back) != want {
		t.Errorf("MarshalJSON() = %s, want %s", back, want)
	}
}

func TestNode_Equal(t *testing.T) {
	left := NewMap()
	left.Set("x", NewScalar("1"))
	left.Set("y", NewList(NewScalar(2.0)))

	right := NewMap()
	right.Set("y", NewList(NewScalar(2.0)))
	right.Set("x", NewScalar("1"))

	if !left.Equal(right) {
		t.Error("maps with same entries in different order should be equal")
	}

	right.Set("x", NewScalar("2"))
	if left.Equal(right) {
		t.Error("maps with different values should not be equal")
	}

	if NewScalar("1").Equal(NewScalar(1.0)) {
		t.Error("string and number scalars should differ")
	}
}

func TestNode_Interface(t *testing.T) {
	n := NewMap()
	n.Set(TextKey, NewScalar("hi"))
	attrs := NewMap()
	attrs.Set("id", NewScalar("7"))
	n.Set(AttributesKey, attrs)

	m, ok := n.Interface().(map[string]interface{})
	if !ok {
		t.Fatalf("Interface() returned %T", n.Interface())
	}
	if m[TextKey] != "hi" {
		t.Errorf("#text = %v", m[TextKey])
	}
	if m[AttributesKey].(map[string]interface{})["id"] != "7" {
		t.Errorf("#attributes/id = %v", m[AttributesKey])
	}
}

func TestNode_NilSafety(t *testing.T) {
	var n *Node
	if n.Len() != 0 || n.Value() != nil || n.String() != "" || n.Interface() != nil {
		t.Error("nil node accessors should return zero values")
	}
	if _, ok := n.Get("x"); ok {
		t.Error("Get on nil node should miss")
	}
}
