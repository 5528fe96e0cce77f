// ABOUTME: Reflective field assignment with best-effort type coercion
// ABOUTME: Resolves match-list field names against struct fields and recipe tags

package translation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"recipe-cook-api/core/errors"
)

// FieldAssignable lets a model take field assignments without reflection.
// Unknown names should return a NoSuchFieldError and rejected values a
// TranslationError.
type FieldAssignable interface {
	SetField(name string, value interface{}) error
}

// ExtrasSetter lets a model store values that have no dedicated field.
type ExtrasSetter interface {
	SetExtraValue(key string, value interface{})
}

// fieldTable maps accepted field names onto struct field indexes.
type fieldTable struct {
	exact  map[string]int
	folded map[string]int
	extras int
}

var fieldTables sync.Map // reflect.Type -> *fieldTable

// tableFor builds the name table for a struct type. A field is addressable by
// its `recipe:"name"` tag, its Go name, the Java-style "m" + Go name, and
// case-insensitively by any of those. A map[string]interface{} field named
// Extras or tagged `recipe:",extras"` receives extra values.
func tableFor(t reflect.Type) *fieldTable {
	if cached, ok := fieldTables.Load(t); ok {
		return cached.(*fieldTable)
	}

	table := &fieldTable{exact: make(map[string]int), folded: make(map[string]int), extras: -1}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		tagName, tagOpts, _ := strings.Cut(f.Tag.Get("recipe"), ",")
		if tagName == "-" {
			continue
		}
		if tagOpts == "extras" || (f.Name == "Extras" && tagName == "") {
			if f.Type.Kind() == reflect.Map && f.Type.Key().Kind() == reflect.String {
				table.extras = i
			}
			continue
		}

		names := []string{f.Name, "m" + f.Name}
		if tagName != "" {
			names = append([]string{tagName}, names...)
		}
		for _, name := range names {
			if _, taken := table.exact[name]; !taken {
				table.exact[name] = i
			}
			folded := strings.ToLower(name)
			if _, taken := table.folded[folded]; !taken {
				table.folded[folded] = i
			}
		}
	}

	actual, _ := fieldTables.LoadOrStore(t, table)
	return actual.(*fieldTable)
}

func (ft *fieldTable) lookup(name string) (int, bool) {
	if idx, ok := ft.exact[name]; ok {
		return idx, true
	}
	idx, ok := ft.folded[strings.ToLower(name)]
	return idx, ok
}

// SetField assigns value to the named field of model, coercing it to the
// field's type. model must be a pointer to a struct or implement
// FieldAssignable.
func SetField(model interface{}, field string, value interface{}) error {
	if fa, ok := model.(FieldAssignable); ok {
		return fa.SetField(field, value)
	}

	sv, ok := structValue(model)
	if !ok {
		return &errors.NoSuchFieldError{Model: modelName(model), Field: field}
	}
	idx, ok := tableFor(sv.Type()).lookup(field)
	if !ok {
		return &errors.NoSuchFieldError{Model: modelName(model), Field: field}
	}
	if err := assign(sv.Field(idx), value); err != nil {
		return &errors.TranslationError{Field: field, Message: err.Error()}
	}
	return nil
}

// SetExtra stores value in the model's extras. A model without extras
// support yields NoSuchFieldError.
func SetExtra(model interface{}, key string, value interface{}) error {
	if es, ok := model.(ExtrasSetter); ok {
		es.SetExtraValue(key, value)
		return nil
	}
	sv, ok := structValue(model)
	if !ok {
		return &errors.NoSuchFieldError{Model: modelName(model), Field: key}
	}
	idx := tableFor(sv.Type()).extras
	if idx < 0 {
		return &errors.NoSuchFieldError{Model: modelName(model), Field: key}
	}
	extras := sv.Field(idx)
	if extras.IsNil() {
		extras.Set(reflect.MakeMap(extras.Type()))
	}
	v := reflect.ValueOf(value)
	if value == nil {
		v = reflect.Zero(extras.Type().Elem())
	} else if !v.Type().AssignableTo(extras.Type().Elem()) {
		return &errors.TranslationError{Field: key, Message: fmt.Sprintf("extras cannot hold %T", value)}
	}
	extras.SetMapIndex(reflect.ValueOf(key), v)
	return nil
}

// SetModelValue assigns the matched value to the model itself. Scalars are
// coerced into pointer-to-scalar models; maps are decoded into struct models
// by their JSON field names.
func SetModelValue(model interface{}, value interface{}) error {
	rv := reflect.ValueOf(model)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &errors.TranslationError{Field: ModelValueField, Message: fmt.Sprintf("model %T is not settable", model)}
	}
	elem := rv.Elem()
	if elem.Kind() == reflect.Struct {
		raw, err := json.Marshal(value)
		if err != nil {
			return &errors.TranslationError{Field: ModelValueField, Message: "value cannot be encoded", Cause: err}
		}
		if err := json.Unmarshal(raw, model); err != nil {
			return &errors.TranslationError{Field: ModelValueField, Message: "value does not fit the model", Cause: err}
		}
		return nil
	}
	if err := assign(elem, value); err != nil {
		return &errors.TranslationError{Field: ModelValueField, Message: err.Error()}
	}
	return nil
}

// Unwrap returns the pointed-to value for pointer-to-scalar models so that a
// "string" model is delivered as a string. Struct models are returned as is.
func Unwrap(model interface{}) interface{} {
	rv := reflect.ValueOf(model)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() != reflect.Struct {
		return rv.Elem().Interface()
	}
	return model
}

func structValue(model interface{}) (reflect.Value, bool) {
	rv := reflect.ValueOf(model)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	return rv.Elem(), true
}

func modelName(model interface{}) string {
	t := reflect.TypeOf(model)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// assign coerces value into dst. A nil value leaves dst untouched.
func assign(dst reflect.Value, value interface{}) error {
	if value == nil {
		return nil
	}
	src := reflect.ValueOf(value)
	if src.Type().AssignableTo(dst.Type()) && dst.Kind() != reflect.Interface {
		dst.Set(src)
		return nil
	}

	switch dst.Kind() {
	case reflect.Interface:
		if !src.Type().Implements(dst.Type()) {
			return fmt.Errorf("cannot assign %T to %s", value, dst.Type())
		}
		dst.Set(src)
		return nil
	case reflect.Pointer:
		ptr := reflect.New(dst.Type().Elem())
		if err := assign(ptr.Elem(), value); err != nil {
			return err
		}
		dst.Set(ptr)
		return nil
	case reflect.String:
		dst.SetString(toString(value))
		return nil
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(toString(value)))
		if err != nil {
			return fmt.Errorf("cannot convert %q to bool", toString(value))
		}
		dst.SetBool(b)
		return nil
	case reflect.Int32:
		// rune fields accept a single character as well as a number.
		s := strings.TrimSpace(toString(value))
		if n, err := strconv.ParseInt(s, 10, 32); err == nil {
			dst.SetInt(n)
			return nil
		}
		if dst.Type() == reflect.TypeOf(rune(0)) && s != "" {
			r, _ := utf8.DecodeRuneInString(s)
			dst.SetInt(int64(r))
			return nil
		}
		return fmt.Errorf("cannot convert %q to %s", s, dst.Type())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int64:
		s := strings.TrimSpace(toString(value))
		n, err := strconv.ParseInt(s, 10, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot convert %q to %s", s, dst.Type())
		}
		dst.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		s := strings.TrimSpace(toString(value))
		n, err := strconv.ParseUint(s, 10, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot convert %q to %s", s, dst.Type())
		}
		dst.SetUint(n)
		return nil
	case reflect.Float32, reflect.Float64:
		s := strings.TrimSpace(toString(value))
		f, err := strconv.ParseFloat(s, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot convert %q to %s", s, dst.Type())
		}
		dst.SetFloat(f)
		return nil
	case reflect.Slice:
		return assignSlice(dst, value)
	case reflect.Map:
		m, ok := value.(map[string]interface{})
		if !ok || dst.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("cannot convert %T to %s", value, dst.Type())
		}
		out := reflect.MakeMapWithSize(dst.Type(), len(m))
		for k, v := range m {
			ev := reflect.New(dst.Type().Elem()).Elem()
			if err := assign(ev, v); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k), ev)
		}
		dst.Set(out)
		return nil
	}
	return fmt.Errorf("unsupported field type %s", dst.Type())
}

// assignSlice accepts a list, a JSON array string, or a single scalar.
func assignSlice(dst reflect.Value, value interface{}) error {
	var items []interface{}
	switch v := value.(type) {
	case []interface{}:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	case string:
		trimmed := strings.TrimSpace(v)
		if strings.HasPrefix(trimmed, "[") {
			if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
				return fmt.Errorf("cannot convert %q to %s", v, dst.Type())
			}
		} else {
			items = []interface{}{v}
		}
	default:
		items = []interface{}{v}
	}

	out := reflect.MakeSlice(dst.Type(), len(items), len(items))
	for i, item := range items {
		if err := assign(out.Index(i), item); err != nil {
			return err
		}
	}
	dst.Set(out)
	return nil
}

// toString renders a decoded value the way it appeared in the document.
func toString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case fmt.Stringer:
		return x.String()
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
	return fmt.Sprint(v)
}
