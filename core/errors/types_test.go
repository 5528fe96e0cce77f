package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNotFoundError_Error(t *testing.T) {
	err := &NotFoundError{
		Resource: "recipe",
		ID:       "categories",
	}

	expected := "recipe not found: categories"
	if err.Error() != expected {
		t.Errorf("NotFoundError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Field:   "data",
		Message: "cannot be empty",
	}

	expected := "validation error on field 'data': cannot be empty"
	if err.Error() != expected {
		t.Errorf("ValidationError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&NotFoundError{Resource: "recipe", ID: "x"}) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
	if IsNotFound(errors.New("some other error")) {
		t.Error("IsNotFound should return false for other errors")
	}
	if IsNotFound(nil) {
		t.Error("IsNotFound should return false for nil")
	}
}

func TestIsValidation_Wrapped(t *testing.T) {
	base := &ValidationError{Field: "recipe", Message: "required"}
	wrapped := fmt.Errorf("request failed: %w", base)

	if !IsValidation(wrapped) {
		t.Error("IsValidation should see through wrapping")
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	base := &ParserNotFoundError{Format: "csv"}
	err := WrapError(base, "cook")
	if err.Error() != `cook: no parser registered for format "csv"` {
		t.Errorf("WrapError() = %v", err)
	}
	if !IsParserNotFound(err) {
		t.Error("wrapped error should still be a ParserNotFoundError")
	}
}

func TestMalformedInjectionStringError_Prefix(t *testing.T) {
	err := &MalformedInjectionStringError{Input: "$$par1$$", Index: 1, Provided: 0}

	if !strings.HasPrefix(err.Error(), InjectionErrorPrefix) {
		t.Errorf("message %q should start with %q", err.Error(), InjectionErrorPrefix)
	}
}

func TestUnwrap_Causes(t *testing.T) {
	cause := errors.New("unexpected EOF")

	tests := []struct {
		name string
		err  error
	}{
		{"invalid data", &InvalidDataError{Format: "xml", Cause: cause}},
		{"invalid query", &InvalidQueryError{Format: "json", Query: "$.x", Cause: cause}},
		{"translation", &TranslationError{Field: "mId", Message: "bad int", Cause: cause}},
		{"invalid recipe", &InvalidParserRecipeError{Reason: "bad", Cause: cause}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, cause) {
				t.Errorf("%T should unwrap to its cause", tt.err)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&InvalidParserRecipeError{Reason: "missing tag"}, "invalid_recipe"},
		{&ParserNotFoundError{Format: "csv"}, "parser_not_found"},
		{&TranslatorNotFoundError{Name: "x"}, "translator_not_found"},
		{&ValueNotFoundError{Path: "a/b"}, "value_not_found"},
		{&NoSuchFieldError{Model: "Content", Field: "mFoo"}, "no_such_field"},
		{&ClassNotFoundError{Model: "Foo"}, "class_not_found"},
		{&TranslationError{Message: "rejected"}, "translation"},
		{&InvalidDataError{Format: "json"}, "invalid_data"},
		{&InvalidQueryError{Format: "xml", Query: "a"}, "invalid_query"},
		{&MalformedInjectionStringError{}, "malformed_injection"},
		{&IllegalArgumentError{Argument: "data"}, "illegal_argument"},
		{&NotFoundError{Resource: "recipe"}, "not_found"},
		{&ValidationError{Field: "f"}, "validation"},
		{&FetchError{URL: "http://x", Status: 502}, "fetch"},
		{errors.New("boom"), "internal"},
		{fmt.Errorf("ctx: %w", &ValueNotFoundError{Path: "p"}), "value_not_found"},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestValueNotFoundError_Message(t *testing.T) {
	err := &ValueNotFoundError{Path: "info/title/#text", Segment: "title"}
	want := `value not found at path "info/title/#text" (missing segment "title")`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	err = &ValueNotFoundError{Path: "fakePath", Segment: "fakePath"}
	if err.Error() != `value not found at path "fakePath"` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestFetchError(t *testing.T) {
	status := &FetchError{URL: "http://feeds.example/a.xml", Status: 404}
	if status.Error() != "failed to fetch http://feeds.example/a.xml: status 404" {
		t.Errorf("FetchError.Error() = %v", status.Error())
	}

	cause := errors.New("connection refused")
	wrapped := &FetchError{URL: "http://x", Cause: cause}
	if !errors.Is(wrapped, cause) {
		t.Error("FetchError should unwrap to its cause")
	}
	if !IsFetch(fmt.Errorf("cook: %w", wrapped)) {
		t.Error("IsFetch should see through wrapping")
	}
}
