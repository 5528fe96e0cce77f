// ABOUTME: Error taxonomy reported by recipe cooking, parsing and translation
// ABOUTME: Each failure kind is a distinct type so callers can branch with errors.As

package errors

import (
	"errors"
	"fmt"
)

// InjectionErrorPrefix starts the message of every MalformedInjectionStringError.
const InjectionErrorPrefix = "Data string does not contain proper amount of injection points."

// InvalidParserRecipeError reports a recipe that is missing required tags or
// carries values the engine cannot honor.
type InvalidParserRecipeError struct {
	Reason string
	Cause  error
}

func (e *InvalidParserRecipeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid parser recipe: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid parser recipe: %s", e.Reason)
}

func (e *InvalidParserRecipeError) Unwrap() error { return e.Cause }

// ParserNotFoundError reports a format tag with no registered parser.
type ParserNotFoundError struct {
	Format string
}

func (e *ParserNotFoundError) Error() string {
	return fmt.Sprintf("no parser registered for format %q", e.Format)
}

// TranslatorNotFoundError reports a translator name with no registration.
type TranslatorNotFoundError struct {
	Name string
}

func (e *TranslatorNotFoundError) Error() string {
	return fmt.Sprintf("no translator registered under %q", e.Name)
}

// ValueNotFoundError reports a match-list path that does not resolve against a
// matched node.
type ValueNotFoundError struct {
	Path    string
	Segment string
}

func (e *ValueNotFoundError) Error() string {
	if e.Segment != "" && e.Segment != e.Path {
		return fmt.Sprintf("value not found at path %q (missing segment %q)", e.Path, e.Segment)
	}
	return fmt.Sprintf("value not found at path %q", e.Path)
}

// NoSuchFieldError reports a target field the model cannot accept.
type NoSuchFieldError struct {
	Model string
	Field string
}

func (e *NoSuchFieldError) Error() string {
	return fmt.Sprintf("model %s has no field %q", e.Model, e.Field)
}

// ClassNotFoundError reports a model name with no registered constructor.
type ClassNotFoundError struct {
	Model string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("model class not found: %s", e.Model)
}

// TranslationError is raised by translators, and by reflective assignment when
// a value cannot be coerced into the target field.
type TranslationError struct {
	Translator string
	Field      string
	Message    string
	Cause      error
}

func (e *TranslationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("field %q: %s", e.Field, msg)
	}
	if e.Translator != "" {
		msg = e.Translator + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("translation failed: %s: %v", msg, e.Cause)
	}
	return "translation failed: " + msg
}

func (e *TranslationError) Unwrap() error { return e.Cause }

// InvalidDataError reports a document that is not well-formed for its format.
type InvalidDataError struct {
	Format string
	Cause  error
}

func (e *InvalidDataError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid %s data: %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("invalid %s data", e.Format)
}

func (e *InvalidDataError) Unwrap() error { return e.Cause }

// InvalidQueryError reports a query that does not compile, or that matched
// nothing where the format requires a result.
type InvalidQueryError struct {
	Format string
	Query  string
	Cause  error
}

func (e *InvalidQueryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid %s query %q: %v", e.Format, e.Query, e.Cause)
	}
	return fmt.Sprintf("invalid %s query %q: no result", e.Format, e.Query)
}

func (e *InvalidQueryError) Unwrap() error { return e.Cause }

// MalformedInjectionStringError reports a $$parN$$ token whose index is
// outside the supplied parameters.
type MalformedInjectionStringError struct {
	Input    string
	Index    int
	Provided int
}

func (e *MalformedInjectionStringError) Error() string {
	return fmt.Sprintf("%s Token index %d, parameters supplied %d, input %q",
		InjectionErrorPrefix, e.Index, e.Provided, e.Input)
}

// IllegalArgumentError reports nil or empty inputs.
type IllegalArgumentError struct {
	Argument string
	Message  string
}

func (e *IllegalArgumentError) Error() string {
	return fmt.Sprintf("illegal argument %s: %s", e.Argument, e.Message)
}

// IsInvalidRecipe checks if an error is an InvalidParserRecipeError
func IsInvalidRecipe(err error) bool {
	var target *InvalidParserRecipeError
	return errors.As(err, &target)
}

// IsParserNotFound checks if an error is a ParserNotFoundError
func IsParserNotFound(err error) bool {
	var target *ParserNotFoundError
	return errors.As(err, &target)
}

// IsTranslatorNotFound checks if an error is a TranslatorNotFoundError
func IsTranslatorNotFound(err error) bool {
	var target *TranslatorNotFoundError
	return errors.As(err, &target)
}

// IsValueNotFound checks if an error is a ValueNotFoundError
func IsValueNotFound(err error) bool {
	var target *ValueNotFoundError
	return errors.As(err, &target)
}

// IsNoSuchField checks if an error is a NoSuchFieldError
func IsNoSuchField(err error) bool {
	var target *NoSuchFieldError
	return errors.As(err, &target)
}

// IsClassNotFound checks if an error is a ClassNotFoundError
func IsClassNotFound(err error) bool {
	var target *ClassNotFoundError
	return errors.As(err, &target)
}

// IsTranslation checks if an error is a TranslationError
func IsTranslation(err error) bool {
	var target *TranslationError
	return errors.As(err, &target)
}

// IsInvalidData checks if an error is an InvalidDataError
func IsInvalidData(err error) bool {
	var target *InvalidDataError
	return errors.As(err, &target)
}

// IsInvalidQuery checks if an error is an InvalidQueryError
func IsInvalidQuery(err error) bool {
	var target *InvalidQueryError
	return errors.As(err, &target)
}

// IsMalformedInjection checks if an error is a MalformedInjectionStringError
func IsMalformedInjection(err error) bool {
	var target *MalformedInjectionStringError
	return errors.As(err, &target)
}

// IsIllegalArgument checks if an error is an IllegalArgumentError
func IsIllegalArgument(err error) bool {
	var target *IllegalArgumentError
	return errors.As(err, &target)
}

// Kind returns a stable label for the error's taxonomy entry. Used as a metric
// label and in API responses.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsInvalidRecipe(err):
		return "invalid_recipe"
	case IsParserNotFound(err):
		return "parser_not_found"
	case IsTranslatorNotFound(err):
		return "translator_not_found"
	case IsValueNotFound(err):
		return "value_not_found"
	case IsNoSuchField(err):
		return "no_such_field"
	case IsClassNotFound(err):
		return "class_not_found"
	case IsTranslation(err):
		return "translation"
	case IsInvalidData(err):
		return "invalid_data"
	case IsInvalidQuery(err):
		return "invalid_query"
	case IsMalformedInjection(err):
		return "malformed_injection"
	case IsIllegalArgument(err):
		return "illegal_argument"
	case IsNotFound(err):
		return "not_found"
	case IsValidation(err):
		return "validation"
	case IsFetch(err):
		return "fetch"
	default:
		return "internal"
	}
}
