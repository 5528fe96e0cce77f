// ABOUTME: Error types and handling for the recipecook library
// ABOUTME: Engine errors are wrapped with a coarse type and keep their cause

package recipecook

import (
	"context"
	"errors"
	"fmt"

	coreerrors "recipe-cook-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation covers invalid recipes and arguments
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeNotFound indicates a recipe, parser, translator or model was not found
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeNetwork indicates a document could not be fetched
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeParsing covers malformed documents and failed queries
	ErrorTypeParsing ErrorType = "parsing"

	// ErrorTypeTranslation indicates a value could not be assigned to a model
	ErrorTypeTranslation ErrorType = "translation"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ErrClientClosed is returned when operations are attempted on a closed client
var ErrClientClosed = NewError(ErrorTypeInternal, "client is closed")

// wrap converts an engine or service error into an *Error. Context errors
// pass through unchanged.
func wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var libErr *Error
	if errors.As(err, &libErr) {
		return err
	}

	kind := coreerrors.Kind(err)
	return NewError(typeForKind(kind), message).
		WithCause(err).
		WithContext("kind", kind)
}

func typeForKind(kind string) ErrorType {
	switch kind {
	case "validation", "invalid_recipe", "illegal_argument", "malformed_injection":
		return ErrorTypeValidation
	case "not_found", "parser_not_found", "translator_not_found", "class_not_found":
		return ErrorTypeNotFound
	case "fetch":
		return ErrorTypeNetwork
	case "invalid_data", "invalid_query", "value_not_found":
		return ErrorTypeParsing
	case "translation", "no_such_field":
		return ErrorTypeTranslation
	}
	return ErrorTypeInternal
}

func isType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool { return isType(err, ErrorTypeValidation) }

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool { return isType(err, ErrorTypeNotFound) }

// IsNetworkError checks if an error is a network error
func IsNetworkError(err error) bool { return isType(err, ErrorTypeNetwork) }

// IsParsingError checks if an error is a parsing error
func IsParsingError(err error) bool { return isType(err, ErrorTypeParsing) }

// IsTranslationError checks if an error is a translation error
func IsTranslationError(err error) bool { return isType(err, ErrorTypeTranslation) }
