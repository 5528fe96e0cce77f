// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Maps cook error kinds to HTTP statuses

package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"recipe-cook-api/core/errors"
)

// StatusForKind returns the HTTP status for an error kind from errors.Kind.
func StatusForKind(kind string) int {
	switch kind {
	case "":
		return http.StatusOK
	case "not_found":
		return http.StatusNotFound
	case "validation", "invalid_recipe", "illegal_argument":
		return http.StatusBadRequest
	case "parser_not_found", "translator_not_found", "class_not_found",
		"invalid_data", "invalid_query", "malformed_injection",
		"value_not_found", "no_such_field", "translation":
		return http.StatusUnprocessableEntity
	case "fetch":
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout("Cook timed out", err)
	case stderrors.Is(err, context.Canceled):
		return huma.NewError(499, "Request cancelled")
	}

	kind := errors.Kind(err)
	status := StatusForKind(kind)
	if status == http.StatusInternalServerError {
		return huma.Error500InternalServerError("Internal server error", err)
	}
	return huma.NewError(status, err.Error(), &huma.ErrorDetail{
		Message:  "error kind",
		Location: "kind",
		Value:    kind,
	})
}
