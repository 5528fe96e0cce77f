// Package api provides the HTTP API layer for the recipe cook service.
// It uses the Huma framework on a chi router for OpenAPI documentation,
// request validation and problem+json errors.
//
// # Architecture
//
// - server.go: Huma configuration, router and middleware wiring
// - handlers/: cook, recipe and health handlers
// - dto/: request and response bodies and their mappers
// - middleware/: request logging and per-IP rate limiting
//
// # Endpoints
//
//	POST /cook              cook an inline or named recipe against a document
//	POST /recipes/validate  check a recipe without cooking it
//	GET  /recipes           list named recipes
//	GET  /recipes/{name}    fetch one named recipe
//	GET  /health            registered formats, translators and models
//	GET  /metrics           Prometheus metrics, when enabled
//
// The OpenAPI document is served at /openapi.json and the interactive
// docs at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  60,
//	    RateWindow: time.Minute,
//	    Metrics:    true,
//	})
//	handlers.NewCookHandler(cookService).RegisterRoutes(humaAPI)
//	handlers.NewHealthHandler(engine).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 format. The engine's error kind is reported as the
// first error detail so clients can branch on it:
//
//	{
//	    "status": 422,
//	    "title": "Unprocessable Entity",
//	    "detail": "invalid xml data: XML syntax error on line 1",
//	    "errors": [{"message": "error kind", "location": "kind", "value": "invalid_data"}]
//	}
package api
