package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"recipe-cook-api/api/dto/responses"
	"recipe-cook-api/core/cooker"
)

// HealthHandler reports liveness and the engine's registries
type HealthHandler struct {
	engine *cooker.Engine
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(engine *cooker.Engine) *HealthHandler {
	return &HealthHandler{engine: engine}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service health",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles the GET /health endpoint
func (h *HealthHandler) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	return &HealthOutput{Body: responses.HealthResponse{
		Status:      "ok",
		Formats:     h.engine.ParserFormats(),
		Translators: h.engine.Translators().Names(),
		Models:      h.engine.Models().Names(),
	}}, nil
}
