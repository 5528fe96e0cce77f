// ABOUTME: Mappers from cook service results to API DTOs

package mappers

import (
	"encoding/json"

	"recipe-cook-api/api/dto/responses"
	"recipe-cook-api/core/cook"
	"recipe-cook-api/core/recipe"
)

// ToCookResponse converts a cook result to its response DTO
func ToCookResponse(result *cook.Result) *responses.CookResponse {
	if result == nil {
		return nil
	}
	models := result.Models
	if len(models) == 0 {
		models = json.RawMessage("[]")
	}
	return &responses.CookResponse{
		Recipe:     result.Recipe,
		Model:      result.Model,
		Count:      result.Count,
		Cached:     result.Cached,
		DurationMs: result.Duration.Milliseconds(),
		Models:     models,
	}
}

// ToRecipeResponse converts a stored recipe to its response DTO
func ToRecipeResponse(name string, r *recipe.Recipe) *responses.RecipeResponse {
	if r == nil {
		return nil
	}
	return &responses.RecipeResponse{Name: name, Recipe: r}
}
