// ABOUTME: Cook and recipe handlers for the Huma API
// ABOUTME: Runs inline or stored recipes and exposes the recipe catalogue

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"recipe-cook-api/api/dto/mappers"
	"recipe-cook-api/api/dto/requests"
	"recipe-cook-api/api/dto/responses"
	"recipe-cook-api/core/cook"
	"recipe-cook-api/core/errors"
	"recipe-cook-api/core/recipe"
)

// CookService interface defines the methods needed from the cook service
type CookService interface {
	Cook(ctx context.Context, req cook.Request) (*cook.Result, error)
	Validate(ctx context.Context, r *recipe.Recipe) error
	Recipe(ctx context.Context, name string) (*recipe.Recipe, error)
	Recipes(ctx context.Context) ([]string, error)
}

// CookHandler handles cook and recipe requests
type CookHandler struct {
	cookService  CookService
	maxBodyBytes int64
}

// NewCookHandler creates a new cook handler
func NewCookHandler(cookService CookService) *CookHandler {
	return &CookHandler{cookService: cookService}
}

// SetMaxBodyBytes caps cook request bodies. Zero keeps Huma's default.
func (h *CookHandler) SetMaxBodyBytes(n int64) {
	h.maxBodyBytes = n
}

// RegisterRoutes registers all cook-related routes
func (h *CookHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:  "cookRecipe",
		Method:       http.MethodPost,
		Path:         "/cook",
		Summary:      "Cook a recipe",
		Description:  "Runs an inline or stored recipe against a JSON or XML document and returns the models",
		Tags:         []string{"Cook"},
		MaxBodyBytes: h.maxBodyBytes,
	}, h.Cook)

	huma.Register(api, huma.Operation{
		OperationID: "validateRecipe",
		Method:      http.MethodPost,
		Path:        "/recipes/validate",
		Summary:     "Validate a recipe",
		Description: "Checks that a recipe carries every required tag",
		Tags:        []string{"Recipes"},
	}, h.ValidateRecipe)

	huma.Register(api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/recipes",
		Summary:     "List stored recipes",
		Tags:        []string{"Recipes"},
	}, h.ListRecipes)

	huma.Register(api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/recipes/{name}",
		Summary:     "Get a stored recipe",
		Tags:        []string{"Recipes"},
	}, h.GetRecipe)
}

// CookInput defines the input for the Cook operation
type CookInput struct {
	Body requests.CookRequest
}

// CookOutput defines the output for the Cook operation
type CookOutput struct {
	Body responses.CookResponse
}

// Cook handles the POST /cook endpoint
func (h *CookHandler) Cook(ctx context.Context, input *CookInput) (*CookOutput, error) {
	req, err := input.Body.ToServiceRequest()
	if err != nil {
		return nil, toHumaError(err)
	}

	result, err := h.cookService.Cook(ctx, req)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &CookOutput{Body: *mappers.ToCookResponse(result)}, nil
}

// ValidateRecipeInput defines the input for the ValidateRecipe operation
type ValidateRecipeInput struct {
	Body requests.ValidateRecipeRequest
}

// ValidateRecipeOutput defines the output for the ValidateRecipe operation
type ValidateRecipeOutput struct {
	Body responses.ValidateRecipeResponse
}

// ValidateRecipe handles the POST /recipes/validate endpoint. An unusable
// recipe is a 200 answer with valid=false.
func (h *CookHandler) ValidateRecipe(ctx context.Context, input *ValidateRecipeInput) (*ValidateRecipeOutput, error) {
	r, err := requests.ParseRecipe(input.Body.Recipe)
	if err == nil {
		err = h.cookService.Validate(ctx, r)
	}

	out := &ValidateRecipeOutput{}
	if err != nil {
		out.Body.Kind = errors.Kind(err)
		out.Body.Message = err.Error()
		return out, nil
	}
	out.Body.Valid = true
	return out, nil
}

// ListRecipesOutput defines the output for the ListRecipes operation
type ListRecipesOutput struct {
	Body responses.RecipeListResponse
}

// ListRecipes handles the GET /recipes endpoint
func (h *CookHandler) ListRecipes(ctx context.Context, input *struct{}) (*ListRecipesOutput, error) {
	names, err := h.cookService.Recipes(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	if names == nil {
		names = []string{}
	}
	return &ListRecipesOutput{Body: responses.RecipeListResponse{Recipes: names}}, nil
}

// GetRecipeInput defines the input for the GetRecipe operation
type GetRecipeInput struct {
	Name string `path:"name" maxLength:"128" doc:"Recipe name"`
}

// GetRecipeOutput defines the output for the GetRecipe operation
type GetRecipeOutput struct {
	Body responses.RecipeResponse
}

// GetRecipe handles the GET /recipes/{name} endpoint
func (h *CookHandler) GetRecipe(ctx context.Context, input *GetRecipeInput) (*GetRecipeOutput, error) {
	r, err := h.cookService.Recipe(ctx, input.Name)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GetRecipeOutput{Body: *mappers.ToRecipeResponse(input.Name, r)}, nil
}
