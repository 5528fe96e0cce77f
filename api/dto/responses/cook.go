// ABOUTME: Response DTOs for the cook, recipe and health endpoints
// ABOUTME: Cooked models are passed through as already encoded JSON

package responses

// CookResponse is the result of one cook
type CookResponse struct {
	Recipe     string      `json:"recipe" doc:"Recipe name, or 'inline'"`
	Model      string      `json:"model" doc:"Model name from the recipe"`
	Count      int         `json:"count" doc:"Number of models produced"`
	Cached     bool        `json:"cached" doc:"Whether the result came from the response cache"`
	DurationMs int64       `json:"durationMs" doc:"Time spent serving the cook in milliseconds"`
	Models     interface{} `json:"models" doc:"Cooked models in query order"`
}

// RecipeListResponse lists stored recipe names
type RecipeListResponse struct {
	Recipes []string `json:"recipes"`
}

// RecipeResponse is one stored recipe
type RecipeResponse struct {
	Name   string      `json:"name"`
	Recipe interface{} `json:"recipe"`
}

// ValidateRecipeResponse reports whether a recipe is usable
type ValidateRecipeResponse struct {
	Valid   bool   `json:"valid"`
	Kind    string `json:"kind,omitempty" doc:"Error kind when invalid"`
	Message string `json:"message,omitempty"`
}

// HealthResponse describes the running engine
type HealthResponse struct {
	Status      string   `json:"status"`
	Formats     []string `json:"formats" doc:"Registered parser format tags"`
	Translators []string `json:"translators"`
	Models      []string `json:"models"`
}
