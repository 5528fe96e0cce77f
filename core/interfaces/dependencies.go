// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the cook service

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache stores cooked responses; nil disables response caching
	Cache Cache

	// HTTPClient fetches documents given by URL; nil disables URL sources
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger

	// Recipes resolves named recipes; nil allows inline recipes only
	Recipes RecipeStore
}
